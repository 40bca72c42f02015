package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/print-relay/internal/client"
	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/intake"
)

var viaRedis bool

var enqueueCmd = &cobra.Command{
	Use:   "enqueue [uri-or-path]",
	Short: "Queue a print job on a running print-relay server",
	Long: `Queue a print job on a running print-relay server.

By default the event is posted to the HTTP API. With --redis it is published
on the configured Redis channel instead.

Examples:
  relay-cli enqueue https://cdn.example.com/receipts/42.png
  relay-cli enqueue --server http://printer-pi:8080 receipts/42.png
  relay-cli enqueue --redis receipts/42.png`,
	Args: cobra.ExactArgs(1),
	RunE: runEnqueue,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	enqueueCmd.Flags().BoolVar(&viaRedis, "redis", false, "publish on the Redis intake channel instead of calling the HTTP API")
	rootCmd.AddCommand(enqueueCmd)
}

func notificationFor(arg string) *core.Notification {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return &core.Notification{URI: arg}
	}
	return &core.Notification{FullPath: arg}
}

func runEnqueue(_ *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	n := notificationFor(args[0])

	if viaRedis {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		rdb := intake.NewRedisClient(&cfg.Intake.Redis)
		defer rdb.Close()

		if err := intake.Publish(ctx, rdb, cfg.Intake.Redis.Channel, n); err != nil {
			return err
		}
		successColor.Printf("✓ published to redis channel %q\n", cfg.Intake.Redis.Channel)
		return nil
	}

	accepted, err := client.New(serverURL, webhookKey).Enqueue(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to enqueue print job: %w", err)
	}
	successColor.Printf("✓ queued job %s\n", accepted.JobID)
	dimColor.Printf("  %s\n", accepted.SourceURI)
	return nil
}
