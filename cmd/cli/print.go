package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/wire"
)

var printCmd = &cobra.Command{
	Use:   "print [uri-or-path]",
	Short: "Fetch and print one image in-process, without a running server",
	Long: `Fetch and print one image through the same pipeline the server uses.

A relative object path is resolved against fetcher.base_url.

Examples:
  relay-cli print https://cdn.example.com/receipts/42.png
  relay-cli print --config ./config.yaml receipts/42.png`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(printCmd)
}

func runPrint(_ *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, cleanup, err := wire.InitializePipeline(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize print pipeline: %w\n\nTip: Check that your config.yaml exists and is valid", err)
	}
	defer cleanup()

	uri, err := core.ResolveSourceURI(args[0], pipeline.Config.Fetcher.BaseURL)
	if err != nil {
		return err
	}

	event := &core.PrintEvent{
		ID:         uuid.NewString(),
		SourceURI:  uri,
		Source:     "cli",
		ReceivedAt: time.Now().UTC(),
	}

	titleColor.Println("print-relay - direct print")
	dimColor.Printf("   Image:   %s\n", uri)
	dimColor.Printf("   Printer: %s\n\n", pipeline.Config.Printer.Address())

	runErr := pipeline.Job.Run(ctx, event)

	records, err := pipeline.Journal.RecentJobs(ctx, 1)
	if err == nil && len(records) == 1 && records[0].JobID == event.ID {
		printOutcome(records[0])
	}
	return runErr
}

func printOutcome(rec *core.JobRecord) {
	elapsed := rec.Duration().Round(time.Millisecond)
	switch rec.Status {
	case core.JobStatusPrinted:
		successColor.Printf("✓ printed in %s\n", elapsed)
	case core.JobStatusSkipped:
		warnColor.Printf("! skipped: %s\n", rec.Error)
	default:
		errorColor.Printf("✗ failed (%s): %s\n", rec.ErrorKind, rec.Error)
	}
	if rec.CleanupError != "" {
		warnColor.Printf("  cleanup: %s\n", rec.CleanupError)
	}
	dimColor.Printf("  stages: %v\n", rec.Stages)
}
