package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath string
	serverURL  string
	webhookKey string
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "relay-cli",
	Short: "relay-cli is the command-line interface for print-relay.",
	Long:  `A CLI for sending print jobs to print-relay, printing an image directly, and inspecting the queue and job journal.`,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (defaults to ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "print-relay server URL")
	rootCmd.PersistentFlags().StringVar(&webhookKey, "secret", "", "webhook secret used to sign events")

	for flag, key := range map[string]string{"server": "SERVER_URL", "secret": "SERVER_WEBHOOK_SECRET"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "error", err)
			os.Exit(1)
		}
	}
}

// initConfig lets RELAY_SERVER_URL and RELAY_SERVER_WEBHOOK_SECRET fill flags
// that were not given on the command line.
func initConfig() {
	viper.SetEnvPrefix("RELAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	serverURL = viper.GetString("SERVER_URL")
	webhookKey = viper.GetString("SERVER_WEBHOOK_SECRET")
}
