package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/print-relay/internal/config"
)

var showSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if !showSecrets {
			cfg.Redact()
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "do not mask secrets")
	rootCmd.AddCommand(configCmd)
}
