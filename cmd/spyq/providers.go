package main

import (
	"github.com/spf13/cobra"

	"github.com/spyq/spyq/internal/config"
	"github.com/spyq/spyq/internal/report"
)

// Providers-specific flag values.
var (
	providersPath string
)

// providersCmd lists the configured providers and their fallback order.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured providers",
	Long: `List the providers configured in .spyq.yaml or .spyq.toml, with
their kind, model, priority, and enabled state. Without a config file
the built-in default (a local Ollama) is shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(providersPath)
		if err != nil {
			return exitError(ExitInvalidArgs, "spyq: cannot load config (%v)", err)
		}
		configs, err := cfg.ProviderConfigs()
		if err != nil {
			return exitError(ExitInvalidArgs, "spyq: %v", err)
		}
		return report.Providers(cmd.OutOrStdout(), configs)
	},
}

func init() {
	providersCmd.Flags().StringVar(&providersPath, "path", ".",
		"project path used for config lookup")
}
