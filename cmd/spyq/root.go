package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	spyqlog "github.com/spyq/spyq/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for spyq.
var rootCmd = &cobra.Command{
	Use:   "spyq",
	Short: "Generate and validate Python code with local and cloud LLMs",
	Long: `SPYQ is a Python code quality tool built around LLM generation.
It turns natural-language requests into validated Python code: model
responses are stripped of markdown fences and chat wrappers, checked
for echoed prompts, syntax-verified and mechanically repaired, and
stubbed functions are completed in a targeted second pass. Providers
fall back in configured order, from a local Ollama to cloud APIs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		spyqlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
