// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spyq/spyq/internal/config"
	"github.com/spyq/spyq/internal/generate"
	"github.com/spyq/spyq/internal/promptctx"
	"github.com/spyq/spyq/internal/provider"
	"github.com/spyq/spyq/internal/redact"
	"github.com/spyq/spyq/internal/report"
	"github.com/spyq/spyq/internal/rules"
)

// Generate-specific flag values.
var (
	generateIterations int
	generateFast       bool
	generateProvider   string
	generatePath       string
	generateOutput     string
)

// generateCmd turns a natural-language request into validated Python code.
var generateCmd = &cobra.Command{
	Use:   "generate <request>",
	Short: "Generate Python code from a natural-language request",
	Long: `Generate Python code using the configured provider chain.

The raw model response is normalized before anything else happens:
markdown fences and chat-API wrappers are stripped, echoed prompts are
rejected, syntax errors are mechanically repaired where possible, and
functions left as stubs are completed in a targeted follow-up call.
Invalid candidates trigger a retry with feedback, up to the iteration
limit.

The generated code is written to stdout (or --output); the quality
summary goes to stderr so the code stays pipeable:
  spyq generate "a function that parses ISO dates" > parse.py
  spyq generate "binary search over a sorted list" --fast --provider local`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateIterations, "iterations", 0,
		"maximum generation iterations (default from config, usually 3)")
	generateCmd.Flags().BoolVar(&generateFast, "fast", false,
		"single provider call, no retries or stub completion")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "",
		"pin generation to one configured provider by name")
	generateCmd.Flags().StringVar(&generatePath, "path", ".",
		"project path used for config and context")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "",
		"write generated code to this file instead of stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(generatePath)
	if err != nil {
		return exitError(ExitInvalidArgs, "spyq: cannot load config (%v)", err)
	}
	cfg = config.Merge(cfg, config.Overrides{
		Provider:      generateProvider,
		MaxIterations: generateIterations,
		FastMode:      generateFast,
	})

	configs, err := cfg.ProviderConfigs()
	if err != nil {
		return exitError(ExitInvalidArgs, "spyq: %v", err)
	}
	for _, pc := range configs {
		redact.AddSecret(pc.APIKey)
	}

	manager := provider.NewManager(configs, cfg.FallbackOrder)
	if len(manager.Providers()) == 0 {
		return exitError(ExitInvalidArgs, "spyq: no usable providers configured")
	}

	pc := promptctx.NewBuilder(generatePath).Build(cfg.Rules)
	orch := generate.New(manager,
		generate.WithRules(rules.New(cfg.Rules)),
		generate.WithProjectContext(pc),
	)

	out := orch.Generate(cmd.Context(), generate.Request{
		UserRequest:   args[0],
		MaxIterations: cfg.MaxIterations,
		FastMode:      cfg.FastMode,
	})

	_ = report.Outcome(cmd.ErrOrStderr(), out)
	if out.Err != nil {
		return exitError(ExitGenerationFailed, "")
	}

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(out.GeneratedCode+"\n"), 0o644); err != nil { //nolint:gosec // generated source file
			return exitError(ExitInvalidArgs, "spyq: cannot write %q (%v)", generateOutput, err)
		}
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.GeneratedCode)
	return nil
}
