// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spyq/spyq/internal/config"
	"github.com/spyq/spyq/internal/generate"
	"github.com/spyq/spyq/internal/promptctx"
	"github.com/spyq/spyq/internal/provider"
	"github.com/spyq/spyq/internal/pycode"
	"github.com/spyq/spyq/internal/report"
	"github.com/spyq/spyq/internal/rules"
)

// GenerateInput is the input schema for the generate_code MCP tool.
type GenerateInput struct {
	Request    string `json:"request" jsonschema:"Natural-language description of the Python code to generate"`
	Path       string `json:"path,omitempty" jsonschema:"Project path used for config and context (defaults to current directory)"`
	Iterations int    `json:"iterations,omitempty" jsonschema:"Maximum generation iterations (default from config, usually 3)"`
	Fast       bool   `json:"fast,omitempty" jsonschema:"Single provider call, no retries or stub completion"`
	Provider   string `json:"provider,omitempty" jsonschema:"Pin generation to one configured provider by name"`
}

// ValidateInput is the input schema for the validate_file MCP tool.
type ValidateInput struct {
	File string `json:"file" jsonschema:"Path of the Python file to validate"`
	Fix  bool   `json:"fix,omitempty" jsonschema:"Attempt mechanical syntax repairs and return the fixed source"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all spyq tools to the MCP server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_code",
		Description: "Generate Python code from a natural-language request using the configured provider chain. Responses are normalized, syntax-checked, and stub-completed before being returned.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_file",
		Description: "Validate a Python file against syntax and style rules, returning violations with fix suggestions and a quality score.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleValidate)
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, any, error) {
	if input.Request == "" {
		return nil, nil, fmt.Errorf("request must not be empty")
	}

	root, err := resolveDir(input.Path)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg = config.Merge(cfg, config.Overrides{
		Provider:      input.Provider,
		MaxIterations: input.Iterations,
		FastMode:      input.Fast,
	})

	configs, err := cfg.ProviderConfigs()
	if err != nil {
		return nil, nil, err
	}
	manager := provider.NewManager(configs, cfg.FallbackOrder)

	pc := promptctx.NewBuilder(root).Build(cfg.Rules)
	orch := generate.New(manager,
		generate.WithRules(rules.New(cfg.Rules)),
		generate.WithProjectContext(pc),
	)

	out := orch.Generate(ctx, generate.Request{
		UserRequest:   input.Request,
		MaxIterations: cfg.MaxIterations,
		FastMode:      cfg.FastMode,
	})
	if out.Err != nil {
		return nil, nil, out.Err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: out.GeneratedCode},
		},
	}, nil, nil
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, any, error) {
	if input.File == "" {
		return nil, nil, fmt.Errorf("file must not be empty")
	}

	path, err := filepath.Abs(input.File)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot resolve path %q: %w", input.File, err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-requested file
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read %q: %w", input.File, err)
	}
	code := string(data)

	cfg, err := config.Load(filepath.Dir(path))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if input.Fix {
		if check := pycode.Check(code); !check.Valid {
			if fixed, ok := pycode.AttemptFix(code); ok {
				return &mcp.CallToolResult{
					Content: []mcp.Content{
						&mcp.TextContent{Text: fixed},
					},
				}, nil, nil
			}
		}
	}

	validator := rules.New(cfg.Rules)
	rep := validator.ValidateContent(code)

	var buf bytes.Buffer
	restore := color.NoColor
	color.NoColor = true // MCP consumers get plain text
	err = report.Validation(&buf, input.File, rep)
	color.NoColor = restore
	if err != nil {
		return nil, nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, nil, nil
}

// resolveDir resolves a project path to an absolute directory, defaulting
// to the current directory.
func resolveDir(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", path)
	}
	return abs, nil
}
