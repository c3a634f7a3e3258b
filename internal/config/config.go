// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package config handles .spyq.yaml and .spyq.toml configuration files.
package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/spyq/spyq/internal/provider"
)

// File names probed in a project root, in order.
const (
	YAMLFileName = ".spyq.yaml"
	TOMLFileName = ".spyq.toml"
)

// Config represents the contents of a spyq configuration file. The same
// schema is accepted in YAML and TOML.
type Config struct {
	Providers     map[string]ProviderEntry `yaml:"providers,omitempty" toml:"providers"`
	FallbackOrder []string                 `yaml:"fallback_order,omitempty" toml:"fallback_order"`
	Timeout       int                      `yaml:"timeout,omitempty" toml:"timeout"` // default per-provider timeout, seconds
	MaxRetries    int                      `yaml:"max_retries,omitempty" toml:"max_retries"`
	MaxIterations int                      `yaml:"max_iterations,omitempty" toml:"max_iterations"`
	FastMode      bool                     `yaml:"fast_mode,omitempty" toml:"fast_mode"`
	Rules         RulesConfig              `yaml:"rules,omitempty" toml:"rules"`
}

// ProviderEntry holds one backend provider's settings in the config file.
type ProviderEntry struct {
	Kind     string         `yaml:"kind,omitempty" toml:"kind"`
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled"`
	Priority int            `yaml:"priority,omitempty" toml:"priority"`
	BaseURL  string         `yaml:"base_url,omitempty" toml:"base_url"`
	Model    string         `yaml:"model,omitempty" toml:"model"`
	Timeout  int            `yaml:"timeout,omitempty" toml:"timeout"` // seconds
	APIKey   string         `yaml:"api_key,omitempty" toml:"api_key"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options"`
}

// RulesConfig tunes the style validator.
type RulesConfig struct {
	MaxLineLength     int   `yaml:"max_line_length,omitempty" toml:"max_line_length"`
	MaxFileLines      int   `yaml:"max_file_lines,omitempty" toml:"max_file_lines"`
	MaxFunctionLines  int   `yaml:"max_function_lines,omitempty" toml:"max_function_lines"`
	RequireDocstrings *bool `yaml:"require_docstrings,omitempty" toml:"require_docstrings"`
	ForbidPrint       bool  `yaml:"forbid_print,omitempty" toml:"forbid_print"`
}

// Default returns the configuration used when no file is present: a single
// enabled local ollama provider.
func Default() *Config {
	return &Config{
		Providers: map[string]ProviderEntry{
			"local": {
				Kind:     "ollama",
				Priority: 1,
				Model:    "codellama:7b",
			},
		},
		FallbackOrder: []string{"local"},
		MaxIterations: 3,
	}
}

// ProviderConfigs converts file entries into provider configs, applying
// the file-level default timeout where a provider has none. Entries are
// returned sorted by name; the fallback order itself is applied by the
// provider manager.
func (c *Config) ProviderConfigs() ([]provider.Config, error) {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]provider.Config, 0, len(names))
	for _, name := range names {
		entry := c.Providers[name]
		if entry.Kind == "" {
			return nil, fmt.Errorf("provider %q: kind is required", name)
		}
		timeout := entry.Timeout
		if timeout == 0 {
			timeout = c.Timeout
		}
		enabled := entry.Enabled == nil || *entry.Enabled
		out = append(out, provider.Config{
			Name:     name,
			Kind:     entry.Kind,
			Enabled:  enabled,
			Priority: entry.Priority,
			Timeout:  time.Duration(timeout) * time.Second,
			BaseURL:  entry.BaseURL,
			Model:    entry.Model,
			APIKey:   entry.APIKey,
			Extra:    entry.Options,
		})
	}
	return out, nil
}
