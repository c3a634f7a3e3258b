// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"local"}, cfg.FallbackOrder)
	assert.Equal(t, 3, cfg.MaxIterations)
	require.Contains(t, cfg.Providers, "local")
	assert.Equal(t, "ollama", cfg.Providers["local"].Kind)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	content := `
providers:
  local:
    kind: ollama
    priority: 1
    model: codellama:7b
  cloud:
    kind: anthropic
    priority: 2
    api_key: ${SPYQ_TEST_KEY:-fallback-key}
fallback_order: [local, cloud]
timeout: 60
max_iterations: 5
rules:
  max_line_length: 100
  forbid_print: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, YAMLFileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"local", "cloud"}, cfg.FallbackOrder)
	assert.Equal(t, 60, cfg.Timeout)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, 100, cfg.Rules.MaxLineLength)
	assert.True(t, cfg.Rules.ForbidPrint)
	assert.Equal(t, "fallback-key", cfg.Providers["cloud"].APIKey)
}

func TestLoad_YAMLTakesPrecedenceOverTOML(t *testing.T) {
	dir := t.TempDir()
	yamlContent := "max_iterations: 7\n"
	tomlContent := "max_iterations = 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, YAMLFileName), []byte(yamlContent), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TOMLFileName), []byte(tomlContent), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxIterations)
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	content := `
fallback_order = ["local"]
timeout = 45

[providers.local]
kind = "ollama"
model = "codellama:13b"
priority = 1

[rules]
max_function_lines = 40
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, TOMLFileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Timeout)
	assert.Equal(t, "codellama:13b", cfg.Providers["local"].Model)
	assert.Equal(t, 40, cfg.Rules.MaxFunctionLines)
}

func TestLoad_EnvInterpolation(t *testing.T) {
	t.Setenv("SPYQ_TEST_MODEL", "llama3:8b")

	dir := t.TempDir()
	content := `
providers:
  local:
    kind: ollama
    model: ${SPYQ_TEST_MODEL}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, YAMLFileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "llama3:8b", cfg.Providers["local"].Model)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, YAMLFileName), []byte("providers: [not a map"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestProviderConfigs(t *testing.T) {
	enabled := false
	cfg := &Config{
		Timeout: 90,
		Providers: map[string]ProviderEntry{
			"b": {Kind: "ollama", Priority: 2, Timeout: 10},
			"a": {Kind: "anthropic", Priority: 1},
			"c": {Kind: "chat", Enabled: &enabled, BaseURL: "http://x"},
		},
	}

	pcs, err := cfg.ProviderConfigs()
	require.NoError(t, err)
	require.Len(t, pcs, 3)

	// Sorted by name.
	assert.Equal(t, "a", pcs[0].Name)
	assert.Equal(t, "b", pcs[1].Name)
	assert.Equal(t, "c", pcs[2].Name)

	// File-level timeout applies when the entry has none.
	assert.Equal(t, 90*time.Second, pcs[0].Timeout)
	assert.Equal(t, 10*time.Second, pcs[1].Timeout)

	// Enabled defaults to true; explicit false sticks.
	assert.True(t, pcs[0].Enabled)
	assert.False(t, pcs[2].Enabled)
}

func TestProviderConfigs_KindRequired(t *testing.T) {
	cfg := &Config{Providers: map[string]ProviderEntry{"x": {Model: "m"}}}
	_, err := cfg.ProviderConfigs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind is required")
}

func TestMerge(t *testing.T) {
	fileCfg := &Config{
		Providers: map[string]ProviderEntry{
			"local": {Kind: "ollama"},
			"cloud": {Kind: "anthropic"},
		},
		FallbackOrder: []string{"local", "cloud"},
		MaxIterations: 3,
		Timeout:       60,
	}

	merged := Merge(fileCfg, Overrides{MaxIterations: 5, FastMode: true})
	assert.Equal(t, 5, merged.MaxIterations)
	assert.True(t, merged.FastMode)
	assert.Equal(t, 60, merged.Timeout, "zero CLI timeout falls through")

	pinned := Merge(fileCfg, Overrides{Provider: "cloud"})
	assert.Equal(t, []string{"cloud"}, pinned.FallbackOrder)
	assert.Len(t, pinned.Providers, 1)
	assert.Contains(t, pinned.Providers, "cloud")

	// Original is untouched.
	assert.Len(t, fileCfg.Providers, 2)
}
