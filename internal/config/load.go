// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads spyq configuration from the given project root, probing
// .spyq.yaml then .spyq.toml. When neither exists, the default config is
// returned with a nil error. Environment references of the form ${VAR}
// and ${VAR:-default} are resolved before parsing.
func Load(root string) (*Config, error) {
	yamlPath := filepath.Join(root, YAMLFileName)
	if data, err := os.ReadFile(yamlPath); err == nil { //nolint:gosec // user-provided project path
		return parseYAML(data)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	tomlPath := filepath.Join(root, TOMLFileName)
	if data, err := os.ReadFile(tomlPath); err == nil { //nolint:gosec // user-provided project path
		return parseTOML(data)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return Default(), nil
}

func parseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(interpolate(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", YAMLFileName, err)
	}
	return &cfg, nil
}

func parseTOML(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(interpolate(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", TOMLFileName, err)
	}
	return &cfg, nil
}

// envRefPattern matches ${VAR} and ${VAR:-default}.
var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// interpolate resolves environment references in the raw file contents. An
// unset variable without a default expands to the empty string.
func interpolate(data []byte) []byte {
	return envRefPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		groups := envRefPattern.FindSubmatch(m)
		name := string(groups[1])
		if val, ok := os.LookupEnv(name); ok {
			return []byte(val)
		}
		if len(groups[2]) > 0 && strings.HasPrefix(string(groups[2]), ":-") {
			return groups[3]
		}
		return nil
	})
}
