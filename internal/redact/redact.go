// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package redact provides utilities to strip sensitive values from strings
// before they appear in output, logs, or error messages.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output. Add new entries here as provider kinds gain API
// integrations.
var sensitiveEnvVars = []string{
	"ANTHROPIC_API_KEY",
	"OPENAI_API_KEY",
	"OLLAMA_API_KEY",
	"SPYQ_API_KEY",
}

var (
	mu            sync.Mutex
	cachedSecrets []string
	loaded        bool
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
	loaded = true
}

// AddSecret registers a value loaded from config (an api_key field) so it
// is scrubbed alongside env-provided secrets. Short values are ignored to
// avoid redacting common substrings.
func AddSecret(val string) {
	if len(val) < 4 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	cachedSecrets = append(cachedSecrets, val)
}

// ResetForTest clears cached secrets so tests can verify redaction after
// changing env vars with t.Setenv.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	cachedSecrets = nil
	loaded = false
}

// String replaces any occurrence of a known sensitive value with
// "[REDACTED]". Returns the original string if no secrets are found.
func String(s string) string {
	mu.Lock()
	defer mu.Unlock()
	if !loaded {
		loadSecrets()
	}
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}
