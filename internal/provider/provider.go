// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package provider abstracts backend model services behind a single
// Adapter interface, with a static registry of adapter kinds, adaptive
// per-request timeouts, a shared error taxonomy, and a fallback Manager
// that tries configured providers in order.
package provider

import (
	"context"
	"time"
)

// Adapter translates a generation request into one backend-specific call.
// Implementations must respect context cancellation and deadlines.
type Adapter interface {
	// Generate sends the prompt and returns the normalized result.
	Generate(ctx context.Context, prompt string, opts GenerateOpts) (*Result, error)

	// Name returns the configured provider name.
	Name() string
}

// Task describes what the prompt is asking for; code generation gets a
// longer adaptive timeout.
type Task int

const (
	TaskGeneral Task = iota
	TaskCodeGeneration
)

// GenerateOpts carries per-request generation parameters. Zero values fall
// through to provider defaults.
type GenerateOpts struct {
	Task         Task
	Language     string
	SystemPrompt string
	Temperature  *float64
	MaxTokens    int
	Stop         []string
}

// Config describes one configured backend provider. It is loaded once from
// external configuration and read-only during a run. Name is unique.
type Config struct {
	Name     string
	Kind     string // registry key: "ollama", "chat", "anthropic", "mock"
	Enabled  bool
	Priority int
	Timeout  time.Duration // fixed override; zero means adaptive
	BaseURL  string
	Model    string
	APIKey   string
	Extra    map[string]any
}

// Result is one successful provider response. It is never mutated after
// creation.
type Result struct {
	Text     string
	Provider string
	Model    string
	Elapsed  time.Duration
	Metadata map[string]string
}
