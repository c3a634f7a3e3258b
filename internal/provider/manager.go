// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// managed pairs a constructed adapter with its config.
type managed struct {
	adapter Adapter
	cfg     Config
}

// Manager holds the configured providers in fallback order and tries each
// in turn until one succeeds. Attempts are strictly sequential: the
// deterministic last-error reporting depends on it.
type Manager struct {
	providers []managed
}

// NewManager resolves configs into adapters. Explicit fallbackOrder wins
// over numeric priority; configs not named in fallbackOrder follow,
// ordered by priority then name. Disabled providers and providers whose
// adapter cannot be constructed are skipped up front and never counted as
// attempts.
func NewManager(configs []Config, fallbackOrder []string) *Manager {
	byName := make(map[string]Config, len(configs))
	for _, cfg := range configs {
		byName[cfg.Name] = cfg
	}

	var ordered []Config
	taken := make(map[string]bool)
	for _, name := range fallbackOrder {
		cfg, ok := byName[name]
		if !ok {
			slog.Warn("fallback_order names unknown provider", "provider", name)
			continue
		}
		ordered = append(ordered, cfg)
		taken[name] = true
	}

	var rest []Config
	for _, cfg := range configs {
		if !taken[cfg.Name] {
			rest = append(rest, cfg)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		if rest[i].Priority != rest[j].Priority {
			return rest[i].Priority < rest[j].Priority
		}
		return rest[i].Name < rest[j].Name
	})
	ordered = append(ordered, rest...)

	m := &Manager{}
	for _, cfg := range ordered {
		if !cfg.Enabled {
			continue
		}
		adapter, err := New(cfg)
		if err != nil {
			slog.Warn("skipping provider: adapter construction failed",
				"provider", cfg.Name, "error", err)
			continue
		}
		m.providers = append(m.providers, managed{adapter: adapter, cfg: cfg})
	}
	return m
}

// NewManagerWithAdapters builds a Manager over explicit adapters,
// bypassing the registry. This is primarily useful for testing.
func NewManagerWithAdapters(adapters ...Adapter) *Manager {
	m := &Manager{}
	for _, a := range adapters {
		m.providers = append(m.providers, managed{adapter: a, cfg: Config{Name: a.Name(), Enabled: true}})
	}
	return m
}

// Providers returns the names of usable providers in fallback order.
func (m *Manager) Providers() []string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.adapter.Name()
	}
	return names
}

// Generate tries each provider in fallback order under its own adaptive
// timeout, returning the first success. When every provider fails, the
// returned ExhaustedError embeds the last underlying error and the full
// ordered list of providers attempted.
func (m *Manager) Generate(ctx context.Context, prompt string, opts GenerateOpts) (*Result, error) {
	var attempts []string
	var lastErr error

	for _, p := range m.providers {
		timeout := p.cfg.Timeout
		if timeout == 0 {
			timeout = AdaptiveTimeout(len(prompt), opts.Task, opts.Language)
		}

		slog.Debug("trying provider", "provider", p.adapter.Name(), "timeout", timeout)

		res, err := m.attempt(ctx, p.adapter, prompt, opts, timeout)
		if err == nil {
			return res, nil
		}

		attempts = append(attempts, p.adapter.Name())
		lastErr = err
		slog.Warn("provider failed, falling back", "provider", p.adapter.Name(), "error", err)

		if ctx.Err() != nil {
			// The outer context is gone; further attempts cannot succeed.
			break
		}
	}

	return nil, &ExhaustedError{Attempts: attempts, Last: lastErr}
}

// attempt runs one provider call bounded by its timeout. The per-attempt
// context is cancelled on exit so connection resources are released
// deterministically.
func (m *Manager) attempt(ctx context.Context, a Adapter, prompt string, opts GenerateOpts, timeout time.Duration) (*Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := a.Generate(attemptCtx, prompt, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %v", ErrTimeout, timeout, err)
		}
		return nil, err
	}
	return res, nil
}
