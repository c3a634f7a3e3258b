// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs an adapter from its configuration.
type Factory func(Config) (Adapter, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds an adapter kind to the static registry. Adapter files call
// this from init; registering the same kind twice panics, since that is a
// programming error.
func Register(kind string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[kind]; dup {
		panic(fmt.Sprintf("provider: duplicate adapter kind %q", kind))
	}
	registry[kind] = f
}

// New constructs the adapter for cfg.Kind. Unknown kinds are a
// configuration error, resolved at config-parse time rather than at call
// time.
func New(cfg Config) (Adapter, error) {
	registryMu.RLock()
	f, ok := registry[cfg.Kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider %q: unknown kind %q (available: %v)", cfg.Name, cfg.Kind, Kinds())
	}
	return f(cfg)
}

// Kinds lists registered adapter kinds in sorted order.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
