// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyq/spyq/internal/provider"
)

func TestManager_FirstSuccessShortCircuits(t *testing.T) {
	a := provider.NewMock("a", provider.MockResponse{Text: "from a"})
	b := provider.NewMock("b", provider.MockResponse{Text: "from b"})
	m := provider.NewManagerWithAdapters(a, b)

	res, err := m.Generate(context.Background(), "prompt", provider.GenerateOpts{})
	require.NoError(t, err)
	assert.Equal(t, "from a", res.Text)
	assert.Len(t, a.Calls(), 1)
	assert.Empty(t, b.Calls(), "second provider must not be touched on success")
}

func TestManager_FallsBackOnFailure(t *testing.T) {
	a := provider.NewMock("a", provider.MockResponse{Err: provider.ErrConnection})
	b := provider.NewMock("b", provider.MockResponse{Text: "from b"})
	m := provider.NewManagerWithAdapters(a, b)

	res, err := m.Generate(context.Background(), "prompt", provider.GenerateOpts{})
	require.NoError(t, err)
	assert.Equal(t, "from b", res.Text)
	assert.Equal(t, "b", res.Provider)
}

func TestManager_Exhaustion(t *testing.T) {
	connErr := errors.New("dial tcp: connection refused")
	a := provider.NewMock("a", provider.MockResponse{Err: connErr})
	b := provider.NewMock("b", provider.MockResponse{Err: provider.ErrServer})
	m := provider.NewManagerWithAdapters(a, b)

	_, err := m.Generate(context.Background(), "prompt", provider.GenerateOpts{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrExhausted))

	var ex *provider.ExhaustedError
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, []string{"a", "b"}, ex.Attempts)
	assert.ErrorIs(t, ex.Last, provider.ErrServer)
	// Both the attempts and the last error appear in the message.
	assert.Contains(t, err.Error(), "a, b")
	assert.Contains(t, err.Error(), "server error")
}

func TestManager_NoProvidersConfigured(t *testing.T) {
	m := provider.NewManagerWithAdapters()

	_, err := m.Generate(context.Background(), "prompt", provider.GenerateOpts{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no providers configured")
}

func TestManager_ReportsExactlyOneFailedAttempt(t *testing.T) {
	// With [A(fails), B(succeeds)] exactly one failed attempt happens
	// before the chain short-circuits.
	a := provider.NewMock("a", provider.MockResponse{Err: provider.ErrServer})
	b := provider.NewMock("b", provider.MockResponse{Text: "ok"})
	m := provider.NewManagerWithAdapters(a, b)

	res, err := m.Generate(context.Background(), "p", provider.GenerateOpts{})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Text)
	assert.Len(t, a.Calls(), 1)
	assert.Len(t, b.Calls(), 1)
}

func TestNewManager_OrderingAndSkips(t *testing.T) {
	configs := []provider.Config{
		{Name: "low", Kind: "mock", Enabled: true, Priority: 9},
		{Name: "high", Kind: "mock", Enabled: true, Priority: 1},
		{Name: "off", Kind: "mock", Enabled: false, Priority: 0},
		{Name: "explicit", Kind: "mock", Enabled: true, Priority: 50},
		{Name: "broken", Kind: "no-such-kind", Enabled: true},
	}

	m := provider.NewManager(configs, []string{"explicit"})

	// Explicit fallback order first, then remaining enabled by priority.
	// Disabled and unconstructible providers never appear.
	assert.Equal(t, []string{"explicit", "high", "low"}, m.Providers())
}

func TestManager_ContextCancellationStopsFallback(t *testing.T) {
	a := provider.NewMock("a", provider.MockResponse{Err: provider.ErrServer})
	b := provider.NewMock("b", provider.MockResponse{Text: "never"})
	m := provider.NewManagerWithAdapters(a, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Generate(ctx, "p", provider.GenerateOpts{})
	require.Error(t, err)
	assert.Empty(t, b.Calls(), "cancelled context must stop the fallback loop")
}
