package provider

import (
	"context"
	"sync"
)

// MockResponse defines one canned reply for the mock adapter.
type MockResponse struct {
	Text string
	Err  error
}

// Mock is a test double that returns pre-configured responses in sequence.
// After all responses are exhausted it keeps returning the last one. Every
// request is recorded for later assertion. It is the injectable fake
// backend used to test the manager and orchestrator without network
// access.
type Mock struct {
	name string

	mu        sync.Mutex
	responses []MockResponse
	calls     []string
	idx       int
}

var _ Adapter = (*Mock)(nil)

// NewMock creates a mock adapter returning the given responses in order.
func NewMock(name string, responses ...MockResponse) *Mock {
	return &Mock{name: name, responses: responses}
}

func (m *Mock) Name() string { return m.name }

// Generate returns the next canned response and records the prompt. It
// respects context cancellation.
func (m *Mock) Generate(ctx context.Context, prompt string, _ GenerateOpts) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, prompt)

	if len(m.responses) == 0 {
		return &Result{Text: "", Provider: m.name, Model: "mock"}, nil
	}

	r := m.responses[m.idx]
	if m.idx < len(m.responses)-1 {
		m.idx++
	}

	if r.Err != nil {
		return nil, r.Err
	}
	return &Result{Text: r.Text, Provider: m.name, Model: "mock"}, nil
}

// Calls returns a copy of all prompts received by this mock.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func init() {
	// The mock is registrable so configs used in tests can name it.
	Register("mock", func(cfg Config) (Adapter, error) {
		return NewMock(cfg.Name), nil
	})
}
