// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/spyq/spyq/internal/extract"
)

func init() {
	Register("chat", newChat)
}

// chatAdapter speaks the OpenAI-compatible multi-turn chat wire shape.
// It works against any server exposing /v1/chat/completions (LM Studio,
// vLLM, OpenAI itself).
type chatAdapter struct {
	name    string
	baseURL string
	model   string
	apiKey  string
	extra   map[string]any
}

var _ Adapter = (*chatAdapter)(nil)

func newChat(cfg Config) (Adapter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("provider %q: base_url is required for chat providers", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %q: model is required", cfg.Name)
	}
	return &chatAdapter{
		name:    cfg.Name,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		extra:   cfg.Extra,
	}, nil
}

func (a *chatAdapter) Name() string { return a.name }

func (a *chatAdapter) Generate(ctx context.Context, prompt string, opts GenerateOpts) (*Result, error) {
	messages := []map[string]string{}
	if opts.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": opts.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	payload := map[string]any{
		"model":    a.model,
		"messages": messages,
	}
	for k, v := range a.extra {
		payload[k] = v
	}
	if opts.Temperature != nil {
		payload["temperature"] = *opts.Temperature
	}
	if opts.MaxTokens > 0 {
		payload["max_tokens"] = opts.MaxTokens
	}
	if len(opts.Stop) > 0 {
		payload["stop"] = opts.Stop
	}

	start := time.Now()
	body, err := postJSON(ctx, a.baseURL+"/v1/chat/completions", a.apiKey, payload)
	if err != nil {
		return nil, err
	}

	if msg, ok := extract.ErrorPayload(string(body)); ok {
		return nil, fmt.Errorf("%w: %s", ErrServer, msg)
	}
	text := extract.AllTextContent(body)
	if text == "" {
		return nil, fmt.Errorf("%w: response carried no text payload", ErrServer)
	}

	return &Result{
		Text:     text,
		Provider: a.name,
		Model:    a.model,
		Elapsed:  time.Since(start),
	}, nil
}
