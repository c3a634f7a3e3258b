// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spyq/spyq/internal/extract"
)

func init() {
	Register("ollama", newOllama)
}

const defaultOllamaURL = "http://localhost:11434"

// ollamaAdapter speaks the completion-style wire shape: a single prompt
// with generation options, non-streaming.
type ollamaAdapter struct {
	name    string
	baseURL string
	model   string
	extra   map[string]any
}

var _ Adapter = (*ollamaAdapter)(nil)

func newOllama(cfg Config) (Adapter, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %q: model is required", cfg.Name)
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultOllamaURL
	}
	return &ollamaAdapter{
		name:    cfg.Name,
		baseURL: base,
		model:   cfg.Model,
		extra:   cfg.Extra,
	}, nil
}

func (a *ollamaAdapter) Name() string { return a.name }

// Generate issues one completion call. The HTTP client lives for the scope
// of this attempt only; idle connections are released on exit even on
// error or timeout.
func (a *ollamaAdapter) Generate(ctx context.Context, prompt string, opts GenerateOpts) (*Result, error) {
	options := map[string]any{}
	for k, v := range a.extra {
		options[k] = v
	}
	if opts.Temperature != nil {
		options["temperature"] = *opts.Temperature
	}
	if opts.MaxTokens > 0 {
		options["num_predict"] = opts.MaxTokens
	}
	if len(opts.Stop) > 0 {
		options["stop"] = opts.Stop
	}

	payload := map[string]any{
		"model":   a.model,
		"prompt":  prompt,
		"stream":  false,
		"options": options,
	}
	if opts.SystemPrompt != "" {
		payload["system"] = opts.SystemPrompt
	}

	start := time.Now()
	body, err := postJSON(ctx, a.baseURL+"/api/generate", "", payload)
	if err != nil {
		return nil, err
	}

	if msg, ok := extract.ErrorPayload(string(body)); ok {
		return nil, fmt.Errorf("%w: %s", ErrServer, msg)
	}
	text := extract.AllTextContent(body)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response body", ErrServer)
	}

	return &Result{
		Text:     text,
		Provider: a.name,
		Model:    a.model,
		Elapsed:  time.Since(start),
	}, nil
}

// postJSON sends one JSON request and returns the response body. Transport
// failures and HTTP error statuses are translated to the package's error
// taxonomy; the raw cause stays wrapped for logs.
func postJSON(ctx context.Context, url, apiKey string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	client := &http.Client{}
	defer client.CloseIdleConnections()

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrConnection, err)
	}

	if resp.StatusCode != http.StatusOK {
		detail := string(body)
		if msg, ok := extract.ErrorPayload(detail); ok {
			detail = msg
		}
		return nil, classifyStatus(resp.StatusCode, detail)
	}
	return body, nil
}
