package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func init() {
	Register("anthropic", newAnthropic)
}

const (
	// defaultAnthropicModel is used when no model override is configured.
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"

	defaultAnthropicMaxTokens = 4096
)

// anthropicAdapter implements Adapter using the official Anthropic SDK.
type anthropicAdapter struct {
	name   string
	client anthropic.Client
	model  string
}

var _ Adapter = (*anthropicAdapter)(nil)

func newAnthropic(cfg Config) (Adapter, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("provider %q: %w: ANTHROPIC_API_KEY not set and no api_key configured", cfg.Name, ErrAuth)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	return &anthropicAdapter{
		name:   cfg.Name,
		client: anthropic.NewClient(clientOpts...),
		model:  model,
	}, nil
}

func (a *anthropicAdapter) Name() string { return a.name }

func (a *anthropicAdapter) Generate(ctx context.Context, prompt string, opts GenerateOpts) (*Result, error) {
	maxTokens := int64(defaultAnthropicMaxTokens)
	if opts.MaxTokens > 0 {
		maxTokens = int64(opts.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if opts.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: opts.SystemPrompt}}
	}
	if opts.Temperature != nil {
		params.Temperature = anthropic.Float(*opts.Temperature)
	}

	start := time.Now()
	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.StatusCode, apiErr.Error())
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	var content string
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += variant.Text
		}
	}

	return &Result{
		Text:     content,
		Provider: a.name,
		Model:    string(msg.Model),
		Elapsed:  time.Since(start),
		Metadata: map[string]string{
			"input_tokens":  fmt.Sprint(msg.Usage.InputTokens),
			"output_tokens": fmt.Sprint(msg.Usage.OutputTokens),
		},
	}, nil
}
