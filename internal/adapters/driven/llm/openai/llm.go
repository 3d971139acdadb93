// Package openai provides a text generator adapter using the OpenAI Chat Completions API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/custodia-labs/vitae/internal/adapters/driven/llm"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
)

// Ensure TextGenerator implements the interface.
var _ driven.TextGenerator = (*TextGenerator)(nil)

// Default configuration values.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTimeout     = 120 * time.Second
	DefaultMaxRetries  = 2
	defaultTemperature = 0.4
)

// Config holds configuration for the OpenAI text generator.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout bounds each HTTP request (default: 120s).
	Timeout time.Duration

	// MaxRetries is how often the client retries transient failures.
	// Negative disables retries; zero means DefaultMaxRetries.
	MaxRetries int
}

// TextGenerator writes documents using OpenAI chat completions.
type TextGenerator struct {
	client *openai.Client
	model  string
}

// NewTextGenerator creates a new OpenAI text generator.
func NewTextGenerator(cfg Config) (*TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	retries := cfg.MaxRetries
	switch {
	case retries == 0:
		retries = DefaultMaxRetries
	case retries < 0:
		retries = 0
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		option.WithMaxRetries(retries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	return &TextGenerator{
		client: &client,
		model:  cfg.Model,
	}, nil
}

// Generate writes a cover letter for the job description from the
// requirement text.
func (g *TextGenerator) Generate(ctx context.Context, jobDescription, requirements string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(g.model),
		Messages:    buildMessages(llm.SystemPrompt, llm.UserPrompt(jobDescription, requirements)),
		Temperature: openai.Float(defaultTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return text, nil
}

// ModelName returns the name of the chat model being used.
func (g *TextGenerator) ModelName() string {
	return g.model
}

// Ping validates the API key by listing models.
func (g *TextGenerator) Ping(ctx context.Context) error {
	if _, err := g.client.Models.List(ctx); err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (g *TextGenerator) Close() error {
	return nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}
