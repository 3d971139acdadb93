// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/vitae/internal/adapters/driven/embedding/cache"
	localembed "github.com/custodia-labs/vitae/internal/adapters/driven/embedding/local"
	ollamaembed "github.com/custodia-labs/vitae/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/vitae/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/vitae/internal/adapters/driven/embedding/ratelimit"
	ollamallm "github.com/custodia-labs/vitae/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/vitae/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Services holds the AI services built from settings.
type Services struct {
	Embedding driven.EmbeddingService
	Generator driven.TextGenerator // Nil when text generation is not configured.
	Warnings  []string             // Non-fatal issues, e.g. an unreachable generator.
}

// Close releases all resources held by the services.
func (s *Services) Close() {
	if s.Embedding != nil {
		s.Embedding.Close()
	}
	if s.Generator != nil {
		s.Generator.Close()
	}
}

// NewServices builds the embedding service and, when configured, the text
// generator. An embedding service that cannot be built is fatal. A generator
// that cannot be built only adds a warning, since tailoring is optional.
func NewServices(settings domain.AppSettings) (*Services, error) {
	embedder, err := CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	result := &Services{Embedding: embedder}
	if embedder == nil {
		result.Warnings = append(result.Warnings, "embedding provider not configured, documents will be stored without embeddings")
	}

	generator, err := CreateTextGenerator(&settings.LLM)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("text generation disabled: %v", err))
	} else {
		result.Generator = generator
	}
	return result, nil
}

// CreateEmbeddingService creates the embedding service for the configured
// provider, rate limited and cached as the settings ask.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.EmbeddingService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderLocal:
		svc = createLocalEmbedding(settings)

	case domain.AIProviderOllama:
		svc = createOllamaEmbedding(settings)

	case domain.AIProviderOpenAI:
		svc, err = createOpenAIEmbedding(settings)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	if settings.Provider.IsRemote() {
		svc = ratelimit.Wrap(svc, settings.RequestsPerSecond)
	}
	return cache.Wrap(svc, settings.CacheSize, settings.CacheTTL), nil
}

// CreateTextGenerator creates the text generator for the configured provider.
// Returns nil if the provider is not configured.
func CreateTextGenerator(settings *domain.LLMSettings) (driven.TextGenerator, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaGenerator(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIGenerator(settings)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// createLocalEmbedding creates the offline hashing embedder.
func createLocalEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	return localembed.NewEmbeddingService(localembed.Config{
		Dimensions: dimensionsFor(settings),
	})
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := dimensionsFor(settings)
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: settings.Dimensions,
	})
}

// createOllamaGenerator creates an Ollama text generator.
func createOllamaGenerator(settings *domain.LLMSettings) driven.TextGenerator {
	return ollamallm.NewTextGenerator(ollamallm.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAIGenerator creates an OpenAI text generator.
func createOpenAIGenerator(settings *domain.LLMSettings) (driven.TextGenerator, error) {
	return openaillm.NewTextGenerator(openaillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// dimensionsFor returns the explicit dimensions or the known size of the model.
func dimensionsFor(settings *domain.EmbeddingSettings) int {
	if settings.Dimensions > 0 {
		return settings.Dimensions
	}
	return domain.EmbeddingDimensions()[settings.Model]
}

// ping checks connectivity within pingTimeout.
func ping(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return fn(ctx)
}
