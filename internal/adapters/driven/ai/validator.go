package ai

import (
	"context"

	"github.com/custodia-labs/vitae/internal/core/domain"
)

// ConfigValidator checks AI provider configurations by building the
// service and pinging it.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding validates an embedding configuration by pinging the provider.
// An unconfigured provider is not an error.
func (v *ConfigValidator) ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(config)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()
	return ping(ctx, svc.Ping)
}

// ValidateLLM validates a text generation configuration by pinging the provider.
// An unconfigured provider is not an error.
func (v *ConfigValidator) ValidateLLM(ctx context.Context, config *domain.LLMSettings) error {
	gen, err := CreateTextGenerator(config)
	if err != nil || gen == nil {
		return err
	}
	defer gen.Close()
	return ping(ctx, gen.Ping)
}
