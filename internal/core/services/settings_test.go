package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vitae/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/vitae/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, service.GetDefaults(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.data_dir", "/srv/vitae")
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.api_key", "sk-test")
	_ = store.Set("embedding.requests_per_second", int64(3))
	_ = store.Set("embedding.cache_ttl", "30m")
	_ = store.Set("llm.provider", "ollama")
	_ = store.Set("recommend.top_k", int64(4))

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, "/srv/vitae", settings.Storage.DataDir)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
	assert.InDelta(t, 3.0, settings.Embedding.RequestsPerSecond, 1e-9)
	assert.Equal(t, 30*time.Minute, settings.Embedding.CacheTTL)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Equal(t, 4, settings.Recommend.TopK)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "invalid_provider")
	_ = store.Set("llm.provider", "local")
	_ = store.Set("embedding.cache_ttl", "soon")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Embedding.CacheTTL, settings.Embedding.CacheTTL)
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("embedding.provider", "OpenAI"))
	require.NoError(t, service.Set("embedding.dimensions", "256"))
	require.NoError(t, service.Set("embedding.requests_per_second", "0.5"))
	require.NoError(t, service.Set("embedding.cache_ttl", "90m"))
	require.NoError(t, service.Set("llm.model", " gpt-4o "))
	require.NoError(t, service.Set("recommend.top_k", "3"))

	val, ok := store.Get("embedding.provider")
	require.True(t, ok)
	assert.Equal(t, "openai", val)
	val, _ = store.Get("embedding.dimensions")
	assert.Equal(t, int64(256), val)
	val, _ = store.Get("embedding.cache_ttl")
	assert.Equal(t, "1h30m0s", val)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 256, settings.Embedding.Dimensions)
	assert.InDelta(t, 0.5, settings.Embedding.RequestsPerSecond, 1e-9)
	assert.Equal(t, 90*time.Minute, settings.Embedding.CacheTTL)
	assert.Equal(t, "gpt-4o", settings.LLM.Model)
	assert.Equal(t, 3, settings.Recommend.TopK)
}

func TestSettingsService_Set_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key   string
		value string
	}{
		{"search.mode", "hybrid"},
		{"embedding.provider", "anthropic"},
		{"llm.provider", "local"},
		{"recommend.top_k", "-1"},
		{"recommend.top_k", "three"},
		{"embedding.requests_per_second", "fast"},
		{"embedding.cache_ttl", "-5m"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "embedding.provider")
	assert.Contains(t, keys, "recommend.top_k")
	assert.Contains(t, keys, "storage.snapshot_path")
}
