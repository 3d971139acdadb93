package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/vitae/internal/core/domain"
	"github.com/custodia-labs/vitae/internal/core/ports/driven"
	"github.com/custodia-labs/vitae/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDataDir         = "storage.data_dir"
	keySnapshotPath    = "storage.snapshot_path"
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedDimensions = "embedding.dimensions"
	keyEmbedCacheSize  = "embedding.cache_size"
	keyEmbedCacheTTL   = "embedding.cache_ttl"
	keyEmbedRPS        = "embedding.requests_per_second"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyTopK            = "recommend.top_k"
)

// keyKind says how a setting value is parsed.
type keyKind int

const (
	kindString keyKind = iota
	kindEmbeddingProvider
	kindLLMProvider
	kindCount
	kindRate
	kindDuration
)

var settingKeys = map[string]keyKind{
	keyDataDir:         kindString,
	keySnapshotPath:    kindString,
	keyEmbedProvider:   kindEmbeddingProvider,
	keyEmbedModel:      kindString,
	keyEmbedBaseURL:    kindString,
	keyEmbedAPIKey:     kindString,
	keyEmbedDimensions: kindCount,
	keyEmbedCacheSize:  kindCount,
	keyEmbedCacheTTL:   kindDuration,
	keyEmbedRPS:        kindRate,
	keyLLMProvider:     kindLLMProvider,
	keyLLMModel:        kindString,
	keyLLMBaseURL:      kindString,
	keyLLMAPIKey:       kindString,
	keyTopK:            kindCount,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to the defaults. A model left empty follows the provider.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	embedProvider := s.getProvider(keyEmbedProvider, domain.AllEmbeddingProviders(), defaults.Embedding.Provider)
	llmProvider := s.getProvider(keyLLMProvider, domain.AllLLMProviders(), defaults.LLM.Provider)

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			DataDir:      s.configStore.GetString(keyDataDir),
			SnapshotPath: s.configStore.GetString(keySnapshotPath),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:          embedProvider,
			Model:             s.getString(keyEmbedModel, domain.DefaultEmbeddingModels()[embedProvider]),
			BaseURL:           s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.configStore.GetString(keyEmbedAPIKey),
			Dimensions:        s.configStore.GetInt(keyEmbedDimensions),
			CacheSize:         s.getInt(keyEmbedCacheSize, defaults.Embedding.CacheSize),
			CacheTTL:          s.getDuration(keyEmbedCacheTTL, defaults.Embedding.CacheTTL),
			RequestsPerSecond: s.configStore.GetFloat(keyEmbedRPS),
		},
		LLM: domain.LLMSettings{
			Provider: llmProvider,
			Model:    s.getString(keyLLMModel, domain.DefaultLLMModels()[llmProvider]),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Recommend: domain.RecommendSettings{
			TopK: s.getInt(keyTopK, defaults.Recommend.TopK),
		},
	}

	return settings, nil
}

// Set parses and stores a single setting by key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (known: %s)", domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}
	value = strings.TrimSpace(value)

	var parsed any
	switch kind {
	case kindEmbeddingProvider:
		provider, err := parseProvider(value, domain.AllEmbeddingProviders())
		if err != nil {
			return err
		}
		parsed = provider.String()

	case kindLLMProvider:
		provider, err := parseProvider(value, domain.AllLLMProviders())
		if err != nil {
			return err
		}
		parsed = provider.String()

	case kindCount:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = int64(n)

	case kindRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = f

	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s must be a duration such as 30m or 1h, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = d.String()

	default:
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every recognised setting key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for key := range settingKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(key string, allowed []domain.AIProvider, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider, err := parseProvider(val, allowed)
	if err != nil {
		return defaultVal
	}
	return provider
}

func parseProvider(value string, allowed []domain.AIProvider) (domain.AIProvider, error) {
	provider := domain.AIProvider(strings.ToLower(value))
	for _, p := range allowed {
		if p == provider {
			return provider, nil
		}
	}
	names := make([]string, len(allowed))
	for i, p := range allowed {
		names[i] = p.String()
	}
	return "", fmt.Errorf("%w: provider %q (choose one of %s)", domain.ErrInvalidInput, value, strings.Join(names, ", "))
}
