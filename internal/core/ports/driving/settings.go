package driving

import "github.com/custodia-labs/vitae/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Set parses and stores a single setting by key.
	Set(key, value string) error

	// Keys returns every recognised setting key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
