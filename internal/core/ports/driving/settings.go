package driving

import "github.com/custodia-labs/legalchunk/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Set stores a single setting by its dotted key.
	Set(key string, value string) error

	// Keys lists every known setting key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
