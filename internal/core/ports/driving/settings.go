package driving

import "github.com/custodia-labs/titlescan/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Set parses value for key, validates the result and persists it.
	Set(key, value string) error

	// Values lists every known key with its effective and default value.
	Values() []domain.SettingValue

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
