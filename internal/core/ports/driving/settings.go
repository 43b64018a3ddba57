package driving

import "github.com/custodia-labs/omnisync-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetAPIKey updates the remote API key.
	SetAPIKey(key string) error

	// SetEndpoint updates the remote endpoint URL.
	SetEndpoint(endpoint string) error

	// SetFolder updates the vault folder articles are written to.
	SetFolder(folder string) error

	// SetFilter updates the filter mode and, for advanced mode, the
	// custom search query.
	SetFilter(mode domain.FilterMode, custom string) error

	// SetHighlightOrder updates the highlight ordering.
	SetHighlightOrder(order domain.HighlightOrder) error

	// SetArticleTemplate updates the per-article template.
	SetArticleTemplate(template string) error

	// SetHighlightTemplate updates the per-highlight template.
	SetHighlightTemplate(template string) error

	// SetDateFormat updates the date layout used in templates.
	SetDateFormat(layout string) error

	// Validate checks if current settings are coherent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
