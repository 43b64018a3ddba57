package services

import (
	"fmt"
	"net/url"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIKey        = "api.key"
	keyAPIEndpoint   = "api.endpoint"
	keySyncFolder    = "sync.folder"
	keySyncFilter    = "sync.filter"
	keySyncQuery     = "sync.custom_query"
	keySyncOrder     = "sync.highlight_order"
	keyTmplArticle   = "template.article"
	keyTmplHighlight = "template.highlight"
	keyRenderDateFmt = "render.date_format"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Unset keys fall back to defaults, so a fresh install works without
// any configuration beyond the API key.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			Key:      s.configStore.GetString(keyAPIKey),
			Endpoint: s.getString(keyAPIEndpoint, defaults.API.Endpoint),
		},
		Sync: domain.SyncSettings{
			Folder:         s.getString(keySyncFolder, defaults.Sync.Folder),
			Filter:         s.getFilterMode(defaults.Sync.Filter),
			CustomQuery:    s.configStore.GetString(keySyncQuery), // No default - only advanced mode uses it
			HighlightOrder: s.getHighlightOrder(defaults.Sync.HighlightOrder),
		},
		Template: domain.TemplateSettings{
			Article:   s.getString(keyTmplArticle, defaults.Template.Article),
			Highlight: s.getString(keyTmplHighlight, defaults.Template.Highlight),
		},
		Render: domain.RenderSettings{
			DateFormat: s.getString(keyRenderDateFmt, defaults.Render.DateFormat),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save API settings - never write an empty key over a stored one
	if settings.API.Key != "" {
		if err := s.configStore.Set(keyAPIKey, settings.API.Key); err != nil {
			return fmt.Errorf("save api key: %w", err)
		}
	}
	if err := s.configStore.Set(keyAPIEndpoint, settings.API.Endpoint); err != nil {
		return fmt.Errorf("save api endpoint: %w", err)
	}

	// Save sync settings
	if err := s.configStore.Set(keySyncFolder, settings.Sync.Folder); err != nil {
		return fmt.Errorf("save sync folder: %w", err)
	}
	if err := s.configStore.Set(keySyncFilter, settings.Sync.Filter.String()); err != nil {
		return fmt.Errorf("save sync filter: %w", err)
	}
	if err := s.configStore.Set(keySyncQuery, settings.Sync.CustomQuery); err != nil {
		return fmt.Errorf("save sync custom_query: %w", err)
	}
	if err := s.configStore.Set(keySyncOrder, settings.Sync.HighlightOrder.String()); err != nil {
		return fmt.Errorf("save sync highlight_order: %w", err)
	}

	// Save templates
	if err := s.configStore.Set(keyTmplArticle, settings.Template.Article); err != nil {
		return fmt.Errorf("save article template: %w", err)
	}
	if err := s.configStore.Set(keyTmplHighlight, settings.Template.Highlight); err != nil {
		return fmt.Errorf("save highlight template: %w", err)
	}

	// Save render settings
	if err := s.configStore.Set(keyRenderDateFmt, settings.Render.DateFormat); err != nil {
		return fmt.Errorf("save date format: %w", err)
	}

	return nil
}

// SetAPIKey updates the remote API key.
func (s *SettingsService) SetAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("api key must not be empty")
	}
	if err := s.configStore.Set(keyAPIKey, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

// SetEndpoint updates the remote endpoint URL.
func (s *SettingsService) SetEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid endpoint: %s", endpoint)
	}
	if err := s.configStore.Set(keyAPIEndpoint, endpoint); err != nil {
		return fmt.Errorf("save api endpoint: %w", err)
	}
	return nil
}

// SetFolder updates the vault folder articles are written to.
func (s *SettingsService) SetFolder(folder string) error {
	if folder == "" {
		return fmt.Errorf("folder must not be empty")
	}
	if err := s.configStore.Set(keySyncFolder, folder); err != nil {
		return fmt.Errorf("save sync folder: %w", err)
	}
	return nil
}

// SetFilter updates the filter mode and, for advanced mode, the custom
// search query.
func (s *SettingsService) SetFilter(mode domain.FilterMode, custom string) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid filter mode: %s", mode)
	}
	if mode == domain.FilterModeAdvanced && custom == "" {
		return fmt.Errorf("advanced filter requires a custom query")
	}

	if err := s.configStore.Set(keySyncFilter, mode.String()); err != nil {
		return fmt.Errorf("save sync filter: %w", err)
	}
	if mode == domain.FilterModeAdvanced {
		if err := s.configStore.Set(keySyncQuery, custom); err != nil {
			return fmt.Errorf("save sync custom_query: %w", err)
		}
	}
	return nil
}

// SetHighlightOrder updates the highlight ordering.
func (s *SettingsService) SetHighlightOrder(order domain.HighlightOrder) error {
	if !order.IsValid() {
		return fmt.Errorf("invalid highlight order: %s", order)
	}
	if err := s.configStore.Set(keySyncOrder, order.String()); err != nil {
		return fmt.Errorf("save sync highlight_order: %w", err)
	}
	return nil
}

// SetArticleTemplate updates the per-article template.
func (s *SettingsService) SetArticleTemplate(template string) error {
	if template == "" {
		return fmt.Errorf("article template must not be empty")
	}
	if err := s.configStore.Set(keyTmplArticle, template); err != nil {
		return fmt.Errorf("save article template: %w", err)
	}
	return nil
}

// SetHighlightTemplate updates the per-highlight template.
func (s *SettingsService) SetHighlightTemplate(template string) error {
	if template == "" {
		return fmt.Errorf("highlight template must not be empty")
	}
	if err := s.configStore.Set(keyTmplHighlight, template); err != nil {
		return fmt.Errorf("save highlight template: %w", err)
	}
	return nil
}

// SetDateFormat updates the date layout used in templates.
func (s *SettingsService) SetDateFormat(layout string) error {
	if layout == "" {
		return fmt.Errorf("date format must not be empty")
	}
	if err := s.configStore.Set(keyRenderDateFmt, layout); err != nil {
		return fmt.Errorf("save date format: %w", err)
	}
	return nil
}

// Validate checks if current settings are coherent.
// The API key may legitimately be empty here - sync refuses to start
// without it, but every other command still works.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if u, err := url.Parse(settings.API.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid endpoint: %s", settings.API.Endpoint)
	}
	if !settings.Sync.Filter.IsValid() {
		return fmt.Errorf("invalid filter mode: %s", settings.Sync.Filter)
	}
	if settings.Sync.Filter == domain.FilterModeAdvanced && settings.Sync.CustomQuery == "" {
		return fmt.Errorf("advanced filter requires a custom query")
	}
	if !settings.Sync.HighlightOrder.IsValid() {
		return fmt.Errorf("invalid highlight order: %s", settings.Sync.HighlightOrder)
	}

	return nil
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

func (s *SettingsService) getFilterMode(defaultVal domain.FilterMode) domain.FilterMode {
	val := s.configStore.GetString(keySyncFilter)
	if val == "" {
		return defaultVal
	}
	mode := domain.FilterMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getHighlightOrder(defaultVal domain.HighlightOrder) domain.HighlightOrder {
	val := s.configStore.GetString(keySyncOrder)
	if val == "" {
		return defaultVal
	}
	order := domain.HighlightOrder(val)
	if !order.IsValid() {
		return defaultVal
	}
	return order
}
