package domain

const unknownDescription = "Unknown"

// FilterMode selects which articles a sync run requests from the remote.
type FilterMode string

// Available filter modes.
const (
	// FilterModeAll syncs every saved article.
	FilterModeAll FilterMode = "all"

	// FilterModeHighlights syncs only articles that have highlights.
	FilterModeHighlights FilterMode = "highlights"

	// FilterModeAdvanced syncs articles matching a custom search query.
	FilterModeAdvanced FilterMode = "advanced"
)

// IsValid returns true if the filter mode is recognised.
func (m FilterMode) IsValid() bool {
	switch m {
	case FilterModeAll, FilterModeHighlights, FilterModeAdvanced:
		return true
	default:
		return false
	}
}

// Query returns the remote search expression for this mode.
// The custom argument is only consulted in advanced mode.
// Unrecognised modes behave like FilterModeAll.
func (m FilterMode) Query(custom string) string {
	switch m {
	case FilterModeHighlights:
		return "has:highlights"
	case FilterModeAdvanced:
		return custom
	default:
		return ""
	}
}

// String returns the string representation.
func (m FilterMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m FilterMode) Description() string {
	switch m {
	case FilterModeAll:
		return "All (every saved article)"
	case FilterModeHighlights:
		return "Highlights (only articles with highlights)"
	case FilterModeAdvanced:
		return "Advanced (custom search query)"
	default:
		return unknownDescription
	}
}

// HighlightOrder selects how highlights are ordered in rendered output.
type HighlightOrder string

// Available highlight orderings.
const (
	// HighlightOrderUpdateTime keeps highlights in the order the remote
	// returned them, which reflects when they were last updated.
	HighlightOrderUpdateTime HighlightOrder = "update_time"

	// HighlightOrderLocation sorts highlights by their position within
	// the source page.
	HighlightOrderLocation HighlightOrder = "location"
)

// IsValid returns true if the highlight order is recognised.
func (o HighlightOrder) IsValid() bool {
	switch o {
	case HighlightOrderUpdateTime, HighlightOrderLocation:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o HighlightOrder) String() string {
	return string(o)
}

// Description returns a human-readable description of the ordering.
func (o HighlightOrder) Description() string {
	switch o {
	case HighlightOrderUpdateTime:
		return "Update time (as returned by the remote)"
	case HighlightOrderLocation:
		return "Location (position within the page)"
	default:
		return unknownDescription
	}
}

// APISettings holds remote endpoint configuration.
type APISettings struct {
	// Key is the account API key sent with every request.
	Key string

	// Endpoint is the GraphQL endpoint URL.
	Endpoint string
}

// IsConfigured returns true if the remote account is set up.
func (a APISettings) IsConfigured() bool {
	return a.Key != ""
}

// SyncSettings holds sync behaviour configuration.
type SyncSettings struct {
	// Folder is the vault folder articles are written to.
	Folder string

	// Filter selects which articles to request.
	Filter FilterMode

	// CustomQuery is the raw search expression for FilterModeAdvanced.
	CustomQuery string

	// HighlightOrder selects highlight ordering in rendered output.
	HighlightOrder HighlightOrder
}

// TemplateSettings holds the user-editable render templates.
type TemplateSettings struct {
	// Article is the template rendered once per article.
	Article string

	// Highlight is the template rendered once per highlight.
	Highlight string
}

// RenderSettings holds output formatting configuration.
type RenderSettings struct {
	// DateFormat is the Go reference layout used for dates in templates.
	DateFormat string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// API holds remote endpoint settings.
	API APISettings

	// Sync holds sync behaviour settings.
	Sync SyncSettings

	// Template holds the render templates.
	Template TemplateSettings

	// Render holds output formatting settings.
	Render RenderSettings
}

// Default configuration values.
const (
	// DefaultEndpoint is the hosted Omnivore GraphQL endpoint.
	DefaultEndpoint = "https://api-prod.omnivore.app/api/graphql"

	// DefaultFolder is the vault folder synced articles are written to.
	DefaultFolder = "Omnivore"

	// DefaultDateFormat is the layout for dateSaved and dateHighlighted.
	DefaultDateFormat = "2006-01-02 15:04:05"
)

// DefaultArticleTemplate renders the article header block.
// Label names are sanitised before rendering so they work as tags.
const DefaultArticleTemplate = `# {{{title}}}

[Read on Omnivore]({{{omnivoreURL}}})
[Read Original]({{{originalURL}}})

site: {{{siteName}}}
{{#author}}author: {{{author}}}
{{/author}}{{#labels}}tag: #{{{name}}}
{{/labels}}saved: {{{dateSaved}}}`

// DefaultHighlightTemplate renders a single highlight as a block quote
// with a permalink back to the highlight.
const DefaultHighlightTemplate = `> {{{text}}} [⤴️]({{{highlightURL}}})
{{#note}}

{{{note}}}
{{/note}}`

// DefaultAppSettings returns settings with sensible defaults.
// The API key is left empty - users must set it before the first sync.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			Endpoint: DefaultEndpoint,
		},
		Sync: SyncSettings{
			Folder:         DefaultFolder,
			Filter:         FilterModeAll,
			HighlightOrder: HighlightOrderUpdateTime,
		},
		Template: TemplateSettings{
			Article:   DefaultArticleTemplate,
			Highlight: DefaultHighlightTemplate,
		},
		Render: RenderSettings{
			DateFormat: DefaultDateFormat,
		},
	}
}

// AllFilterModes returns all available filter modes.
func AllFilterModes() []FilterMode {
	return []FilterMode{
		FilterModeAll,
		FilterModeHighlights,
		FilterModeAdvanced,
	}
}

// AllHighlightOrders returns all available highlight orderings.
func AllHighlightOrders() []HighlightOrder {
	return []HighlightOrder{
		HighlightOrderUpdateTime,
		HighlightOrderLocation,
	}
}
