package domain

import (
	"net/url"
	"strings"
	"time"
)

// PageKind classifies the kind of page an article was captured from.
// It decides which positional information is meaningful when ordering
// highlights by location.
type PageKind string

// Available page kinds.
const (
	// PageKindWeb is a regular web page or article.
	PageKindWeb PageKind = "web"

	// PageKindFile is an uploaded file such as a PDF or EPUB.
	PageKindFile PageKind = "file"

	// PageKindOther is any capture the remote does not classify further.
	PageKindOther PageKind = "other"
)

// IsValid returns true if the page kind is recognised.
func (k PageKind) IsValid() bool {
	switch k {
	case PageKindWeb, PageKindFile, PageKindOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k PageKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k PageKind) Description() string {
	switch k {
	case PageKindWeb:
		return "Web page"
	case PageKindFile:
		return "Uploaded file (PDF, EPUB)"
	case PageKindOther:
		return "Other capture"
	default:
		return unknownDescription
	}
}

// Article represents a saved article fetched from the remote library.
// It is the canonical representation the sync engine renders and writes.
type Article struct {
	// ID is the remote identifier for the article.
	ID string

	// Slug is the unique, filesystem-safe storage key. The article is
	// written to "<folder>/<slug>.md" and its permalink is derived
	// from it.
	Slug string

	// Title is the human-readable title.
	Title string

	// Author is the article author. Empty when the remote has none.
	Author string

	// OriginalURL is the address the article was saved from.
	OriginalURL string

	// SiteName is the publishing site's display name. Empty when the
	// remote has none; DisplaySiteName falls back to the URL host.
	SiteName string

	// SavedAt is when the article was saved to the library.
	SavedAt time.Time

	// PageKind classifies the capture (web page, uploaded file, other).
	PageKind PageKind

	// Labels are the user-assigned tags, in remote order.
	Labels []Label

	// Highlights are the highlighted passages, in arrival order.
	Highlights []Highlight
}

// DisplaySiteName returns the best available site name for display.
// When SiteName is unset it falls back to the host of OriginalURL with
// a leading "www." stripped, and returns "" when the URL is unusable.
func (a Article) DisplaySiteName() string {
	if a.SiteName != "" {
		return a.SiteName
	}
	u, err := url.Parse(a.OriginalURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Label is a user-assigned tag on an article.
type Label struct {
	// Name is the label text as entered by the user.
	Name string
}

// Highlight is a highlighted passage within an article.
type Highlight struct {
	// ID is the remote identifier for the highlight.
	ID string

	// Quote is the highlighted text.
	Quote string

	// Note is an optional annotation attached by the reader.
	Note string

	// UpdatedAt is when the highlight was last modified.
	UpdatedAt time.Time

	// Patch is an opaque positional token produced by the remote.
	// For web captures it encodes where in the page text the
	// highlight starts; decoding it is an adapter concern.
	Patch string

	// FilePosition is the ordinal position within the source file.
	// Only meaningful when the owning article is PageKindFile.
	FilePosition int
}
