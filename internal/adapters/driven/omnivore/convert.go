package omnivore

import (
	"strings"
	"time"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

// wireArticle is the remote article representation. Optional fields are
// pointers because the remote sends explicit nulls.
type wireArticle struct {
	ID                 string          `json:"id"`
	Slug               string          `json:"slug"`
	Title              string          `json:"title"`
	Author             *string         `json:"author"`
	OriginalArticleURL string          `json:"originalArticleUrl"`
	SiteName           *string         `json:"siteName"`
	SavedAt            string          `json:"savedAt"`
	PageType           string          `json:"pageType"`
	Labels             []wireLabel     `json:"labels"`
	Highlights         []wireHighlight `json:"highlights"`
}

type wireLabel struct {
	Name string `json:"name"`
}

type wireHighlight struct {
	ID                   string  `json:"id"`
	Quote                *string `json:"quote"`
	Annotation           *string `json:"annotation"`
	Patch                *string `json:"patch"`
	UpdatedAt            string  `json:"updatedAt"`
	PositionInSourceFile *int    `json:"positionInSourceFile"`
}

// toDomainArticle maps a wire article to the domain model.
func toDomainArticle(w wireArticle) domain.Article {
	labels := make([]domain.Label, 0, len(w.Labels))
	for _, label := range w.Labels {
		labels = append(labels, domain.Label{Name: label.Name})
	}

	highlights := make([]domain.Highlight, 0, len(w.Highlights))
	for _, h := range w.Highlights {
		highlights = append(highlights, domain.Highlight{
			ID:           h.ID,
			Quote:        deref(h.Quote),
			Note:         deref(h.Annotation),
			UpdatedAt:    parseTime(h.UpdatedAt),
			Patch:        deref(h.Patch),
			FilePosition: derefInt(h.PositionInSourceFile),
		})
	}

	return domain.Article{
		ID:          w.ID,
		Slug:        w.Slug,
		Title:       w.Title,
		Author:      deref(w.Author),
		OriginalURL: w.OriginalArticleURL,
		SiteName:    deref(w.SiteName),
		SavedAt:     parseTime(w.SavedAt),
		PageKind:    toPageKind(w.PageType),
		Labels:      labels,
		Highlights:  highlights,
	}
}

// toPageKind maps the remote page type to a domain kind. Unknown types
// land on PageKindOther so new remote types never break a sync.
func toPageKind(pageType string) domain.PageKind {
	switch strings.ToUpper(pageType) {
	case "FILE":
		return domain.PageKindFile
	case "ARTICLE", "WEBSITE":
		return domain.PageKindWeb
	default:
		return domain.PageKindOther
	}
}

// parseTime decodes an RFC 3339 timestamp, returning the zero time for
// anything the remote sends that does not parse.
func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
