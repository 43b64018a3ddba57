package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
)

// frontendBaseURL is where article and highlight permalinks point.
const frontendBaseURL = "https://omnivore.app/me/"

// highlightsHeading opens the highlights section of a rendered article.
const highlightsHeading = "## Highlights"

// RenderOptions carries the templates and formatting for one render.
type RenderOptions struct {
	// ArticleTemplate is rendered once with the article context.
	ArticleTemplate string

	// HighlightTemplate is rendered once per highlight.
	HighlightTemplate string

	// DateFormat is the Go reference layout for date values.
	DateFormat string
}

// DocumentRenderer assembles the per-article output document.
// It is deterministic: the same article, highlights and options always
// produce the same document.
type DocumentRenderer struct {
	engine driven.TemplateEngine
}

// NewDocumentRenderer creates a new document renderer.
func NewDocumentRenderer(engine driven.TemplateEngine) *DocumentRenderer {
	return &DocumentRenderer{engine: engine}
}

// Render produces the full document for an article: the rendered
// article body, then - when there are highlights - a highlights
// section with one rendered fragment per highlight.
//
// Trailing newlines are trimmed from the body and each fragment so the
// section joins are exactly one blank line regardless of how the
// templates end.
func (r *DocumentRenderer) Render(
	article domain.Article,
	highlights []domain.Highlight,
	opts RenderOptions,
) (string, error) {
	body, err := r.engine.Render(opts.ArticleTemplate, articleContext(article, opts.DateFormat))
	if err != nil {
		return "", fmt.Errorf("render article: %w", err)
	}

	doc := strings.TrimRight(body, "\n")
	if len(highlights) == 0 {
		return doc, nil
	}

	fragments := make([]string, 0, len(highlights))
	for _, highlight := range highlights {
		fragment, err := r.engine.Render(opts.HighlightTemplate, highlightContext(article, highlight, opts.DateFormat))
		if err != nil {
			return "", fmt.Errorf("render highlight %s: %w", highlight.ID, err)
		}
		fragments = append(fragments, strings.TrimRight(fragment, "\n"))
	}

	return doc + "\n\n" + highlightsHeading + "\n\n" + strings.Join(fragments, "\n\n"), nil
}

// articleContext projects an article into template values.
// Optional values (author) are omitted entirely when absent so template
// sections guarding them do not render.
func articleContext(article domain.Article, dateFormat string) map[string]any {
	labels := make([]map[string]string, 0, len(article.Labels))
	for _, label := range article.Labels {
		labels = append(labels, map[string]string{"name": sanitiseLabel(label.Name)})
	}

	ctx := map[string]any{
		"title":       article.Title,
		"omnivoreURL": frontendBaseURL + article.Slug,
		"siteName":    article.DisplaySiteName(),
		"originalURL": article.OriginalURL,
		"labels":      labels,
		"dateSaved":   article.SavedAt.Format(dateFormat),
	}
	if article.Author != "" {
		ctx["author"] = article.Author
	}
	return ctx
}

// highlightContext projects a highlight into template values.
func highlightContext(article domain.Article, highlight domain.Highlight, dateFormat string) map[string]any {
	ctx := map[string]any{
		"text":            quoteText(highlight.Quote),
		"highlightURL":    frontendBaseURL + article.Slug + "#" + highlight.ID,
		"dateHighlighted": highlight.UpdatedAt.Format(dateFormat),
	}
	if highlight.Note != "" {
		ctx["note"] = highlight.Note
	}
	return ctx
}

// sanitiseLabel makes a label name usable as a tag: the first space
// becomes an underscore.
func sanitiseLabel(name string) string {
	return strings.Replace(name, " ", "_", 1)
}

// quoteText keeps multi-line quotes inside a block quote: every
// embedded newline gets a "> " continuation prefix.
func quoteText(quote string) string {
	return strings.ReplaceAll(quote, "\n", "\n> ")
}
