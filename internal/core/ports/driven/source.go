package driven

import (
	"context"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

// PageRequest describes one page fetch against the remote library.
type PageRequest struct {
	// Offset is the position-based cursor: how many articles to skip.
	// It advances by Limit on every fetch, whether or not the previous
	// page came back full.
	Offset int

	// Limit is the requested page size.
	Limit int

	// UpdatedAfter restricts results to articles updated at or after
	// this RFC 3339 instant. Empty fetches everything.
	UpdatedAfter string

	// Query is the remote search expression. Empty means no filter.
	Query string
}

// Page is one page of articles from the remote library.
type Page struct {
	// Articles are the page's articles, in remote order.
	Articles []domain.Article

	// HasNextPage reports whether another page follows this one.
	HasNextPage bool
}

// ArticleSource fetches saved articles from the remote library.
// The sync engine drives it page by page; transport, authentication
// and rate limiting are the implementation's concern.
type ArticleSource interface {
	// FetchPage fetches a single page of articles.
	FetchPage(ctx context.Context, req PageRequest) (*Page, error)

	// Close releases resources.
	Close() error
}

// SourceFactory creates article sources from account settings.
type SourceFactory interface {
	// Create builds an ArticleSource for the given account.
	Create(ctx context.Context, api domain.APISettings) (ArticleSource, error)
}
