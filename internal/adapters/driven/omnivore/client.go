// Package omnivore provides an article source adapter backed by the
// Omnivore GraphQL API.
package omnivore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
)

// Ensure ArticleSource implements the interface.
var _ driven.ArticleSource = (*ArticleSource)(nil)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

// articlesQuery pages through the library. The remote treats after as a
// string-encoded offset, so a short page does not stall pagination.
const articlesQuery = `query Articles($after: String, $first: Int, $updatedAfter: String, $query: String) {
  articles(after: $after, first: $first, updatedAfter: $updatedAfter, query: $query) {
    items {
      id
      slug
      title
      author
      originalArticleUrl
      siteName
      savedAt
      pageType
      labels {
        name
      }
      highlights {
        id
        quote
        annotation
        patch
        updatedAt
        positionInSourceFile
      }
    }
    hasNextPage
  }
}`

// Config holds configuration for the Omnivore API client.
type Config struct {
	// Endpoint is the GraphQL endpoint URL.
	Endpoint string

	// Key is the API key sent on every request.
	Key string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RateLimit overrides the default request budget.
	RateLimit *RateLimitConfig
}

// ArticleSource fetches article pages from the Omnivore API.
type ArticleSource struct {
	client   *http.Client
	endpoint string
	key      string
	limiter  *RateLimiter
}

// graphqlRequest is the GraphQL request envelope.
type graphqlRequest struct {
	Query     string          `json:"query"`
	Variables searchVariables `json:"variables"`
}

// searchVariables parameterises the articles query.
type searchVariables struct {
	After        string `json:"after"`
	First        int    `json:"first"`
	UpdatedAfter string `json:"updatedAfter,omitempty"`
	Query        string `json:"query"`
}

// graphqlResponse is the GraphQL response envelope.
type graphqlResponse struct {
	Data struct {
		Articles struct {
			Items       []wireArticle `json:"items"`
			HasNextPage bool          `json:"hasNextPage"`
		} `json:"articles"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// NewArticleSource creates a new Omnivore API client.
func NewArticleSource(cfg Config) *ArticleSource {
	if cfg.Endpoint == "" {
		cfg.Endpoint = domain.DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	rateCfg := DefaultRateLimit
	if cfg.RateLimit != nil {
		rateCfg = *cfg.RateLimit
	}

	return &ArticleSource{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint: cfg.Endpoint,
		key:      cfg.Key,
		limiter:  NewRateLimiter(rateCfg),
	}
}

// FetchPage retrieves one page of articles.
func (s *ArticleSource) FetchPage(ctx context.Context, req driven.PageRequest) (*driven.Page, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := graphqlRequest{
		Query: articlesQuery,
		Variables: searchVariables{
			After:        strconv.Itoa(req.Offset),
			First:        req.Limit,
			UpdatedAfter: req.UpdatedAfter,
			Query:        req.Query,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.endpoint,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", s.key)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		s.limiter.RecordRateLimitError(retryAfter)
		return nil, fmt.Errorf("%w: too many requests", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("omnivore error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("omnivore error (status %d): %s", resp.StatusCode, string(body))
	}

	var gqlResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("omnivore error: %s", gqlResp.Errors[0].Message)
	}

	articles := make([]domain.Article, 0, len(gqlResp.Data.Articles.Items))
	for _, item := range gqlResp.Data.Articles.Items {
		articles = append(articles, toDomainArticle(item))
	}

	return &driven.Page{
		Articles:    articles,
		HasNextPage: gqlResp.Data.Articles.HasNextPage,
	}, nil
}

// Close releases resources.
func (s *ArticleSource) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
