package omnivore

import (
	"context"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.SourceFactory = (*Factory)(nil)

// Factory builds API clients from runtime settings. Settings can change
// between runs, so each sync gets a client built from the settings in
// force when it starts.
type Factory struct{}

// NewFactory creates a new source factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create builds an article source for the given API settings.
func (f *Factory) Create(_ context.Context, api domain.APISettings) (driven.ArticleSource, error) {
	if api.Key == "" {
		return nil, domain.ErrMissingCredential
	}
	return NewArticleSource(Config{
		Endpoint: api.Endpoint,
		Key:      api.Key,
	}), nil
}
