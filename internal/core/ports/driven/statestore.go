package driven

import (
	"context"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

// SyncStateStore persists the incremental-sync cursor and guard.
type SyncStateStore interface {
	// Save stores or replaces the sync state.
	Save(ctx context.Context, state domain.SyncState) error

	// Get retrieves the sync state.
	// Returns domain.ErrNotFound when no state has been saved yet.
	Get(ctx context.Context) (*domain.SyncState, error)
}
