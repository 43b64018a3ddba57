package driven

import (
	"context"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

// SyncRunStore keeps a history of sync run outcomes for inspection.
type SyncRunStore interface {
	// Record appends a finished run to the history.
	// Implementations assign the run an identifier when none is set.
	Record(ctx context.Context, run domain.SyncRun) error

	// Recent returns up to limit runs, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.SyncRun, error)
}
