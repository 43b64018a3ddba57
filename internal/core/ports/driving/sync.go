package driving

import (
	"context"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

// SyncService coordinates article synchronisation with the remote library.
type SyncService interface {
	// Sync runs a single sync pass: fetch changed articles page by
	// page, render each one and write it into the vault.
	Sync(ctx context.Context) error

	// Status returns progress of the current sync, or an idle status
	// when none is running.
	Status(ctx context.Context) (*SyncStatus, error)

	// State returns the persisted sync state.
	State(ctx context.Context) (*domain.SyncState, error)

	// RecentRuns returns up to limit past runs, most recent first.
	RecentRuns(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// Reset clears a stale in-progress guard, e.g. after a crash.
	// With clearCursor it also clears the cursor so the next run
	// fetches everything again.
	Reset(ctx context.Context, clearCursor bool) error
}

// SyncStatus represents the current state of a sync operation.
type SyncStatus struct {
	// Running indicates if sync is currently in progress.
	Running bool

	// PagesFetched is the count of pages fetched from the remote.
	PagesFetched int

	// ArticlesWritten is the count of articles written to the vault.
	ArticlesWritten int

	// Failures is the count of articles skipped after errors.
	Failures int
}
