package domain

import "time"

// SyncState is the persisted cursor and guard for incremental sync.
// It survives restarts; the engine loads it at the start of a run and
// writes it back as the run progresses.
type SyncState struct {
	// Cursor is the instant the last completed run started, as an
	// RFC 3339 string. Empty means no run has completed yet and the
	// next run fetches everything.
	Cursor string

	// InProgress marks a run as active. It is advisory: it stops a
	// second run from starting, within or across invocations, and is
	// cleared when the run finishes.
	InProgress bool
}

// SyncRun records the outcome of a single sync run.
// Runs are kept for inspection only; the engine never reads them back.
type SyncRun struct {
	// ID is the unique identifier for the run.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run finished, successfully or not.
	FinishedAt time.Time

	// ArticlesWritten counts articles materialised to the vault.
	ArticlesWritten int

	// Failures counts articles skipped after render or write errors.
	Failures int

	// Error holds the run-fatal error message. Empty on success.
	Error string
}
