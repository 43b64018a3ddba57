package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCredential indicates no API key is configured.
	// Sync refuses to start rather than send unauthenticated requests.
	ErrMissingCredential = errors.New("missing credential")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrRemoteFetch indicates a page fetch against the remote failed.
	// The run aborts on the first such failure and the cursor is left
	// untouched, so the next run retries the same window.
	ErrRemoteFetch = errors.New("remote fetch failed")
)
