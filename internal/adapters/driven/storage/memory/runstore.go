package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
)

// Ensure SyncRunStore implements the interface.
var _ driven.SyncRunStore = (*SyncRunStore)(nil)

// SyncRunStore is an in-memory implementation of driven.SyncRunStore.
type SyncRunStore struct {
	mu   sync.RWMutex
	runs []domain.SyncRun
}

// NewSyncRunStore creates a new in-memory sync run store.
func NewSyncRunStore() *SyncRunStore {
	return &SyncRunStore{}
}

// Record appends a finished run to the history.
func (s *SyncRunStore) Record(_ context.Context, run domain.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	s.runs = append(s.runs, run)
	return nil
}

// Recent returns up to limit runs, most recent first.
func (s *SyncRunStore) Recent(_ context.Context, limit int) ([]domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.runs)
	if limit <= 0 || limit > n {
		limit = n
	}

	runs := make([]domain.SyncRun, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		runs = append(runs, s.runs[i])
	}
	return runs, nil
}
