package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create a temporary directory for the test database
	tempDir, err := os.MkdirTemp("", "omnisync-test-*")
	require.NoError(t, err)

	// Create store in temp directory
	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Return cleanup function
	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// recordRuns records n runs with ascending start times, IDs run-0 .. run-{n-1}.
func recordRuns(t *testing.T, store *Store, n int) {
	t.Helper()
	ctx := context.Background()
	runStore := store.SyncRunStore()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		run := domain.SyncRun{
			ID:              fmt.Sprintf("run-%d", i),
			StartedAt:       base.Add(time.Duration(i) * time.Minute),
			FinishedAt:      base.Add(time.Duration(i)*time.Minute + 30*time.Second),
			ArticlesWritten: i,
		}
		require.NoError(t, runStore.Record(ctx, run))
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	// Test with invalid path (should fail to create directory)
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "omnisync-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// Verify database file was created
	dbPath := filepath.Join(tempDir, "state.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	// Verify database connection is working
	err = store.db.Ping()
	assert.NoError(t, err)
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "omnisync-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Create store in a nested directory that doesn't exist yet
	nestedDir := filepath.Join(tempDir, "nested", "path", "to", "db")
	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// Verify all directories were created
	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	// Verify schema_migrations table exists
	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Greater(t, count, 0, "should have at least one migration")

	// Verify all expected tables exist
	tables := []string{
		"sync_state",
		"sync_runs",
	}

	for _, table := range tables {
		var tableExists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&tableExists)
		require.NoError(t, err)
		assert.Equal(t, 1, tableExists, "table %s should exist", table)
	}
}

func TestStore_Close(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.Close()
	assert.NoError(t, err)

	// Verify connection is closed
	err = store.db.Ping()
	assert.Error(t, err)
}

func TestStore_Path(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	path := store.Path()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "state.db")
	assert.FileExists(t, path)
}

func TestStore_InterfaceGetters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.SyncStateStore())
	assert.NotNil(t, store.SyncRunStore())
}

func TestStore_WALMode(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var journalMode string
	err := store.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	require.NoError(t, err)
	assert.Equal(t, "wal", journalMode)
}

// ==================== SyncStateStore Tests ====================

func TestSyncStateStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	stateStore := store.SyncStateStore()

	state := domain.SyncState{
		Cursor:     "2024-05-01T12:00:00Z",
		InProgress: true,
	}

	// Save state
	err := stateStore.Save(ctx, state)
	require.NoError(t, err)

	// Get state
	retrieved, err := stateStore.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, retrieved)

	assert.Equal(t, state.Cursor, retrieved.Cursor)
	assert.True(t, retrieved.InProgress)
}

func TestSyncStateStore_SaveUpdate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	stateStore := store.SyncStateStore()

	// Save original
	err := stateStore.Save(ctx, domain.SyncState{Cursor: "2024-05-01T12:00:00Z", InProgress: true})
	require.NoError(t, err)

	// Update and save again
	err = stateStore.Save(ctx, domain.SyncState{Cursor: "2024-06-01T08:30:00Z", InProgress: false})
	require.NoError(t, err)

	// Verify update
	retrieved, err := stateStore.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T08:30:00Z", retrieved.Cursor)
	assert.False(t, retrieved.InProgress)
}

func TestSyncStateStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	retrieved, err := store.SyncStateStore().Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, retrieved)
}

func TestSyncStateStore_EmptyCursor(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	stateStore := store.SyncStateStore()

	// A saved zero-value state is distinct from no state at all
	err := stateStore.Save(ctx, domain.SyncState{})
	require.NoError(t, err)

	retrieved, err := stateStore.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", retrieved.Cursor)
	assert.False(t, retrieved.InProgress)
}

func TestSyncStateStore_SingleRow(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	stateStore := store.SyncStateStore()

	for i := 0; i < 3; i++ {
		err := stateStore.Save(ctx, domain.SyncState{Cursor: fmt.Sprintf("cursor-%d", i)})
		require.NoError(t, err)
	}

	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM sync_state").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// ==================== SyncRunStore Tests ====================

func TestSyncRunStore_RecordAndRecent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	runStore := store.SyncRunStore()

	now := time.Now().UTC().Truncate(time.Second)
	run := domain.SyncRun{
		ID:              "run-1",
		StartedAt:       now,
		FinishedAt:      now.Add(2 * time.Second),
		ArticlesWritten: 12,
		Failures:        1,
	}

	// Record run
	err := runStore.Record(ctx, run)
	require.NoError(t, err)

	// Read history back
	runs, err := runStore.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.Equal(t, "run-1", runs[0].ID)
	assert.True(t, run.StartedAt.Equal(runs[0].StartedAt))
	assert.True(t, run.FinishedAt.Equal(runs[0].FinishedAt))
	assert.Equal(t, 12, runs[0].ArticlesWritten)
	assert.Equal(t, 1, runs[0].Failures)
	assert.Equal(t, "", runs[0].Error)
}

func TestSyncRunStore_Record_AssignsID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	runStore := store.SyncRunStore()

	now := time.Now().UTC().Truncate(time.Second)
	err := runStore.Record(ctx, domain.SyncRun{StartedAt: now, FinishedAt: now})
	require.NoError(t, err)

	runs, err := runStore.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].ID)
}

func TestSyncRunStore_Record_PreservesError(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	runStore := store.SyncRunStore()

	now := time.Now().UTC().Truncate(time.Second)
	run := domain.SyncRun{
		ID:         "run-1",
		StartedAt:  now,
		FinishedAt: now,
		Error:      "remote fetch failed: status 500",
	}
	require.NoError(t, runStore.Record(ctx, run))

	runs, err := runStore.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "remote fetch failed: status 500", runs[0].Error)
}

func TestSyncRunStore_Recent_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	runs, err := store.SyncRunStore().Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSyncRunStore_Recent_MostRecentFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	recordRuns(t, store, 3)

	runs, err := store.SyncRunStore().Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, "run-0", runs[2].ID)
}

func TestSyncRunStore_Recent_Limit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	recordRuns(t, store, 5)

	runs, err := store.SyncRunStore().Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)
}

func TestSyncRunStore_Recent_ZeroLimitReturnsAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	recordRuns(t, store, 3)

	runs, err := store.SyncRunStore().Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

// ==================== Persistence Tests ====================

func TestStore_PersistsAcrossReopen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "omnisync-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	store1, err := NewStore(tempDir)
	require.NoError(t, err)

	err = store1.SyncStateStore().Save(ctx, domain.SyncState{Cursor: "2024-05-01T12:00:00Z"})
	require.NoError(t, err)

	run := domain.SyncRun{ID: "run-1", StartedAt: now, FinishedAt: now, ArticlesWritten: 3}
	err = store1.SyncRunStore().Record(ctx, run)
	require.NoError(t, err)

	require.NoError(t, store1.Close())

	// Reopen and verify everything survived
	store2, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()

	state, err := store2.SyncStateStore().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T12:00:00Z", state.Cursor)

	runs, err := store2.SyncRunStore().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, 3, runs[0].ArticlesWritten)
}

// ==================== Migration Tests ====================

func TestStore_MigrationIdempotency(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "omnisync-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Create store (runs migrations)
	store1, err := NewStore(tempDir)
	require.NoError(t, err)

	var version1, count1 int
	err = store1.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version1)
	require.NoError(t, err)
	err = store1.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count1)
	require.NoError(t, err)

	// Close and reopen (should not run migrations again)
	require.NoError(t, store1.Close())

	store2, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()

	var version2, count2 int
	err = store2.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version2)
	require.NoError(t, err)
	err = store2.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count2)
	require.NoError(t, err)

	assert.Equal(t, version1, version2)
	assert.Equal(t, count1, count2)
}

func TestStore_MigrateRecordsMigrationVersion(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	rows, err := store.db.Query("SELECT version FROM schema_migrations ORDER BY version")
	require.NoError(t, err)
	defer rows.Close()

	versions := []int{}
	for rows.Next() {
		var version int
		err := rows.Scan(&version)
		require.NoError(t, err)
		versions = append(versions, version)
	}
	require.NoError(t, rows.Err())

	// Versions should be sequential starting from 1
	require.NotEmpty(t, versions)
	assert.Equal(t, 1, versions[0])
}

// ==================== Error Handling Tests ====================

func TestStore_ContextCancellation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	// Create a cancelled context
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Operations with cancelled context should fail
	err := store.SyncStateStore().Save(ctx, domain.SyncState{Cursor: "cursor"})
	assert.Error(t, err)
}

func TestSyncStateStore_SaveError_QueryFailure(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	stateStore := store.SyncStateStore()

	// Close database to force error
	store.db.Close()

	err := stateStore.Save(ctx, domain.SyncState{Cursor: "cursor"})
	assert.Error(t, err)
}

func TestSyncRunStore_RecordError_QueryFailure(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	runStore := store.SyncRunStore()

	// Close database to force error
	store.db.Close()

	err := runStore.Record(ctx, domain.SyncRun{ID: "run-1"})
	assert.Error(t, err)
}

func TestSyncRunStore_RecentError_QueryFailure(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	runStore := store.SyncRunStore()

	// Close database to force error
	store.db.Close()

	_, err := runStore.Recent(ctx, 10)
	assert.Error(t, err)
}

// ==================== Concurrent Access Tests ====================

func TestStore_ConcurrentWrites(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	runStore := store.SyncRunStore()
	now := time.Now().UTC().Truncate(time.Second)

	// Launch multiple goroutines writing to the store
	const numGoroutines = 10
	done := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			run := domain.SyncRun{
				ID:         fmt.Sprintf("run-%d", id),
				StartedAt:  now,
				FinishedAt: now,
			}
			done <- runStore.Record(ctx, run)
		}(i)
	}

	// Wait for all goroutines to complete
	for i := 0; i < numGoroutines; i++ {
		err := <-done
		assert.NoError(t, err)
	}

	// Verify all runs were recorded
	runs, err := runStore.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, numGoroutines)
}
