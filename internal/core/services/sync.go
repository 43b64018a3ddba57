package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/omnisync-cli/internal/logger"
)

// Ensure SyncEngine implements the interface.
var _ driving.SyncService = (*SyncEngine)(nil)

// pageSize is the fixed number of articles requested per page.
const pageSize = 50

// SyncEngine coordinates article synchronisation.
// A run fetches changed articles from the remote page by page, renders
// each one and writes it into the vault, then advances the cursor.
type SyncEngine struct {
	settings   driving.SettingsService
	stateStore driven.SyncStateStore
	runStore   driven.SyncRunStore
	factory    driven.SourceFactory
	vault      driven.VaultStore
	locator    driven.HighlightLocator
	renderer   *DocumentRenderer

	// Status tracking
	mu     sync.RWMutex
	active *driving.SyncStatus
}

// NewSyncEngine creates a new sync engine.
func NewSyncEngine(
	settings driving.SettingsService,
	stateStore driven.SyncStateStore,
	runStore driven.SyncRunStore,
	factory driven.SourceFactory,
	vault driven.VaultStore,
	locator driven.HighlightLocator,
	renderer *DocumentRenderer,
) *SyncEngine {
	return &SyncEngine{
		settings:   settings,
		stateStore: stateStore,
		runStore:   runStore,
		factory:    factory,
		vault:      vault,
		locator:    locator,
		renderer:   renderer,
	}
}

// Sync runs a single sync pass against the remote library.
//
// The cursor only advances after the page loop completes; per-article
// render or write failures are counted and skipped, while a page fetch
// failure aborts the run and leaves the cursor untouched. The
// in-progress guard is set before the first fetch and always cleared
// when the run finishes, successfully or not.
func (e *SyncEngine) Sync(ctx context.Context) error {
	// 1. Load settings and refuse to start without a credential.
	settings, err := e.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !settings.API.IsConfigured() {
		return domain.ErrMissingCredential
	}

	// 2. Load state and apply the re-entrancy guard.
	state, err := e.loadState(ctx)
	if err != nil {
		return err
	}
	if state.InProgress {
		return domain.ErrSyncInProgress
	}

	// 3. Capture the run start before the first fetch. Anything that
	// changes remotely while the run is in flight lands at or after
	// this instant, so the next window cannot miss it.
	runStart := time.Now().UTC()

	state.InProgress = true
	if err := e.stateStore.Save(ctx, *state); err != nil {
		return fmt.Errorf("mark sync in progress: %w", err)
	}

	status := &driving.SyncStatus{Running: true}
	e.setStatus(status)
	defer e.clearStatus()

	logger.Info("Starting sync (cursor %q)", state.Cursor)

	runErr := e.run(ctx, settings, state.Cursor, status)

	// 4. Reconcile state: the cursor advances only on a clean loop,
	// the guard always clears. Reconciliation must survive ctx
	// cancellation, otherwise an interrupted run leaves the guard
	// stuck until a manual reset.
	saveCtx := context.WithoutCancel(ctx)
	if runErr == nil {
		state.Cursor = runStart.Format(time.RFC3339)
	}
	state.InProgress = false
	if err := e.stateStore.Save(saveCtx, *state); err != nil {
		if runErr == nil {
			runErr = fmt.Errorf("save sync state: %w", err)
		} else {
			logger.Warn("Failed to save sync state: %v", err)
		}
	}

	e.recordRun(saveCtx, runStart, status, runErr)

	if runErr != nil {
		return runErr
	}
	logger.Info("Sync complete: %d articles written, %d failures", status.ArticlesWritten, status.Failures)
	return nil
}

// run executes the page loop. It returns an error only for failures
// that must abort the run; per-article failures are contained.
func (e *SyncEngine) run(
	ctx context.Context,
	settings *domain.AppSettings,
	since string,
	status *driving.SyncStatus,
) error {
	folder := settings.Sync.Folder
	if folder == "" {
		folder = domain.DefaultFolder
	}
	if err := e.vault.EnsureFolder(ctx, folder); err != nil {
		return fmt.Errorf("ensure folder %q: %w", folder, err)
	}

	source, err := e.factory.Create(ctx, settings.API)
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}
	defer source.Close()

	query := settings.Sync.Filter.Query(settings.Sync.CustomQuery)

	// The offset advances by the full page size on every iteration,
	// whether or not the page came back full: the remote treats the
	// offset as a position, and a short page can still have more
	// behind it.
	for offset, hasMore := 0, true; hasMore; offset += pageSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		page, err := source.FetchPage(ctx, driven.PageRequest{
			Offset:       offset,
			Limit:        pageSize,
			UpdatedAfter: since,
			Query:        query,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrRemoteFetch, err)
		}
		e.bumpPages(status)
		logger.Debug("Fetched page at offset %d: %d articles", offset, len(page.Articles))

		for i := range page.Articles {
			article := page.Articles[i]
			if err := e.writeArticle(ctx, settings, folder, article); err != nil {
				e.bumpFailures(status)
				logger.Warn("Skipping %s: %v", article.Slug, err)
				continue
			}
			e.bumpWritten(status)
		}

		hasMore = page.HasNextPage
	}

	return nil
}

// writeArticle renders one article and writes it to the vault.
func (e *SyncEngine) writeArticle(
	ctx context.Context,
	settings *domain.AppSettings,
	folder string,
	article domain.Article,
) error {
	highlights := OrderedHighlights(article, settings.Sync.HighlightOrder, e.locator)

	content, err := e.renderer.Render(article, highlights, RenderOptions{
		ArticleTemplate:   settings.Template.Article,
		HighlightTemplate: settings.Template.Highlight,
		DateFormat:        settings.Render.DateFormat,
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	target := path.Join(folder, article.Slug+".md")
	if err := e.vault.WriteFile(ctx, target, []byte(content)); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// Status returns progress of the current sync, or an idle status.
func (e *SyncEngine) Status(_ context.Context) (*driving.SyncStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.active != nil {
		// Return a copy to avoid race conditions
		return &driving.SyncStatus{
			Running:         e.active.Running,
			PagesFetched:    e.active.PagesFetched,
			ArticlesWritten: e.active.ArticlesWritten,
			Failures:        e.active.Failures,
		}, nil
	}

	return &driving.SyncStatus{Running: false}, nil
}

// State returns the persisted sync state.
func (e *SyncEngine) State(ctx context.Context) (*domain.SyncState, error) {
	return e.loadState(ctx)
}

// RecentRuns returns up to limit past runs, most recent first.
func (e *SyncEngine) RecentRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	runs, err := e.runStore.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	return runs, nil
}

// Reset clears a stale in-progress guard, e.g. after a crash.
func (e *SyncEngine) Reset(ctx context.Context, clearCursor bool) error {
	state, err := e.loadState(ctx)
	if err != nil {
		return err
	}

	state.InProgress = false
	if clearCursor {
		state.Cursor = ""
	}
	if err := e.stateStore.Save(ctx, *state); err != nil {
		return fmt.Errorf("save sync state: %w", err)
	}
	return nil
}

// loadState retrieves the persisted state, treating "never synced"
// as zero state.
func (e *SyncEngine) loadState(ctx context.Context) (*domain.SyncState, error) {
	state, err := e.stateStore.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.SyncState{}, nil
		}
		return nil, fmt.Errorf("get sync state: %w", err)
	}
	return state, nil
}

// recordRun appends the run outcome to the history. Failures to record
// never fail the run itself.
func (e *SyncEngine) recordRun(
	ctx context.Context,
	startedAt time.Time,
	status *driving.SyncStatus,
	runErr error,
) {
	run := domain.SyncRun{
		StartedAt:       startedAt,
		FinishedAt:      time.Now().UTC(),
		ArticlesWritten: status.ArticlesWritten,
		Failures:        status.Failures,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := e.runStore.Record(ctx, run); err != nil {
		logger.Warn("Failed to record sync run: %v", err)
	}
}

// setStatus publishes the active sync status.
func (e *SyncEngine) setStatus(status *driving.SyncStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = status
}

// clearStatus removes the active sync status.
func (e *SyncEngine) clearStatus() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = nil
}

func (e *SyncEngine) bumpPages(status *driving.SyncStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	status.PagesFetched++
}

func (e *SyncEngine) bumpWritten(status *driving.SyncStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	status.ArticlesWritten++
}

func (e *SyncEngine) bumpFailures(status *driving.SyncStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	status.Failures++
}
