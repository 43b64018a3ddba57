package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

var noProgress bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise articles from Omnivore",
	Long: `Fetches articles changed since the last sync, renders each one through
your templates and writes it into the vault folder.

The first run fetches the whole library; later runs only fetch what
changed. Articles that fail to render or write are skipped and counted,
so one bad article never stops the rest.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the live progress display")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()

	cmd.Println("Synchronising with Omnivore...")

	var err error
	if !noProgress && isTerminal(cmd.OutOrStdout()) {
		err = syncWithSpinner(ctx, cmd)
	} else {
		err = syncWithProgress(ctx, cmd)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredential):
			return fmt.Errorf("%w - run 'omnisync config set-key' first", domain.ErrMissingCredential)
		case errors.Is(err, domain.ErrSyncInProgress):
			return fmt.Errorf("%w - if a previous run crashed, run 'omnisync reset'", domain.ErrSyncInProgress)
		default:
			return fmt.Errorf("sync failed: %w", err)
		}
	}

	printRunSummary(ctx, cmd)
	return nil
}

// syncWithProgress runs sync while printing plain progress updates.
// Used when the output is not a terminal or --no-progress is set.
func syncWithProgress(ctx context.Context, cmd *cobra.Command) error {
	// Start sync in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- syncService.Sync(ctx)
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-errCh:
			if lastCount > 0 {
				cmd.Println()
			}
			return err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := syncService.Status(ctx)
			if statusErr == nil && status != nil && status.ArticlesWritten > lastCount {
				cmd.Printf("\rProcessing... %d articles", status.ArticlesWritten)
				lastCount = status.ArticlesWritten
			}
		}
	}
}

// printRunSummary reports the outcome of the run that just finished.
// The counts come from the recorded run history rather than the live
// status, which resets as soon as the run completes.
func printRunSummary(ctx context.Context, cmd *cobra.Command) {
	runs, err := syncService.RecentRuns(ctx, 1)
	if err != nil || len(runs) == 0 {
		cmd.Println(successStyle.Render("Sync complete."))
		return
	}

	run := runs[0]
	cmd.Println(successStyle.Render(fmt.Sprintf("Sync complete: %d articles written.", run.ArticlesWritten)))
	if run.Failures > 0 {
		cmd.Println(warnStyle.Render(fmt.Sprintf("Skipped %d articles that failed to render or write.", run.Failures)))
	}
}
