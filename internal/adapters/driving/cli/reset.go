package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCursor bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a stale in-progress marker",
	Long: `Clears the in-progress marker left behind when a sync run crashed.

With --cursor the sync cursor is also cleared, so the next run fetches
the whole library again.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCursor, "cursor", false, "also clear the sync cursor to force a full re-sync")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	if err := syncService.Reset(cmd.Context(), resetCursor); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	if resetCursor {
		cmd.Println("Cleared the in-progress marker and the sync cursor.")
		cmd.Println("The next run will fetch the whole library again.")
	} else {
		cmd.Println("Cleared the in-progress marker.")
	}
	return nil
}
