package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

// maxResultWidth caps the error column so one long failure message
// does not blow out the table.
const maxResultWidth = 48

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync state and recent runs",
	Long: `Shows the incremental sync cursor, whether a run is marked in
progress, and a table of recent runs.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 10, "number of past runs to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()

	state, err := syncService.State(ctx)
	if err != nil {
		return fmt.Errorf("load sync state: %w", err)
	}

	cmd.Println(headingStyle.Render("Sync State"))
	if state.Cursor == "" {
		cmd.Println(faintStyle.Render("  Cursor: (never synced)"))
	} else {
		cmd.Printf("  Cursor: %s\n", state.Cursor)
	}
	if state.InProgress {
		cmd.Println(warnStyle.Render("  A run is marked in progress. If it crashed, run 'omnisync reset'."))
	}
	cmd.Println()

	runs, err := syncService.RecentRuns(ctx, statusLimit)
	if err != nil {
		return fmt.Errorf("load run history: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No sync runs recorded yet.")
		return nil
	}

	cmd.Println(headingStyle.Render("Recent Runs"))
	cmd.Println(renderRunTable(runs))
	return nil
}

// renderRunTable formats run history as a table, most recent first.
func renderRunTable(runs []domain.SyncRun) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Started", "Duration", "Written", "Failures", "Result"})

	for _, run := range runs {
		result := "ok"
		if run.Error != "" {
			result = truncate(run.Error, maxResultWidth)
		}
		tw.AppendRow(table.Row{
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
			run.ArticlesWritten,
			run.Failures,
			result,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
