package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driving"
)

// progressInterval is how often the progress display polls sync status.
const progressInterval = 500 * time.Millisecond

// isTerminal reports whether the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// syncWithSpinner runs sync behind a spinner with live page and
// article counters. Used when the output is an interactive terminal.
func syncWithSpinner(ctx context.Context, cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(ctx, cancel), tea.WithOutput(cmd.OutOrStdout()))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress display: %w", err)
	}
	if m, ok := final.(progressModel); ok {
		return m.err
	}
	return nil
}

type (
	syncDoneMsg   struct{ err error }
	statusPollMsg struct{}
)

// progressModel is a minimal bubbletea model: a spinner, the latest
// sync status, and the outcome once the run finishes.
type progressModel struct {
	ctx        context.Context
	cancel     context.CancelFunc
	spinner    spinner.Model
	status     driving.SyncStatus
	cancelling bool
	done       bool
	err        error
}

func newProgressModel(ctx context.Context, cancel context.CancelFunc) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle
	return progressModel{ctx: ctx, cancel: cancel, spinner: sp}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.startSync(), m.spinner.Tick, pollStatus())
}

// startSync runs the sync in the background and reports its outcome.
func (m progressModel) startSync() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return syncDoneMsg{err: syncService.Sync(ctx)}
	}
}

func pollStatus() tea.Cmd {
	return tea.Tick(progressInterval, func(time.Time) tea.Msg {
		return statusPollMsg{}
	})
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case statusPollMsg:
		// Best effort - keep the last status on error
		if status, err := syncService.Status(m.ctx); err == nil && status != nil {
			m.status = *status
		}
		return m, pollStatus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// Cancel the run but keep the display up until the engine
			// has reconciled its state.
			m.cancelling = true
			m.cancel()
		}
		return m, nil
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	if m.cancelling {
		return fmt.Sprintf("%s Cancelling...\n", m.spinner.View())
	}
	line := fmt.Sprintf("%s Syncing: %d pages fetched, %d articles written",
		m.spinner.View(), m.status.PagesFetched, m.status.ArticlesWritten)
	if m.status.Failures > 0 {
		line += warnStyle.Render(fmt.Sprintf(", %d skipped", m.status.Failures))
	}
	return line + "\n"
}
