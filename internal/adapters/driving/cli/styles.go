package cli

import "github.com/charmbracelet/lipgloss"

// Styles for command output. Lipgloss degrades to plain text when the
// output is not a terminal, so these are safe to use unconditionally.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)
