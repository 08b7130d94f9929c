package console

import "github.com/charmbracelet/lipgloss"

//nolint:gochecknoglobals // shared terminal styles
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	typeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noteStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)
