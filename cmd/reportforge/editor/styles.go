package editor

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	sidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("63"))

	fieldRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	fieldSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	fieldDetailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	confirmHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)
)
