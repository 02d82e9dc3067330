package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")). // Purple
			MarginBottom(1)

	// SelectedItemStyle is used for highlighted/selected items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// SuccessStyle is used for confirmation messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")) // Green

	// DimStyle is used for secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	// HelpStyle is used for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// statusColor maps a checklist status to its display color.
func statusColor(status string) lipgloss.Color {
	switch status {
	case "todo":
		return lipgloss.Color("241")
	case "in_progress":
		return lipgloss.Color("228")
	case "done":
		return lipgloss.Color("34")
	case "not_applicable":
		return lipgloss.Color("141")
	}
	return lipgloss.Color("252")
}
