package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var helpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("205")).
	Padding(1, 2).
	MarginTop(1)

// HelpModel is the expanded key reference toggled with '?' on the
// dashboard. It renders the full KeyMap grouped by concern (navigation,
// item editing, project actions).
type HelpModel struct {
	inner  help.Model
	keymap KeyMap
}

// NewHelpModel builds the overlay for the given bindings.
func NewHelpModel(keymap KeyMap) HelpModel {
	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	h.Styles.FullDesc = DimStyle

	return HelpModel{
		inner:  h,
		keymap: keymap,
	}
}

// View renders the overlay sized to the current terminal width.
func (m HelpModel) View(width int) string {
	m.inner.Width = width - 8
	body := dashHeaderStyle.Render("Keys") + "\n\n" + m.inner.View(m.keymap)
	return helpPanelStyle.Render(body)
}
