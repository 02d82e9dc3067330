package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the dashboard view.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Status        key.Binding
	DueDate       key.Binding
	Justification key.Binding
	Evidence      key.Binding
	Analyze       key.Binding
	Billing       key.Binding
	Import        key.Binding
	Refresh       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous item"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next item"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "change status"),
		),
		DueDate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "edit due date"),
		),
		Justification: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "edit justification"),
		),
		Evidence: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "manage evidence"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "analyze a document"),
		),
		Billing: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "open billing portal"),
		),
		Import: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "import standard checklist"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Status, k.DueDate, k.Justification, k.Evidence},
		{k.Analyze, k.Billing, k.Import},
		{k.Help, k.Quit},
	}
}
