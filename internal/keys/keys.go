package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Task actions
	Toggle key.Binding
	Delete key.Binding
	New    key.Binding

	// Show/hide completed tasks
	Filter key.Binding

	// Manual refresh
	Refresh key.Binding

	// Horizons
	Today    key.Binding
	Tomorrow key.Binding
	Week     key.Binding
	Month    key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " ", "enter"),
			key.WithHelp("x/space", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		New: key.NewBinding(
			key.WithKeys("n", "+"),
			key.WithHelp("n/+", "new task"),
		),
		Filter: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "show/hide done"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Today: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		Tomorrow: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "tomorrow"),
		),
		Week: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "week"),
		),
		Month: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "month"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.New, k.Delete,
		k.Filter, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Back, k.Quit},
		{k.Toggle, k.New, k.Delete, k.Filter},
		{k.Today, k.Tomorrow, k.Week, k.Month},
		{k.Refresh, k.Command, k.Help},
	}
}
