package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds key bindings for the contact browser.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns the bindings for the help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Delete, k.Quit},
	}
}

// DefaultKeyMap returns the key bindings for the contact browser.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete contact"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
