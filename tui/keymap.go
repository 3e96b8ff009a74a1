package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the kiosk shell's key bindings. The journey screens are
// touch-first; these bindings are what the attached keypad (and developers)
// use.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Back    key.Binding
	Forward key.Binding
	Home    key.Binding
	Quit    key.Binding

	// Staff chords, not shown in visitor-facing help.
	TrafficLog key.Binding
	Dashboard  key.Binding
}

// DefaultKeyMap returns the default key bindings.
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
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "alt+left"),
			key.WithHelp("esc", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "forward"),
		),
		Home: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "start over"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		TrafficLog: key.NewBinding(
			key.WithKeys("ctrl+t"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("ctrl+b"),
		),
	}
}
