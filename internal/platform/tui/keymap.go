package tui

import "github.com/charmbracelet/bubbles/key"

// PlayKeyMap defines the key bindings for the round view. Directives are
// queued on key press and issued on the next tick; cursor keys steer the
// movement target.
type PlayKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Move    key.Binding
	Attack  key.Binding
	Stand   key.Binding
	NewGame key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Attack, k.Stand, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Move, k.Attack, k.Stand},
		{k.NewGame, k.Help, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "cursor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "cursor down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "cursor right"),
		),
		Move: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "move to cursor"),
		),
		Attack: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "attack adjacent tower"),
		),
		Stand: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stand"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new round"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
