package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines global key bindings used across the TUI.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	TileUp    key.Binding
	TileDown  key.Binding
	TileLeft  key.Binding
	TileRight key.Binding
	Centre    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		TileUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("K", "tile up"),
		),
		TileDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("J", "tile down"),
		),
		TileLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("H", "tile left"),
		),
		TileRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("L", "tile right"),
		),
		Centre: key.NewBinding(
			key.WithKeys("c", "home"),
			key.WithHelp("c", "re-centre"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Centre, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.TileUp, k.TileDown, k.TileLeft, k.TileRight},
		{k.Centre, k.Help, k.Quit},
	}
}
