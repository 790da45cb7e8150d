package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(x.Width, x.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(x)

	case tea.MouseMsg:
		m.handleMouse(x)
		return m, nil
	}

	return m, nil
}

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	step := m.cfg.Terminal.ScrollStep
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible

	case key.Matches(msg, m.keys.Up):
		m.scrollCells(0, -step)
	case key.Matches(msg, m.keys.Down):
		m.scrollCells(0, step)
	case key.Matches(msg, m.keys.Left):
		m.scrollCells(-step, 0)
	case key.Matches(msg, m.keys.Right):
		m.scrollCells(step, 0)

	case key.Matches(msg, m.keys.TileUp):
		m.scrollTiles(0, -1)
	case key.Matches(msg, m.keys.TileDown):
		m.scrollTiles(0, 1)
	case key.Matches(msg, m.keys.TileLeft):
		m.scrollTiles(-1, 0)
	case key.Matches(msg, m.keys.TileRight):
		m.scrollTiles(1, 0)

	case key.Matches(msg, m.keys.Centre):
		if m.ctrl != nil {
			m.ctrl.CentreViewport()
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	step := m.cfg.Terminal.ScrollStep
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollCells(0, -step)
	case tea.MouseButtonWheelDown:
		m.scrollCells(0, step)
	case tea.MouseButtonWheelLeft:
		m.scrollCells(-step, 0)
	case tea.MouseButtonWheelRight:
		m.scrollCells(step, 0)
	}
}
