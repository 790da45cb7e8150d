//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idfusion/infinite-grid/internal/config"
	"github.com/idfusion/infinite-grid/internal/grid"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	m := NewModel(config.Default(), l)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 26})
	assert.Nil(t, cmd)
	return next.(Model)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func centreOf(t *testing.T, m Model) grid.Coordinates {
	t.Helper()
	c, ok := m.Controller().Centre()
	require.True(t, ok)
	return c
}

func TestModel_ViewBeforeLayout(t *testing.T) {
	m := NewModel(config.Default(), nil)
	assert.Nil(t, m.Controller())
	assert.Contains(t, m.View(), "Measuring")
	assert.Equal(t, grid.Stats{}, m.Close())
}

func TestModel_FirstLayoutStartsController(t *testing.T) {
	m := newTestModel(t)

	require.NotNil(t, m.Controller())
	assert.Equal(t, grid.Size{Width: 800, Height: 480}, m.viewportSize())
	assert.Equal(t, grid.Coordinates{}, centreOf(t, m))
	// floor(800/100)=8, floor(480/100)=4
	assert.Equal(t, 17*9, m.Controller().Len())
	assert.Equal(t, 1, m.view.Subscribers())
}

func TestModel_CellScrollStaysOnTile(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, runeKey('j'))

	assert.Equal(t, grid.Coordinates{}, centreOf(t, m))
	assert.Equal(t, 17*9, m.Controller().Len())
}

func TestModel_TileScrollAllocatesColumn(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey('L'))

	assert.Equal(t, grid.Coordinates{X: 1}, centreOf(t, m))
	assert.Equal(t, 17*9+9, m.Controller().Len())

	m = send(t, m, runeKey('K'), runeKey('K'))
	assert.Equal(t, grid.Coordinates{X: 1, Y: -2}, centreOf(t, m))
}

func TestModel_RecentreReturnsToReference(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey('H'), runeKey('H'), runeKey('J'), runeKey('c'))

	assert.Equal(t, grid.Coordinates{}, centreOf(t, m))
}

func TestModel_MouseWheelScrolls(t *testing.T) {
	m := newTestModel(t)
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	for range 5 {
		m = send(t, m, wheel)
	}

	// Five rows of 20 units is one tile.
	assert.Equal(t, grid.Coordinates{Y: 1}, centreOf(t, m))
}

func TestModel_ResizeRepopulates(t *testing.T) {
	m := newTestModel(t)
	before := m.Controller().Len()
	m = send(t, m, runeKey('L'), tea.WindowSizeMsg{Width: 160, Height: 52})

	assert.Greater(t, m.Controller().Len(), before)
	assert.Equal(t, grid.Size{Width: 1600, Height: 1000}, m.view.Size())
}

func TestModel_ViewShowsLabels(t *testing.T) {
	m := newTestModel(t)
	out := m.View()

	assert.Contains(t, out, "(0, 0)")
	assert.Contains(t, out, "(1, -1)")
	assert.Contains(t, out, "centre (0, 0)")
	assert.Contains(t, out, "tiles 153")
	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len(lines), m.gridRows()+2)
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey('?'))
	assert.True(t, m.helpVisible)
	assert.Contains(t, m.View(), "re-centre")

	m = send(t, m, runeKey('?'))
	assert.False(t, m.helpVisible)
}

func TestModel_QuitClosesController(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "Shutting down")

	st := m.Close()
	assert.Equal(t, 153, st.Tiles)
	assert.Equal(t, 0, m.view.Subscribers())
}
