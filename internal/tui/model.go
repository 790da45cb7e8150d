package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/idfusion/infinite-grid/internal/config"
	"github.com/idfusion/infinite-grid/internal/grid"
	"github.com/idfusion/infinite-grid/internal/scrollhost"
)

// Model is the root Bubble Tea model. The terminal window is the scroll
// container; one cell spans cfg.Terminal.CellWidth × CellHeight screen units.
type Model struct {
	cfg config.Config
	log logrus.FieldLogger

	// created on the first window size message
	view    *scrollhost.ScrollView
	surface *scrollhost.Surface
	ctrl    *grid.Controller

	width       int
	height      int
	helpVisible bool
	quitting    bool

	help help.Model
	keys keyMap
}

// NewModel constructs a Model with initial state.
func NewModel(cfg config.Config, log logrus.FieldLogger) Model {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return Model{
		cfg:  cfg,
		log:  log,
		help: help.New(),
		keys: newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Controller returns the grid controller, or nil before the first layout.
func (m Model) Controller() *grid.Controller { return m.ctrl }

// Close stops the controller's observation and returns its final stats.
func (m Model) Close() grid.Stats {
	if m.ctrl == nil {
		return grid.Stats{}
	}
	m.ctrl.Close()
	return m.ctrl.Stats()
}

func (m Model) gridRows() int {
	return max(m.height-chromeLines, minGridRows)
}

// viewportSize converts the terminal grid area to screen units.
func (m Model) viewportSize() grid.Size {
	return grid.Size{
		Width:  float64(m.width) * m.cfg.Terminal.CellWidth,
		Height: float64(m.gridRows()) * m.cfg.Terminal.CellHeight,
	}
}

// layout creates the scroll host and starts the controller on first use, and
// resizes the viewport afterwards. The surface keeps its initial size.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	size := m.viewportSize()
	if m.ctrl != nil {
		m.view.Resize(size)
		return
	}
	m.view, m.surface = scrollhost.New(size, size)
	m.ctrl = grid.NewController(m.view, m.surface, m.cfg.Grid, grid.WithLogger(m.log))
	m.ctrl.Start()
}

func (m *Model) scrollCells(dx, dy int) {
	if m.view == nil {
		return
	}
	m.view.ScrollBy(grid.Point{
		X: float64(dx) * m.cfg.Terminal.CellWidth,
		Y: float64(dy) * m.cfg.Terminal.CellHeight,
	})
}

func (m *Model) scrollTiles(dx, dy int) {
	if m.view == nil {
		return
	}
	ts := m.cfg.Grid.TileSize
	m.view.ScrollBy(grid.Point{X: float64(dx) * ts, Y: float64(dy) * ts})
}
