package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idfusion/infinite-grid/internal/grid"
)

type cellKind uint8

const (
	cellBlank cellKind = iota
	cellEdge
	cellLabel
	cellCentre
)

//nolint:gochecknoglobals // shared styles
var (
	edgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	centreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Foreground(lipgloss.Color("69"))
)

// canvas is a rune grid with a kind per cell used for styling.
type canvas struct {
	runes [][]rune
	kinds [][]cellKind
	cols  int
	rows  int
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows}
	c.runes = make([][]rune, rows)
	c.kinds = make([][]cellKind, rows)
	for r := range rows {
		c.runes[r] = []rune(strings.Repeat(" ", cols))
		c.kinds[r] = make([]cellKind, cols)
	}
	return c
}

func (c *canvas) set(col, row int, r rune, kind cellKind) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	// Labels win over edges drawn by a neighbouring tile.
	if c.kinds[row][col] >= cellLabel && kind == cellEdge {
		return
	}
	c.runes[row][col] = r
	c.kinds[row][col] = kind
}

func (c *canvas) String() string {
	var b strings.Builder
	for r := range c.rows {
		start := 0
		for col := 1; col <= c.cols; col++ {
			if col < c.cols && c.kinds[r][col] == c.kinds[r][start] {
				continue
			}
			b.WriteString(styleFor(c.kinds[r][start]).Render(string(c.runes[r][start:col])))
			start = col
		}
		if r < c.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func styleFor(kind cellKind) lipgloss.Style {
	switch kind {
	case cellEdge:
		return edgeStyle
	case cellLabel:
		return labelStyle
	case cellCentre:
		return centreStyle
	default:
		return lipgloss.NewStyle()
	}
}

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}
	if m.ctrl == nil {
		return "Measuring terminal...\n"
	}

	var b strings.Builder
	if m.helpVisible {
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
		b.WriteString("\n")
	}
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if !m.helpVisible {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// renderGrid draws the top and left edge of every allocated tile that
// intersects the viewport, with its coordinate label in the middle.
func (m Model) renderGrid() string {
	cv := newCanvas(m.width, m.gridRows())
	offset := m.view.ContentOffset()
	size := m.view.Size()
	cw, ch := m.cfg.Terminal.CellWidth, m.cfg.Terminal.CellHeight

	topLeft, ok := m.ctrl.CoordinatesAt(offset)
	if !ok {
		return cv.String()
	}
	bottomRight, _ := m.ctrl.CoordinatesAt(offset.Add(grid.Point{X: size.Width, Y: size.Height}))
	centre, hasCentre := m.ctrl.Centre()

	for x := topLeft.X - 1; x <= bottomRight.X+1; x++ {
		for y := topLeft.Y - 1; y <= bottomRight.Y+1; y++ {
			tile, ok := m.ctrl.Tile(grid.Coordinates{X: x, Y: y})
			if !ok {
				continue
			}
			frame := m.surface.ContentFrame(tile.Frame())
			left := int(math.Floor((frame.X - offset.X) / cw))
			top := int(math.Floor((frame.Y - offset.Y) / ch))
			right := int(math.Floor((frame.X + frame.Width - offset.X) / cw))
			bottom := int(math.Floor((frame.Y + frame.Height - offset.Y) / ch))

			for col := left; col < right; col++ {
				cv.set(col, top, edgeHorizontal, cellEdge)
			}
			for row := top; row < bottom; row++ {
				cv.set(left, row, edgeVertical, cellEdge)
			}
			cv.set(left, top, edgeCorner, cellEdge)

			kind := cellLabel
			if hasCentre && tile.Coordinates() == centre {
				kind = cellCentre
			}
			label := []rune(tile.Label())
			if len(label) >= right-left {
				continue
			}
			row := (top + bottom) / 2
			if row == top {
				continue
			}
			start := (left+right+1)/2 - len(label)/2
			for i, r := range label {
				cv.set(start+i, row, r, kind)
			}
		}
	}
	return cv.String()
}

func (m Model) renderStatus() string {
	st := m.ctrl.Stats()
	text := fmt.Sprintf("centre %s • tiles %d • explored %s", st.Centre, st.Tiles, st.Explored)
	if lipgloss.Width(text) > m.width && m.width > 0 {
		text = fmt.Sprintf("centre %s • tiles %d", st.Centre, st.Tiles)
	}
	return statusStyle.Render(text)
}
