// Package snapshot renders a coverage map of allocated tiles as a PNG.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gg"

	"github.com/idfusion/infinite-grid/internal/grid"
)

var ErrNoTiles = errors.New("no tiles to render")

const (
	defaultCellSize     = 12
	defaultMaxDimension = 4096
	margin              = 8
)

//nolint:gochecknoglobals // palette
var (
	tileColor      = gg.Hex("#9aa5b1")
	referenceColor = gg.Hex("#d64545")
	centreColor    = gg.Hex("#2f80ed")
)

// Options controls the rendered image.
type Options struct {
	// CellSize is the edge of one tile in pixels.
	CellSize int
	// MaxDimension caps the image width and height; cells shrink to fit.
	MaxDimension int
	Reference    grid.Coordinates
	Centre       grid.Coordinates
	HasCentre    bool
}

// Layout is the pixel geometry Render uses.
type Layout struct {
	Bounds        grid.Span
	Cell          int
	Width, Height int
}

// Origin returns the top-left pixel of the cell for c.
func (l Layout) Origin(c grid.Coordinates) (x, y int) {
	return margin + (c.X-l.Bounds.LowerX)*l.Cell, margin + (c.Y-l.Bounds.LowerY)*l.Cell
}

// Measure computes the layout for tiles without drawing.
func Measure(tiles []*grid.Tile, opts Options) (Layout, error) {
	if len(tiles) == 0 {
		return Layout{}, ErrNoTiles
	}
	first := tiles[0].Coordinates()
	bounds := grid.Span{LowerX: first.X, UpperX: first.X, LowerY: first.Y, UpperY: first.Y}
	for _, t := range tiles[1:] {
		c := t.Coordinates()
		bounds = bounds.Union(grid.Span{LowerX: c.X, UpperX: c.X, LowerY: c.Y, UpperY: c.Y})
	}

	cell := opts.CellSize
	if cell <= 0 {
		cell = defaultCellSize
	}
	maxDim := opts.MaxDimension
	if maxDim <= 0 {
		maxDim = defaultMaxDimension
	}
	cols := bounds.UpperX - bounds.LowerX + 1
	rows := bounds.UpperY - bounds.LowerY + 1
	if longest := max(cols, rows); longest*cell > maxDim-2*margin {
		cell = max(1, (maxDim-2*margin)/longest)
	}

	return Layout{
		Bounds: bounds,
		Cell:   cell,
		Width:  cols*cell + 2*margin,
		Height: rows*cell + 2*margin,
	}, nil
}

// Render draws one square per tile, highlighting the reference and centre tiles.
func Render(w io.Writer, tiles []*grid.Tile, opts Options) error {
	layout, err := Measure(tiles, opts)
	if err != nil {
		return err
	}

	dc := gg.NewContext(layout.Width, layout.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	inner := float64(layout.Cell)
	if layout.Cell > 2 {
		inner--
	}
	for _, t := range tiles {
		c := t.Coordinates()
		switch {
		case opts.HasCentre && c == opts.Centre:
			dc.SetColor(centreColor.Color())
		case c == opts.Reference:
			dc.SetColor(referenceColor.Color())
		default:
			dc.SetColor(tileColor.Color())
		}
		x, y := layout.Origin(c)
		dc.DrawRectangle(float64(x), float64(y), inner, inner)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill tile %s: %w", c, err)
		}
	}

	return dc.EncodePNG(w)
}

// SavePNG renders tiles to a file at path.
func SavePNG(path string, tiles []*grid.Tile, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, tiles, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
