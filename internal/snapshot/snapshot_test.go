package snapshot

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idfusion/infinite-grid/internal/grid"
)

func tilesIn(span grid.Span) []*grid.Tile {
	var tiles []*grid.Tile
	span.Each(func(c grid.Coordinates) {
		tiles = append(tiles, grid.NewTile(grid.Rect{Width: 100, Height: 100}, c))
	})
	return tiles
}

func TestMeasure(t *testing.T) {
	tiles := tilesIn(grid.Span{LowerX: -3, UpperX: 3, LowerY: -8, UpperY: 8})

	layout, err := Measure(tiles, Options{CellSize: 10})
	require.NoError(t, err)
	assert.Equal(t, grid.Span{LowerX: -3, UpperX: 3, LowerY: -8, UpperY: 8}, layout.Bounds)
	assert.Equal(t, 7*10+2*margin, layout.Width)
	assert.Equal(t, 17*10+2*margin, layout.Height)

	x, y := layout.Origin(grid.Coordinates{X: -3, Y: -8})
	assert.Equal(t, margin, x)
	assert.Equal(t, margin, y)
}

func TestMeasure_ShrinksToMaxDimension(t *testing.T) {
	tiles := []*grid.Tile{
		grid.NewTile(grid.Rect{}, grid.Coordinates{X: 0, Y: 0}),
		grid.NewTile(grid.Rect{}, grid.Coordinates{X: 999, Y: 0}),
	}

	layout, err := Measure(tiles, Options{CellSize: 12, MaxDimension: 516})
	require.NoError(t, err)
	assert.Equal(t, 1, layout.Cell)
	assert.LessOrEqual(t, layout.Width, 1000+2*margin)
}

func TestRender_NoTiles(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, nil, Options{}), ErrNoTiles)
}

func TestRender_WritesDecodablePNG(t *testing.T) {
	tiles := tilesIn(grid.Span{LowerX: -2, UpperX: 2, LowerY: -1, UpperY: 1})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tiles, Options{CellSize: 8, HasCentre: true, Centre: grid.Coordinates{X: 1}}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 5*8+2*margin, img.Bounds().Dx())
	assert.Equal(t, 3*8+2*margin, img.Bounds().Dy())
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coverage.png")
	require.NoError(t, SavePNG(path, tilesIn(grid.Span{UpperX: 1, UpperY: 1}), Options{}))
	assert.FileExists(t, path)
}
