package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/idfusion/infinite-grid/internal/grid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100.0, cfg.Grid.TileSize)
	assert.Equal(t, 10_000_000.0, cfg.Grid.LargeOffset)
	assert.Equal(t, 2, cfg.Grid.BootstrapRadius)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
grid:
  tile_size: 64
  reference:
    x: 3
    y: -2
  viewport_extent:
    width: 390
    height: 844
terminal:
  scroll_step: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64.0, cfg.Grid.TileSize)
	assert.Equal(t, grid.DefaultLargeOffset, cfg.Grid.LargeOffset)
	assert.Equal(t, grid.Coordinates{X: 3, Y: -2}, cfg.Grid.Reference)
	assert.Equal(t, grid.Size{Width: 390, Height: 844}, cfg.Grid.ViewportExtent)
	assert.Equal(t, 4, cfg.Terminal.ScrollStep)
	assert.Equal(t, defaultCellWidth, cfg.Terminal.CellWidth)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero tile size", "grid:\n  tile_size: 0\n"},
		{"negative offset", "grid:\n  large_offset: -1\n"},
		{"infinite tile size", "grid:\n  tile_size: .inf\n"},
		{"negative extent", "grid:\n  viewport_extent:\n    width: -5\n"},
		{"zero cell width", "terminal:\n  cell_width: 0\n"},
		{"unknown key", "grid:\n  tile_sise: 10\n"},
		{"not yaml", "grid: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestMarshal_RoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Grid.Reference = grid.Coordinates{X: 1, Y: 2}

	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "tile_size: 100")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandTilde("~/x/y.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y.yaml"), got)

	got, err = ExpandTilde("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
