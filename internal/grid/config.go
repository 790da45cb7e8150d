package grid

const (
	DefaultTileSize        = 100.0
	DefaultLargeOffset     = 10_000_000.0
	DefaultBootstrapRadius = 2
)

// Config is fixed at construction.
type Config struct {
	// TileSize is the edge length of a square tile in screen units.
	TileSize float64 `json:"tile_size" yaml:"tile_size" validate:"gt=0,finite"`
	// LargeOffset pads every scroll edge so ordinary scrolling never reaches one.
	LargeOffset float64 `json:"large_offset" yaml:"large_offset" validate:"gte=0,finite"`
	// BootstrapRadius is the coverage used when no scroll view is available.
	BootstrapRadius int `json:"bootstrap_radius" yaml:"bootstrap_radius" validate:"gte=0"`
	// Reference is the coordinate anchored to the centre of the surface.
	Reference Coordinates `json:"reference" yaml:"reference"`
	// ViewportExtent sizes the required span. Zero means the measured viewport.
	ViewportExtent Size `json:"viewport_extent" yaml:"viewport_extent"`
}

func DefaultConfig() Config {
	return Config{
		TileSize:        DefaultTileSize,
		LargeOffset:     DefaultLargeOffset,
		BootstrapRadius: DefaultBootstrapRadius,
	}
}
