package grid

// Tile is a materialized cell of the grid. It never changes after creation.
type Tile struct {
	coordinates Coordinates
	frame       Rect
}

// NewTile binds coordinates to the surface region the tile occupies.
func NewTile(frame Rect, coordinates Coordinates) *Tile {
	return &Tile{coordinates: coordinates, frame: frame}
}

func (t *Tile) Coordinates() Coordinates { return t.coordinates }

// Frame is the tile's placement in surface space.
func (t *Tile) Frame() Rect { return t.frame }

// Label is the text a surface shows for the tile.
func (t *Tile) Label() string { return t.coordinates.String() }
