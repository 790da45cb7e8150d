package scrollhost

import "github.com/idfusion/infinite-grid/internal/grid"

// Surface records the tiles attached to it, in attachment order.
type Surface struct {
	view  *ScrollView
	tiles []*grid.Tile
}

// NewSurface places a surface at the origin of v's natural content.
func NewSurface(v *ScrollView) *Surface {
	return &Surface{view: v}
}

func (s *Surface) Size() grid.Size { return s.view.content }

func (s *Surface) Center() grid.Point {
	o := s.view.SurfaceOrigin()
	return grid.Point{X: o.X + s.view.content.Width/2, Y: o.Y + s.view.content.Height/2}
}

func (s *Surface) Attach(t *grid.Tile) {
	s.tiles = append(s.tiles, t)
}

// Attached returns the attached tiles in attachment order.
func (s *Surface) Attached() []*grid.Tile { return s.tiles }

// ContentFrame maps a tile frame from surface space to scroll content space.
func (s *Surface) ContentFrame(r grid.Rect) grid.Rect {
	return r.Offset(s.view.SurfaceOrigin())
}
