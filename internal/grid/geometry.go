package grid

import (
	"fmt"
	"math"
)

// Coordinates identify a tile on the grid.
type Coordinates struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Point is a position in screen units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Size is an extent in screen units.
type Size struct {
	Width  float64 `json:"width" yaml:"width" validate:"gte=0,finite"`
	Height float64 `json:"height" yaml:"height" validate:"gte=0,finite"`
}

// IsZero reports whether either dimension is unset.
func (s Size) IsZero() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width && r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	return Rect{X: r.X + p.X, Y: r.Y + p.Y, Width: r.Width, Height: r.Height}
}

// Span is an inclusive rectangle of grid coordinates.
type Span struct {
	LowerX int `json:"lower_x"`
	UpperX int `json:"upper_x"`
	LowerY int `json:"lower_y"`
	UpperY int `json:"upper_y"`
}

// SpanAround returns the span reaching halfX and halfY tiles on each side of c.
func SpanAround(c Coordinates, halfX, halfY int) Span {
	return Span{LowerX: c.X - halfX, UpperX: c.X + halfX, LowerY: c.Y - halfY, UpperY: c.Y + halfY}
}

// Degenerate reports a span with no extent on at least one axis.
func (s Span) Degenerate() bool {
	return s.UpperX <= s.LowerX || s.UpperY <= s.LowerY
}

func (s Span) Contains(c Coordinates) bool {
	return c.X >= s.LowerX && c.X <= s.UpperX && c.Y >= s.LowerY && c.Y <= s.UpperY
}

// Area is the number of coordinates inside the span.
func (s Span) Area() int {
	if s.UpperX < s.LowerX || s.UpperY < s.LowerY {
		return 0
	}
	return (s.UpperX - s.LowerX + 1) * (s.UpperY - s.LowerY + 1)
}

// Union returns the smallest span covering s and o.
func (s Span) Union(o Span) Span {
	return Span{
		LowerX: min(s.LowerX, o.LowerX),
		UpperX: max(s.UpperX, o.UpperX),
		LowerY: min(s.LowerY, o.LowerY),
		UpperY: max(s.UpperY, o.UpperY),
	}
}

// Each calls fn for every coordinate in row-major order: x outer, y inner, ascending.
func (s Span) Each(fn func(Coordinates)) {
	if s.UpperX < s.LowerX || s.UpperY < s.LowerY {
		return
	}
	// Bounds may sit at the int limits, so stop before incrementing past them.
	for x := s.LowerX; ; x++ {
		for y := s.LowerY; ; y++ {
			fn(Coordinates{X: x, Y: y})
			if y == s.UpperY {
				break
			}
		}
		if x == s.UpperX {
			break
		}
	}
}

func (s Span) String() string {
	return fmt.Sprintf("x∈[%d,%d] y∈[%d,%d]", s.LowerX, s.UpperX, s.LowerY, s.UpperY)
}

// halfExtent is the number of tiles needed on each side of the centre to cover extent.
func halfExtent(extent, tileSize float64) int {
	return int(math.Floor(extent / tileSize))
}
