// Package scrollhost provides an in-memory scroll container and surface for
// hosting a grid.Controller outside a platform UI toolkit.
package scrollhost

import (
	"errors"
	"math"

	"github.com/idfusion/infinite-grid/internal/grid"
)

var ErrNilHandler = errors.New("nil offset handler")

type subscriber struct {
	id int
	fn grid.OffsetHandler
}

// ScrollView is a scroll container with hard edges. Its content is the
// surface padded by the configured inset on every edge, and offsets are
// clamped to that content.
type ScrollView struct {
	size         grid.Size
	content      grid.Size
	inset        float64
	pendingInset float64
	offset       grid.Point

	subscribers []subscriber
	nextID      int
}

// NewScrollView returns a view of the given viewport size over content of the given natural size.
func NewScrollView(viewport, content grid.Size) *ScrollView {
	return &ScrollView{size: viewport, content: content}
}

// New returns a scroll view and a surface filling its natural content.
func New(viewport, surface grid.Size) (*ScrollView, *Surface) {
	v := NewScrollView(viewport, surface)
	return v, NewSurface(v)
}

func (v *ScrollView) Size() grid.Size { return v.size }

func (v *ScrollView) ContentOffset() grid.Point { return v.offset }

// ContentSize is the scrollable extent including the insets.
func (v *ScrollView) ContentSize() grid.Size {
	return grid.Size{
		Width:  v.content.Width + 2*v.inset,
		Height: v.content.Height + 2*v.inset,
	}
}

// ExpandBounds records a new inset; it takes effect on the next LayoutIfNeeded.
func (v *ScrollView) ExpandBounds(inset float64) {
	if inset < 0 {
		inset = 0
	}
	v.pendingInset = inset
}

func (v *ScrollView) LayoutIfNeeded() {
	if v.pendingInset == v.inset {
		return
	}
	v.inset = v.pendingInset
	v.offset = v.clamp(v.offset)
}

// SurfaceOrigin is where the surface's top-left corner sits in content space.
func (v *ScrollView) SurfaceOrigin() grid.Point {
	return grid.Point{X: v.inset, Y: v.inset}
}

// SetContentOffset moves the viewport, clamped to the content, and notifies
// subscribers when the offset actually changes. Non-finite offsets are ignored.
func (v *ScrollView) SetContentOffset(offset grid.Point) {
	if !finite(offset.X) || !finite(offset.Y) {
		return
	}
	clamped := v.clamp(offset)
	if clamped == v.offset {
		return
	}
	v.offset = clamped
	v.notify()
}

// ScrollBy moves the viewport by delta.
func (v *ScrollView) ScrollBy(delta grid.Point) {
	v.SetContentOffset(v.offset.Add(delta))
}

// Resize changes the viewport size and notifies subscribers.
func (v *ScrollView) Resize(size grid.Size) {
	if size == v.size {
		return
	}
	v.size = size
	v.offset = v.clamp(v.offset)
	v.notify()
}

// Subscribe registers fn for offset and size changes.
func (v *ScrollView) Subscribe(fn grid.OffsetHandler) (func(), error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	v.nextID++
	id := v.nextID
	v.subscribers = append(v.subscribers, subscriber{id: id, fn: fn})
	return func() { v.unsubscribe(id) }, nil
}

// Subscribers is the number of registered handlers.
func (v *ScrollView) Subscribers() int { return len(v.subscribers) }

func (v *ScrollView) unsubscribe(id int) {
	for i, s := range v.subscribers {
		if s.id == id {
			v.subscribers = append(v.subscribers[:i], v.subscribers[i+1:]...)
			return
		}
	}
}

func (v *ScrollView) notify() {
	// Handlers may unsubscribe while being notified.
	subs := append([]subscriber(nil), v.subscribers...)
	for _, s := range subs {
		s.fn(v.offset, v.size)
	}
}

func (v *ScrollView) clamp(p grid.Point) grid.Point {
	cs := v.ContentSize()
	return grid.Point{
		X: clamp(p.X, 0, cs.Width-v.size.Width),
		Y: clamp(p.Y, 0, cs.Height-v.size.Height),
	}
}

func clamp(x, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return min(max(x, lo), hi)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
