package grid

// OffsetHandler receives the content offset and viewport size after every change.
type OffsetHandler func(offset Point, size Size)

// ScrollView is the scroll container hosting the grid surface.
type ScrollView interface {
	// Size is the visible viewport size.
	Size() Size
	ContentOffset() Point
	// SetContentOffset moves the viewport without animation.
	SetContentOffset(offset Point)
	// ExpandBounds pushes all four scroll edges outward by inset.
	ExpandBounds(inset float64)
	// LayoutIfNeeded resolves any pending layout synchronously.
	LayoutIfNeeded()
	// Subscribe registers fn for offset changes. The returned func unregisters it.
	Subscribe(fn OffsetHandler) (unsubscribe func(), err error)
}

// Surface is the rendering surface tiles are attached to.
type Surface interface {
	Size() Size
	// Center is the surface's visual centre in scroll content space.
	Center() Point
	Attach(t *Tile)
}
