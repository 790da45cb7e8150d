package grid

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// Stats summarises the controller's work so far.
type Stats struct {
	Tiles int `json:"tiles"`
	// Notifications counts every viewport movement handled.
	Notifications int `json:"notifications"`
	// Passes counts population passes that ran over a required span.
	Passes   int         `json:"passes"`
	Centre   Coordinates `json:"centre"`
	Explored Span        `json:"explored"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

type move struct {
	offset Point
	size   Size
}

// Controller owns the coordinate system and the allocated tiles, and
// populates the grid as the scroll view moves. It is not safe for
// concurrent use; every call is expected on the host's UI goroutine.
type Controller struct {
	cfg     Config
	view    ScrollView
	surface Surface
	log     logrus.FieldLogger

	tiles     map[Coordinates]*Tile
	centre    Coordinates
	hasCentre bool
	explored  Span

	notifications int
	passes        int

	started     bool
	unsubscribe func()
	handling    bool
	pending     *move
}

// NewController binds a controller to its scroll view and surface. Either may be nil;
// the controller then stays inert for the missing side.
func NewController(view ScrollView, surface Surface, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:     cfg,
		view:    view,
		surface: surface,
		log:     logrus.WithField("component", "grid"),
		tiles:   make(map[Coordinates]*Tile),
	}
	for _, opt := range opts {
		opt(c)
	}
	if cfg.TileSize <= 0 {
		c.log.WithField("tile_size", cfg.TileSize).Warn("tile size must be positive; population disabled")
	}
	return c
}

// Start runs the initialization protocol: expand the scrollable area, centre
// the viewport on the reference tile, populate, then observe offset changes.
// Calling Start again has no effect.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true

	if c.view == nil {
		c.log.Error("no scroll view attached; populating bootstrap tiles only")
		c.bootstrap()
		return
	}

	c.defineScrollableArea()
	c.CentreViewport()
	c.ViewportMoved(c.view.ContentOffset(), c.view.Size())
	c.Observe()
}

// Observe subscribes to the scroll view's offset changes once.
func (c *Controller) Observe() {
	if c.unsubscribe != nil || c.view == nil {
		return
	}
	unsubscribe, err := c.view.Subscribe(c.ViewportMoved)
	if err != nil || unsubscribe == nil {
		c.log.WithError(err).Error("offset observation unavailable; tiles will not follow the viewport")
		return
	}
	c.unsubscribe = unsubscribe
}

// Close stops observing the scroll view. It is safe to call at any time, more than once.
func (c *Controller) Close() {
	if c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
	c.log.Debug("stopped observing scroll view")
}

func (c *Controller) defineScrollableArea() {
	c.view.ExpandBounds(c.cfg.LargeOffset)
	c.view.LayoutIfNeeded()
}

// CentreViewport scrolls so the surface's centre sits at the centre of the viewport.
func (c *Controller) CentreViewport() {
	if c.view == nil {
		return
	}
	vs, ss := c.view.Size(), c.surfaceSize()
	c.view.SetContentOffset(Point{
		X: c.cfg.LargeOffset - (vs.Width-ss.Width)*0.5,
		Y: c.cfg.LargeOffset - (vs.Height-ss.Height)*0.5,
	})
}

func (c *Controller) bootstrap() {
	if c.cfg.TileSize <= 0 {
		return
	}
	c.centre, c.hasCentre = c.cfg.Reference, true
	r := c.cfg.BootstrapRadius
	c.Populate(SpanAround(c.cfg.Reference, r, r))
}

// FrameFor maps coordinates to the frame of their tile in surface space.
func (c *Controller) FrameFor(coords Coordinates) Rect {
	ss := c.surfaceSize()
	ts := c.cfg.TileSize
	dx := float64(coords.X - c.cfg.Reference.X)
	dy := float64(coords.Y - c.cfg.Reference.Y)
	return Rect{
		X:      ss.Width/2 + ts*(dx-0.5),
		Y:      ss.Height/2 + ts*(dy-0.5),
		Width:  ts,
		Height: ts,
	}
}

// CoordinatesAt returns the coordinates of the tile slot covering p, a point in
// scroll content space. It reports false when the mapping is undefined.
func (c *Controller) CoordinatesAt(p Point) (Coordinates, bool) {
	if c.cfg.TileSize <= 0 || c.surface == nil {
		return Coordinates{}, false
	}
	centre := c.surface.Center()
	x, okX := tileIndex(-(centre.X - p.X), c.cfg.TileSize, c.cfg.Reference.X)
	y, okY := tileIndex(-(centre.Y - p.Y), c.cfg.TileSize, c.cfg.Reference.Y)
	if !okX || !okY {
		return Coordinates{}, false
	}
	return Coordinates{X: x, Y: y}, true
}

// tileIndex rounds offset to whole tiles and shifts it by ref. It reports false
// when the result is not finite or does not fit in an int.
func tileIndex(offset, tileSize float64, ref int) (int, bool) {
	r := math.Round(offset / tileSize)
	// float64(math.MaxInt) is 2^63, one past the largest int.
	if math.IsNaN(r) || r < math.MinInt || r >= math.MaxInt {
		return 0, false
	}
	n := int(r)
	sum := n + ref
	if (ref > 0 && sum < n) || (ref < 0 && sum > n) {
		return 0, false
	}
	return sum, true
}

// CentreFor returns the coordinates under the centre of a viewport at offset.
// When the mapping is undefined the previous centre is returned unchanged.
func (c *Controller) CentreFor(offset Point, size Size) Coordinates {
	if centre, ok := c.centreFor(offset, size); ok {
		return centre
	}
	return c.centre
}

func (c *Controller) centreFor(offset Point, size Size) (Coordinates, bool) {
	return c.CoordinatesAt(Point{X: offset.X + size.Width/2, Y: offset.Y + size.Height/2})
}

// ViewportMoved populates every missing tile around the viewport's new centre.
// Calls made while a pass is running are coalesced and handled after it.
func (c *Controller) ViewportMoved(offset Point, size Size) {
	if c.handling {
		c.pending = &move{offset: offset, size: size}
		return
	}
	c.handling = true
	defer func() { c.handling = false }()

	next := move{offset: offset, size: size}
	for {
		c.handleMove(next)
		if c.pending == nil {
			return
		}
		next = *c.pending
		c.pending = nil
	}
}

func (c *Controller) handleMove(m move) {
	c.notifications++
	centre, ok := c.centreFor(m.offset, m.size)
	if !ok {
		c.log.Debug("centre undefined; skipping population")
		return
	}
	if c.hasCentre && centre == c.centre {
		return
	}
	c.centre, c.hasCentre = centre, true

	span, ok := c.RequiredSpan(centre, c.extent(m.size))
	if !ok {
		c.log.WithFields(logrus.Fields{"centre": centre, "span": span}).Debug("degenerate span; skipping population")
		return
	}
	c.Populate(span)
}

func (c *Controller) extent(measured Size) Size {
	if !c.cfg.ViewportExtent.IsZero() {
		return c.cfg.ViewportExtent
	}
	return measured
}

// RequiredSpan is the span that must be populated to cover a viewport of the
// given extent centred on centre. It reports false for a degenerate span.
func (c *Controller) RequiredSpan(centre Coordinates, extent Size) (Span, bool) {
	if c.cfg.TileSize <= 0 {
		return Span{}, false
	}
	span := SpanAround(centre,
		halfExtent(extent.Width, c.cfg.TileSize),
		halfExtent(extent.Height, c.cfg.TileSize),
	)
	return span, !span.Degenerate()
}

// Populate allocates and attaches every tile of span that does not exist yet.
// It returns the number of tiles created.
func (c *Controller) Populate(span Span) int {
	added := 0
	span.Each(func(coords Coordinates) {
		if _, ok := c.tiles[coords]; ok {
			return
		}
		t := NewTile(c.FrameFor(coords), coords)
		if len(c.tiles) == 0 {
			c.explored = Span{LowerX: coords.X, UpperX: coords.X, LowerY: coords.Y, UpperY: coords.Y}
		} else {
			c.explored = c.explored.Union(Span{LowerX: coords.X, UpperX: coords.X, LowerY: coords.Y, UpperY: coords.Y})
		}
		c.tiles[coords] = t
		if c.surface != nil {
			c.surface.Attach(t)
		}
		added++
	})
	c.passes++
	c.log.WithFields(logrus.Fields{
		"span":  span.String(),
		"added": added,
		"total": len(c.tiles),
	}).Debug("populated tiles")
	return added
}

// Tile returns the tile at coords if it has been allocated.
func (c *Controller) Tile(coords Coordinates) (*Tile, bool) {
	t, ok := c.tiles[coords]
	return t, ok
}

// Tiles returns every allocated tile in row-major order.
func (c *Controller) Tiles() []*Tile {
	out := make([]*Tile, 0, len(c.tiles))
	for _, t := range c.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].coordinates, out[j].coordinates
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return out
}

func (c *Controller) Len() int { return len(c.tiles) }

// Centre returns the last computed centre, and false before the first one.
func (c *Controller) Centre() (Coordinates, bool) { return c.centre, c.hasCentre }

func (c *Controller) Config() Config { return c.cfg }

func (c *Controller) Stats() Stats {
	return Stats{
		Tiles:         len(c.tiles),
		Notifications: c.notifications,
		Passes:        c.passes,
		Centre:        c.centre,
		Explored:      c.explored,
	}
}

func (c *Controller) surfaceSize() Size {
	if c.surface == nil {
		return Size{}
	}
	return c.surface.Size()
}
