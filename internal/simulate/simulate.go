// Package simulate drives a grid controller through a scripted sequence of
// scroll moves without a terminal.
package simulate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/idfusion/infinite-grid/internal/grid"
	"github.com/idfusion/infinite-grid/internal/scrollhost"
)

const reportWidth = 60

// Step is the controller state after one move.
type Step struct {
	Move      string           `json:"move"`
	Centre    grid.Coordinates `json:"centre"`
	Allocated int              `json:"allocated"`
	Tiles     int              `json:"tiles"`
}

// Report describes a finished simulation.
type Report struct {
	Config    grid.Config   `json:"config"`
	Viewport  grid.Size     `json:"viewport"`
	Steps     []Step        `json:"steps"`
	Stats     grid.Stats    `json:"stats"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Simulator hosts a controller on an in-memory scroll view whose surface
// matches the viewport.
type Simulator struct {
	cfg      grid.Config
	viewport grid.Size
	view     *scrollhost.ScrollView
	surface  *scrollhost.Surface
	ctrl     *grid.Controller
}

func New(cfg grid.Config, viewport grid.Size, log logrus.FieldLogger) *Simulator {
	view, surface := scrollhost.New(viewport, viewport)
	return &Simulator{
		cfg:      cfg,
		viewport: viewport,
		view:     view,
		surface:  surface,
		ctrl:     grid.NewController(view, surface, cfg, grid.WithLogger(log)),
	}
}

func (s *Simulator) Controller() *grid.Controller { return s.ctrl }

// Run starts the controller, applies moves in order and reports every step.
// The first step is the initial population.
func (s *Simulator) Run(moves []scrollhost.Move) Report {
	r := Report{Config: s.cfg, Viewport: s.viewport, StartedAt: time.Now()}

	s.ctrl.Start()
	r.Steps = append(r.Steps, s.step("start", 0))
	for _, m := range moves {
		before := s.ctrl.Len()
		s.view.ScrollBy(m.Delta)
		r.Steps = append(r.Steps, s.step(m.Name, before))
	}

	r.Stats = s.ctrl.Stats()
	r.Duration = time.Since(r.StartedAt)
	logrus.Debugf("simulation finished: %d moves, %d tiles", len(moves), r.Stats.Tiles)
	return r
}

func (s *Simulator) step(name string, before int) Step {
	centre, _ := s.ctrl.Centre()
	return Step{Move: name, Centre: centre, Allocated: s.ctrl.Len() - before, Tiles: s.ctrl.Len()}
}

// Close stops the controller observing the scroll view.
func (s *Simulator) Close() { s.ctrl.Close() }

// PrintReport writes r as indented JSON or as a plain-text table.
func PrintReport(w io.Writer, r Report, jsonOutput bool) error {
	if jsonOutput {
		output, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	}

	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintln(w, "INFINITE GRID SIMULATION")
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintf(w, "Viewport: %gx%g  Tile size: %g  Reference: %s\n",
		r.Viewport.Width, r.Viewport.Height, r.Config.TileSize, r.Config.Reference)
	fmt.Fprintln(w, strings.Repeat("-", reportWidth))
	fmt.Fprintf(w, "%-4s %-16s %-16s %8s %8s\n", "#", "MOVE", "CENTRE", "NEW", "TOTAL")
	for i, st := range r.Steps {
		fmt.Fprintf(w, "%-4d %-16s %-16s %8d %8d\n", i, st.Move, st.Centre, st.Allocated, st.Tiles)
	}
	fmt.Fprintln(w, strings.Repeat("-", reportWidth))
	fmt.Fprintf(w, "Tiles: %d  Explored: %s  (duration: %s)\n", r.Stats.Tiles, r.Stats.Explored, HumanDuration(r.Duration))
	return nil
}

// HumanDuration renders d at a precision that suits its magnitude.
func HumanDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d/time.Microsecond)
	case d < time.Second:
		return fmt.Sprintf("%dms", d/time.Millisecond)
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", d/time.Minute, (d%time.Minute)/time.Second)
	default:
		return fmt.Sprintf("%dh%02dm", d/time.Hour, (d%time.Hour)/time.Minute)
	}
}
