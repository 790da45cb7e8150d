package scrollhost

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idfusion/infinite-grid/internal/grid"
)

var ErrInvalidMove = errors.New("invalid move")

// Move is a single scroll step of a scripted session.
type Move struct {
	Name  string     `json:"move"`
	Delta grid.Point `json:"delta"`
}

//nolint:gochecknoglobals // lookup table
var directions = map[string]grid.Point{
	"left":  {X: -1},
	"l":     {X: -1},
	"right": {X: 1},
	"r":     {X: 1},
	"up":    {Y: -1},
	"u":     {Y: -1},
	"down":  {Y: 1},
	"d":     {Y: 1},
}

// ParseMove parses "dir[:n]" (n tiles, default 1) or "dx,dy" (screen units).
func ParseMove(s string, tileSize float64) (Move, error) {
	text := strings.TrimSpace(strings.ToLower(s))
	if text == "" {
		return Move{}, fmt.Errorf("%w: empty", ErrInvalidMove)
	}

	if dx, dy, ok := strings.Cut(text, ","); ok {
		x, err := strconv.ParseFloat(strings.TrimSpace(dx), 64)
		if err != nil {
			return Move{}, fmt.Errorf("%w %q: %w", ErrInvalidMove, s, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(dy), 64)
		if err != nil {
			return Move{}, fmt.Errorf("%w %q: %w", ErrInvalidMove, s, err)
		}
		if !finite(x) || !finite(y) {
			return Move{}, fmt.Errorf("%w %q: offsets must be finite", ErrInvalidMove, s)
		}
		return Move{Name: text, Delta: grid.Point{X: x, Y: y}}, nil
	}

	name, count, hasCount := strings.Cut(text, ":")
	dir, ok := directions[name]
	if !ok {
		return Move{}, fmt.Errorf("%w %q: unknown direction", ErrInvalidMove, s)
	}
	n := 1
	if hasCount {
		var err error
		n, err = strconv.Atoi(count)
		if err != nil || n < 0 {
			return Move{}, fmt.Errorf("%w %q: bad tile count", ErrInvalidMove, s)
		}
	}
	step := float64(n) * tileSize
	return Move{Name: text, Delta: grid.Point{X: dir.X * step, Y: dir.Y * step}}, nil
}

// ParseMoves parses each argument with ParseMove.
func ParseMoves(args []string, tileSize float64) ([]Move, error) {
	moves := make([]Move, 0, len(args))
	for _, a := range args {
		m, err := ParseMove(a, tileSize)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
