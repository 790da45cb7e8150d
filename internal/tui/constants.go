package tui

// Package-level constants to avoid magic numbers and improve readability.
const (
	// chromeLines is the status line plus the footer below the grid.
	chromeLines = 2
	// minGridRows keeps a usable grid on very short terminals.
	minGridRows = 1

	edgeHorizontal = '─'
	edgeVertical   = '│'
	edgeCorner     = '┼'
)
