package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/idfusion/infinite-grid/internal/config"
	"github.com/idfusion/infinite-grid/internal/grid"
)

// Run starts the Bubble Tea program and blocks until the user quits. It
// returns the controller's stats for the session.
func Run(ctx context.Context, cfg config.Config) (grid.Stats, error) {
	model := NewModel(cfg, logrus.WithField("component", "grid"))
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Silence logs during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	final, err := p.Run()
	if err != nil {
		return grid.Stats{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return grid.Stats{}, fmt.Errorf("unexpected final model %T", final)
	}
	return m.Close(), nil
}
