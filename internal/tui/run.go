package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, eng *engine.Engine, roster model.Roster, opts ...Option) error {
	m, err := New(eng, roster, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			// canceled by signal, the terminal is already restored
			return nil
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
