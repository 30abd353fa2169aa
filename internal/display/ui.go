package display

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// ── UI ───────────────────────────────────────────────────────────

// UI runs a Model full-screen with mouse reporting.
type UI struct {
	model *Model
	opts  []tea.ProgramOption
}

// NewUI creates the runner. Extra program options are appended to the
// defaults, so tests can swap input and output.
func NewUI(m *Model, opts ...tea.ProgramOption) *UI {
	return &UI{model: m, opts: opts}
}

// Run starts the Bubble Tea event loop. Blocks until the user quits or
// ctx is cancelled; cancellation is not an error.
func (u *UI) Run(ctx context.Context) error {
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, u.opts...)

	p := tea.NewProgram(u.model, opts...)
	_, err := p.Run()
	u.model.Close()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
