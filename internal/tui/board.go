package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"turf/internal/catalog"
	"turf/internal/engine"
)

// RunBoard opens the dashboard: stats, season standings and quick actions.
func RunBoard(ctx context.Context, svc *engine.Service, districts []catalog.District, out io.Writer) error {
	m := newBoardModel(ctx, svc, districts)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}

// RunPatrol plays a patrol session until it times out or the user leaves.
// The accumulated score is always flushed through the scoring pipeline.
func RunPatrol(ctx context.Context, svc *engine.Service, out io.Writer) error {
	session, err := svc.StartPatrol(ctx)
	if err != nil {
		return err
	}
	m := newPatrolModel(ctx, session)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err = p.Run()
	if err != nil {
		// Still flush the session so the score is not lost.
		_, _ = session.Stop(ctx)
		return err
	}
	return nil
}
