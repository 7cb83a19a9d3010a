package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"turf/internal/catalog"
	"turf/internal/engine"
	"turf/internal/storage"
)

func newTestBoard(t *testing.T) (boardModel, *engine.Service) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	st := engine.NewStore(storage.NewBlobRepo(db), nil, false)
	svc := engine.NewService(engine.Params{Store: st})

	districts, err := catalog.Districts("")
	if err != nil {
		t.Fatalf("districts: %v", err)
	}
	if err := svc.Join(ctx, districts, districts[0].ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	return newBoardModel(ctx, svc, districts), svc
}

func pressKey(t *testing.T, m boardModel, key rune) (boardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
	bm, ok := next.(boardModel)
	if !ok {
		t.Fatalf("update returned %T, want boardModel", next)
	}
	return bm, cmd
}

// Boost must complete on the event-loop goroutine before Update returns.
// If it were deferred to a command, it would mutate the record concurrently
// with View.
func TestBoostKeyMutatesSynchronously(t *testing.T) {
	m, svc := newTestBoard(t)

	before := svc.Record()
	m, cmd := pressKey(t, m, 'b')
	if cmd != nil {
		t.Fatalf("boost key returned a deferred command")
	}

	after := svc.Record()
	if after.Energy != before.Energy-engine.BoostCost {
		t.Fatalf("energy = %d, want %d", after.Energy, before.Energy-engine.BoostCost)
	}
	if after.ScoreToday <= before.ScoreToday {
		t.Fatalf("boost not applied before Update returned: today = %d", after.ScoreToday)
	}
	if m.lastLog == "Ready." {
		t.Fatalf("boost result not reflected in the log line")
	}
}

func TestBoostKeyReportsEnergyDenial(t *testing.T) {
	m, svc := newTestBoard(t)

	// 12 energy funds exactly four boosts.
	for i := 0; i < 4; i++ {
		var cmd tea.Cmd
		m, cmd = pressKey(t, m, 'b')
		if cmd != nil {
			t.Fatalf("boost %d returned a deferred command", i+1)
		}
	}
	drained := svc.Record()
	if drained.Energy != 0 {
		t.Fatalf("energy after four boosts = %d, want 0", drained.Energy)
	}

	m, cmd := pressKey(t, m, 'b')
	if cmd != nil {
		t.Fatalf("denied boost returned a deferred command")
	}
	after := svc.Record()
	if after.ScoreToday != drained.ScoreToday || after.Energy != 0 {
		t.Fatalf("denied boost mutated the record: %+v", after)
	}
	if m.lastLog == "Ready." {
		t.Fatalf("denial not reflected in the log line")
	}
}
