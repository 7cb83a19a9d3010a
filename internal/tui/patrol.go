package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"turf/internal/engine"
	"turf/internal/ui"
)

// The arena is a 3x3 keypad: targets land in slots 1-9 and are tapped with
// the matching digit key before their TTL runs out.
const (
	arenaSlots  = 9
	arenaWidth  = 400
	arenaHeight = 300
	tickEvery   = 100 * time.Millisecond
)

type slotTarget struct {
	target  engine.Target
	expires time.Time
}

type patrolModel struct {
	ctx     context.Context
	session *engine.PatrolSession

	slots     [arenaSlots]*slotTarget
	nextSpawn time.Time

	finished bool
	payout   int
	err      error
}

type tickMsg time.Time

func newPatrolModel(ctx context.Context, session *engine.PatrolSession) patrolModel {
	return patrolModel{ctx: ctx, session: session, nextSpawn: time.Now()}
}

func tick() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m patrolModel) Init() tea.Cmd { return tick() }

// slotFor maps a spawned target's arena position onto the keypad.
func slotFor(t engine.Target) int {
	col := t.X * 3 / arenaWidth
	row := t.Y * 3 / arenaHeight
	if col < 0 {
		col = 0
	}
	if col > 2 {
		col = 2
	}
	if row < 0 {
		row = 0
	}
	if row > 2 {
		row = 2
	}
	return row*3 + col
}

func (m patrolModel) finish() (patrolModel, tea.Cmd) {
	if m.finished {
		return m, tea.Quit
	}
	m.finished = true
	m.payout, m.err = m.session.Stop(m.ctx)
	return m, tea.Quit
}

func (m patrolModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if m.session.Expired() {
			return m.finish()
		}
		for i, s := range m.slots {
			if s != nil && now.After(s.expires) {
				m.slots[i] = nil
			}
		}
		if !now.Before(m.nextSpawn) {
			t := m.session.Spawn(arenaWidth, arenaHeight)
			slot := slotFor(t)
			m.slots[slot] = &slotTarget{target: t, expires: now.Add(t.TTL)}
			m.nextSpawn = now.Add(engine.PatrolSpawnEvery)
		}
		return m, tick()
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "q", "esc":
			return m.finish()
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(key[0] - '1')
			if s := m.slots[idx]; s != nil {
				m.session.Tap(s.target)
				m.slots[idx] = nil
			}
			return m, nil
		}
	}
	return m, nil
}

func (m patrolModel) View() string {
	if m.finished {
		if m.err != nil {
			return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
		}
		return ui.Award(m.payout, "District patrol") + "\n"
	}

	rows := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			idx := row*3 + col
			cell := ui.Muted.Render(fmt.Sprintf(" %d ", idx+1))
			if s := m.slots[idx]; s != nil {
				if s.target.Hostile {
					cell = ui.Bad.Render(" ✖ ")
				} else {
					cell = ui.Good.Render(" ● ")
				}
			}
			cells = append(cells, ui.Panel.Render(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	status := fmt.Sprintf("%s %2.0fs  %s %d  %s x%d",
		ui.Key.Render("Time"), m.session.Remaining().Seconds(),
		ui.Key.Render("Score"), m.session.Score(),
		ui.Key.Render("Combo"), m.session.Combo(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.Heading(ui.IconPatrol, "Patrol — tap the green, dodge the red"),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		status,
		ui.Muted.Render("1-9 tap • esc leave (score is kept)"),
	)
}
