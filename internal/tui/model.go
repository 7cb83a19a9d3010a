package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"turf/internal/catalog"
	"turf/internal/engine"
	"turf/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	districts []catalog.District
	standings table.Model

	width  int
	height int

	lastLog string
}

func newBoardModel(ctx context.Context, svc *engine.Service, districts []catalog.District) boardModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "District", Width: 24},
			{Title: "Points", Width: 8},
		}),
		table.WithHeight(len(districts)+1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("63"))
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)

	m := boardModel{
		ctx:       ctx,
		svc:       svc,
		districts: districts,
		standings: t,
		lastLog:   "Ready.",
	}
	m.refresh()
	return m
}

func (m *boardModel) refresh() {
	rows := make([]table.Row, 0, len(m.districts))
	for i, s := range m.svc.SeasonStandings(m.districts) {
		name := s.District.Name
		if s.Mine {
			name += " ←"
		}
		rows = append(rows, table.Row{strconv.Itoa(i + 1), name, strconv.Itoa(s.Points)})
	}
	m.standings.SetRows(rows)
}

func (m boardModel) Init() tea.Cmd { return nil }

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			if err := m.svc.Rollover(m.ctx); err != nil {
				m.lastLog = ui.Bad.Render(err.Error())
			} else {
				m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
			}
			m.refresh()
			return m, nil
		case "b":
			// Service mutations stay on the event-loop goroutine; a tea.Cmd
			// would run Boost concurrently with View's Record snapshot.
			if pts, err := m.svc.Boost(m.ctx); err != nil {
				m.lastLog = ui.Bad.Render(ui.IconError + " " + err.Error())
			} else {
				m.lastLog = ui.Award(pts, "Super contribution")
			}
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.standings, cmd = m.standings.Update(msg)
	return m, cmd
}

func (m boardModel) View() string {
	rec := m.svc.Record()
	d := catalog.DistrictByID(m.districts, rec.DistrictID)
	name := "—"
	if d != nil {
		name = d.Name
	}

	stats := lipgloss.JoinVertical(lipgloss.Left,
		ui.PanelTitle.Render(ui.IconDistrict+" "+name),
		ui.LabelValue("Total", rec.ScoreTotal),
		ui.LabelValue("Today", rec.ScoreToday),
		ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFire, rec.Streak)),
		ui.LabelValue("Energy", fmt.Sprintf("%s %d/%d", ui.IconBolt, rec.Energy, engine.MaxEnergy)),
		ui.LabelValue("Patrol best", rec.Best(engine.ActivityPatrol)),
		ui.LabelValue("Quiz best", rec.Best(engine.ActivityQuiz)),
	)

	season := lipgloss.JoinVertical(lipgloss.Left,
		ui.PanelTitle.Render(ui.IconRocket+fmt.Sprintf(" Season • day %d", engine.SeasonDay(time.Now()))),
		m.standings.View(),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, ui.Panel.Render(stats), " ", ui.Panel.Render(season))
	help := ui.Muted.Render("b boost (3⚡) • r refresh • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.Heading(ui.IconSparkle, "Turf — district battle"),
		body,
		m.lastLog,
		help,
	)
}
