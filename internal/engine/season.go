package engine

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"turf/internal/catalog"
	"turf/internal/rng"
)

// BoostCost is the energy debit for a district boost.
const BoostCost = 3

const (
	boostMin = 40
	boostMax = 80
)

var seasonStart = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)

// SeasonDay is the 1-based day number of the running season.
func SeasonDay(now time.Time) int {
	d := int(now.Sub(seasonStart).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	return d
}

// Boost pays a seeded-random contribution in [40, 80]. The seed mixes the
// day, district and today's running score, so repeated boosts within a
// session are not trivially predictable yet stay reproducible for a fixed
// state snapshot.
func (s *Service) Boost(ctx context.Context) (int, error) {
	if err := s.SpendEnergy(ctx, BoostCost); err != nil {
		return 0, err
	}
	seed := DayStamp(s.now()) + "|boost|" + s.districtOrNone() + "|" + strconv.Itoa(s.rec.ScoreToday)
	pts := rng.New(seed).Between(boostMin, boostMax)
	return s.Award(ctx, float64(pts), "Super contribution")
}

// seasonSwing maps a uniform draw to a centered daily swing. Floored, not
// truncated, so negative swings land on the lower integer.
func seasonSwing(f float64) int {
	return int(math.Floor((f - 0.5) * 600))
}

// Standing is one row of the cosmetic season table.
type Standing struct {
	District catalog.District
	Points   int
	Mine     bool
}

// SeasonStandings renders the demo standings: a seeded per-day base and
// swing per district, plus the user's own daily score on their district.
// Purely cosmetic; nothing aggregates real players without a server.
func (s *Service) SeasonStandings(districts []catalog.District) []Standing {
	rnd := rng.New("season|" + DayStamp(s.now()))
	rows := make([]Standing, 0, len(districts))
	for _, d := range districts {
		base := 1200 + int(rnd.Float64()*2200)
		swing := seasonSwing(rnd.Float64())
		mine := d.ID == s.rec.DistrictID
		pts := base + swing
		if mine {
			pts += s.rec.ScoreToday
		}
		if pts < 0 {
			pts = 0
		}
		rows = append(rows, Standing{District: d, Points: pts, Mine: mine})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Points > rows[j].Points })
	return rows
}
