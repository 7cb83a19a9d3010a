package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"turf/internal/catalog"
	"turf/internal/platform"
)

// Default check-in reference point (the launch site next to the city).
const (
	defaultHomeLat = 45.6167
	defaultHomeLon = 63.3167
)

// AwardEvent is the observable notification the scoring pipeline emits for
// the presentation layer.
type AwardEvent struct {
	Points int
	Reason string
}

// Params configures a Service. Store is required; everything else is
// optional and degrades to an absent capability.
type Params struct {
	Store    *Store
	Identity platform.Identity
	Haptics  platform.Haptics
	HomeLat  float64
	HomeLon  float64
}

// Service owns the in-memory progress record and exposes every operation
// that may mutate it. Single logical thread: callers never interleave
// mutating operations.
type Service struct {
	store    *Store
	identity platform.Identity
	haptics  platform.Haptics
	homeLat  float64
	homeLon  float64

	now func() time.Time

	// OnAward, when set, observes every payout.
	OnAward func(AwardEvent)

	rec *ProgressRecord
}

func NewService(p Params) *Service {
	s := &Service{
		store:    p.Store,
		identity: p.Identity,
		haptics:  p.Haptics,
		homeLat:  p.HomeLat,
		homeLon:  p.HomeLon,
		now:      time.Now,
		rec:      DefaultRecord(),
	}
	if s.haptics == nil {
		s.haptics = platform.NoopHaptics{}
	}
	if s.homeLat == 0 && s.homeLon == 0 {
		s.homeLat, s.homeLon = defaultHomeLat, defaultHomeLon
	}
	return s
}

// Record returns a copy of the current record for rendering. Mutation goes
// through operations only.
func (s *Service) Record() *ProgressRecord {
	return s.rec.Clone()
}

// Bootstrap loads local state, rolls the day over, captures the platform
// identity, then reconciles the remote snapshot and rolls over again, since
// reconciliation can retroactively change the last active day.
func (s *Service) Bootstrap(ctx context.Context) error {
	s.rec = s.store.Load(ctx)
	if err := s.Rollover(ctx); err != nil {
		return err
	}

	if s.identity != nil {
		if u := s.identity.CurrentUser(); u != nil {
			s.rec.User = u
			if err := s.store.SaveLocal(ctx, s.rec); err != nil {
				return err
			}
		}
	}

	if remote, ok := s.store.FetchRemote(ctx); ok {
		merged, adopted := Reconcile(s.rec, remote)
		if adopted {
			s.rec = merged
			if err := s.store.SaveLocal(ctx, s.rec); err != nil {
				return err
			}
		}
	}
	return s.Rollover(ctx)
}

// Rollover runs the daily state machine. Idempotent within a calendar day;
// safe to call any number of times per session.
func (s *Service) Rollover(ctx context.Context) error {
	today := DayStamp(s.now())
	if s.rec.LastDay == today {
		return nil
	}

	if s.rec.LastDay == "" {
		s.rec.Streak = 0
	} else if gap, ok := daysBetween(s.rec.LastDay, today); ok && gap == 1 {
		s.rec.Streak++
	} else {
		// Covers clock skew, multi-day gaps and unparsable stamps.
		s.rec.Streak = 0
	}

	s.rec.LastDay = today
	s.rec.ScoreToday = 0
	s.rec.Energy = clamp(s.rec.Energy+DailyRefill, 0, MaxEnergy)
	s.rec.CheckinDay = ""
	return s.store.Save(ctx, s.rec)
}

// SpendEnergy authorizes an action costing the given energy. On denial
// nothing is mutated; on success the debit is persisted before the gated
// action runs.
func (s *Service) SpendEnergy(ctx context.Context, cost int) error {
	if cost < 0 {
		cost = 0
	}
	if s.rec.Energy < cost {
		s.haptics.Pulse(platform.HapticError)
		return EnergyError{Cost: cost, Have: s.rec.Energy}
	}
	s.rec.Energy -= cost
	return s.store.Save(ctx, s.rec)
}

// Award converts a raw outcome into points: clamps negative to zero, rounds
// to the nearest integer, applies to both totals atomically and persists.
// The returned value is what was actually credited.
func (s *Service) Award(ctx context.Context, raw float64, reason string) (int, error) {
	points := int(math.Round(math.Max(0, raw)))
	s.rec.ScoreTotal += points
	s.rec.ScoreToday += points
	if err := s.store.Save(ctx, s.rec); err != nil {
		return 0, err
	}
	s.haptics.Pulse(platform.HapticSuccess)
	if s.OnAward != nil {
		s.OnAward(AwardEvent{Points: points, Reason: reason})
	}
	return points, nil
}

// Join starts a season in the given district: the record is replaced with
// defaults keeping only the chosen district and the known identity, stamped
// today at full energy.
func (s *Service) Join(ctx context.Context, districts []catalog.District, id string) error {
	if catalog.DistrictByID(districts, id) == nil {
		return fmt.Errorf("unknown district %q", id)
	}
	user := s.rec.User
	s.rec = DefaultRecord()
	s.rec.DistrictID = id
	s.rec.LastDay = DayStamp(s.now())
	s.rec.User = user
	return s.store.Save(ctx, s.rec)
}

// Reset replaces the record with defaults. District affiliation, scores,
// streak and bests are all gone; the identity is re-captured on next start.
func (s *Service) Reset(ctx context.Context) error {
	s.rec = DefaultRecord()
	return s.store.Save(ctx, s.rec)
}

// ShareLine formats the score-sharing text for the current record.
func (s *Service) ShareLine(d *catalog.District) string {
	name := "my district"
	if d != nil {
		name = d.Name
	}
	return fmt.Sprintf("I scored %d points for %s. Join the district battle!", s.rec.ScoreTotal, name)
}

// districtOrNone keys seeds for users who have not picked a district yet.
func (s *Service) districtOrNone() string {
	if s.rec.DistrictID == "" {
		return "none"
	}
	return s.rec.DistrictID
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
