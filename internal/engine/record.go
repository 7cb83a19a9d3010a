// Package engine is the progression core: the durable progress record, the
// daily rollover state machine, the energy economy, the scoring pipeline and
// the startup reconciliation against the remote mirror.
package engine

import (
	"turf/internal/platform"
)

const (
	// SchemaVersion is stored on every persisted record for forward migration.
	SchemaVersion = 1

	// MaxEnergy caps how much energy a record can hold.
	MaxEnergy = 12

	// DailyRefill is added to energy on each daily rollover, capped at
	// MaxEnergy. Unspent energy partially carries over; there is no
	// intra-day regeneration.
	DailyRefill = 6
)

// ActivityKind keys the per-activity best-score map.
type ActivityKind string

const (
	ActivityPatrol ActivityKind = "patrol"
	ActivityQuiz   ActivityKind = "quiz"
)

// ProgressRecord is the sole persisted entity: one instance per device and
// user. All mutation funnels through Service operations so durability never
// lags in-memory state by more than one pending write.
type ProgressRecord struct {
	Version    int            `json:"version"`
	DistrictID string         `json:"district_id,omitempty"`
	ScoreTotal int            `json:"score_total"`
	ScoreToday int            `json:"score_today"`
	Streak     int            `json:"streak"`
	Energy     int            `json:"energy"`
	LastDay    string         `json:"last_day,omitempty"`
	Bests      map[string]int `json:"bests,omitempty"`
	CheckinDay string         `json:"checkin_day,omitempty"`
	User       *platform.User `json:"user,omitempty"`
}

// DefaultRecord is the fresh state: no district, full energy, no history.
func DefaultRecord() *ProgressRecord {
	return &ProgressRecord{
		Version: SchemaVersion,
		Energy:  MaxEnergy,
		Bests:   map[string]int{},
	}
}

// normalize repairs out-of-range values after decoding an untrusted blob.
// Day stamps are left as-is; Rollover treats anything it cannot parse as a
// fresh start.
func (r *ProgressRecord) normalize() {
	if r.Version == 0 {
		r.Version = SchemaVersion
	}
	if r.Energy < 0 {
		r.Energy = 0
	}
	if r.Energy > MaxEnergy {
		r.Energy = MaxEnergy
	}
	if r.ScoreTotal < 0 {
		r.ScoreTotal = 0
	}
	if r.ScoreToday < 0 {
		r.ScoreToday = 0
	}
	if r.Streak < 0 {
		r.Streak = 0
	}
	if r.Bests == nil {
		r.Bests = map[string]int{}
	}
}

// Best returns the highest recorded single-session score for the activity.
func (r *ProgressRecord) Best(kind ActivityKind) int {
	return r.Bests[string(kind)]
}

// noteBest raises the per-activity best. It never decreases.
func (r *ProgressRecord) noteBest(kind ActivityKind, score int) {
	if score > r.Bests[string(kind)] {
		r.Bests[string(kind)] = score
	}
}

// Clone returns a deep copy, used to hand the presentation layer a view it
// cannot mutate through.
func (r *ProgressRecord) Clone() *ProgressRecord {
	cp := *r
	cp.Bests = make(map[string]int, len(r.Bests))
	for k, v := range r.Bests {
		cp.Bests[k] = v
	}
	if r.User != nil {
		u := *r.User
		cp.User = &u
	}
	return &cp
}
