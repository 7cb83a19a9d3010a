package engine

import (
	"context"
	"fmt"
	"time"

	"turf/internal/platform"
	"turf/internal/rng"
)

const (
	// PatrolCost is the energy debit to start a patrol session.
	PatrolCost = 2

	// PatrolDuration is the fixed session length.
	PatrolDuration = 30 * time.Second

	// PatrolSpawnEvery paces the target spawner.
	PatrolSpawnEvery = 430 * time.Millisecond

	patrolCap     = 120
	comboWindow   = 420 * time.Millisecond
	maxCombo      = 10
	hostileChance = 0.22
	hitBase       = 6
	hostileMiss   = 10
)

type PatrolState int

const (
	PatrolIdle PatrolState = iota
	PatrolRunning
	PatrolStopped
)

// Target is one spawned patrol target. Hostile targets punish a tap;
// friendly ones pay out on the combo ladder.
type Target struct {
	X, Y    int
	Hostile bool
	TTL     time.Duration
}

// PatrolSession is the tap mini-activity as an explicit state machine:
// idle → running → stopped. Stop flushes the accumulated score through the
// scoring pipeline exactly once, whatever path stops it (timeout, user exit,
// navigation away).
type PatrolSession struct {
	svc *Service
	rnd *rng.Stream

	state    PatrolState
	deadline time.Time

	score   int
	combo   int
	lastHit time.Time
}

// StartPatrol debits energy and opens a running session. The spawn stream is
// seeded by day + district + activity, so every player in a district sees
// the same layout that day.
func (s *Service) StartPatrol(ctx context.Context) (*PatrolSession, error) {
	if err := s.SpendEnergy(ctx, PatrolCost); err != nil {
		return nil, err
	}
	seed := DayStamp(s.now()) + "|" + s.districtOrNone() + "|patrol"
	return &PatrolSession{
		svc:      s,
		rnd:      rng.New(seed),
		state:    PatrolRunning,
		deadline: s.now().Add(PatrolDuration),
		combo:    1,
	}, nil
}

// Spawn draws the next target for an arena of the given size. Position and
// alignment come only from the seeded stream.
func (p *PatrolSession) Spawn(width, height int) Target {
	x := 12 + int(p.rnd.Float64()*float64(width-80))
	y := 60 + int(p.rnd.Float64()*float64(height-90))
	hostile := p.rnd.Float64() <= hostileChance
	ttl := 900 * time.Millisecond
	if hostile {
		ttl = 750 * time.Millisecond
	}
	return Target{X: x, Y: y, Hostile: hostile, TTL: ttl}
}

// Tap registers a hit on a target. Friendly hits pay base plus combo; a
// quick follow-up (within the combo window) climbs the ladder. Hostile hits
// reset the combo and cost points, floored at zero.
func (p *PatrolSession) Tap(t Target) {
	if p.state != PatrolRunning {
		return
	}
	now := p.svc.now()
	fast := !p.lastHit.IsZero() && now.Sub(p.lastHit) < comboWindow
	p.lastHit = now

	if t.Hostile {
		p.combo = 1
		p.score -= hostileMiss
		if p.score < 0 {
			p.score = 0
		}
		p.svc.haptics.Pulse(platform.HapticError)
		return
	}
	if fast {
		p.combo = clamp(p.combo+1, 1, maxCombo)
	}
	p.score += hitBase + p.combo
	p.svc.haptics.Pulse(platform.HapticLight)
}

func (p *PatrolSession) State() PatrolState { return p.state }
func (p *PatrolSession) Score() int         { return p.score }
func (p *PatrolSession) Combo() int         { return p.combo }

// Remaining reports time left; zero once the deadline passed.
func (p *PatrolSession) Remaining() time.Duration {
	if p.state != PatrolRunning {
		return 0
	}
	left := p.deadline.Sub(p.svc.now())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the session ran out of time and should be stopped.
func (p *PatrolSession) Expired() bool {
	return p.state == PatrolRunning && !p.svc.now().Before(p.deadline)
}

// Stop ends the session and flushes the score: clamped into [0, 120], best
// tracked, then awarded through the pipeline. Calling Stop again is a no-op.
func (p *PatrolSession) Stop(ctx context.Context) (int, error) {
	if p.state != PatrolRunning {
		return 0, nil
	}
	p.state = PatrolStopped

	points := clamp(p.score, 0, patrolCap)
	p.svc.rec.noteBest(ActivityPatrol, points)
	awarded, err := p.svc.Award(ctx, float64(points), "District patrol")
	if err != nil {
		return 0, fmt.Errorf("patrol payout: %w", err)
	}
	return awarded, nil
}
