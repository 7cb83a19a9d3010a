package engine

import (
	"context"
	"fmt"
	"math"

	"turf/internal/platform"
)

// CheckinCost is the energy debit for a check-in attempt.
const CheckinCost = 1

// Check-in distance tiers relative to the home reference point. The clamps
// are hard: the payout is always one of exactly three values.
const (
	checkinNearKm    = 25
	checkinRegionKm  = 120
	checkinNearPts   = 80
	checkinRegionPts = 55
	checkinFarPts    = 35
)

// CheckinResult reports what a successful check-in paid and why.
type CheckinResult struct {
	Points     int
	DistanceKm float64
	Reason     string
}

// CheckIn performs the daily geo check-in: at most one payout per calendar
// day, gated independently of (and in addition to) the energy economy. The
// energy debit is not refunded when the position cannot be acquired,
// matching the sensor-failure contract.
func (s *Service) CheckIn(ctx context.Context, loc platform.Locator) (*CheckinResult, error) {
	today := DayStamp(s.now())
	if s.rec.CheckinDay == today {
		return nil, ErrCheckinDone
	}
	if err := s.SpendEnergy(ctx, CheckinCost); err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, platform.ErrNoPosition
	}

	pos, err := loc.Position(ctx)
	if err != nil {
		s.haptics.Pulse(platform.HapticError)
		return nil, fmt.Errorf("%w: %v", platform.ErrNoPosition, err)
	}

	dist := haversineKm(pos.Lat, pos.Lon, s.homeLat, s.homeLon)
	pts, reason := checkinPayout(dist)

	s.rec.CheckinDay = today
	if err := s.store.Save(ctx, s.rec); err != nil {
		return nil, err
	}
	awarded, err := s.Award(ctx, float64(pts), reason)
	if err != nil {
		return nil, err
	}
	return &CheckinResult{Points: awarded, DistanceKm: dist, Reason: reason}, nil
}

// checkinPayout maps a distance to its tier.
func checkinPayout(distKm float64) (int, string) {
	switch {
	case distKm <= checkinNearKm:
		return checkinNearPts, "Check-in next to the launch site"
	case distKm <= checkinRegionKm:
		return checkinRegionPts, "Check-in in the region"
	default:
		return checkinFarPts, "Check-in (far from the city)"
	}
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Pow(math.Sin(dLon/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
