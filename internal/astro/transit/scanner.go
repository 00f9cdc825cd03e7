// Package transit compares the current sky against a stored natal chart.
package transit

import (
	"fmt"
	"math"
	"time"

	"Stellium/internal/astro/aspect"
	"Stellium/internal/astro/ephemeris"
	"Stellium/internal/astro/timescale"
	"Stellium/internal/domain/models"
)

// DefaultMaxOrb is the transit orb band. Transits flag near-exact contacts,
// so the band is much tighter than the natal 6-8 degree table.
const DefaultMaxOrb = 3.0

// Scanner resolves current positions through a provider and detects contacts
// with natal placements.
type Scanner struct {
	provider ephemeris.Provider
	maxOrb   float64
}

// NewScanner creates a scanner. maxOrb <= 0 selects DefaultMaxOrb.
func NewScanner(provider ephemeris.Provider, maxOrb float64) *Scanner {
	if maxOrb <= 0 {
		maxOrb = DefaultMaxOrb
	}
	return &Scanner{provider: provider, maxOrb: maxOrb}
}

// Scan queries every tracked body at et and reports active transits against
// the natal chart, plus the Moon's sign and phase. All-or-nothing: any
// provider failure fails the whole snapshot.
func (s *Scanner) Scan(et timescale.EphemerisTime, at time.Time, natal *models.NatalChart) (models.TransitSnapshot, error) {
	current := make([]ephemeris.BodyPosition, 0, len(ephemeris.Tracked))
	for _, b := range ephemeris.Tracked {
		pos, err := s.provider.PositionAt(b, et)
		if err != nil {
			return models.TransitSnapshot{}, fmt.Errorf("transit scan %s: %w", b, err)
		}
		current = append(current, pos)
	}

	transiting := make([]aspect.Point, 0, len(current))
	var sunLon, moonLon float64
	for _, p := range current {
		transiting = append(transiting, aspect.Point{
			ID:        string(p.Body),
			Longitude: p.EclipticLongitude,
			Speed:     p.LongitudeSpeed,
		})
		switch p.Body {
		case ephemeris.Sun:
			sunLon = p.EclipticLongitude
		case ephemeris.Moon:
			moonLon = p.EclipticLongitude
		}
	}

	// The natal South Node is skipped: every contact to it mirrors a North
	// Node contact at the opposite angle and would double-report.
	natalPoints := make([]aspect.Point, 0, len(natal.Placements))
	for _, p := range natal.Placements {
		if p.Body == string(ephemeris.SouthNode) {
			continue
		}
		natalPoints = append(natalPoints, aspect.Point{ID: p.Body, Longitude: p.AbsoluteDegree})
	}

	found, err := aspect.DetectBetween(transiting, natalPoints, s.maxOrb)
	if err != nil {
		return models.TransitSnapshot{}, err
	}

	active := make([]models.TransitAspect, 0, len(found))
	for _, a := range found {
		active = append(active, models.TransitAspect{
			TransitingBody: a.BodyA,
			Type:           string(a.Type),
			NatalBody:      a.BodyB,
			Orb:            a.Orb,
			Applying:       a.Applying,
		})
	}

	return models.TransitSnapshot{
		Timestamp:      at,
		MoonSign:       models.SignFromLongitude(moonLon),
		MoonPhase:      PhaseName(sunLon, moonLon),
		ActiveTransits: active,
	}, nil
}

// PhaseName buckets the Sun-Moon elongation into the eight phase names.
// Buckets are 45 degrees wide with the lower edge inclusive: elongation 0 is
// New Moon, 45 is already Waxing Crescent.
func PhaseName(sunLon, moonLon float64) string {
	elong := math.Mod(moonLon-sunLon, 360)
	if elong < 0 {
		elong += 360
	}
	idx := int(elong/45) % 8
	return models.MoonPhases[idx]
}
