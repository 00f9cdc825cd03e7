package ephemeris

import (
	"fmt"
	"math"

	"Stellium/internal/astro/timescale"
)

// Analytic is a self-contained position provider built on published analytic
// series: Keplerian mean elements for the Sun and planets, a truncated
// periodic series for the Moon, and the mean-node polynomial for the lunar
// node. It is stateless and safe for concurrent use; no Serialized wrapper is
// needed around it.
//
// The planetary elements are fitted for 1800-2050. Queries outside that span
// return ErrPositionUnavailable instead of extrapolating.
type Analytic struct{}

// NewAnalytic returns the built-in analytic provider.
func NewAnalytic() *Analytic { return &Analytic{} }

// Supported range: 1800-01-01 through 2050-01-01 (UT Julian days).
const (
	minSupportedJD = 2378496.5
	maxSupportedJD = 2469807.5

	// Step for central-difference longitude speeds, in days.
	speedStep = 0.05
)

func (a Analytic) PositionAt(body Body, et timescale.EphemerisTime) (BodyPosition, error) {
	if float64(et) < minSupportedJD || float64(et) >= maxSupportedJD {
		return BodyPosition{}, fmt.Errorf("%w: %s at jd %.4f outside 1800-2050", ErrPositionUnavailable, body, float64(et))
	}

	lon, lat, dist, err := a.eclipticAt(body, et)
	if err != nil {
		return BodyPosition{}, err
	}
	before, _, _, err := a.eclipticAt(body, et.Add(-speedStep))
	if err != nil {
		return BodyPosition{}, err
	}
	after, _, _, err := a.eclipticAt(body, et.Add(speedStep))
	if err != nil {
		return BodyPosition{}, err
	}

	return BodyPosition{
		Body:              body,
		EclipticLongitude: lon,
		EclipticLatitude:  lat,
		Distance:          dist,
		LongitudeSpeed:    wrapSigned(after-before) / (2 * speedStep),
	}, nil
}

func (a Analytic) eclipticAt(body Body, et timescale.EphemerisTime) (lon, lat, dist float64, err error) {
	t := et.JulianCenturies()
	switch body {
	case Moon:
		lon, lat, dist = moonPosition(t)
	case NorthNode:
		lon, lat, dist = meanNode(t)
	case Sun:
		lon, lat, dist = sunPosition(t)
	case Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto:
		lon, lat, dist = planetPosition(body, t)
	default:
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrUnknownBody, body)
	}
	return lon, lat, dist, nil
}

// --- angle helpers (degrees) ---

func norm360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// wrapSigned maps a degree difference into (-180, 180].
func wrapSigned(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

func sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

func atan2d(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }

// precessToDate carries a J2000-frame ecliptic longitude to the mean equinox
// of date. General precession in longitude, ~50.29 arcsec/year.
func precessToDate(lonJ2000, t float64) float64 {
	return norm360(lonJ2000 + 1.39697137*t)
}

// meanNode returns the mean ascending node of the lunar orbit (of date). The
// node regresses, so its derived speed is negative and the body always reports
// retrograde.
func meanNode(t float64) (lon, lat, dist float64) {
	omega := 125.0445479 - 1934.1362891*t + 0.0020754*t*t +
		t*t*t/467441 - t*t*t*t/60616000
	// Distance is nominal: the node is a geometric point, reported at the
	// Moon's mean distance.
	return norm360(omega), 0, 0.002570
}
