// Package houses solves Placidus house cusps, the Ascendant, and the
// Midheaven for a moment and place.
package houses

import (
	"errors"
	"fmt"
	"math"

	"Stellium/internal/astro/timescale"
)

// Houses holds the solved chart frame. Cusps are absolute ecliptic longitudes
// in house order: Cusps[0] is house 1 and equals the Ascendant, Cusps[9] is
// house 10 and equals the Midheaven. Longitudes may wrap through 0 between
// consecutive houses.
type Houses struct {
	Ascendant float64
	Midheaven float64
	Cusps     [12]float64
}

// ErrHouseSystemUndefined reports that the Placidus construction is undefined
// or failed to converge, which happens near and beyond the polar circles.
var ErrHouseSystemUndefined = errors.New("house system undefined")

// Convergence policy for the cusp iteration: fixed-point on right ascension
// until the update falls below convergeEps degrees, with a hard cap. Below the
// polar limit convergence takes a handful of rounds; the cap exists so a
// degenerate input fails instead of spinning.
const (
	convergeEps   = 1e-9
	maxIterations = 50
)

// Solve computes the Placidus frame at et for a geographic position in
// decimal degrees (latitude north-positive, longitude east-positive).
func Solve(et timescale.EphemerisTime, latDeg, lonDeg float64) (Houses, error) {
	t := et.JulianCenturies()
	eps := obliquity(t)

	// The Placidus semi-arc construction degenerates where the ecliptic can
	// be circumpolar.
	if math.Abs(latDeg) >= 90-eps {
		return Houses{}, fmt.Errorf("%w: latitude %.4f beyond polar limit %.4f", ErrHouseSystemUndefined, latDeg, 90-eps)
	}

	ramc := norm360(gmst(et, t) + lonDeg)

	mc := eclipticFromRA(ramc, eps)
	asc := ascendant(ramc, eps, latDeg)

	c11, err := placidusCusp(ramc, eps, latDeg, 30, 1.0/3.0, false)
	if err != nil {
		return Houses{}, err
	}
	c12, err := placidusCusp(ramc, eps, latDeg, 60, 2.0/3.0, false)
	if err != nil {
		return Houses{}, err
	}
	c2, err := placidusCusp(ramc, eps, latDeg, 120, 2.0/3.0, true)
	if err != nil {
		return Houses{}, err
	}
	c3, err := placidusCusp(ramc, eps, latDeg, 150, 1.0/3.0, true)
	if err != nil {
		return Houses{}, err
	}

	h := Houses{Ascendant: asc, Midheaven: mc}
	h.Cusps[0] = asc
	h.Cusps[1] = c2
	h.Cusps[2] = c3
	h.Cusps[3] = norm360(mc + 180)
	h.Cusps[4] = norm360(c11 + 180)
	h.Cusps[5] = norm360(c12 + 180)
	h.Cusps[6] = norm360(asc + 180)
	h.Cusps[7] = norm360(c2 + 180)
	h.Cusps[8] = norm360(c3 + 180)
	h.Cusps[9] = mc
	h.Cusps[10] = c11
	h.Cusps[11] = c12
	return h, nil
}

// placidusCusp iterates the time-based Placidus equation for one intermediate
// cusp. offset seeds the right ascension relative to the RAMC; frac is the
// fraction of the semi-arc defining the cusp; nocturnal selects the below-
// horizon form (houses 2 and 3).
func placidusCusp(ramc, eps, latDeg, offset, frac float64, nocturnal bool) (float64, error) {
	ra := ramc + offset
	for i := 0; i < maxIterations; i++ {
		lon := eclipticFromRA(ra, eps)
		dec := asind(sind(eps) * sind(lon))

		// cos of the diurnal semi-arc; |x| > 1 means circumpolar.
		x := -tand(latDeg) * tand(dec)
		if x < -1 || x > 1 {
			return 0, fmt.Errorf("%w: circumpolar cusp at latitude %.4f", ErrHouseSystemUndefined, latDeg)
		}
		semiArc := acosd(x)

		var next float64
		if nocturnal {
			next = ramc + 180 - frac*(180-semiArc)
		} else {
			next = ramc + frac*semiArc
		}
		delta := wrapSigned(next - ra)
		ra = next
		if math.Abs(delta) < convergeEps {
			return eclipticFromRA(ra, eps), nil
		}
	}
	return 0, fmt.Errorf("%w: cusp iteration did not converge at latitude %.4f", ErrHouseSystemUndefined, latDeg)
}

// ascendant applies the standard rising-degree formula.
func ascendant(ramc, eps, latDeg float64) float64 {
	return norm360(atan2d(cosd(ramc), -(sind(ramc)*cosd(eps) + tand(latDeg)*sind(eps))))
}

// eclipticFromRA returns the ecliptic longitude of the ecliptic point with the
// given right ascension.
func eclipticFromRA(ra, eps float64) float64 {
	return norm360(atan2d(sind(ra), cosd(ra)*cosd(eps)))
}

// gmst returns Greenwich mean sidereal time in degrees.
func gmst(et timescale.EphemerisTime, t float64) float64 {
	return norm360(280.46061837 +
		360.98564736629*(float64(et)-2451545.0) +
		0.000387933*t*t - t*t*t/38710000)
}

// obliquity returns the mean obliquity of the ecliptic in degrees.
func obliquity(t float64) float64 {
	return 23.4392911111 - 0.0130041667*t - 1.6389e-7*t*t + 5.0361e-7*t*t*t
}

// --- degree trig helpers ---

func sind(deg float64) float64  { return math.Sin(deg * math.Pi / 180) }
func cosd(deg float64) float64  { return math.Cos(deg * math.Pi / 180) }
func tand(deg float64) float64  { return math.Tan(deg * math.Pi / 180) }
func asind(x float64) float64   { return math.Asin(x) * 180 / math.Pi }
func acosd(x float64) float64   { return math.Acos(x) * 180 / math.Pi }
func atan2d(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }

func norm360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func wrapSigned(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
