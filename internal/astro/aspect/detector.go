// Package aspect classifies angular relationships between ecliptic
// longitudes under per-aspect orb tolerances.
package aspect

import (
	"errors"
	"fmt"
	"math"
)

// Type names a recognized aspect.
type Type string

const (
	Conjunction Type = "conjunction"
	Opposition  Type = "opposition"
	Trine       Type = "trine"
	Square      Type = "square"
	Sextile     Type = "sextile"
)

// Point is one longitude entering detection. Speed is degrees/day; zero for
// fixed natal positions.
type Point struct {
	ID        string
	Longitude float64
	Speed     float64
}

// Aspect is a detected relationship. Orb is the absolute deviation from the
// exact aspect angle. Applying is true when the deviation is currently
// shrinking; it is false by convention for natal-to-natal aspects, which have
// no time direction.
type Aspect struct {
	BodyA      string  `json:"body_a"`
	BodyB      string  `json:"body_b"`
	Type       Type    `json:"type"`
	ExactAngle float64 `json:"exact_angle"`
	Orb        float64 `json:"orb"`
	Applying   bool    `json:"applying"`
}

// ErrAspectComputation reports an internal invariant violation (non-finite or
// out-of-range input). It indicates a programming defect, not a user error.
var ErrAspectComputation = errors.New("aspect computation error")

type definition struct {
	typ   Type
	angle float64
	orb   float64
}

// Recognized aspects with their default orbs, in degrees.
var definitions = []definition{
	{Conjunction, 0, 8},
	{Opposition, 180, 8},
	{Trine, 120, 8},
	{Square, 90, 7},
	{Sextile, 60, 6},
}

// Detect finds aspects among all unordered pairs of one point set. Used for
// natal charts: Applying is always false.
func Detect(points []Point) ([]Aspect, error) {
	if err := validate(points); err != nil {
		return nil, err
	}
	var out []Aspect
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if a, ok := match(points[i], points[j], 0, false); ok {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

// DetectBetween finds aspects across two point sets, computing the applying
// flag from relative speeds. maxOrb, when positive, caps every aspect's orb
// below its table value; transit scans use this with a tight band.
func DetectBetween(setA, setB []Point, maxOrb float64) ([]Aspect, error) {
	if err := validate(setA); err != nil {
		return nil, err
	}
	if err := validate(setB); err != nil {
		return nil, err
	}
	var out []Aspect
	for _, a := range setA {
		for _, b := range setB {
			if asp, ok := match(a, b, maxOrb, true); ok {
				out = append(out, asp)
			}
		}
	}
	return out, nil
}

// match classifies one pair. When a pair satisfies several definitions the
// tightest orb wins; with the default table that cannot happen, but the
// guard keeps behavior defined if orbs are ever widened.
func match(a, b Point, maxOrb float64, withApplying bool) (Aspect, bool) {
	sep := separation(a.Longitude, b.Longitude)

	best := Aspect{}
	found := false
	for _, def := range definitions {
		allowed := def.orb
		if maxOrb > 0 && maxOrb < allowed {
			allowed = maxOrb
		}
		dev := math.Abs(sep - def.angle)
		if dev > allowed {
			continue
		}
		if !found || dev < best.Orb {
			best = Aspect{
				BodyA:      a.ID,
				BodyB:      b.ID,
				Type:       def.typ,
				ExactAngle: def.angle,
				Orb:        dev,
			}
			found = true
		}
	}
	if !found {
		return Aspect{}, false
	}
	if withApplying {
		best.Applying = applying(a, b, sep, best.ExactAngle)
	}
	return best, true
}

// applying reports whether the deviation from the exact angle is shrinking:
// d|sep - exact|/dt < 0 given both longitude speeds.
func applying(a, b Point, sep, exact float64) bool {
	delta := wrapSigned(a.Longitude - b.Longitude)
	sepRate := sign(delta) * (a.Speed - b.Speed)
	return sign(sep-exact)*sepRate < 0
}

// separation returns the angular separation normalized to [0,180].
func separation(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func validate(points []Point) error {
	for _, p := range points {
		if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) ||
			p.Longitude < 0 || p.Longitude >= 360 {
			return fmt.Errorf("%w: longitude %v for %q", ErrAspectComputation, p.Longitude, p.ID)
		}
		if math.IsNaN(p.Speed) || math.IsInf(p.Speed, 0) {
			return fmt.Errorf("%w: speed %v for %q", ErrAspectComputation, p.Speed, p.ID)
		}
	}
	return nil
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

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
