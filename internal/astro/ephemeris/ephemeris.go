// Package ephemeris defines the position-provider capability the engine
// consumes, and ships an analytic implementation of it.
package ephemeris

import (
	"errors"
	"sync"

	"Stellium/internal/astro/timescale"
)

// Body identifies a tracked celestial body.
type Body string

const (
	Sun       Body = "Sun"
	Moon      Body = "Moon"
	Mercury   Body = "Mercury"
	Venus     Body = "Venus"
	Mars      Body = "Mars"
	Jupiter   Body = "Jupiter"
	Saturn    Body = "Saturn"
	Uranus    Body = "Uranus"
	Neptune   Body = "Neptune"
	Pluto     Body = "Pluto"
	NorthNode Body = "North Node"

	// SouthNode is never queried from a provider: it is defined as the
	// North Node's longitude + 180 and derived during chart assembly.
	SouthNode Body = "South Node"
)

// Tracked is the fixed set of bodies a provider must resolve, in chart order.
var Tracked = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter,
	Saturn, Uranus, Neptune, Pluto, NorthNode,
}

// BodyPosition is a provider result. Value type; produced fresh per query.
type BodyPosition struct {
	Body              Body    `json:"body"`
	EclipticLongitude float64 `json:"ecliptic_longitude"` // degrees, [0,360)
	EclipticLatitude  float64 `json:"ecliptic_latitude"`  // degrees
	Distance          float64 `json:"distance"`           // AU
	LongitudeSpeed    float64 `json:"longitude_speed"`    // degrees/day, negative when retrograde
}

// ErrPositionUnavailable reports that a provider cannot resolve a body at the
// requested time (for example, outside its supported range).
var ErrPositionUnavailable = errors.New("position unavailable")

// ErrUnknownBody reports a body outside the tracked set.
var ErrUnknownBody = errors.New("unknown body")

// Provider resolves body positions at an ephemeris time. Implementations that
// wrap non-reentrant state (file handles, computation caches) are not required
// to be safe for concurrent use; wrap those in Serialized, or give each worker
// its own instance.
type Provider interface {
	PositionAt(body Body, et timescale.EphemerisTime) (BodyPosition, error)
}

// Serialized wraps a Provider behind a mutex so a single non-reentrant
// instance can be shared across goroutines.
type Serialized struct {
	mu    sync.Mutex
	inner Provider
}

// Serialize returns p behind a mutual-exclusion boundary.
func Serialize(p Provider) *Serialized {
	return &Serialized{inner: p}
}

func (s *Serialized) PositionAt(body Body, et timescale.EphemerisTime) (BodyPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.PositionAt(body, et)
}
