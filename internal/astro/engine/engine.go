// Package engine is the façade over the astrology computation core: one entry
// point for birth charts, one for transit snapshots. It owns input validation
// and ordering; the per-concern packages stay pure.
package engine

import (
	"errors"
	"fmt"
	"time"

	"Stellium/internal/astro/chart"
	"Stellium/internal/astro/ephemeris"
	"Stellium/internal/astro/houses"
	"Stellium/internal/astro/timescale"
	"Stellium/internal/astro/transit"
	"Stellium/internal/domain/models"
)

// ErrInvalidCoordinates reports a latitude outside [-90,90] or a longitude
// outside [-180,180].
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// BirthData is the validated computation input: a civil birth moment with its
// UTC offset, plus the birthplace.
type BirthData struct {
	Year             int
	Month            int
	Day              int
	Hour             int
	Minute           int
	UTCOffsetMinutes int
	Latitude         float64
	Longitude        float64
}

// Engine computes charts and transits through a single position provider. The
// provider is used as given; wrap it with ephemeris.Serialize before sharing
// an engine across goroutines if the provider is not safe for concurrent use.
type Engine struct {
	provider ephemeris.Provider
	scanner  *transit.Scanner
}

// New creates an engine. transitMaxOrb caps the transit detection band;
// zero or negative selects transit.DefaultMaxOrb.
func New(provider ephemeris.Provider, transitMaxOrb float64) *Engine {
	return &Engine{
		provider: provider,
		scanner:  transit.NewScanner(provider, transitMaxOrb),
	}
}

// ComputeBirthChart runs the full pipeline: normalize time, resolve every
// tracked body, solve the Placidus frame, assemble. All-or-nothing: no partial
// chart is ever returned.
func (e *Engine) ComputeBirthChart(data BirthData) (models.NatalChart, error) {
	if err := validateCoordinates(data.Latitude, data.Longitude); err != nil {
		return models.NatalChart{}, err
	}
	et, err := timescale.Normalize(data.Year, data.Month, data.Day, data.Hour, data.Minute, data.UTCOffsetMinutes)
	if err != nil {
		return models.NatalChart{}, err
	}

	positions := make([]ephemeris.BodyPosition, 0, len(ephemeris.Tracked))
	for _, b := range ephemeris.Tracked {
		pos, perr := e.provider.PositionAt(b, et)
		if perr != nil {
			return models.NatalChart{}, fmt.Errorf("resolve %s: %w", b, perr)
		}
		positions = append(positions, pos)
	}

	frame, err := houses.Solve(et, data.Latitude, data.Longitude)
	if err != nil {
		return models.NatalChart{}, err
	}
	return chart.Assemble(positions, frame)
}

// ComputeTransits scans the sky at the given instant against a previously
// assembled natal chart.
func (e *Engine) ComputeTransits(at time.Time, natal *models.NatalChart) (models.TransitSnapshot, error) {
	at = at.UTC()
	return e.scanner.Scan(timescale.FromTime(at), at, natal)
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinates, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinates, lon)
	}
	return nil
}
