// Package chart assembles provider positions and a solved house frame into a
// natal chart. Pure transformation: no I/O, no clock, no provider calls.
package chart

import (
	"Stellium/internal/astro/aspect"
	"Stellium/internal/astro/ephemeris"
	"Stellium/internal/astro/houses"
	"Stellium/internal/domain/models"
)

// Assemble builds the complete natal chart from already-resolved positions
// and cusps. Positions must not include the South Node; it is derived here
// from the North Node. Calling Assemble again with a different house frame
// reassigns houses without touching the position provider.
func Assemble(positions []ephemeris.BodyPosition, frame houses.Houses) (models.NatalChart, error) {
	all := withSouthNode(positions)

	placements := make([]models.BodyPlacement, 0, len(all))
	points := make([]aspect.Point, 0, len(all))
	for _, p := range all {
		placements = append(placements, models.BodyPlacement{
			Body:           string(p.Body),
			Sign:           models.SignFromLongitude(p.EclipticLongitude),
			Degree:         models.DegreeInSign(p.EclipticLongitude),
			AbsoluteDegree: p.EclipticLongitude,
			House:          AssignHouse(p.EclipticLongitude, frame.Cusps),
			Retrograde:     p.LongitudeSpeed < 0,
		})
		points = append(points, aspect.Point{
			ID:        string(p.Body),
			Longitude: p.EclipticLongitude,
			Speed:     p.LongitudeSpeed,
		})
	}

	natalAspects, err := aspect.Detect(points)
	if err != nil {
		return models.NatalChart{}, err
	}

	cusps := make([]models.HouseCusp, 0, 12)
	for i, lon := range frame.Cusps {
		cusps = append(cusps, models.HouseCusp{
			House:          i + 1,
			Sign:           models.SignFromLongitude(lon),
			Degree:         models.DegreeInSign(lon),
			AbsoluteDegree: lon,
		})
	}

	out := models.NatalChart{
		Placements: placements,
		Ascendant:  models.AngleFromLongitude(frame.Ascendant),
		Midheaven:  models.AngleFromLongitude(frame.Midheaven),
		Houses:     cusps,
		Aspects:    make([]models.Aspect, 0, len(natalAspects)),
	}
	for _, a := range natalAspects {
		out.Aspects = append(out.Aspects, models.Aspect{
			BodyA:      a.BodyA,
			BodyB:      a.BodyB,
			Type:       string(a.Type),
			ExactAngle: a.ExactAngle,
			Orb:        a.Orb,
			Applying:   a.Applying,
		})
	}
	return out, nil
}

// withSouthNode appends the derived South Node when a North Node position is
// present: opposite longitude, mirrored latitude, same regressing speed.
func withSouthNode(positions []ephemeris.BodyPosition) []ephemeris.BodyPosition {
	out := make([]ephemeris.BodyPosition, len(positions), len(positions)+1)
	copy(out, positions)
	for _, p := range positions {
		if p.Body == ephemeris.NorthNode {
			sn := p
			sn.Body = ephemeris.SouthNode
			sn.EclipticLongitude = opposite(p.EclipticLongitude)
			sn.EclipticLatitude = -p.EclipticLatitude
			out = append(out, sn)
			break
		}
	}
	return out
}

// AssignHouse returns the house (1..12) containing the longitude: house h
// spans the forward half-open arc [cusp_h, cusp_h+1), wrapping through 0
// between house 12 and house 1.
func AssignHouse(lon float64, cusps [12]float64) int {
	for h := 0; h < 12; h++ {
		cur := cusps[h]
		next := cusps[(h+1)%12]
		if cur < next {
			if lon >= cur && lon < next {
				return h + 1
			}
		} else {
			if lon >= cur || lon < next {
				return h + 1
			}
		}
	}
	return 1
}

func opposite(lon float64) float64 {
	o := lon + 180
	if o >= 360 {
		o -= 360
	}
	return o
}
