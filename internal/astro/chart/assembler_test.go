package chart

import (
	"math"
	"testing"

	"Stellium/internal/astro/ephemeris"
	"Stellium/internal/astro/houses"
)

// evenFrame builds a frame with cusps every 30 degrees starting at asc.
func evenFrame(asc float64) houses.Houses {
	h := houses.Houses{Ascendant: asc, Midheaven: math.Mod(asc+270, 360)}
	for i := 0; i < 12; i++ {
		h.Cusps[i] = math.Mod(asc+float64(i)*30, 360)
	}
	return h
}

func TestSignBoundaries(t *testing.T) {
	frame := evenFrame(0)
	chart, err := Assemble([]ephemeris.BodyPosition{
		{Body: ephemeris.Sun, EclipticLongitude: 299.999},
		{Body: ephemeris.Moon, EclipticLongitude: 300.0},
	}, frame)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	sun, ok := chart.Placement("Sun")
	if !ok {
		t.Fatalf("sun placement missing")
	}
	if sun.Sign != "Capricorn" {
		t.Fatalf("299.999 must be Capricorn, got %s", sun.Sign)
	}
	if math.Abs(sun.Degree-29.999) > 1e-9 {
		t.Fatalf("degree in sign %.6f, want 29.999", sun.Degree)
	}

	moon, _ := chart.Placement("Moon")
	if moon.Sign != "Aquarius" {
		t.Fatalf("300.0 must be Aquarius, got %s", moon.Sign)
	}
	if moon.Degree != 0 {
		t.Fatalf("degree in sign %.6f, want 0", moon.Degree)
	}
}

func TestHouseAssignmentWrapsAroundZero(t *testing.T) {
	// House 12 cusp at 350, house 1 cusp (ascendant) at 10.
	var cusps [12]float64
	cusps[0] = 10
	for i := 1; i < 12; i++ {
		cusps[i] = math.Mod(10+float64(i)*30, 360)
	}
	cusps[11] = 350

	if got := AssignHouse(355, cusps); got != 12 {
		t.Fatalf("355 with cusp12=350, asc=10: want house 12, got %d", got)
	}
	if got := AssignHouse(5, cusps); got != 12 {
		t.Fatalf("5 lies before the 10-degree ascendant, want house 12, got %d", got)
	}
	if got := AssignHouse(10, cusps); got != 1 {
		t.Fatalf("cusp degree belongs to its own house, want 1, got %d", got)
	}
	if got := AssignHouse(15, cusps); got != 1 {
		t.Fatalf("15: want house 1, got %d", got)
	}
}

func TestRetrogradeFlag(t *testing.T) {
	chart, err := Assemble([]ephemeris.BodyPosition{
		{Body: ephemeris.Mercury, EclipticLongitude: 100, LongitudeSpeed: -0.25},
		{Body: ephemeris.Venus, EclipticLongitude: 200, LongitudeSpeed: 0.9},
	}, evenFrame(0))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	mercury, _ := chart.Placement("Mercury")
	if !mercury.Retrograde {
		t.Fatalf("speed -0.25 must flag retrograde")
	}
	venus, _ := chart.Placement("Venus")
	if venus.Retrograde {
		t.Fatalf("speed 0.9 must not flag retrograde")
	}
}

func TestSouthNodeDerived(t *testing.T) {
	chart, err := Assemble([]ephemeris.BodyPosition{
		{Body: ephemeris.NorthNode, EclipticLongitude: 310.5, EclipticLatitude: 0, LongitudeSpeed: -0.053},
	}, evenFrame(0))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	sn, ok := chart.Placement("South Node")
	if !ok {
		t.Fatalf("south node not derived")
	}
	if math.Abs(sn.AbsoluteDegree-130.5) > 1e-9 {
		t.Fatalf("south node at %.4f, want 130.5", sn.AbsoluteDegree)
	}
}

func TestReassembleWithDifferentCusps(t *testing.T) {
	positions := []ephemeris.BodyPosition{
		{Body: ephemeris.Sun, EclipticLongitude: 45},
	}

	first, err := Assemble(positions, evenFrame(0))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	second, err := Assemble(positions, evenFrame(40))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	sunA, _ := first.Placement("Sun")
	sunB, _ := second.Placement("Sun")
	if sunA.House != 2 || sunB.House != 1 {
		t.Fatalf("house must follow the cusps: got %d and %d", sunA.House, sunB.House)
	}
	if sunA.Sign != sunB.Sign || sunA.AbsoluteDegree != sunB.AbsoluteDegree {
		t.Fatalf("sign and longitude must not depend on cusps")
	}
}

func TestNatalAspectsPopulated(t *testing.T) {
	chart, err := Assemble([]ephemeris.BodyPosition{
		{Body: ephemeris.Sun, EclipticLongitude: 10},
		{Body: ephemeris.Moon, EclipticLongitude: 100}, // square to Sun
		{Body: ephemeris.Mars, EclipticLongitude: 250},
	}, evenFrame(0))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	var foundSquare bool
	for _, a := range chart.Aspects {
		if a.Applying {
			t.Fatalf("natal aspect flagged applying: %+v", a)
		}
		if (a.BodyA == "Sun" && a.BodyB == "Moon") || (a.BodyA == "Moon" && a.BodyB == "Sun") {
			if a.Type != "square" {
				t.Fatalf("sun-moon at 90: want square, got %s", a.Type)
			}
			foundSquare = true
		}
	}
	if !foundSquare {
		t.Fatalf("sun-moon square not detected in %+v", chart.Aspects)
	}
}

func TestCuspsCarrySignAndDegree(t *testing.T) {
	chart, err := Assemble(nil, evenFrame(15))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(chart.Houses) != 12 {
		t.Fatalf("want 12 cusps, got %d", len(chart.Houses))
	}
	for i, c := range chart.Houses {
		if c.House != i+1 {
			t.Fatalf("cusp order broken at index %d: house %d", i, c.House)
		}
	}
	if chart.Houses[0].Sign != "Aries" || chart.Houses[0].Degree != 15 {
		t.Fatalf("house 1 cusp at 15: got %s %.2f", chart.Houses[0].Sign, chart.Houses[0].Degree)
	}
	if chart.Ascendant.Sign != "Aries" || chart.Ascendant.Degree != 15 {
		t.Fatalf("ascendant mismatch: %+v", chart.Ascendant)
	}
}
