package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"Stellium/internal/astro/ephemeris"
	"Stellium/internal/astro/houses"
	"Stellium/internal/astro/timescale"
	"Stellium/internal/domain/models"
)

var nyc = BirthData{
	Year: 1990, Month: 1, Day: 15, Hour: 14, Minute: 30,
	UTCOffsetMinutes: -300, // EST
	Latitude:         40.7128,
	Longitude:        -74.0060,
}

func TestComputeBirthChartKnownScenario(t *testing.T) {
	e := New(ephemeris.Analytic{}, 0)
	chart, err := e.ComputeBirthChart(nyc)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if len(chart.Placements) != len(ephemeris.Tracked)+1 {
		t.Fatalf("want %d placements (tracked + south node), got %d",
			len(ephemeris.Tracked)+1, len(chart.Placements))
	}
	sun, ok := chart.Placement("Sun")
	if !ok {
		t.Fatalf("no sun placement")
	}
	if sun.Sign != "Capricorn" {
		t.Fatalf("mid-January sun must be in Capricorn, got %s", sun.Sign)
	}
	if len(chart.Houses) != 12 {
		t.Fatalf("want 12 house cusps, got %d", len(chart.Houses))
	}

	nn, _ := chart.Placement("North Node")
	sn, ok := chart.Placement("South Node")
	if !ok {
		t.Fatalf("south node missing")
	}
	diff := sn.AbsoluteDegree - nn.AbsoluteDegree
	if diff < 0 {
		diff += 360
	}
	if diff < 179.999 || diff > 180.001 {
		t.Fatalf("nodes must oppose: separation %.6f", diff)
	}
}

func TestComputeBirthChartDeterministic(t *testing.T) {
	e := New(ephemeris.Analytic{}, 0)
	a, err := e.ComputeBirthChart(nyc)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	b, err := e.ComputeBirthChart(nyc)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same input produced different charts")
	}
}

func TestComputeBirthChartRejectsCoordinates(t *testing.T) {
	cases := []struct{ lat, lon float64 }{
		{91, 0}, {-90.0001, 0}, {0, 181}, {0, -180.5},
	}
	for _, c := range cases {
		data := nyc
		data.Latitude, data.Longitude = c.lat, c.lon
		_, err := New(&mustNotQuery{t: t}, 0).ComputeBirthChart(data)
		if !errors.Is(err, ErrInvalidCoordinates) {
			t.Fatalf("lat %v lon %v: want ErrInvalidCoordinates, got %v", c.lat, c.lon, err)
		}
	}
}

func TestComputeBirthChartRejectsCivilTime(t *testing.T) {
	data := nyc
	data.Month = 2
	data.Day = 30
	_, err := New(&mustNotQuery{t: t}, 0).ComputeBirthChart(data)
	if !errors.Is(err, timescale.ErrInvalidCivilTime) {
		t.Fatalf("want ErrInvalidCivilTime, got %v", err)
	}
}

func TestComputeBirthChartAllOrNothing(t *testing.T) {
	inner := ephemeris.Analytic{}
	p := &failOn{inner: inner, body: ephemeris.Saturn}
	chart, err := New(p, 0).ComputeBirthChart(nyc)
	if !errors.Is(err, ephemeris.ErrPositionUnavailable) {
		t.Fatalf("want ErrPositionUnavailable, got %v", err)
	}
	if len(chart.Placements) != 0 {
		t.Fatalf("failed chart must be empty, got %d placements", len(chart.Placements))
	}
}

func TestComputeBirthChartPolarLatitudeFails(t *testing.T) {
	data := nyc
	data.Latitude = 78.2 // Svalbard, beyond the Placidus limit
	_, err := New(ephemeris.Analytic{}, 0).ComputeBirthChart(data)
	if !errors.Is(err, houses.ErrHouseSystemUndefined) {
		t.Fatalf("want ErrHouseSystemUndefined, got %v", err)
	}
}

func TestComputeTransitsAgainstOwnChart(t *testing.T) {
	e := New(ephemeris.Analytic{}, 0)
	natal, err := e.ComputeBirthChart(nyc)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snap, err := e.ComputeTransits(at, &natal)
	if err != nil {
		t.Fatalf("transits: %v", err)
	}
	if !snap.Timestamp.Equal(at) {
		t.Fatalf("timestamp %v, want %v", snap.Timestamp, at)
	}
	if snap.MoonSign == "" || snap.MoonPhase == "" {
		t.Fatalf("moon sign/phase missing: %+v", snap)
	}
	for _, a := range snap.ActiveTransits {
		if a.Orb > 3.000001 {
			t.Fatalf("transit orb %.4f exceeds cap: %+v", a.Orb, a)
		}
		if a.NatalBody == "South Node" {
			t.Fatalf("natal south node must be excluded: %+v", a)
		}
	}
}

func TestComputeTransitsOutsideProviderRange(t *testing.T) {
	e := New(ephemeris.Analytic{}, 0)
	natal, err := e.ComputeBirthChart(nyc)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	_, err = e.ComputeTransits(time.Date(2120, 1, 1, 0, 0, 0, 0, time.UTC), &natal)
	if !errors.Is(err, ephemeris.ErrPositionUnavailable) {
		t.Fatalf("want ErrPositionUnavailable, got %v", err)
	}
}

func TestComputeTransitsHonorsConfiguredOrb(t *testing.T) {
	lons := map[ephemeris.Body]float64{}
	for i, b := range ephemeris.Tracked {
		lons[b] = float64((37*i + 200) % 360)
	}
	lons[ephemeris.Mars] = 92 // 2 deg past a square to the natal sun below
	p := &fixedAt{lons: lons}

	natal := models.NatalChart{Placements: []models.BodyPlacement{
		{Body: "Sun", AbsoluteDegree: 0, Sign: models.SignFromLongitude(0)},
	}}
	at := time.Unix(0, 0).UTC()

	hasMarsSquare := func(snap models.TransitSnapshot) bool {
		for _, a := range snap.ActiveTransits {
			if a.TransitingBody == "Mars" && a.NatalBody == "Sun" {
				return true
			}
		}
		return false
	}

	snap, err := New(p, 0).ComputeTransits(at, &natal)
	if err != nil {
		t.Fatalf("transits: %v", err)
	}
	if !hasMarsSquare(snap) {
		t.Fatalf("orb 2 contact missing under the default band: %+v", snap.ActiveTransits)
	}

	snap, err = New(p, 1.0).ComputeTransits(at, &natal)
	if err != nil {
		t.Fatalf("transits: %v", err)
	}
	if hasMarsSquare(snap) {
		t.Fatalf("orb 2 contact reported under a 1 degree band: %+v", snap.ActiveTransits)
	}
}

// failOn delegates to an inner provider except for one body.
type failOn struct {
	inner ephemeris.Provider
	body  ephemeris.Body
}

func (f *failOn) PositionAt(body ephemeris.Body, et timescale.EphemerisTime) (ephemeris.BodyPosition, error) {
	if body == f.body {
		return ephemeris.BodyPosition{}, ephemeris.ErrPositionUnavailable
	}
	return f.inner.PositionAt(body, et)
}

// fixedAt serves canned longitudes regardless of the queried time.
type fixedAt struct {
	lons map[ephemeris.Body]float64
}

func (f *fixedAt) PositionAt(body ephemeris.Body, _ timescale.EphemerisTime) (ephemeris.BodyPosition, error) {
	lon, ok := f.lons[body]
	if !ok {
		return ephemeris.BodyPosition{}, ephemeris.ErrPositionUnavailable
	}
	return ephemeris.BodyPosition{Body: body, EclipticLongitude: lon}, nil
}

// mustNotQuery fails the test if the engine reaches the provider at all.
type mustNotQuery struct{ t *testing.T }

func (m *mustNotQuery) PositionAt(body ephemeris.Body, _ timescale.EphemerisTime) (ephemeris.BodyPosition, error) {
	m.t.Fatalf("provider queried for %s before input validation", body)
	return ephemeris.BodyPosition{}, nil
}
