package timescale

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeKnownEpochs(t *testing.T) {
	cases := []struct {
		name                            string
		y, mo, d, h, mi, offset         int
		want                            float64
	}{
		{"J2000 noon", 2000, 1, 1, 12, 0, 0, 2451545.0},
		{"J2000 midnight", 2000, 1, 1, 0, 0, 0, 2451544.5},
		{"sputnik", 1957, 10, 4, 19, 26, 0, 2436116.30972222},
		{"birth scenario", 1990, 1, 15, 14, 30, 0, 2447907.10416666},
	}
	for _, c := range cases {
		got, err := Normalize(c.y, c.mo, c.d, c.h, c.mi, c.offset)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
		if math.Abs(float64(got)-c.want) > 1e-6 {
			t.Fatalf("%s: got %.8f want %.8f", c.name, float64(got), c.want)
		}
	}
}

func TestNormalizeOffset(t *testing.T) {
	// 14:30 at UTC+2 is 12:30 UT.
	local, err := Normalize(1990, 1, 15, 14, 30, 120)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	ut, err := Normalize(1990, 1, 15, 12, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if local != ut {
		t.Fatalf("offset not applied: %.8f != %.8f", float64(local), float64(ut))
	}
}

func TestNormalizeCrossesBoundaries(t *testing.T) {
	// 23:30 on Dec 31 at UTC-1 lands on Jan 1 of the next year in UT.
	eve, err := Normalize(1999, 12, 31, 23, 30, -60)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	newYear, err := Normalize(2000, 1, 1, 0, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if math.Abs(float64(eve)-float64(newYear)) > 1e-9 {
		t.Fatalf("year boundary broken: %.9f vs %.9f", float64(eve), float64(newYear))
	}
}

func TestNormalizeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name                    string
		y, mo, d, h, mi, offset int
	}{
		{"feb 30", 1990, 2, 30, 10, 0, 0},
		{"feb 29 non-leap", 1900, 2, 29, 10, 0, 0},
		{"month 13", 1990, 13, 1, 10, 0, 0},
		{"month 0", 1990, 0, 1, 10, 0, 0},
		{"day 0", 1990, 1, 0, 10, 0, 0},
		{"hour 24", 1990, 1, 1, 24, 0, 0},
		{"minute 60", 1990, 1, 1, 10, 60, 0},
		{"negative hour", 1990, 1, 1, -1, 0, 0},
	}
	for _, c := range cases {
		if _, err := Normalize(c.y, c.mo, c.d, c.h, c.mi, c.offset); !errors.Is(err, ErrInvalidCivilTime) {
			t.Fatalf("%s: want ErrInvalidCivilTime, got %v", c.name, err)
		}
	}
}

func TestNormalizeLeapDay(t *testing.T) {
	if _, err := Normalize(2000, 2, 29, 0, 0, 0); err != nil {
		t.Fatalf("2000 is a leap year: %v", err)
	}
	if _, err := Normalize(1996, 2, 29, 0, 0, 0); err != nil {
		t.Fatalf("1996 is a leap year: %v", err)
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	prev, err := Normalize(1989, 12, 31, 23, 59, 0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	next, err := Normalize(1990, 1, 1, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if next <= prev {
		t.Fatalf("not monotonic across year boundary: %.9f <= %.9f", float64(next), float64(prev))
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	a, _ := Normalize(1990, 1, 15, 14, 30, -300)
	b, _ := Normalize(1990, 1, 15, 14, 30, -300)
	if a != b {
		t.Fatalf("same inputs produced %.15f and %.15f", float64(a), float64(b))
	}
}
