package houses

import (
	"errors"
	"math"
	"testing"

	"Stellium/internal/astro/timescale"
)

func solveAt(t *testing.T, lat, lon float64) Houses {
	t.Helper()
	et, err := timescale.Normalize(1990, 1, 15, 14, 30, 0)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	h, err := Solve(et, lat, lon)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return h
}

func TestAnglesAnchorTheCusps(t *testing.T) {
	h := solveAt(t, 40.7128, -74.0060)
	if h.Cusps[0] != h.Ascendant {
		t.Fatalf("house 1 cusp %.6f != ascendant %.6f", h.Cusps[0], h.Ascendant)
	}
	if h.Cusps[9] != h.Midheaven {
		t.Fatalf("house 10 cusp %.6f != midheaven %.6f", h.Cusps[9], h.Midheaven)
	}
}

func TestOppositeCusps(t *testing.T) {
	h := solveAt(t, 40.7128, -74.0060)
	pairs := [][2]int{{0, 6}, {1, 7}, {2, 8}, {3, 9}, {4, 10}, {5, 11}}
	for _, p := range pairs {
		want := math.Mod(h.Cusps[p[0]]+180, 360)
		if math.Abs(want-h.Cusps[p[1]]) > 1e-9 && math.Abs(math.Abs(want-h.Cusps[p[1]])-360) > 1e-9 {
			t.Fatalf("cusp %d (%.6f) not opposite cusp %d (%.6f)", p[1]+1, h.Cusps[p[1]], p[0]+1, h.Cusps[p[0]])
		}
	}
}

func TestCuspsInForwardHouseOrder(t *testing.T) {
	for _, lat := range []float64{40.7128, -33.8688, 0, 60.17} {
		h := solveAt(t, lat, -74.0060)
		total := 0.0
		for i := 0; i < 12; i++ {
			gap := norm360(h.Cusps[(i+1)%12] - h.Cusps[i])
			if gap <= 0 || gap >= 180 {
				t.Fatalf("lat %.2f: gap from cusp %d to %d is %.4f", lat, i+1, i+2, gap)
			}
			total += gap
		}
		if math.Abs(total-360) > 1e-6 {
			t.Fatalf("lat %.2f: cusp gaps sum to %.6f, want 360", lat, total)
		}
	}
}

func TestMidheavenPrecedesAscendant(t *testing.T) {
	// Going forward along the ecliptic from the MC one must reach the
	// Ascendant before the IC.
	h := solveAt(t, 40.7128, -74.0060)
	gap := norm360(h.Ascendant - h.Midheaven)
	if gap <= 0 || gap >= 180 {
		t.Fatalf("mc->asc forward gap %.4f, want (0,180)", gap)
	}
}

func TestHighLatitudeFails(t *testing.T) {
	et, err := timescale.Normalize(1990, 1, 15, 14, 30, 0)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for _, lat := range []float64{80, -80, 89.9, 67} {
		if _, err := Solve(et, lat, 0); !errors.Is(err, ErrHouseSystemUndefined) {
			t.Fatalf("lat %.1f: want ErrHouseSystemUndefined, got %v", lat, err)
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	a := solveAt(t, 40.7128, -74.0060)
	b := solveAt(t, 40.7128, -74.0060)
	if a != b {
		t.Fatalf("repeated solve differs:\n%+v\n%+v", a, b)
	}
}

func TestLongitudesNormalized(t *testing.T) {
	h := solveAt(t, -33.8688, 151.2093)
	for i, c := range h.Cusps {
		if c < 0 || c >= 360 || math.IsNaN(c) {
			t.Fatalf("cusp %d longitude %.6f outside [0,360)", i+1, c)
		}
	}
}
