package ephemeris

// Truncated lunar theory: the principal periodic terms of the ELP-derived
// tables in Meeus, Astronomical Algorithms ch. 47. Arguments are of date, so
// the resulting longitude needs no precession step. Truncation keeps every
// term above ~2 milli-degrees in longitude; worst-case error stays well below
// an arcminute, far inside the orb tolerances this engine works with.

// moonTerm is one periodic term: multiples of D, M, M', F with longitude
// (1e-6 deg) and distance (1e-3 km) amplitudes.
type moonTerm struct {
	d, m, mp, f int
	sl, sr      float64
}

var moonLonDist = []moonTerm{
	{0, 0, 1, 0, 6288774, -20905355},
	{2, 0, -1, 0, 1274027, -3699111},
	{2, 0, 0, 0, 658314, -2955968},
	{0, 0, 2, 0, 213618, -569925},
	{0, 1, 0, 0, -185116, 48888},
	{0, 0, 0, 2, -114332, -3149},
	{2, 0, -2, 0, 58793, 246158},
	{2, -1, -1, 0, 57066, -152138},
	{2, 0, 1, 0, 53322, -170733},
	{2, -1, 0, 0, 45758, -204586},
	{0, 1, -1, 0, -40923, -129620},
	{1, 0, 0, 0, -34720, 108743},
	{0, 1, 1, 0, -30383, 104755},
	{2, 0, 0, -2, 15327, 10321},
	{0, 0, 1, 2, -12528, 0},
	{0, 0, 1, -2, 10980, 79661},
	{4, 0, -1, 0, 10675, -34782},
	{0, 0, 3, 0, 10034, -23210},
	{4, 0, -2, 0, 8548, -21636},
	{2, 1, -1, 0, -7888, 24208},
	{2, 1, 0, 0, -6766, 30824},
	{1, 0, -1, 0, -5163, -8379},
	{1, 1, 0, 0, 4987, -16675},
	{2, -1, 1, 0, 4036, -12831},
	{2, 0, 2, 0, 3994, -10445},
	{4, 0, 0, 0, 3861, -11650},
	{2, 0, -3, 0, 3665, 14403},
	{0, 1, -2, 0, -2689, -7003},
	{2, 0, -1, 2, -2602, 0},
	{2, -1, -2, 0, 2390, 10056},
	{1, 0, 1, 0, -2348, 6322},
	{2, -2, 0, 0, 2236, -9884},
}

// latitude terms, amplitude in 1e-6 deg.
type moonLatTerm struct {
	d, m, mp, f int
	sb          float64
}

var moonLat = []moonLatTerm{
	{0, 0, 0, 1, 5128122},
	{0, 0, 1, 1, 280602},
	{0, 0, 1, -1, 277693},
	{2, 0, 0, -1, 173237},
	{2, 0, -1, 1, 55413},
	{2, 0, -1, -1, 46271},
	{2, 0, 0, 1, 32573},
	{0, 0, 2, 1, 17198},
	{2, 0, 1, -1, 9266},
	{0, 0, 2, -1, 8822},
	{2, -1, 0, -1, 8216},
	{2, 0, -2, -1, 4324},
	{2, 0, 1, 1, 4200},
	{2, 1, 0, -1, -3359},
	{2, -1, -1, 1, 2463},
	{2, -1, 0, 1, 2211},
	{2, -1, -1, -1, 2065},
	{0, 1, -1, -1, -1870},
}

const kmPerAU = 149597870.7

// moonPosition returns the Moon's geocentric ecliptic longitude and latitude
// (degrees, equinox of date) and distance (AU) at t centuries from J2000.
func moonPosition(t float64) (lon, lat, dist float64) {
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t +
		t*t*t/538841 - t*t*t*t/65194000
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t*t +
		t*t*t/545868 - t*t*t*t/113065000
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t*t + t*t*t/24490000
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t*t +
		t*t*t/69699 - t*t*t*t/14712000
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t*t -
		t*t*t/3526000 + t*t*t*t/863310000

	// Eccentricity damping for terms involving the solar anomaly.
	e := 1 - 0.002516*t - 0.0000074*t*t

	var sl, sr float64
	for _, tm := range moonLonDist {
		arg := float64(tm.d)*d + float64(tm.m)*m + float64(tm.mp)*mp + float64(tm.f)*f
		mult := 1.0
		if tm.m == 1 || tm.m == -1 {
			mult = e
		} else if tm.m == 2 || tm.m == -2 {
			mult = e * e
		}
		sl += tm.sl * mult * sind(arg)
		sr += tm.sr * mult * cosd(arg)
	}

	var sb float64
	for _, tm := range moonLat {
		arg := float64(tm.d)*d + float64(tm.m)*m + float64(tm.mp)*mp + float64(tm.f)*f
		mult := 1.0
		if tm.m == 1 || tm.m == -1 {
			mult = e
		} else if tm.m == 2 || tm.m == -2 {
			mult = e * e
		}
		sb += tm.sb * mult * sind(arg)
	}

	// Venus, Jupiter, and flattening corrections.
	a1 := 119.75 + 131.849*t
	a2 := 53.09 + 479264.290*t
	a3 := 313.45 + 481266.484*t
	sl += 3958*sind(a1) + 1962*sind(lp-f) + 318*sind(a2)
	sb += -2235*sind(lp) + 382*sind(a3) + 175*sind(a1-f) +
		175*sind(a1+f) + 127*sind(lp-mp) - 115*sind(lp+mp)

	lon = norm360(lp + sl/1e6)
	lat = sb / 1e6
	dist = (385000.56 + sr/1000) / kmPerAU
	return lon, lat, dist
}
