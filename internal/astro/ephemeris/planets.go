package ephemeris

import "math"

// Keplerian mean elements and centennial rates for the major planets,
// referenced to the mean ecliptic and equinox of J2000, valid 1800-2050
// (Standish, "Keplerian Elements for Approximate Positions of the Major
// Planets"). Angles in degrees, semi-major axes in AU, rates per Julian
// century.
type elements struct {
	a, aDot       float64 // semi-major axis
	e, eDot       float64 // eccentricity
	i, iDot       float64 // inclination
	l, lDot       float64 // mean longitude
	peri, periDot float64 // longitude of perihelion
	node, nodeDot float64 // longitude of ascending node
}

var earthElements = elements{
	1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0,
}

var planetElements = map[Body]elements{
	Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	Uranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	Neptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	Pluto: {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

// heliocentric returns the J2000 ecliptic rectangular position (AU) for the
// element set at t centuries from J2000.
func heliocentric(el elements, t float64) (x, y, z float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	incl := el.i + el.iDot*t
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	m := norm360(l - peri)
	ecc := solveKepler(m*math.Pi/180, e)

	xOrb := a * (math.Cos(ecc) - e)
	yOrb := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	w := peri - node // argument of perihelion
	cw, sw := cosd(w), sind(w)
	cn, sn := cosd(node), sind(node)
	ci, si := cosd(incl), sind(incl)

	x = (cw*cn-sw*sn*ci)*xOrb + (-sw*cn-cw*sn*ci)*yOrb
	y = (cw*sn+sw*cn*ci)*xOrb + (-sw*sn+cw*cn*ci)*yOrb
	z = sw*si*xOrb + cw*si*yOrb
	return x, y, z
}

// solveKepler solves E - e*sin(E) = M (radians) by Newton iteration.
// Convergence criterion: |dE| < 1e-10 rad, hard cap 30 rounds; the cap is
// never reached for the eccentricities in the table.
func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for i := 0; i < 30; i++ {
		d := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= d
		if math.Abs(d) < 1e-10 {
			break
		}
	}
	return ecc
}

// sunPosition returns the geocentric Sun: the negated heliocentric Earth,
// precessed to the equinox of date.
func sunPosition(t float64) (lon, lat, dist float64) {
	x, y, z := heliocentric(earthElements, t)
	return geocentricOf(-x, -y, -z, t)
}

// planetPosition returns the geocentric position of a major planet at t,
// precessed to the equinox of date.
func planetPosition(body Body, t float64) (lon, lat, dist float64) {
	el := planetElements[body]
	px, py, pz := heliocentric(el, t)
	ex, ey, ez := heliocentric(earthElements, t)
	return geocentricOf(px-ex, py-ey, pz-ez, t)
}

func geocentricOf(x, y, z, t float64) (lon, lat, dist float64) {
	dist = math.Sqrt(x*x + y*y + z*z)
	lon = precessToDate(norm360(atan2d(y, x)), t)
	lat = atan2d(z, math.Hypot(x, y))
	return lon, lat, dist
}
