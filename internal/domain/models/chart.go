package models

import "math"

// Zodiac sign names in longitude order: sign i spans [i*30, (i+1)*30).
var ZodiacSigns = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignFromLongitude maps an absolute ecliptic longitude to its sign name.
func SignFromLongitude(lon float64) string {
	idx := int(math.Floor(lon/30)) % 12
	if idx < 0 {
		idx += 12
	}
	return ZodiacSigns[idx]
}

// DegreeInSign returns the longitude's position within its sign, [0,30).
func DegreeInSign(lon float64) float64 {
	d := math.Mod(lon, 30)
	if d < 0 {
		d += 30
	}
	return d
}

// ChartAngle is a single ecliptic degree expressed as sign + in-sign degree.
// The Ascendant and Midheaven are chart angles.
type ChartAngle struct {
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// AngleFromLongitude derives a ChartAngle from an absolute longitude.
func AngleFromLongitude(lon float64) ChartAngle {
	return ChartAngle{Sign: SignFromLongitude(lon), Degree: DegreeInSign(lon)}
}

// HouseCusp is one house boundary.
type HouseCusp struct {
	House          int     `json:"house"` // 1..12
	Sign           string  `json:"sign"`
	Degree         float64 `json:"degree"`
	AbsoluteDegree float64 `json:"absolute_degree"`
}

// BodyPlacement is one body's position in a chart. House is derived from the
// cusps the chart was assembled with; reassembling with different cusps
// reassigns it without re-querying the position provider.
type BodyPlacement struct {
	Body           string  `json:"body"`
	Sign           string  `json:"sign"`
	Degree         float64 `json:"degree"`
	AbsoluteDegree float64 `json:"absolute_degree"`
	House          int     `json:"house"`
	Retrograde     bool    `json:"retrograde"`
}

// Aspect is a classified angular relationship between two chart bodies.
// Applying is false for natal aspects by convention.
type Aspect struct {
	BodyA      string  `json:"body_a"`
	BodyB      string  `json:"body_b"`
	Type       string  `json:"type"`
	ExactAngle float64 `json:"exact_angle"`
	Orb        float64 `json:"orb"`
	Applying   bool    `json:"applying"`
}

// NatalChart is the fully assembled immutable chart. Computed once from birth
// data; persistence belongs to the calling layer.
type NatalChart struct {
	Placements []BodyPlacement `json:"placements"`
	Ascendant  ChartAngle      `json:"ascendant"`
	Midheaven  ChartAngle      `json:"midheaven"`
	Houses     []HouseCusp     `json:"houses"`
	Aspects    []Aspect        `json:"aspects"`
}

// Placement returns the placement for a body name, if present.
func (c *NatalChart) Placement(body string) (BodyPlacement, bool) {
	for _, p := range c.Placements {
		if p.Body == body {
			return p, true
		}
	}
	return BodyPlacement{}, false
}
