package models

import "time"

// Moon phase names in bucket order; bucket i spans [i*45, (i+1)*45) degrees of
// Sun-Moon elongation, lower edge inclusive.
var MoonPhases = []string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

// TransitAspect is one currently-active contact between a transiting body and
// a natal placement.
type TransitAspect struct {
	TransitingBody string  `json:"transiting_body"`
	Type           string  `json:"type"`
	NatalBody      string  `json:"natal_body"`
	Orb            float64 `json:"orb"`
	Applying       bool    `json:"applying"`
}

// TransitSnapshot is the sky-versus-chart state at a single moment. Created
// fresh on every scan; callers may cache it, the engine never does.
type TransitSnapshot struct {
	Timestamp      time.Time       `json:"timestamp"`
	MoonSign       string          `json:"moon_sign"`
	MoonPhase      string          `json:"moon_phase"`
	ActiveTransits []TransitAspect `json:"active_transits"`
}
