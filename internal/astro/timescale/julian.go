// Package timescale converts civil date/time into the continuous Julian day
// scale that all astronomical computation in this repository runs on.
//
// Only the proleptic Gregorian calendar is supported. Dates before the
// Gregorian reform are accepted but interpreted as proleptic Gregorian, never
// Julian-calendar; callers needing historical Julian dates must convert first.
package timescale

import (
	"errors"
	"fmt"
	"time"
)

// EphemerisTime is a continuous time value: fractional days since the Julian
// epoch, in Universal Time. It is opaque to callers; only Normalize constructs
// it from civil input.
type EphemerisTime float64

// J2000 is the standard epoch 2000 January 1.5 TT.
const J2000 EphemerisTime = 2451545.0

// JulianCenturies returns centuries elapsed since J2000 for et.
func (et EphemerisTime) JulianCenturies() float64 {
	return (float64(et) - float64(J2000)) / 36525.0
}

// Add returns et shifted by days (fractional days allowed).
func (et EphemerisTime) Add(days float64) EphemerisTime {
	return EphemerisTime(float64(et) + days)
}

// FromTime converts an absolute instant to EphemerisTime. Used for "now"
// style queries where the caller already holds a resolved time.Time.
func FromTime(t time.Time) EphemerisTime {
	const unixEpochJD = 2440587.5
	return EphemerisTime(unixEpochJD + float64(t.UnixMilli())/86400000.0)
}

// ErrInvalidCivilTime reports a malformed civil date or time.
var ErrInvalidCivilTime = errors.New("invalid civil time")

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Normalize converts a civil moment into EphemerisTime. The civil clock
// reading is interpreted at the given UTC offset (minutes east of Greenwich);
// callers resolve IANA zones to an offset before calling, keeping this
// function deterministic and free of time-zone databases.
func Normalize(year, month, day, hour, minute, utcOffsetMinutes int) (EphemerisTime, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidCivilTime, month)
	}
	dim := daysInMonth[month]
	if month == 2 && isLeap(year) {
		dim = 29
	}
	if day < 1 || day > dim {
		return 0, fmt.Errorf("%w: day %d of month %d in year %d", ErrInvalidCivilTime, day, month, year)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: hour %d", ErrInvalidCivilTime, hour)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: minute %d", ErrInvalidCivilTime, minute)
	}

	// Day fraction of the civil clock reading, shifted to UT by the offset.
	dayFrac := (float64(hour) + float64(minute)/60.0 - float64(utcOffsetMinutes)/60.0) / 24.0

	return julianDay(year, month, day) + EphemerisTime(dayFrac), nil
}

// julianDay computes the Julian day number at 00:00 UT for a proleptic
// Gregorian calendar date (Meeus, Astronomical Algorithms, eq. 7.1).
func julianDay(year, month, day int) EphemerisTime {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := floorDiv(y, 100)
	b := 2 - a + floorDiv(a, 4)

	jd := float64(floorf(365.25*float64(y+4716))) +
		float64(floorf(30.6001*float64(m+1))) +
		float64(day) + float64(b) - 1524.5
	return EphemerisTime(jd)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorf(x float64) int {
	i := int(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return i
}
