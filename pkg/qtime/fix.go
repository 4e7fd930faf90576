package qtime

import (
	"math"
	"time"
)

// Components is a canonical hour/minute/second triple with
// hour in [0,24), minute in [0,60) and second in [0,60).
type Components struct {
	Hour   int
	Minute int
	Second float64
}

// Carry holds the overflow removed from illegal time components.
// It is applied to the date after the timestamp is constructed from
// the canonical components.
type Carry struct {
	Days    int
	Hours   int
	Minutes int
}

// IsZero reports whether no carry is needed.
func (c Carry) IsZero() bool {
	return c.Days == 0 && c.Hours == 0 && c.Minutes == 0
}

// FixTimeComponents canonicalizes time components that legacy bulletin
// lines sometimes carry as hour=24, minute=60 or second=60, meaning the
// next day, hour or minute. The fractional part of the second is
// preserved on the corrected component. Canonical input passes through
// unchanged with a zero carry.
func FixTimeComponents(hour, minute int, second float64) (Components, Carry) {
	comp := Components{Hour: hour, Minute: minute, Second: second}
	var carry Carry

	if hour >= 24 {
		comp.Hour = 0
		carry.Days = hour / 24
	}
	if minute >= 60 {
		comp.Minute = 0
		carry.Hours = minute / 60
	}
	if second >= 60.0 {
		comp.Second = second - math.Floor(second)
		carry.Minutes = int(comp.Second / 60.0)
	}

	return comp, carry
}

// Adjust applies a Carry from FixTimeComponents to a timestamp.
func Adjust(c Carry, t Time) Time {
	if c.IsZero() {
		return t
	}
	d := time.Duration(c.Days)*24*time.Hour +
		time.Duration(c.Hours)*time.Hour +
		time.Duration(c.Minutes)*time.Minute
	return t.Add(d)
}

// CorrectedDate builds a Time from calendar components, first
// canonicalizing illegal hour/minute/second values and carrying the
// excess into the date.
func CorrectedDate(
	year int, month time.Month, day, hour, min int, sec float64,
) Time {
	comp, carry := FixTimeComponents(hour, min, sec)
	t := Date(year, month, day, comp.Hour, comp.Minute, comp.Second)
	return Adjust(carry, t)
}
