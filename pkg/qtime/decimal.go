package qtime

import (
	"math"
	"time"
)

const secondsPerDay = 86400.0

// DecimalYear returns the decimal-year representation of t: the
// integer year plus the elapsed fraction of that year, where a year
// counts 365 days, or 366 in a leap year.
func (t Time) DecimalYear() float64 {
	tt := t.t
	secOfDay := float64(tt.Hour())*3600 +
		float64(tt.Minute())*60 +
		float64(tt.Second()) +
		float64(tt.Nanosecond())/1e9

	yearSeconds := float64(tt.YearDay()-1)*secondsPerDay + secOfDay
	return float64(tt.Year()) +
		yearSeconds/(secondsPerDay*float64(daysInYear(tt.Year())))
}

// FromDecimalYear converts a decimal year back into a timestamp.
func FromDecimalYear(dy float64) Time {
	year, frac := math.Modf(dy)
	start := time.Date(int(year), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearSeconds := frac * secondsPerDay * float64(daysInYear(int(year)))
	return Time{t: start.Add(
		time.Duration(math.Round(yearSeconds * 1e9)))}
}

func daysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
