// Package qtime provides the timestamp value type used throughout QCat.
//
// Legacy catalog formats carry times with limited precision, illegal
// component values (hour=24, minute=60, second=60) and a variety of
// textual renderings. This package keeps all of that in one place:
// construction from possibly-illegal components, epsilon-aware
// comparison, ISO-8601 rendering with configurable fractional-second
// precision, and decimal-year conversion.
package qtime

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultEpsilon is the comparison tolerance for timestamps, in seconds.
const DefaultEpsilon = 1e-9

// DefaultSecondsDigits is the number of fractional-second digits used
// when a timestamp is rendered and no explicit precision is requested.
const DefaultSecondsDigits = 6

// Time is an absolute timestamp in UTC.
type Time struct {
	t time.Time
}

// New wraps a time.Time, normalizing it to UTC.
func New(t time.Time) Time {
	return Time{t: t.UTC()}
}

// Now returns the current instant in UTC.
func Now() Time {
	return Time{t: time.Now().UTC()}
}

// Date builds a Time from calendar components. The seconds value may
// carry a fraction. Components must already be canonical; use
// CorrectedDate for values that may contain hour=24 style anomalies.
func Date(year int, month time.Month, day, hour, min int, sec float64) Time {
	secInt, frac := math.Modf(sec)
	nsec := int(math.Round(frac * 1e9))
	return Time{t: time.Date(
		year, month, day, hour, min, int(secInt), nsec, time.UTC)}
}

// Std returns the underlying time.Time (UTC).
func (t Time) Std() time.Time {
	return t.t
}

// IsZero reports whether t is the zero timestamp.
func (t Time) IsZero() bool {
	return t.t.IsZero()
}

// Add returns t shifted by d.
func (t Time) Add(d time.Duration) Time {
	return Time{t: t.t.Add(d)}
}

// AddDate returns t shifted by the given number of years, months, days.
func (t Time) AddDate(years, months, days int) Time {
	return Time{t: t.t.AddDate(years, months, days)}
}

// Before reports whether t is earlier than o.
func (t Time) Before(o Time) bool {
	return t.t.Before(o.t)
}

// After reports whether t is later than o.
func (t Time) After(o Time) bool {
	return t.t.After(o.t)
}

// Equal reports whether t and o are within eps seconds of each other.
// A non-positive eps falls back to DefaultEpsilon.
func (t Time) Equal(o Time, eps float64) bool {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	diff := t.t.Sub(o.t).Seconds()
	return math.Abs(diff) <= eps
}

// ISOFormat controls how a Time is rendered as an ISO-8601 string.
// Zero values select the conventional separators.
type ISOFormat struct {
	// SecondsDigits is the number of fractional-second digits. The
	// fraction is truncated, not rounded. A negative value suppresses
	// the fraction entirely; zero selects DefaultSecondsDigits.
	SecondsDigits int

	// DateSep replaces '-' between date components.
	DateSep string

	// TimeSep replaces ':' between time components. Identifier
	// generation uses "." here, since ':' is reserved in resource
	// identifiers.
	TimeSep string

	// DateTimeSep replaces the 'T' between date and time.
	DateTimeSep string
}

// Format renders t as ISO-8601 according to f.
func (t Time) Format(f ISOFormat) string {
	dateSep := f.DateSep
	if dateSep == "" {
		dateSep = "-"
	}
	timeSep := f.TimeSep
	if timeSep == "" {
		timeSep = ":"
	}
	dtSep := f.DateTimeSep
	if dtSep == "" {
		dtSep = "T"
	}

	tt := t.t
	res := fmt.Sprintf("%04d%s%02d%s%02d%s%02d%s%02d%s%02d",
		tt.Year(), dateSep, int(tt.Month()), dateSep, tt.Day(), dtSep,
		tt.Hour(), timeSep, tt.Minute(), timeSep, tt.Second())

	digits := f.SecondsDigits
	if digits == 0 {
		digits = DefaultSecondsDigits
	}
	if digits < 0 {
		return res
	}
	if digits > 9 {
		digits = 9
	}

	// Truncate the nanosecond fraction to the requested digit count.
	frac := fmt.Sprintf("%09d", tt.Nanosecond())
	return res + "." + frac[:digits]
}

// ISO renders t with standard separators and the given number of
// fractional-second digits (truncated).
func (t Time) ISO(digits int) string {
	if digits <= 0 {
		digits = -1
	}
	return t.Format(ISOFormat{SecondsDigits: digits})
}

// String implements fmt.Stringer with default precision.
func (t Time) String() string {
	return t.Format(ISOFormat{})
}

// Parse reads an ISO-8601 timestamp, with or without fractional
// seconds, trailing 'Z', or a space instead of 'T'.
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "Z")
	s = strings.Replace(s, " ", "T", 1)

	layouts := []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, l := range layouts {
		if tt, err := time.Parse(l, s); err == nil {
			return Time{t: tt.UTC()}, nil
		}
	}
	return Time{}, fmt.Errorf("qtime: cannot parse %q", s)
}
