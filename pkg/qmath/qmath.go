// Package qmath provides the numeric helpers shared by catalog
// importers and the compact representation: epsilon comparison,
// scientific-notation handling, magnitude quantization and the
// spherical-earth conversions legacy formats rely on.
package qmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadiusKM is the mean earth radius used for the spherical
// kilometre/degree conversions.
const EarthRadiusKM = 6371.0087714

// EarthKMPerDegree is the length of one degree of a great circle.
var EarthKMPerDegree = math.Pi * EarthRadiusKM / 180.0

// NaNToken is the sentinel written to column files for missing values.
const NaNToken = "NaN"

// DefaultEpsilon is the tolerance for FloatEqual.
const DefaultEpsilon = 1e-12

// FloatEqual reports whether two floats are within eps of each other.
// A non-positive eps falls back to DefaultEpsilon.
func FloatEqual(f1, f2, eps float64) bool {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return math.Abs(f1-f2) <= eps
}

// NormalizeFloat splits a positive value into a mantissa and a decimal
// exponent in normalized scientific notation.
func NormalizeFloat(value float64) (float64, int) {
	exponent := int(math.Log10(value))
	mantissa := value / math.Pow(10, float64(exponent))
	return mantissa, exponent
}

// ExponentialFloat builds a float from a mantissa and a decimal
// exponent by string concatenation, not arithmetic. Multiplying by a
// power of ten does not reproduce the value a direct decimal parse
// yields (1.283e23 != 10**23 * 1.283 at the bit level); concatenation
// does.
func ExponentialFloat(mantissa float64, exponent int) float64 {
	s := strconv.FormatFloat(mantissa, 'g', -1, 64) +
		"e" + strconv.Itoa(exponent)
	res, _ := strconv.ParseFloat(s, 64)
	return res
}

// ExponentialFloatFromStrings builds a float from textual mantissa and
// exponent fields as they appear in a bulletin line.
func ExponentialFloatFromStrings(mantissa, exponent string) (float64, error) {
	s := strings.TrimSpace(mantissa) + "e" + strings.TrimSpace(exponent)
	res, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("qmath: bad exponential %q: %w", s, err)
	}
	return res, nil
}

// Rebin quantizes a value to the nearest multiple of binsize.
// Ties round half away from zero.
func Rebin(value, binsize float64) float64 {
	return binsize * math.Round(value/binsize)
}

// CentralAngleDegrees converts a surface distance in kilometres into
// the corresponding great-circle angle in degrees.
func CentralAngleDegrees(distanceKM float64) float64 {
	return distanceKM / EarthKMPerDegree
}

// HorizontalErrorKM computes the combined horizontal error in
// kilometres from latitude/longitude errors in degrees at the given
// latitude.
func HorizontalErrorKM(latErr, lonErr, latitude float64) float64 {
	latErrKM := latErr * EarthKMPerDegree
	lonErrKM := lonErr * math.Cos(latitude*math.Pi/180.0) * EarthKMPerDegree
	return math.Sqrt(latErrKM*latErrKM + lonErrKM*lonErrKM)
}

// BackazimuthFromAzimuth computes the backazimuth in plane geometry.
// Assumes azimuth between -180 and 360 degrees.
func BackazimuthFromAzimuth(azimuth float64) float64 {
	if azimuth < 180.0 {
		return azimuth + 180.0
	}
	return azimuth - 180.0
}
