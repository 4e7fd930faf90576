package qmath

import "math"

// Geodesic computes the great-circle relation between two points on a
// spherical earth. It returns the azimuth from point 1 to point 2, the
// backazimuth from point 2 to point 1, and the distance both as a
// central angle in degrees and in kilometres. Azimuths are measured
// clockwise from north in [0, 360).
func Geodesic(lat1, lon1, lat2, lon2 float64) (
	azimuth, backazimuth, distanceDeg, distanceKM float64,
) {
	const deg2rad = math.Pi / 180.0

	p1 := lat1 * deg2rad
	p2 := lat2 * deg2rad
	dl := (lon2 - lon1) * deg2rad

	// central angle via the haversine form, stable for short arcs
	sinLat := math.Sin((p2 - p1) / 2)
	sinLon := math.Sin(dl / 2)
	h := sinLat*sinLat + math.Cos(p1)*math.Cos(p2)*sinLon*sinLon
	angle := 2 * math.Asin(math.Min(1, math.Sqrt(h)))

	distanceDeg = angle / deg2rad
	distanceKM = angle * EarthRadiusKM

	azimuth = bearing(p1, p2, dl)
	backazimuth = bearing(p2, p1, -dl)
	return azimuth, backazimuth, distanceDeg, distanceKM
}

func bearing(p1, p2, dl float64) float64 {
	y := math.Sin(dl) * math.Cos(p2)
	x := math.Cos(p1)*math.Sin(p2) - math.Sin(p1)*math.Cos(p2)*math.Cos(dl)
	b := math.Atan2(y, x) * 180.0 / math.Pi
	if b < 0 {
		b += 360.0
	}
	return b
}
