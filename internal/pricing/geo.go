package pricing

import "math"

const earthRadiusKm = 6371.0

// CoordTolerance is the per-axis absolute tolerance, in degrees, when matching
// a package's coordinates against the trip's actual coordinates (~11m).
const CoordTolerance = 0.0001

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(a, b Coordinates) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// coordsMatch reports whether two points coincide within CoordTolerance on
// both axes independently.
func coordsMatch(a, b Coordinates) bool {
	return math.Abs(a.Lat-b.Lat) <= CoordTolerance && math.Abs(a.Lon-b.Lon) <= CoordTolerance
}
