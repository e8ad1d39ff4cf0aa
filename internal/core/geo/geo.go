// Package geo provides the numeric primitives the assignment cascade needs:
// great-circle distance and point-in-polygon containment. Pure math, no state
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for Haversine distances
const EarthRadiusKm = 6371.0

// Point is a geographic coordinate in degrees
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle distance between two coordinates via the
// Haversine formula. Identical coordinates return exactly 0 and the function
// is symmetric in its arguments
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// PointInPolygon reports whether (lat, lon) falls inside the ring using ray
// casting over (x=lon, y=lat). The ring is implicitly closed: the last vertex
// connects back to the first. Rings with fewer than 3 vertices are degenerate
// and always return false.
//
// Boundary rule: the crossing test is half-open, so a point exactly on a
// "lower" edge counts as inside while one on the opposing edge does not. The
// rule is arbitrary but consistent for all inputs, which is all the cascade
// needs
func PointInPolygon(lat, lon float64, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}

	x, y := lon, lat
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat

		if (yi > y) != (yj > y) {
			// x coordinate where the edge crosses the ray
			cross := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func toRadians(deg float64) float64 { return deg * (math.Pi / 180) }
