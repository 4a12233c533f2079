package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance in kilometers between two
// coordinates using the haversine formula. It is symmetric, returns 0 for
// identical points and never returns a negative value for finite inputs.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// RouteDistance returns the total distance in kilometers of the path that
// visits the given stops in order. No reordering is performed: the result
// reflects the chronological path taken, not a shortest path. Zero or one
// stop yields 0.
func RouteDistance(stops []Point) float64 {
	if len(stops) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(stops); i++ {
		total += Distance(stops[i-1].Lat, stops[i-1].Lon, stops[i].Lat, stops[i].Lon)
	}
	return total
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
