package rules

import "math"

const earthRadiusKM = 6371.0

// HaversineKM computes the great-circle distance between two coordinate
// pairs in kilometers. Callers must guard missing coordinates; see
// DistanceKM for the unbounded convention.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(v float64) float64 { return v * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// DistanceKM resolves the distance between two optionally-located points.
// When either side lacks coordinates the distance is unbounded (+Inf):
// such candidates are never excluded by the max-distance filter and never
// satisfy it either.
func DistanceKM(lat1, lon1 *float64, lat2, lon2 *float64) float64 {
	if lat1 == nil || lon1 == nil || lat2 == nil || lon2 == nil {
		return math.Inf(1)
	}
	return HaversineKM(*lat1, *lon1, *lat2, *lon2)
}
