package geo

import "math"

const earthRadiusKm = 6371.0

// TravelMode selects the average speed used for travel time estimates
type TravelMode string

const (
	ModeWalking TravelMode = "walking"
	ModeDriving TravelMode = "driving"
	ModeTransit TravelMode = "transit"
)

// Average speeds in km/h per travel mode
var modeSpeeds = map[TravelMode]float64{
	ModeWalking: 5,
	ModeDriving: 30,
	ModeTransit: 20,
}

// Distance computes the great-circle distance between two coordinates in
// kilometers using the haversine formula, rounded to two decimal places.
// Out-of-range coordinates are clamped to valid latitude/longitude bounds.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1 = clamp(lat1, -90, 90)
	lat2 = clamp(lat2, -90, 90)
	lon1 = clamp(lon1, -180, 180)
	lon2 = clamp(lon2, -180, 180)

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(earthRadiusKm*c*100) / 100
}

// TravelMinutes estimates travel time in whole minutes for the given distance
// and mode. Unknown modes fall back to driving speed.
func TravelMinutes(distanceKm float64, mode TravelMode) int {
	speed, ok := modeSpeeds[mode]
	if !ok {
		speed = modeSpeeds[ModeDriving]
	}
	return int(math.Round(distanceKm / speed * 60))
}

// TravelEstimates returns travel minutes for all supported modes
func TravelEstimates(distanceKm float64) map[TravelMode]int {
	estimates := make(map[TravelMode]int, len(modeSpeeds))
	for mode := range modeSpeeds {
		estimates[mode] = TravelMinutes(distanceKm, mode)
	}
	return estimates
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
