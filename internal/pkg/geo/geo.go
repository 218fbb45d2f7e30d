// Package geo checks GPS captures against the property's geofence.
package geo

import "math"

const earthRadiusMeters = 6371000

type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the haversine distance between two points in meters.
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Fence is a circle around the property. A zero radius disables it.
type Fence struct {
	Center       Point
	RadiusMeters float64
}

func (f Fence) Enabled() bool {
	return f.RadiusMeters > 0
}

// Contains reports whether p lies within the fence. A disabled fence
// contains every point.
func (f Fence) Contains(p Point) bool {
	if !f.Enabled() {
		return true
	}
	return Distance(f.Center, p) <= f.RadiusMeters
}
