package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Earth's mean radius
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// WithinBeam reports whether the bearing from a sector's site to the
// given position falls inside the sector's horizontal beam
// (azimuth ± beamwidth/2, wrapping at north).
func WithinBeam(siteLat, siteLon, azimuth, beamwidth, lat, lon float64) bool {
	if math.IsNaN(azimuth) || math.IsNaN(beamwidth) {
		return false
	}
	bearing := Bearing(siteLat, siteLon, lat, lon)
	diff := math.Abs(math.Mod(bearing-azimuth+540, 360) - 180)
	return diff <= beamwidth/2
}
