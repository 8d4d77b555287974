package pagercity

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the spherical Earth radius used for city distances.
const EarthRadiusMeters = 6367e3

// DistanceFunc returns the distance in meters between two points given in degrees.
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// GreatCircleDistance returns the great-circle distance in meters between two
// points on a sphere of radius EarthRadiusMeters.
func GreatCircleDistance(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * EarthRadiusMeters
}

// metersToAngle converts a surface distance to an angle on the unit sphere.
func metersToAngle(m float64) s1.Angle {
	return s1.Angle(m / EarthRadiusMeters)
}
