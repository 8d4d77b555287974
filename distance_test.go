package pagercity

import (
	"math"
	"testing"
)

func TestGreatCircleDistance(t *testing.T) {
	oneDegree := EarthRadiusMeters * math.Pi / 180

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"same point", 12.5, -70.1, 12.5, -70.1, 0},
		{"one degree along the equator", 0, 0, 0, 1, oneDegree},
		{"one degree along a meridian", 10, 20, 11, 20, oneDegree},
		{"antipodes", 0, 0, 0, 180, EarthRadiusMeters * math.Pi},
		{"across the antimeridian", 0, 179.5, 0, -179.5, oneDegree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GreatCircleDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > 1e-6*math.Max(1, tt.want) {
				t.Errorf("GreatCircleDistance() = %v, want %v", got, tt.want)
			}
			if back := GreatCircleDistance(tt.lat2, tt.lon2, tt.lat1, tt.lon1); math.Abs(back-got) > 1e-6 {
				t.Errorf("distance not symmetric: %v vs %v", got, back)
			}
		})
	}
}
