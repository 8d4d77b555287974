package pagercity

import (
	"errors"
	"fmt"
)

// IntensityGrid is a source of shaking intensity by location, typically a
// ShakeMap raster. Coordinates the grid does not cover must be reported with
// an error that matches ErrOutOfBounds under errors.Is; any other error is
// treated as a failure of the grid itself.
type IntensityGrid interface {
	ValueAt(lat, lon float64) (float64, error)
}

// BindExposure returns copies of cities carrying the intensity grid reports
// at their location, in input order. Cities outside the grid are left out.
// Any other lookup error aborts the call.
func BindExposure(cities []City, grid IntensityGrid) ([]City, error) {
	out := make([]City, 0, len(cities))
	for _, c := range cities {
		v, err := grid.ValueAt(c.Lat, c.Lon)
		if errors.Is(err, ErrOutOfBounds) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("bind exposure: %s (%g, %g): %w", c.Name, c.Lat, c.Lon, err)
		}
		out = append(out, c.WithIntensity(v))
	}
	return out, nil
}
