package pagercity

import "errors"

var (
	// ErrCatalogLoad is returned when a city source is missing, unreadable or
	// malformed. No partial catalog is ever returned alongside it.
	ErrCatalogLoad = errors.New("pagercity: catalog load failed")

	// ErrMissingField is returned when ranking requires a field (intensity)
	// that one of the input cities does not carry.
	ErrMissingField = errors.New("pagercity: missing required field")

	// ErrOutOfBounds is reported by an IntensityGrid for coordinates it does not
	// cover. BindExposure treats it as a per-city skip.
	ErrOutOfBounds = errors.New("pagercity: coordinate outside grid bounds")

	// ErrInvalidGrid is returned for a grid specification that cannot be tessellated.
	ErrInvalidGrid = errors.New("pagercity: invalid grid specification")

	// ErrInvalidPolygon is returned by NewPolygon for unusable vertex lists.
	ErrInvalidPolygon = errors.New("pagercity: invalid polygon")
)
