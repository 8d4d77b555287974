package pagercity

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Polygon is a planar (longitude/latitude) polygon made of one or more
// parts, such as a country outline with islands.
type Polygon struct {
	parts  *geom.MultiPolygon
	bounds *geom.Bounds
}

// NewPolygon builds a polygon from parallel vertex slices. A NaN in xs
// separates consecutive parts. Rings are closed automatically.
func NewPolygon(xs, ys []float64) (*Polygon, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", ErrInvalidPolygon, len(xs), len(ys))
	}

	mp := geom.NewMultiPolygon(geom.XY)
	start := 0
	for i := 0; i <= len(xs); i++ {
		if i < len(xs) && !math.IsNaN(xs[i]) {
			continue
		}
		if i > start {
			ring, err := closedRing(xs[start:i], ys[start:i])
			if err != nil {
				return nil, fmt.Errorf("part %d: %w", mp.NumPolygons(), err)
			}
			if err := mp.Push(geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)})); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPolygon, err)
			}
		}
		start = i + 1
	}
	if mp.NumPolygons() == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrInvalidPolygon)
	}
	return &Polygon{parts: mp, bounds: mp.Bounds()}, nil
}

func closedRing(xs, ys []float64) ([]float64, error) {
	if len(xs) < 3 {
		return nil, fmt.Errorf("%w: ring has %d vertices", ErrInvalidPolygon, len(xs))
	}
	flat := make([]float64, 0, 2*len(xs)+2)
	for i := range xs {
		if math.IsNaN(ys[i]) {
			return nil, fmt.Errorf("%w: NaN latitude at vertex %d", ErrInvalidPolygon, i)
		}
		flat = append(flat, xs[i], ys[i])
	}
	if xs[0] != xs[len(xs)-1] || ys[0] != ys[len(ys)-1] {
		flat = append(flat, xs[0], ys[0])
	}
	return flat, nil
}

// NumParts returns the number of parts.
func (p *Polygon) NumParts() int { return p.parts.NumPolygons() }

// Bounds returns the bounding rectangle over all parts.
func (p *Polygon) Bounds() Bounds {
	return Bounds{
		LonMin: p.bounds.Min(0),
		LonMax: p.bounds.Max(0),
		LatMin: p.bounds.Min(1),
		LatMax: p.bounds.Max(1),
	}
}

// Contains reports whether (x, y) lies in any part. Points on or outside the
// bounding box are rejected before the ring test.
func (p *Polygon) Contains(x, y float64) bool {
	if !(x > p.bounds.Min(0) && x < p.bounds.Max(0) && y > p.bounds.Min(1) && y < p.bounds.Max(1)) {
		return false
	}
	pt := geom.Coord{x, y}
	for i := 0; i < p.parts.NumPolygons(); i++ {
		ring := p.parts.Polygon(i).LinearRing(0)
		if xy.IsPointInRing(geom.XY, pt, ring.FlatCoords()) {
			return true
		}
	}
	return false
}
