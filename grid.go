package pagercity

import (
	"fmt"
	"math"
)

// maxGridCells bounds the number of cells a GridSpec may produce. A whole-world
// grid of 0.1 degree cells stays below it.
const maxGridCells = 1 << 23

// GridSpec describes a rectangular region cut into cells of XDim by YDim
// degrees, with at most PerCell cities kept from each cell.
type GridSpec struct {
	XMin, XMax float64 // longitude range
	YMin, YMax float64 // latitude range
	XDim, YDim float64 // nominal cell size
	PerCell    int
}

func (s GridSpec) validate() error {
	for _, v := range []float64{s.XMin, s.XMax, s.YMin, s.YMax, s.XDim, s.YDim} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidGrid, s)
		}
	}
	switch {
	case s.XDim <= 0 || s.YDim <= 0:
		return fmt.Errorf("%w: cell size %gx%g must be positive", ErrInvalidGrid, s.XDim, s.YDim)
	case s.XMax < s.XMin || s.YMax < s.YMin:
		return fmt.Errorf("%w: empty bounds x=[%g,%g] y=[%g,%g]", ErrInvalidGrid, s.XMin, s.XMax, s.YMin, s.YMax)
	case s.PerCell < 0:
		return fmt.Errorf("%w: per-cell cap %d is negative", ErrInvalidGrid, s.PerCell)
	}
	cols := math.Floor((s.XMax - s.XMin) / s.XDim)
	rows := math.Floor((s.YMax - s.YMin) / s.YDim)
	if !(cols <= maxGridCells && rows <= maxGridCells && rows*cols <= maxGridCells) {
		return fmt.Errorf("%w: %g x %g cells exceed the limit of %d", ErrInvalidGrid, rows, cols, maxGridCells)
	}
	return nil
}

// Dimensions returns the number of rows and columns in the tessellation.
// Partial cells are not counted: the last row and column absorb the remainder.
func (s GridSpec) Dimensions() (rows, cols int) {
	cols = int((s.XMax - s.XMin) / s.XDim)
	rows = int((s.YMax - s.YMin) / s.YDim)
	return rows, cols
}

// Cells returns the cell rectangles in row-major order (latitude outer,
// longitude inner). The last row and column are widened to reach the edge of
// the region when the region is not a whole number of cells; cells are never
// narrower than nominal. Neighbouring cells share their edge coordinate
// exactly, so no point of the region falls between two cells. Specs that
// SelectByGrid rejects yield no cells.
func (s GridSpec) Cells() []Bounds {
	if s.validate() != nil {
		return nil
	}
	rows, cols := s.Dimensions()
	if rows <= 0 || cols <= 0 {
		return nil
	}
	cells := make([]Bounds, 0, rows*cols)
	for i := 0; i < rows; i++ {
		latMin := s.YMin + float64(i)*s.YDim
		latMax := s.YMin + float64(i+1)*s.YDim
		if i == rows-1 {
			latMax = math.Max(latMax, s.YMax)
		}
		for j := 0; j < cols; j++ {
			lonMin := s.XMin + float64(j)*s.XDim
			lonMax := s.XMin + float64(j+1)*s.XDim
			if j == cols-1 {
				lonMax = math.Max(lonMax, s.XMax)
			}
			cells = append(cells, Bounds{LonMin: lonMin, LonMax: lonMax, LatMin: latMin, LatMax: latMax})
		}
	}
	return cells
}

// SelectByGrid thins cities to at most spec.PerCell per grid cell. Within a
// cell, cities are ranked capitals first, then by population. The result keeps
// cell order and within-cell rank order; it is not re-sorted. A city on a
// shared cell edge is considered by both cells.
func SelectByGrid(cities []City, spec GridSpec) ([]City, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	out := make([]City, 0)
	for _, cell := range spec.Cells() {
		inCell := FilterByRectangle(cities, cell)
		if len(inCell) == 0 {
			continue
		}
		ranked, err := Rank(inCell, MethodCapital)
		if err != nil {
			return nil, err
		}
		out = append(out, ranked[:min(spec.PerCell, len(ranked))]...)
	}
	return out, nil
}
