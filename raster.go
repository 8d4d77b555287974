package pagercity

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RasterGrid is a regular latitude/longitude raster of intensity values.
// Values are stored row-major from the northernmost row down, and each value
// belongs to the center of its cell. Lookups return the nearest cell center.
type RasterGrid struct {
	xmin, ymax float64 // center of the upper-left cell
	dx, dy     float64
	rows, cols int
	values     []float64
	nodata     float64
	hasNodata  bool
}

// NewRasterGrid builds a grid whose upper-left cell is centered on
// (ymax, xmin). len(values) must equal rows*cols.
func NewRasterGrid(xmin, ymax, dx, dy float64, rows, cols int, values []float64) (*RasterGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("raster grid: dimensions %dx%d must be positive", rows, cols)
	}
	if !(dx > 0) || !(dy > 0) {
		return nil, fmt.Errorf("raster grid: cell size %gx%g must be positive", dx, dy)
	}
	if len(values)%cols != 0 || len(values)/cols != rows {
		return nil, fmt.Errorf("raster grid: got %d values for %dx%d cells", len(values), rows, cols)
	}
	own := make([]float64, len(values))
	copy(own, values)
	return &RasterGrid{xmin: xmin, ymax: ymax, dx: dx, dy: dy, rows: rows, cols: cols, values: own}, nil
}

// Bounds returns the extent covered by cell centers.
func (g *RasterGrid) Bounds() Bounds {
	return Bounds{
		LonMin: g.xmin,
		LonMax: g.xmin + float64(g.cols-1)*g.dx,
		LatMin: g.ymax - float64(g.rows-1)*g.dy,
		LatMax: g.ymax,
	}
}

// ValueAt returns the value of the cell nearest (lat, lon). Points outside the
// extent of cell centers, and cells holding the NODATA value, report
// ErrOutOfBounds.
func (g *RasterGrid) ValueAt(lat, lon float64) (float64, error) {
	if !g.Bounds().Contains(lat, lon) {
		return 0, fmt.Errorf("raster grid: (%g, %g): %w", lat, lon, ErrOutOfBounds)
	}
	col := int(math.Round((lon - g.xmin) / g.dx))
	row := int(math.Round((g.ymax - lat) / g.dy))
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)

	v := g.values[row*g.cols+col]
	if g.hasNodata && v == g.nodata {
		return 0, fmt.Errorf("raster grid: (%g, %g) has no data: %w", lat, lon, ErrOutOfBounds)
	}
	return v, nil
}

// ReadASCIIGrid parses an ESRI ASCII raster (the .asc export of a ShakeMap
// intensity grid). Corner and center registration are both accepted.
func ReadASCIIGrid(r io.Reader) (*RasterGrid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	scanner.Split(bufio.ScanWords)

	header := map[string]float64{}
	var first string
	for scanner.Scan() {
		key := strings.ToLower(scanner.Text())
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			first = key
			break
		}
		if !scanner.Scan() {
			return nil, fmt.Errorf("ascii grid: header %q has no value", key)
		}
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("ascii grid: header %q: %w", key, err)
		}
		header[key] = v
	}

	for _, k := range []string{"ncols", "nrows", "cellsize"} {
		if _, ok := header[k]; !ok {
			return nil, fmt.Errorf("ascii grid: missing %s", k)
		}
	}
	cols, err := gridDimension(header, "ncols")
	if err != nil {
		return nil, err
	}
	rows, err := gridDimension(header, "nrows")
	if err != nil {
		return nil, err
	}
	size := header["cellsize"]

	var xll, yll float64
	switch {
	case hasKey(header, "xllcenter") && hasKey(header, "yllcenter"):
		xll, yll = header["xllcenter"], header["yllcenter"]
	case hasKey(header, "xllcorner") && hasKey(header, "yllcorner"):
		xll, yll = header["xllcorner"]+size/2, header["yllcorner"]+size/2
	default:
		return nil, fmt.Errorf("ascii grid: missing lower-left origin")
	}

	// The header is not trusted for sizing; NewRasterGrid rejects a mismatch.
	var values []float64
	token := first
	for token != "" {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("ascii grid: value %d: %w", len(values), err)
		}
		values = append(values, v)
		token = ""
		if scanner.Scan() {
			token = scanner.Text()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ascii grid: %w", err)
	}

	g, err := NewRasterGrid(xll, yll+float64(rows-1)*size, size, size, rows, cols, values)
	if err != nil {
		return nil, fmt.Errorf("ascii grid: %w", err)
	}
	if nd, ok := header["nodata_value"]; ok {
		g.nodata, g.hasNodata = nd, true
	}
	return g, nil
}

// gridDimension reads a row or column count, which must be a positive integer.
func gridDimension(header map[string]float64, key string) (int, error) {
	v := header[key]
	if !(v >= 1) || v > math.MaxInt32 || v != math.Trunc(v) {
		return 0, fmt.Errorf("ascii grid: %s %g is not a positive integer", key, v)
	}
	return int(v), nil
}

func hasKey(m map[string]float64, k string) bool {
	_, ok := m[k]
	return ok
}

// gridAnswer is a memoized lookup result.
type gridAnswer struct {
	value     float64
	outOfGrid bool
}

// CachedGrid memoizes the answers of another IntensityGrid by exact
// coordinate. Out-of-bounds answers are remembered too; other errors are not.
type CachedGrid struct {
	grid  IntensityGrid
	cache *lru.Cache[[2]float64, gridAnswer]
}

// NewCachedGrid wraps grid with an LRU of the given size.
func NewCachedGrid(grid IntensityGrid, size int) (*CachedGrid, error) {
	c, err := lru.New[[2]float64, gridAnswer](size)
	if err != nil {
		return nil, fmt.Errorf("cached grid: %w", err)
	}
	return &CachedGrid{grid: grid, cache: c}, nil
}

// ValueAt implements IntensityGrid.
func (g *CachedGrid) ValueAt(lat, lon float64) (float64, error) {
	key := [2]float64{lat, lon}
	if a, ok := g.cache.Get(key); ok {
		if a.outOfGrid {
			return 0, fmt.Errorf("cached grid: (%g, %g): %w", lat, lon, ErrOutOfBounds)
		}
		return a.value, nil
	}

	v, err := g.grid.ValueAt(lat, lon)
	switch {
	case err == nil:
		g.cache.Add(key, gridAnswer{value: v})
	case errors.Is(err, ErrOutOfBounds):
		g.cache.Add(key, gridAnswer{outOfGrid: true})
	}
	return v, err
}

// Len returns the number of memoized coordinates.
func (g *CachedGrid) Len() int { return g.cache.Len() }
