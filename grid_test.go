package pagercity

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func TestGridSpec_CellsCoverTheRegion(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 200; trial++ {
		spec := GridSpec{
			XMin: -180 + 300*r.Float64(),
			YMin: -80 + 120*r.Float64(),
			XDim: 0.1 + 3*r.Float64(),
			YDim: 0.1 + 3*r.Float64(),
		}
		spec.XMax = spec.XMin + spec.XDim*(1+10*r.Float64())
		spec.YMax = spec.YMin + spec.YDim*(1+10*r.Float64())

		cells := spec.Cells()
		rows, cols := spec.Dimensions()
		if len(cells) != rows*cols || len(cells) == 0 {
			t.Fatalf("trial %d: %d cells for %dx%d", trial, len(cells), rows, cols)
		}
		for _, c := range cells {
			if c.LonMax-c.LonMin < spec.XDim-1e-9 || c.LatMax-c.LatMin < spec.YDim-1e-9 {
				t.Fatalf("trial %d: cell %+v narrower than nominal", trial, c)
			}
		}
		last := cells[len(cells)-1]
		if cells[0].LonMin != spec.XMin || cells[0].LatMin != spec.YMin || last.LonMax < spec.XMax || last.LatMax < spec.YMax {
			t.Fatalf("trial %d: cells do not reach the region edges", trial)
		}

		for k := 0; k < 50; k++ {
			lon := spec.XMin + (spec.XMax-spec.XMin)*r.Float64()
			lat := spec.YMin + (spec.YMax-spec.YMin)*r.Float64()
			if !coveredBy(cells, lat, lon) {
				t.Fatalf("trial %d: (%v, %v) not covered", trial, lat, lon)
			}
		}
		for _, corner := range [][2]float64{{spec.YMin, spec.XMin}, {spec.YMax, spec.XMax}, {spec.YMin, spec.XMax}, {spec.YMax, spec.XMin}} {
			if !coveredBy(cells, corner[0], corner[1]) {
				t.Fatalf("trial %d: corner %v not covered", trial, corner)
			}
		}
	}
}

func coveredBy(cells []Bounds, lat, lon float64) bool {
	for _, c := range cells {
		if c.Contains(lat, lon) {
			return true
		}
	}
	return false
}

func TestGridSpec_Widening(t *testing.T) {
	spec := GridSpec{XMin: 0, XMax: 2.5, YMin: 0, YMax: 1.5, XDim: 1, YDim: 1}
	want := []Bounds{
		{LonMin: 0, LonMax: 1, LatMin: 0, LatMax: 1.5},
		{LonMin: 1, LonMax: 2.5, LatMin: 0, LatMax: 1.5},
	}
	if got := spec.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cells() = %+v, want %+v", got, want)
	}

	if cells := (GridSpec{XMin: 0, XMax: 0.5, YMin: 0, YMax: 5, XDim: 1, YDim: 1}).Cells(); len(cells) != 0 {
		t.Errorf("region narrower than one cell gave %d cells", len(cells))
	}
}

func TestSelectByGrid(t *testing.T) {
	cities := []City{
		{Name: "sw-big", Lat: 0.2, Lon: 0.2, Population: 5000},
		{Name: "ne-town", Lat: 1.5, Lon: 1.5, Population: 10},
		{Name: "sw-capital", Lat: 0.5, Lon: 0.6, IsCapital: true, Population: 100},
		{Name: "se-only", Lat: 0.1, Lon: 1.9, Population: 1},
		{Name: "ne-city", Lat: 1.8, Lon: 1.2, Population: 700},
		{Name: "sw-small", Lat: 0.3, Lon: 0.9, Population: 50},
		{Name: "outside", Lat: 3, Lon: 3, IsCapital: true, Population: 1e7},
	}
	spec := GridSpec{XMin: 0, XMax: 2, YMin: 0, YMax: 2, XDim: 1, YDim: 1, PerCell: 2}

	got, err := SelectByGrid(cities, spec)
	if err != nil {
		t.Fatalf("SelectByGrid() error: %v", err)
	}
	// row-major: sw, se, nw (empty), ne
	want := []string{"sw-capital", "sw-big", "se-only", "ne-city", "ne-town"}
	if !reflect.DeepEqual(cityNames(got), want) {
		t.Errorf("SelectByGrid() = %v, want %v", cityNames(got), want)
	}

	spec.PerCell = 0
	if got, err := SelectByGrid(cities, spec); err != nil || len(got) != 0 {
		t.Errorf("PerCell=0: %v, %v", cityNames(got), err)
	}
}

func TestSelectByGrid_SharedEdge(t *testing.T) {
	// a city on the boundary between two cells is a candidate in both
	cities := []City{{Name: "edge", Lat: 0.5, Lon: 1}}
	got, err := SelectByGrid(cities, GridSpec{XMin: 0, XMax: 2, YMin: 0, YMax: 1, XDim: 1, YDim: 1, PerCell: 1})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"edge", "edge"}; !reflect.DeepEqual(cityNames(got), want) {
		t.Errorf("SelectByGrid() = %v, want %v", cityNames(got), want)
	}
}

func TestSelectByGrid_InvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec GridSpec
	}{
		{"zero width", GridSpec{XMax: 1, YMax: 1, XDim: 0, YDim: 1}},
		{"negative height", GridSpec{XMax: 1, YMax: 1, XDim: 1, YDim: -1}},
		{"inverted x", GridSpec{XMin: 2, XMax: 1, YMax: 1, XDim: 1, YDim: 1}},
		{"negative cap", GridSpec{XMax: 1, YMax: 1, XDim: 1, YDim: 1, PerCell: -1}},
		{"nan", GridSpec{XMin: math.NaN(), XMax: 1, YMax: 1, XDim: 1, YDim: 1}},
		{"too many cells", GridSpec{XMin: -180, XMax: 180, YMin: -90, YMax: 90, XDim: 1e-7, YDim: 1e-7, PerCell: 1}},
		{"too many columns", GridSpec{XMin: -180, XMax: 180, YMax: 0, XDim: 1e-12, YDim: 1, PerCell: 1}},
		{"span overflows", GridSpec{XMin: -math.MaxFloat64, XMax: math.MaxFloat64, YMax: 1, XDim: 1, YDim: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SelectByGrid(nil, tt.spec); !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("error = %v, want ErrInvalidGrid", err)
			}
			if cells := tt.spec.Cells(); cells != nil {
				t.Errorf("Cells() returned %d cells", len(cells))
			}
		})
	}
}

func TestSelectByGrid_WorldGrid(t *testing.T) {
	spec := GridSpec{XMin: -180, XMax: 180, YMin: -90, YMax: 90, XDim: 1, YDim: 1, PerCell: 1}
	if n := len(spec.Cells()); n != 360*180 {
		t.Fatalf("Cells() = %d cells, want %d", n, 360*180)
	}
	got, err := SelectByGrid([]City{{Name: "Null Island"}}, spec)
	if err != nil {
		t.Fatalf("SelectByGrid() error: %v", err)
	}
	// on the corner shared by four cells
	if len(got) != 4 {
		t.Errorf("SelectByGrid() = %v, want four copies", cityNames(got))
	}
}
