package pagercity

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestPolygon_Contains(t *testing.T) {
	nan := math.NaN()
	// two unit squares: one at the origin, one at (10, 10)
	xs := []float64{0, 1, 1, 0, nan, 10, 11, 11, 10, 10}
	ys := []float64{0, 0, 1, 1, nan, 10, 10, 11, 11, 10}
	p, err := NewPolygon(xs, ys)
	if err != nil {
		t.Fatalf("NewPolygon() error: %v", err)
	}
	if p.NumParts() != 2 {
		t.Errorf("NumParts() = %d, want 2", p.NumParts())
	}
	if want := (Bounds{LonMin: 0, LonMax: 11, LatMin: 0, LatMax: 11}); p.Bounds() != want {
		t.Errorf("Bounds() = %+v, want %+v", p.Bounds(), want)
	}

	tests := []struct {
		x, y float64
		want bool
	}{
		{0.5, 0.5, true},
		{10.5, 10.7, true},
		{5, 5, false},   // inside the bounding box, between the parts
		{0, 0.5, false}, // on the bounding box edge
		{-1, 0.5, false},
		{20, 20, false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPolygon_Invalid(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		xs, ys []float64
	}{
		{"length mismatch", []float64{0, 1, 1}, []float64{0, 0}},
		{"too few vertices", []float64{0, 1}, []float64{0, 1}},
		{"empty", nil, nil},
		{"only separators", []float64{nan, nan}, []float64{nan, nan}},
		{"short part", []float64{0, 1, 1, nan, 5, 6}, []float64{0, 0, 1, nan, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPolygon(tt.xs, tt.ys); !errors.Is(err, ErrInvalidPolygon) {
				t.Errorf("error = %v, want ErrInvalidPolygon", err)
			}
		})
	}
}

func TestFilterByPolygon(t *testing.T) {
	triangle, err := NewPolygon([]float64{-80, -66, -66}, []float64{-20, -20, -10})
	if err != nil {
		t.Fatal(err)
	}
	got := FilterByPolygon(andes, triangle)
	if want := []string{"Arequipa", "La Paz", "Arica"}; !reflect.DeepEqual(cityNames(got), want) {
		t.Errorf("FilterByPolygon() = %v, want %v", cityNames(got), want)
	}
	if got := FilterByPolygon(andes, nil); len(got) != 0 {
		t.Errorf("nil polygon kept %d cities", len(got))
	}

	cat := NewCatalog(andes)
	if got := cat.ByPolygon(triangle); len(got) != 3 {
		t.Errorf("ByPolygon() kept %d cities", len(got))
	}
}
