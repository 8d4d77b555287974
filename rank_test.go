package pagercity

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"", MethodDefault},
		{"   ", MethodDefault},
		{"population", MethodPopulation},
		{"POP", MethodPopulation},
		{"capital", MethodCapital},
		{"Capitals", MethodCapital},
		{"pop-cap", MethodCapital},
		{"mmi", MethodIntensity},
		{"intensity", MethodIntensity},
		{"pager", MethodIntensity},
	}
	for _, tt := range tests {
		if got := ParseMethod(tt.in); got != tt.want {
			t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRank_Orders(t *testing.T) {
	cities := []City{
		mmiCity("small", 3, false, 100),
		mmiCity("capital", 5, true, 50),
		mmiCity("big", 4, false, 900),
		mmiCity("tied", 4, false, 100),
	}
	tests := []struct {
		method Method
		want   []string
	}{
		{MethodDefault, []string{"capital", "small", "tied", "big"}},
		{MethodPopulation, []string{"big", "small", "tied", "capital"}},
		{MethodCapital, []string{"capital", "big", "small", "tied"}},
		{MethodIntensity, []string{"capital", "big", "tied", "small"}},
	}
	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			got, err := Rank(cities, tt.method)
			if err != nil {
				t.Fatalf("Rank() error: %v", err)
			}
			if !reflect.DeepEqual(cityNames(got), tt.want) {
				t.Errorf("Rank(%v) = %v, want %v", tt.method, cityNames(got), tt.want)
			}
		})
	}
}

func TestRank_DefaultIsAscending(t *testing.T) {
	cities := []City{{Name: "a", Population: 3}, {Name: "b", Population: 1}, {Name: "c", Population: 2}}
	asc, _ := Rank(cities, MethodDefault)
	desc, _ := Rank(cities, MethodPopulation)
	if got := cityNames(asc); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Errorf("default order = %v", got)
	}
	if got := cityNames(desc); !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Errorf("population order = %v", got)
	}
}

func TestRank_IsPermutation(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := r.Intn(40)
		cities := make([]City, n)
		for i := range cities {
			cities[i] = mmiCity(fmt.Sprintf("c%d", i), float64(r.Intn(10)), r.Intn(4) == 0, int64(r.Intn(5)*1000))
		}
		before := append([]City(nil), cities...)

		for _, m := range []Method{MethodDefault, MethodPopulation, MethodCapital, MethodIntensity} {
			got, err := Rank(cities, m)
			if err != nil {
				t.Fatalf("Rank(%v) error: %v", m, err)
			}
			if len(got) != n {
				t.Fatalf("Rank(%v) changed length %d -> %d", m, n, len(got))
			}
			a, b := cityNames(got), cityNames(cities)
			sort.Strings(a)
			sort.Strings(b)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("Rank(%v) is not a permutation", m)
			}
		}
		if !reflect.DeepEqual(cities, before) {
			t.Fatalf("Rank modified its input")
		}
	}
}

func TestRank_MissingIntensity(t *testing.T) {
	cities := []City{mmiCity("a", 5, false, 1), {Name: "b"}}
	_, err := Rank(cities, MethodIntensity)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("Rank() error = %v, want ErrMissingField", err)
	}
	// other methods do not need intensity
	if _, err := Rank(cities, MethodCapital); err != nil {
		t.Errorf("Rank(capital) error: %v", err)
	}
}

func TestRank_Empty(t *testing.T) {
	for _, m := range []Method{MethodDefault, MethodPopulation, MethodCapital, MethodIntensity} {
		got, err := Rank(nil, m)
		if err != nil || len(got) != 0 {
			t.Errorf("Rank(nil, %v) = %v, %v", m, got, err)
		}
	}
}
