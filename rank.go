package pagercity

import (
	"fmt"
	"sort"
	"strings"
)

// Method selects the ordering applied by Rank.
type Method int

const (
	// MethodDefault orders by population ascending. It deliberately differs
	// from MethodPopulation, which is descending; callers that relied on the
	// unlabeled order keep it.
	MethodDefault Method = iota
	// MethodPopulation orders by population, largest first.
	MethodPopulation
	// MethodCapital puts capitals first, then orders by population, largest first.
	MethodCapital
	// MethodIntensity orders by bound intensity, strongest first. Every city
	// must carry an intensity.
	MethodIntensity
)

func (m Method) String() string {
	switch m {
	case MethodDefault:
		return "default"
	case MethodPopulation:
		return "population"
	case MethodCapital:
		return "capital"
	case MethodIntensity:
		return "mmi"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves a free-form method name. An empty string is
// MethodDefault; otherwise a name containing "cap" is MethodCapital, one
// containing "pop" is MethodPopulation and anything else is MethodIntensity.
// Matching ignores case.
func ParseMethod(s string) Method {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return MethodDefault
	case strings.Contains(s, "cap"):
		return MethodCapital
	case strings.Contains(s, "pop"):
		return MethodPopulation
	default:
		return MethodIntensity
	}
}

// Rank returns a new slice holding cities in the order selected by m. The
// sort is stable, so ties keep their input order, and the input slice is not
// modified. MethodIntensity fails with ErrMissingField if any city lacks an
// intensity.
func Rank(cities []City, m Method) ([]City, error) {
	out := make([]City, len(cities))
	copy(out, cities)
	if len(out) == 0 {
		return out, nil
	}

	var less func(a, b City) bool
	switch m {
	case MethodDefault:
		less = func(a, b City) bool { return a.Population < b.Population }
	case MethodPopulation:
		less = func(a, b City) bool { return a.Population > b.Population }
	case MethodCapital:
		less = capitalFirst
	case MethodIntensity:
		for _, c := range out {
			if !c.hasIntensity {
				return nil, fmt.Errorf("rank by %s: city %q has no intensity: %w", m, c.Name, ErrMissingField)
			}
		}
		less = func(a, b City) bool { return a.intensity > b.intensity }
	default:
		return nil, fmt.Errorf("rank: unknown method %s", m)
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

// capitalFirst orders capitals ahead of other cities regardless of size, and
// larger populations first within each group.
func capitalFirst(a, b City) bool {
	if a.IsCapital != b.IsCapital {
		return a.IsCapital
	}
	return a.Population > b.Population
}
