package pagercity

import "fmt"

// PAGER city table budget.
const (
	NMax   = 6  // cities taken by intensity alone
	MMax   = 5  // capitals considered after the intensity picks
	NTotal = 11 // total table size
)

// BuildTable selects at most NTotal cities for the PAGER city table, ordered
// by intensity, strongest first. Every input city must carry an intensity.
// No name appears twice in the result; at every stage a city whose name is
// already in the table is passed over for the next one in rank order.
//
//  1. Rank by intensity. With fewer than NMax cities, return them all.
//  2. Take the NMax strongest as N.
//  3. Rank the rest by capital status and take up to MMax not named in N;
//     keep the capitals among them as M. If N and M fill the table, stop.
//  4. Fill the remaining slots with the most populous cities not named in N or M.
func BuildTable(cities []City) ([]City, error) {
	ranked, err := Rank(cities, MethodIntensity)
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	taken := make(map[string]struct{}, NTotal)
	if len(ranked) < NMax {
		return takeDistinct(ranked, len(ranked), taken), nil
	}

	// N comes from the intensity-ranked list, not from the caller's order.
	top := takeDistinct(ranked, NMax, taken)

	_, pool, err := SelectExcluding(ranked, top, MethodCapital, 0)
	if err != nil {
		return nil, fmt.Errorf("build table: capitals: %w", err)
	}
	combined := top
	for _, c := range takeDistinct(pool, MMax, map[string]struct{}{}) {
		if c.IsCapital {
			if _, dup := taken[c.Name]; !dup {
				taken[c.Name] = struct{}{}
				combined = append(combined, c)
			}
		}
	}
	if len(combined) == NTotal {
		return Rank(combined, MethodIntensity)
	}

	_, pool, err = SelectExcluding(pool, combined, MethodPopulation, 0)
	if err != nil {
		return nil, fmt.Errorf("build table: population: %w", err)
	}
	combined = append(combined, takeDistinct(pool, NTotal-len(combined), taken)...)
	return Rank(combined, MethodIntensity)
}

// takeDistinct returns up to limit cities from ranked, in order, skipping any
// whose name is already in taken. Names of returned cities are added to taken.
func takeDistinct(ranked []City, limit int, taken map[string]struct{}) []City {
	out := make([]City, 0, max(limit, 0))
	for _, c := range ranked {
		if len(out) >= limit {
			break
		}
		if _, ok := taken[c.Name]; ok {
			continue
		}
		taken[c.Name] = struct{}{}
		out = append(out, c)
	}
	return out
}
