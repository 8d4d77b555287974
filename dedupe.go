package pagercity

// SelectExcluding ranks pool by m and returns at most maxCount of the
// top-ranked cities whose names do not appear in exclude, together with the
// reduced pool (ranked, excluded names removed) for use by a later selection.
//
// Cities are matched by name alone. Two distinct places sharing a name, for
// example Valencia ES and Valencia VE, are treated as the same city here; this
// identity is used only for table building and never for catalog lookups.
//
// Each pass removes one pool entry per excluded name still present and ranks
// again, until no excluded name remains. The pool shrinks on every pass, so
// the loop ends after at most len(pool) passes.
func SelectExcluding(pool, exclude []City, m Method, maxCount int) (selected, remaining []City, err error) {
	excluded := names(exclude)

	ranked, err := Rank(pool, m)
	if err != nil {
		return nil, nil, err
	}
	for {
		dups := excludedNames(ranked, excluded)
		if len(dups) == 0 {
			break
		}
		ranked, err = Rank(removeFirstByName(ranked, dups), m)
		if err != nil {
			return nil, nil, err
		}
	}

	if maxCount < 0 {
		maxCount = 0
	}
	n := min(maxCount, len(ranked))
	selected = make([]City, n)
	copy(selected, ranked[:n])
	return selected, ranked, nil
}

// excludedNames returns the set of names in cities that are also in excluded.
func excludedNames(cities []City, excluded map[string]struct{}) map[string]struct{} {
	dups := make(map[string]struct{})
	for _, c := range cities {
		if _, ok := excluded[c.Name]; ok {
			dups[c.Name] = struct{}{}
		}
	}
	return dups
}

// removeFirstByName drops the first city carrying each name in dups.
func removeFirstByName(cities []City, dups map[string]struct{}) []City {
	pending := make(map[string]struct{}, len(dups))
	for name := range dups {
		pending[name] = struct{}{}
	}
	out := make([]City, 0, len(cities))
	for _, c := range cities {
		if _, ok := pending[c.Name]; ok {
			delete(pending, c.Name)
			continue
		}
		out = append(out, c)
	}
	return out
}
