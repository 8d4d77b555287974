package pagercity

import "strings"

// Bounds is an inclusive longitude/latitude rectangle.
type Bounds struct {
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// Contains reports whether (lat, lon) lies inside b, edges included.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

// The filters below never modify or reorder their input: each returns the
// matching cities as a new slice in input order. Nil or empty input yields an
// empty result.

// FilterByRadius keeps cities within radiusKm of (lat, lon). A nil dist uses
// GreatCircleDistance.
func FilterByRadius(cities []City, lat, lon, radiusKm float64, dist DistanceFunc) []City {
	if dist == nil {
		dist = GreatCircleDistance
	}
	limit := radiusKm * 1000
	return filter(cities, func(c City) bool {
		return dist(lat, lon, c.Lat, c.Lon) <= limit
	})
}

// FilterByRectangle keeps cities inside b.
func FilterByRectangle(cities []City, b Bounds) []City {
	return filter(cities, func(c City) bool {
		return b.Contains(c.Lat, c.Lon)
	})
}

// FilterByCountry keeps cities whose country code equals code, ignoring case.
func FilterByCountry(cities []City, code string) []City {
	return filter(cities, func(c City) bool {
		return strings.EqualFold(c.CountryCode, code)
	})
}

// FilterByPopulation keeps cities with popMin <= population <= popMax.
func FilterByPopulation(cities []City, popMin, popMax int64) []City {
	return filter(cities, func(c City) bool {
		return c.Population >= popMin && c.Population <= popMax
	})
}

// FilterCapitals keeps national and first-order administrative capitals.
func FilterCapitals(cities []City) []City {
	return filter(cities, func(c City) bool {
		return c.IsCapital
	})
}

// FilterByPolygon keeps cities strictly inside p. A nil polygon keeps nothing.
func FilterByPolygon(cities []City, p *Polygon) []City {
	if p == nil {
		return []City{}
	}
	return filter(cities, func(c City) bool {
		return p.Contains(c.Lon, c.Lat)
	})
}

func filter(cities []City, keep func(City) bool) []City {
	out := make([]City, 0)
	for _, c := range cities {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
