// Package pagercity selects and ranks the cities shown next to an earthquake
// shaking-intensity map: a GeoNames city catalog, spatial filters, grid-based
// thinning, intensity binding and the fixed-budget PAGER city table.
package pagercity

import "fmt"

// Feature codes that mark a city as a capital in the GeoNames extract.
const (
	FeatureCapital      = "PPLC" // capital of a political entity
	FeatureAdminCapital = "PPLA" // seat of a first-order administrative division
)

// City is an immutable city record. Intensity is attached only through
// WithIntensity, which returns a new value, so binding exposure never changes a
// record that another slice still holds.
type City struct {
	Name        string  // ASCII city name
	CountryCode string  // ISO 3166-1 alpha-2, case as ingested
	Lat         float64 // Latitude in degrees
	Lon         float64 // Longitude in degrees
	IsCapital   bool    // PPLC or PPLA
	Population  int64

	intensity    float64
	hasIntensity bool
}

// Intensity returns the shaking intensity bound to the city, if any.
func (c City) Intensity() (float64, bool) {
	return c.intensity, c.hasIntensity
}

// HasIntensity reports whether an intensity value is bound.
func (c City) HasIntensity() bool { return c.hasIntensity }

// WithIntensity returns a copy of c carrying intensity v.
func (c City) WithIntensity(v float64) City {
	c.intensity = v
	c.hasIntensity = true
	return c
}

func (c City) String() string {
	if c.hasIntensity {
		return fmt.Sprintf("%s (%s) %.4f,%.4f pop=%d mmi=%.2f", c.Name, c.CountryCode, c.Lat, c.Lon, c.Population, c.intensity)
	}
	return fmt.Sprintf("%s (%s) %.4f,%.4f pop=%d", c.Name, c.CountryCode, c.Lat, c.Lon, c.Population)
}

// isCapitalFeature reports whether a GeoNames feature code marks a capital.
func isCapitalFeature(code string) bool {
	return code == FeatureCapital || code == FeatureAdminCapital
}

// isPrintableASCII reports whether every byte of s is in the printable ASCII
// range. Fixed-width report rendering assumes single-column glyphs.
func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// names returns the set of city names in cities.
func names(cities []City) map[string]struct{} {
	set := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		set[c.Name] = struct{}{}
	}
	return set
}
