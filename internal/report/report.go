// Package report renders city selections as plain-text tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/andreiashu/pagercity"
)

// Messages written in place of a table when there are no cities.
const (
	NoMatch    = "No cities matched."
	NoExposure = "No cities were exposed."
)

var numerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman returns n as a roman numeral, or "" when n is outside 1..3999.
func Roman(n int) string {
	if n < 1 || n > 3999 {
		return ""
	}
	var b strings.Builder
	for _, r := range numerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

// MMI formats an intensity as the rounded roman numeral. Intensities below
// I, and cities with no intensity, render as "-".
func MMI(c pagercity.City) string {
	v, ok := c.Intensity()
	if !ok || v < 1 {
		return "-"
	}
	return Roman(int(math.Round(v)))
}

// WriteCities writes at most limit cities (every city when limit <= 0) in
// the given order. An MMI column is included when the first city carries an
// intensity. With no cities, empty is written instead of a table, or NoMatch
// when empty is "".
func WriteCities(out io.Writer, cities []pagercity.City, limit int, empty string) error {
	if len(cities) == 0 {
		if empty == "" {
			empty = NoMatch
		}
		_, err := fmt.Fprintln(out, empty)
		return err
	}
	if limit <= 0 || limit > len(cities) {
		limit = len(cities)
	}

	p := message.NewPrinter(language.English)
	withMMI := cities[0].HasIntensity()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if withMMI {
		_, _ = fmt.Fprint(w, "MMI\t")
	}
	_, _ = fmt.Fprintln(w, "CITY\tCOUNTRY\tPOPULATION\tCAPITAL\tLAT\tLON")

	for _, c := range cities[:limit] {
		if withMMI {
			_, _ = fmt.Fprintf(w, "%s\t", MMI(c))
		}
		capital := ""
		if c.IsCapital {
			capital = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%.4f\n",
			c.Name,
			c.CountryCode,
			p.Sprintf("%d", c.Population),
			capital,
			c.Lat,
			c.Lon,
		)
	}
	return w.Flush()
}
