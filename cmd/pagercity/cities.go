package main

import (
	"github.com/spf13/cobra"

	"github.com/andreiashu/pagercity"
	"github.com/andreiashu/pagercity/internal/report"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List catalog cities matching spatial and attribute filters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		var cities []pagercity.City
		if r := cfg.Radius; r != nil {
			cities = cat.ByRadius(r.Lat, r.Lon, r.Km)
		} else {
			cities = cat.Cities()
		}
		if cfg.BBox != nil {
			cities = pagercity.FilterByRectangle(cities, *cfg.BBox)
		}
		if cfg.Country != "" {
			cities = pagercity.FilterByCountry(cities, cfg.Country)
		}
		if cfg.Capitals {
			cities = pagercity.FilterCapitals(cities)
		}

		ranked, err := pagercity.Rank(cities, cfg.Sort)
		if err != nil {
			return err
		}
		appLog.Info().Int("matched", len(ranked)).Stringer("sort", cfg.Sort).Msg("cities selected")
		return report.WriteCities(cmd.OutOrStdout(), ranked, cfg.Limit, report.NoMatch)
	},
}

func init() {
	f := citiesCmd.Flags()
	f.String("country", "", "two-letter country code")
	f.String("bbox", "", "bounding box lonmin,lonmax,latmin,latmax")
	f.String("radius", "", "search circle lat,lon,km")
	f.Bool("capitals", false, "only national and first-order administrative capitals")
	f.String("sort", "population", "sort method (population, capital, default)")
	rootCmd.AddCommand(citiesCmd)
}
