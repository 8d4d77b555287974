package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andreiashu/pagercity"
	"github.com/andreiashu/pagercity/internal/report"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Build the onePAGER city table for a ShakeMap intensity grid",
	Long: "Reads an ESRI ASCII intensity grid, binds every candidate city to its intensity and " +
		"prints at most eleven cities: the most shaken, then capitals, then the most populous.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.ShakeGrid == "" {
			return errors.New("table: --shakegrid is required")
		}
		raster, err := readShakeGrid(cfg.ShakeGrid)
		if err != nil {
			return err
		}
		grid, err := pagercity.NewCachedGrid(raster, cfg.CacheSize)
		if err != nil {
			return err
		}
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		bounds := raster.Bounds()
		if cfg.BBox != nil {
			bounds = *cfg.BBox
		}
		candidates := cat.ByRectangle(bounds)
		if cfg.Cell != nil {
			candidates, err = pagercity.SelectByGrid(candidates, gridSpec(bounds, *cfg.Cell, cfg.PerCell))
			if err != nil {
				return err
			}
		}

		exposed, err := pagercity.BindExposure(candidates, grid)
		if err != nil {
			return err
		}
		table, err := pagercity.BuildTable(exposed)
		if err != nil {
			return err
		}
		appLog.Info().
			Int("candidates", len(candidates)).
			Int("exposed", len(exposed)).
			Int("table", len(table)).
			Msg("city table built")
		return report.WriteCities(cmd.OutOrStdout(), table, cfg.Limit, report.NoExposure)
	},
}

func readShakeGrid(path string) (*pagercity.RasterGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shake grid: %w", err)
	}
	defer f.Close() //nolint:errcheck

	g, err := pagercity.ReadASCIIGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func init() {
	f := tableCmd.Flags()
	f.String("shakegrid", "", "ESRI ASCII intensity grid (.asc)")
	f.String("bbox", "", "candidate region lonmin,lonmax,latmin,latmax, defaults to the grid extent")
	f.String("cell", "", "optional pre-selection grid cell size xdim,ydim")
	f.Int("per-cell", 1, "cities to keep per pre-selection cell")
	f.Int("cache-size", 4096, "intensity lookups to memoize")
	rootCmd.AddCommand(tableCmd)
}
