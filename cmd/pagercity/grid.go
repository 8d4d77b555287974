package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/andreiashu/pagercity"
	"github.com/andreiashu/pagercity/internal/config"
	"github.com/andreiashu/pagercity/internal/report"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Pick the most prominent cities in each cell of a regular grid",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.BBox == nil || cfg.Cell == nil {
			return errors.New("grid: --bbox and --cell are required")
		}
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		spec := gridSpec(*cfg.BBox, *cfg.Cell, cfg.PerCell)
		selected, err := cat.SelectByGrid(spec)
		if err != nil {
			return err
		}
		rows, cols := spec.Dimensions()
		appLog.Info().Int("rows", rows).Int("cols", cols).Int("selected", len(selected)).Msg("grid selection done")
		return report.WriteCities(cmd.OutOrStdout(), selected, cfg.Limit, report.NoMatch)
	},
}

func gridSpec(b pagercity.Bounds, cell config.Cell, perCell int) pagercity.GridSpec {
	return pagercity.GridSpec{
		XMin: b.LonMin, XMax: b.LonMax,
		YMin: b.LatMin, YMax: b.LatMax,
		XDim: cell.XDim, YDim: cell.YDim,
		PerCell: perCell,
	}
}

func init() {
	f := gridCmd.Flags()
	f.String("bbox", "", "region lonmin,lonmax,latmin,latmax")
	f.String("cell", "", "cell size xdim,ydim in degrees")
	f.Int("per-cell", 1, "cities to keep per cell")
	rootCmd.AddCommand(gridCmd)
}
