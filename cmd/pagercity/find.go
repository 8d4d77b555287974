package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andreiashu/pagercity"
	"github.com/andreiashu/pagercity/internal/report"
)

var findFuzzy int

var findCmd = &cobra.Command{
	Use:   "find NAME",
	Short: "Look up a city by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		name := strings.Join(args, " ")
		city, ok := cat.FindByName(name, pagercity.NameSearchOptions{FuzzyDistance: findFuzzy})
		if !ok {
			return fmt.Errorf("no city matches %q", name)
		}
		return report.WriteCities(cmd.OutOrStdout(), []pagercity.City{city}, 1, report.NoMatch)
	},
}

func init() {
	findCmd.Flags().IntVar(&findFuzzy, "fuzzy", 0, "max edit distance for approximate matches (0 disables, at most 3)")
	rootCmd.AddCommand(findCmd)
}
