package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andreiashu/pagercity"
	"github.com/andreiashu/pagercity/internal/config"
	"github.com/andreiashu/pagercity/internal/logger"
)

var (
	cfg        *config.Config
	appLog     = zerolog.Nop()
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "pagercity",
	Short: "Select the cities to report for an earthquake",
	Long: "Filters, ranks and selects cities from a GeoNames catalog, optionally binding them to a " +
		"ShakeMap intensity grid to build the onePAGER city table.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		v := config.New()
		if err := config.BindFlags(v, cmd.Flags()); err != nil {
			return err
		}
		c, err := config.Load(v, configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		appLog = logger.Build(logger.Config{
			Level:     cfg.Log.Level,
			Console:   cfg.Log.Console,
			Component: cmd.Name(),
		}, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	pf.String("cities", "", "GeoNames cities file, plain text or .zip (PAGERCITY_CITIES)")
	pf.Int("limit", 0, "max number of cities to print, 0 for all")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Bool("log-console", false, "human-readable log output")
}

// loadCatalog reads the configured cities file.
func loadCatalog() (*pagercity.Catalog, error) {
	cat, err := pagercity.Load(cfg.Cities, pagercity.WithLogger(appLog))
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
