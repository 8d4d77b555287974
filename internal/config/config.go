// Package config resolves pagercity command settings from flags, environment
// variables (PAGERCITY_*) and an optional YAML/TOML/JSON file.
package config

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/andreiashu/pagercity"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PAGERCITY"

// Config is the validated command configuration.
type Config struct {
	Cities    string
	ShakeGrid string
	Country   string
	Capitals  bool
	Sort      pagercity.Method
	Limit     int
	BBox      *pagercity.Bounds
	Radius    *Radius
	Cell      *Cell
	PerCell   int
	CacheSize int
	Log       LogConfig
}

// LogConfig configures logging.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// Radius is a circular search area.
type Radius struct {
	Lat, Lon float64
	Km       float64
}

// Cell is the size of a selection grid cell in degrees.
type Cell struct {
	XDim, YDim float64
}

type fileConfig struct {
	Cities    string    `mapstructure:"cities"`
	ShakeGrid string    `mapstructure:"shakegrid"`
	Country   string    `mapstructure:"country"`
	Capitals  bool      `mapstructure:"capitals"`
	Sort      string    `mapstructure:"sort"`
	Limit     int       `mapstructure:"limit"`
	BBox      string    `mapstructure:"bbox"`
	Radius    string    `mapstructure:"radius"`
	Cell      string    `mapstructure:"cell"`
	PerCell   int       `mapstructure:"per_cell"`
	CacheSize int       `mapstructure:"cache_size"`
	Log       LogConfig `mapstructure:"log"`
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("cities", "")
	v.SetDefault("shakegrid", "")
	v.SetDefault("country", "")
	v.SetDefault("capitals", false)
	v.SetDefault("sort", "population")
	v.SetDefault("limit", 0)
	v.SetDefault("bbox", "")
	v.SetDefault("radius", "")
	v.SetDefault("cell", "")
	v.SetDefault("per_cell", 1)
	v.SetDefault("cache_size", 4096)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", false)
	return v
}

// flagKey maps a flag name to its configuration key: "log-level" becomes
// "log.level" and other dashes become underscores.
func flagKey(name string) string {
	if rest, ok := strings.CutPrefix(name, "log-"); ok {
		return "log." + strings.ReplaceAll(rest, "-", "_")
	}
	return strings.ReplaceAll(name, "-", "_")
}

// BindFlags binds every flag of fs into v. Flags set on the command line take
// precedence over the environment and the config file.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" || f.Name == "help" {
			return
		}
		if bindErr := v.BindPFlag(flagKey(f.Name), f); bindErr != nil {
			err = eris.Wrapf(bindErr, "config: bind flag %s", f.Name)
		}
	})
	return err
}

// Load reads file when non-empty, then decodes and validates the settings
// held by v.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	cfg := &Config{
		Cities:    strings.TrimSpace(fc.Cities),
		ShakeGrid: strings.TrimSpace(fc.ShakeGrid),
		Country:   strings.TrimSpace(fc.Country),
		Capitals:  fc.Capitals,
		Sort:      pagercity.ParseMethod(fc.Sort),
		Limit:     fc.Limit,
		PerCell:   fc.PerCell,
		CacheSize: fc.CacheSize,
		Log:       fc.Log,
	}
	if fc.BBox != "" {
		b, err := ParseBounds(fc.BBox)
		if err != nil {
			return nil, err
		}
		cfg.BBox = &b
	}
	if fc.Radius != "" {
		r, err := ParseRadius(fc.Radius)
		if err != nil {
			return nil, err
		}
		cfg.Radius = &r
	}
	if fc.Cell != "" {
		c, err := ParseCell(fc.Cell)
		if err != nil {
			return nil, err
		}
		cfg.Cell = &c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	switch {
	case c.Cities == "":
		return eris.New("config: cities file is required")
	case c.Limit < 0:
		return eris.Errorf("config: limit %d must not be negative", c.Limit)
	case c.PerCell < 0:
		return eris.Errorf("config: per_cell %d must not be negative", c.PerCell)
	case c.CacheSize <= 0:
		return eris.Errorf("config: cache_size %d must be positive", c.CacheSize)
	}
	return nil
}

func parseFloats(s string, n int, what string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, eris.Errorf("config: %s %q needs %d comma-separated numbers", what, s, n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "config: %s %q", what, s)
		}
		out[i] = f
	}
	return out, nil
}

// ParseBounds parses "lonmin,lonmax,latmin,latmax".
func ParseBounds(s string) (pagercity.Bounds, error) {
	f, err := parseFloats(s, 4, "bbox")
	if err != nil {
		return pagercity.Bounds{}, err
	}
	b := pagercity.Bounds{LonMin: f[0], LonMax: f[1], LatMin: f[2], LatMax: f[3]}
	if b.LonMin > b.LonMax || b.LatMin > b.LatMax {
		return pagercity.Bounds{}, eris.Errorf("config: bbox %q is inverted", s)
	}
	return b, nil
}

// ParseRadius parses "lat,lon,km".
func ParseRadius(s string) (Radius, error) {
	f, err := parseFloats(s, 3, "radius")
	if err != nil {
		return Radius{}, err
	}
	if f[2] < 0 {
		return Radius{}, eris.Errorf("config: radius %q has a negative distance", s)
	}
	return Radius{Lat: f[0], Lon: f[1], Km: f[2]}, nil
}

// ParseCell parses "xdim,ydim".
func ParseCell(s string) (Cell, error) {
	f, err := parseFloats(s, 2, "cell")
	if err != nil {
		return Cell{}, err
	}
	if !(f[0] > 0) || !(f[1] > 0) {
		return Cell{}, eris.Errorf("config: cell %q must be positive", s)
	}
	return Cell{XDim: f[0], YDim: f[1]}, nil
}
