package pagercity

import (
	"archive/zip"
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/agnivade/levenshtein"
	"github.com/golang/geo/s2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// GeoNames extract layout (cities1000.txt and friends). Only the columns below
// are consulted.
const (
	geonamesFieldCount  = 19
	fieldName           = 2
	fieldLatitude       = 4
	fieldLongitude      = 5
	fieldFeatureCode    = 7
	fieldCountryCode    = 8
	fieldPopulation     = 14
	maxGeonamesLineSize = 1 << 20
)

// defaultIndexLevel is the s2 cell level of the catalog's spatial index.
// Level 6 cells are roughly 150km across, so a regional radius search touches a
// handful of cells instead of the whole catalog.
const defaultIndexLevel = 6

// maxIndexedRadiusKm bounds radius searches answered through the cell index.
// Larger searches cover most of a hemisphere and are cheaper as a plain scan.
const maxIndexedRadiusKm = 2500

// maxFuzzyDistance caps NameSearchOptions.FuzzyDistance.
const maxFuzzyDistance = 3

type config struct {
	logger         zerolog.Logger
	distance       DistanceFunc
	customDistance bool
	indexLevel     int
}

// Option configures a Catalog.
type Option func(*config)

// WithLogger sets the logger used while loading. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithDistance replaces the distance function used by ByRadius.
func WithDistance(fn DistanceFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.distance = fn
			c.customDistance = true
		}
	}
}

// WithIndexLevel sets the s2 cell level of the spatial index (0..30).
func WithIndexLevel(level int) Option {
	return func(c *config) {
		if level >= 0 && level <= s2.MaxLevel {
			c.indexLevel = level
		}
	}
}

func defaultConfig() *config {
	return &config{
		logger:     zerolog.Nop(),
		distance:   GreatCircleDistance,
		indexLevel: defaultIndexLevel,
	}
}

// Catalog is an immutable, ordered collection of cities. Every Catalog owns its
// slice and indexes; nothing is shared between instances. Safe for concurrent
// reads once built.
type Catalog struct {
	cities    []City
	cellIndex map[s2.CellID][]int // s2 cell -> catalog positions
	unindexed []int               // positions whose coordinates are not valid lat/lng
	keyIndex  map[string]int      // identity key -> first catalog position
	cfg       *config
}

// LoadStats summarizes one ingestion run.
type LoadStats struct {
	Records  int // accepted cities
	Skipped  int // records dropped for an empty or non-ASCII name
	Capitals int
}

// Load reads a GeoNames city extract from path. Zip archives (cities1000.zip)
// are read entry by entry; anything else is read as tab-separated text.
func Load(path string, opts ...Option) (*Catalog, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(ErrCatalogLoad, "could not find city file %s: %v", path, err)
	}

	var (
		cities []City
		stats  LoadStats
		err    error
	)
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		cities, stats, err = loadZip(path, cfg.logger)
	} else {
		cities, stats, err = loadFile(path, cfg.logger)
	}
	if err != nil {
		return nil, err
	}

	cfg.logger.Info().
		Str("source", path).
		Int("records", stats.Records).
		Int("skipped", stats.Skipped).
		Int("capitals", stats.Capitals).
		Msg("city catalog loaded")
	return newCatalog(cities, cfg), nil
}

// LoadReader reads a tab-separated GeoNames extract from r.
func LoadReader(r io.Reader, opts ...Option) (*Catalog, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cities, stats, err := parseCities(r, "reader", cfg.logger)
	if err != nil {
		return nil, err
	}
	cfg.logger.Info().
		Int("records", stats.Records).
		Int("skipped", stats.Skipped).
		Int("capitals", stats.Capitals).
		Msg("city catalog loaded")
	return newCatalog(cities, cfg), nil
}

// NewCatalog builds a catalog from already parsed cities. The slice is copied.
func NewCatalog(cities []City, opts ...Option) *Catalog {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	own := make([]City, len(cities))
	copy(own, cities)
	return newCatalog(own, cfg)
}

func newCatalog(cities []City, cfg *config) *Catalog {
	c := &Catalog{cities: cities, cfg: cfg}
	c.buildCellIndex()
	c.buildKeyIndex()
	return c
}

func loadFile(path string, log zerolog.Logger) ([]City, LoadStats, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, eris.Wrapf(ErrCatalogLoad, "opening %s: %v", path, err)
	}
	defer fi.Close()
	return parseCities(fi, path, log)
}

func loadZip(path string, log zerolog.Logger) ([]City, LoadStats, error) {
	rz, err := zip.OpenReader(path)
	if err != nil {
		return nil, LoadStats{}, eris.Wrapf(ErrCatalogLoad, "opening zip file %s: %v", path, err)
	}
	defer rz.Close()

	var (
		all   []City
		total LoadStats
	)
	for _, uF := range rz.File {
		if uF.FileInfo().IsDir() {
			continue
		}
		cities, stats, err := processZipEntry(uF, log)
		if err != nil {
			return nil, LoadStats{}, err
		}
		all = append(all, cities...)
		total.Records += stats.Records
		total.Skipped += stats.Skipped
		total.Capitals += stats.Capitals
	}
	return all, total, nil
}

// processZipEntry reads a single file entry from a zip archive.
// Extracted to avoid defer-in-loop.
func processZipEntry(uF *zip.File, log zerolog.Logger) ([]City, LoadStats, error) {
	fi, err := uF.Open()
	if err != nil {
		return nil, LoadStats{}, eris.Wrapf(ErrCatalogLoad, "opening %s in zip: %v", uF.Name, err)
	}
	defer fi.Close()
	return parseCities(fi, uF.Name, log)
}

// parseCities reads one record per line. Any line that does not carry the
// 19-column layout or whose coordinates/population do not parse fails the whole
// source; records with an empty or non-ASCII name are skipped.
func parseCities(r io.Reader, source string, log zerolog.Logger) ([]City, LoadStats, error) {
	var (
		cities []City
		stats  LoadStats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxGeonamesLineSize)
	scanner.Split(bufio.ScanLines)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		c, err := parseCityLine(text)
		if err != nil {
			return nil, LoadStats{}, eris.Wrapf(ErrCatalogLoad, "%s:%d: %v", source, line, err)
		}
		if c.Name == "" || !isPrintableASCII(c.Name) {
			stats.Skipped++
			log.Debug().Str("source", source).Int("line", line).Str("name", c.Name).Msg("skipping city without an ASCII name")
			continue
		}
		if c.IsCapital {
			stats.Capitals++
		}
		cities = append(cities, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, LoadStats{}, eris.Wrapf(ErrCatalogLoad, "reading %s: %v", source, err)
	}
	stats.Records = len(cities)
	return cities, stats, nil
}

func parseCityLine(text string) (City, error) {
	fields := strings.Split(text, "\t")
	if len(fields) != geonamesFieldCount {
		return City{}, eris.Errorf("expected %d tab-separated fields, got %d", geonamesFieldCount, len(fields))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldLatitude]), 64)
	if err != nil {
		return City{}, eris.Wrap(err, "latitude")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldLongitude]), 64)
	if err != nil {
		return City{}, eris.Wrap(err, "longitude")
	}

	var pop int64
	if p := strings.TrimSpace(fields[fieldPopulation]); p != "" {
		pop, err = strconv.ParseInt(p, 10, 64)
		if err != nil {
			return City{}, eris.Wrap(err, "population")
		}
	}

	return City{
		Name:        strings.TrimSpace(fields[fieldName]),
		CountryCode: strings.TrimSpace(fields[fieldCountryCode]),
		Lat:         lat,
		Lon:         lon,
		IsCapital:   isCapitalFeature(strings.TrimSpace(fields[fieldFeatureCode])),
		Population:  pop,
	}, nil
}

// buildCellIndex creates an s2 cell-based spatial index for radius searches.
func (c *Catalog) buildCellIndex() {
	c.cellIndex = make(map[s2.CellID][]int)
	c.unindexed = nil
	for i, city := range c.cities {
		ll := s2.LatLngFromDegrees(city.Lat, city.Lon)
		if !ll.IsValid() {
			c.unindexed = append(c.unindexed, i)
			continue
		}
		cell := s2.CellIDFromLatLng(ll).Parent(c.cfg.indexLevel)
		c.cellIndex[cell] = append(c.cellIndex[cell], i)
	}
}

func (c *Catalog) buildKeyIndex() {
	c.keyIndex = make(map[string]int, len(c.cities))
	for i, city := range c.cities {
		key := identityKey(city.Name, city.CountryCode, city.Lat, city.Lon)
		if _, ok := c.keyIndex[key]; !ok {
			c.keyIndex[key] = i
		}
	}
}

// identityKey identifies a catalog record by name, country and location. The
// location is folded into a full-precision geohash.
func identityKey(name, cc string, lat, lon float64) string {
	return name + "\x00" + strings.ToUpper(cc) + "\x00" + geohash.Encode(lat, lon)
}

// Len returns the number of cities in the catalog.
func (c *Catalog) Len() int { return len(c.cities) }

// Cities returns a copy of the catalog in ingestion order.
func (c *Catalog) Cities() []City {
	out := make([]City, len(c.cities))
	copy(out, c.cities)
	return out
}

// Lookup finds the record identified by name, country code and location.
func (c *Catalog) Lookup(name, countryCode string, lat, lon float64) (City, bool) {
	i, ok := c.keyIndex[identityKey(name, countryCode, lat, lon)]
	if !ok {
		return City{}, false
	}
	return c.cities[i], true
}

// NameSearchOptions configures FindByName.
type NameSearchOptions struct {
	FuzzyDistance int // Max edit distance for typo tolerance (0 = disabled, capped at 3)
}

// FindByName returns the first city matching name. Names are compared
// literally, never as patterns: an exact case-insensitive match wins, then a
// city whose name contains the query (or is contained in it), then, if
// enabled, the first city within FuzzyDistance edits.
func (c *Catalog) FindByName(name string, opts ...NameSearchOptions) (City, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return City{}, false
	}
	options := NameSearchOptions{}
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.FuzzyDistance > maxFuzzyDistance {
		options.FuzzyDistance = maxFuzzyDistance
	}

	for _, city := range c.cities {
		if strings.EqualFold(city.Name, name) {
			return city, true
		}
	}

	query := strings.ToLower(name)
	for _, city := range c.cities {
		candidate := strings.ToLower(city.Name)
		if strings.Contains(candidate, query) || strings.Contains(query, candidate) {
			return city, true
		}
	}

	if options.FuzzyDistance > 0 {
		for _, city := range c.cities {
			if levenshtein.ComputeDistance(query, strings.ToLower(city.Name)) <= options.FuzzyDistance {
				return city, true
			}
		}
	}
	return City{}, false
}

// ByRadius returns catalog cities within radiusKm of (lat, lon), in catalog
// order. Regional searches are answered from the cell index; the result is the
// same as FilterByRadius over Cities().
func (c *Catalog) ByRadius(lat, lon, radiusKm float64) []City {
	center := s2.LatLngFromDegrees(lat, lon)
	if c.cfg.customDistance || !center.IsValid() || !(radiusKm >= 0) || radiusKm > maxIndexedRadiusKm {
		return FilterByRadius(c.cities, lat, lon, radiusKm, c.cfg.distance)
	}

	limit := radiusKm * 1000
	// pad by a meter so cities sitting on the circle survive the covering
	capRegion := s2.CapFromCenterAngle(s2.PointFromLatLng(center), metersToAngle(limit+1))
	cells := s2.SimpleRegionCovering(capRegion, s2.PointFromLatLng(center), c.cfg.indexLevel)

	candidates := append([]int(nil), c.unindexed...)
	for _, cell := range cells {
		candidates = append(candidates, c.cellIndex[cell]...)
	}
	sort.Ints(candidates)

	out := make([]City, 0, len(candidates))
	for _, i := range candidates {
		city := c.cities[i]
		if c.cfg.distance(lat, lon, city.Lat, city.Lon) <= limit {
			out = append(out, city)
		}
	}
	return out
}

// ByRectangle applies FilterByRectangle to the whole catalog.
func (c *Catalog) ByRectangle(b Bounds) []City { return FilterByRectangle(c.cities, b) }

// ByCountry applies FilterByCountry to the whole catalog.
func (c *Catalog) ByCountry(code string) []City { return FilterByCountry(c.cities, code) }

// ByPopulation applies FilterByPopulation to the whole catalog.
func (c *Catalog) ByPopulation(popMin, popMax int64) []City {
	return FilterByPopulation(c.cities, popMin, popMax)
}

// Capitals applies FilterCapitals to the whole catalog.
func (c *Catalog) Capitals() []City { return FilterCapitals(c.cities) }

// ByPolygon applies FilterByPolygon to the whole catalog.
func (c *Catalog) ByPolygon(p *Polygon) []City { return FilterByPolygon(c.cities, p) }

// SelectByGrid runs the grid selection over the whole catalog.
func (c *Catalog) SelectByGrid(spec GridSpec) ([]City, error) { return SelectByGrid(c.cities, spec) }

// BindExposure binds intensities to every catalog city covered by grid.
func (c *Catalog) BindExposure(grid IntensityGrid) ([]City, error) {
	return BindExposure(c.cities, grid)
}
