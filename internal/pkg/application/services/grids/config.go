package grids

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Component is one physical quantity of a grid archive, stored in its own group of
// files.
type Component struct {
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	Variable string `yaml:"variable"`
}

type Archive struct {
	ID           string                 `yaml:"id"`
	Title        string                 `yaml:"title"`
	DataDir      string                 `yaml:"dataDir"`
	TimeVar      string                 `yaml:"timeVariable"`
	LatitudeVar  string                 `yaml:"latitudeVariable"`
	LongitudeVar string                 `yaml:"longitudeVariable"`
	Quantities   map[string][]Component `yaml:"quantities"`
}

type Config struct {
	Grids []Archive `yaml:"grids"`
}

// DefaultConfig describes the NCEP reanalysis 10 m wind archive.
func DefaultConfig() Config {
	return Config{
		Grids: []Archive{
			{
				ID:           "ncep",
				Title:        "NCEP/NCAR reanalysis, 10 m wind",
				DataDir:      "/opt/diwise/data/noaa/ncep",
				TimeVar:      "time",
				LatitudeVar:  "lat",
				LongitudeVar: "lon",
				Quantities: map[string][]Component{
					"wind": {
						{Name: "u", Pattern: "uwnd.10m.gauss.*.nc", Variable: "uwnd"},
						{Name: "v", Pattern: "vwnd.10m.gauss.*.nc", Variable: "vwnd"},
					},
				},
			},
		},
	}
}

func LoadConfig(r io.Reader) (Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read grid configuration: %w", err)
	}

	cfg := Config{}
	if err = yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse grid configuration: %w", err)
	}

	seen := map[string]bool{}
	for i := range cfg.Grids {
		a := &cfg.Grids[i]
		if a.ID == "" {
			return Config{}, fmt.Errorf("grid %d has no id", i)
		}
		if seen[a.ID] {
			return Config{}, fmt.Errorf("grid %s is configured more than once", a.ID)
		}
		seen[a.ID] = true

		if err = a.defaults(); err != nil {
			return Config{}, err
		}

		for q, components := range a.Quantities {
			if len(components) == 0 {
				return Config{}, fmt.Errorf("quantity %s of grid %s has no components", q, a.ID)
			}
			for _, c := range components {
				if c.Pattern == "" || c.Variable == "" {
					return Config{}, fmt.Errorf("component %s of %s/%s needs both a pattern and a variable", c.Name, a.ID, q)
				}
			}
		}
	}

	return cfg, nil
}

// defaults fills in the CF axis names and lowercases the quantity names, which are
// matched case insensitively.
func (a *Archive) defaults() error {
	if a.TimeVar == "" {
		a.TimeVar = "time"
	}
	if a.LatitudeVar == "" {
		a.LatitudeVar = "lat"
	}
	if a.LongitudeVar == "" {
		a.LongitudeVar = "lon"
	}
	quantities := make(map[string][]Component, len(a.Quantities))
	for q, components := range a.Quantities {
		key := strings.ToLower(q)
		if _, ok := quantities[key]; ok {
			return fmt.Errorf("quantity %s of grid %s is configured more than once", key, a.ID)
		}

		named := make([]Component, len(components))
		for i, c := range components {
			if c.Name == "" {
				c.Name = c.Variable
			}
			named[i] = c
		}
		quantities[key] = named
	}
	a.Quantities = quantities

	return nil
}

// DataDirVariable is the environment variable that overrides the data directory of
// a grid, e.g. NCEP_DATA_DIR.
func DataDirVariable(id string) string {
	return strings.ToUpper(id) + "_DATA_DIR"
}

// WithDataDirs returns a copy of the configuration where every data directory has been
// replaced by lookup(DataDirVariable(id), current).
func (c Config) WithDataDirs(lookup func(name, current string) string) Config {
	result := Config{Grids: make([]Archive, len(c.Grids))}
	for i, a := range c.Grids {
		a.DataDir = lookup(DataDirVariable(a.ID), a.DataDir)
		result.Grids[i] = a
	}
	return result
}

func (a Archive) quantities() []string {
	names := make([]string, 0, len(a.Quantities))
	for q := range a.Quantities {
		names = append(names, q)
	}
	sort.Strings(names)
	return names
}
