package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/application/services/grids"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/rws"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/rs/zerolog"
)

type Config struct {
	ServicePort string

	CatalogURL      string
	ObservationsURL string
	UpstreamTimeout time.Duration
	UpstreamRetries int
	Concurrency     int

	ShortTermTTL time.Duration
	LongTermTTL  time.Duration
	CacheFile    string

	WarmInterval  time.Duration
	PurgeInterval time.Duration

	Grids grids.Config
}

// Load reads the configuration from the environment. Grid archives are read from the
// file in GRIDS_CONFIG_FILE when set, and every grid data directory can be overridden
// with <ID>_DATA_DIR.
func Load(log zerolog.Logger) (Config, error) {
	var err error

	cfg := Config{
		ServicePort:     env.GetVariableOrDefault(log, "SERVICE_PORT", "8080"),
		CatalogURL:      env.GetVariableOrDefault(log, "RWS_CATALOG_URL", rws.DefaultCatalogURL),
		ObservationsURL: env.GetVariableOrDefault(log, "RWS_OBSERVATIONS_URL", rws.DefaultObservationsURL),
		CacheFile:       env.GetVariableOrDefault(log, "CACHE_FILE", "/tmp/api-measurements.db"),
	}

	durations := []struct {
		name   string
		def    string
		target *time.Duration
	}{
		{"UPSTREAM_TIMEOUT", "30s", &cfg.UpstreamTimeout},
		{"CACHE_SHORT_TERM_TTL", "60s", &cfg.ShortTermTTL},
		{"CACHE_LONG_TERM_TTL", "30m", &cfg.LongTermTTL},
		{"CATALOG_WARM_INTERVAL", "25m", &cfg.WarmInterval},
		{"CACHE_PURGE_INTERVAL", "5m", &cfg.PurgeInterval},
	}

	for _, d := range durations {
		value := env.GetVariableOrDefault(log, d.name, d.def)
		if *d.target, err = time.ParseDuration(value); err != nil {
			return Config{}, fmt.Errorf("invalid duration %q in %s: %w", value, d.name, err)
		}
	}

	integers := []struct {
		name   string
		def    string
		target *int
	}{
		{"UPSTREAM_RETRIES", "3", &cfg.UpstreamRetries},
		{"STATION_CONCURRENCY", "4", &cfg.Concurrency},
	}

	for _, i := range integers {
		value := env.GetVariableOrDefault(log, i.name, i.def)
		if *i.target, err = strconv.Atoi(value); err != nil {
			return Config{}, fmt.Errorf("invalid number %q in %s: %w", value, i.name, err)
		}
	}

	cfg.Grids = grids.DefaultConfig()

	if path := os.Getenv("GRIDS_CONFIG_FILE"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to open grid configuration: %w", err)
		}
		defer f.Close()

		if cfg.Grids, err = grids.LoadConfig(f); err != nil {
			return Config{}, err
		}
	}

	cfg.Grids = cfg.Grids.WithDataDirs(func(name, current string) string {
		return env.GetVariableOrDefault(log, name, current)
	})

	return cfg, nil
}
