package main

import (
	"context"
	"flag"

	"github.com/diwise/api-measurements/internal/pkg/application/config"
	"github.com/diwise/api-measurements/internal/pkg/application/jobs"
	"github.com/diwise/api-measurements/internal/pkg/application/services/grids"
	"github.com/diwise/api-measurements/internal/pkg/application/services/stations"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/cache"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/rws"
	"github.com/diwise/api-measurements/internal/pkg/presentation"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

var envFile string

func main() {
	serviceName := "api-measurements"
	serviceVersion := buildinfo.SourceVersion()

	flag.StringVar(&envFile, "env", ".env", "An optional file with environment variables to load before start up")
	flag.Parse()

	// a missing .env file is fine, the environment is used as is
	envLoaded := godotenv.Load(envFile) == nil

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Bool("envFile", envLoaded).Msgf("Starting up %s ...", serviceName)

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	longTerm, err := cache.NewBoltStore(cfg.CacheFile, "long_term")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open long term cache")
	}

	c := cache.New(
		cache.WithRegion(cache.ShortTerm, cache.NewMemoryStore(), cfg.ShortTermTTL),
		cache.WithRegion(cache.LongTerm, longTerm, cfg.LongTermTTL),
	)
	defer c.Close()

	client := rws.NewClient(
		rws.WithURLs(cfg.CatalogURL, cfg.ObservationsURL),
		rws.WithTimeout(cfg.UpstreamTimeout),
		rws.WithRetries(cfg.UpstreamRetries, rws.DefaultInitialInterval, rws.DefaultMaxInterval),
	)

	stationSvc := stations.NewStationService(ctx, log, stations.DefaultDataset, client, c, cfg.Concurrency)
	gridSvc := grids.NewGridService(ctx, log, cfg.Grids, c)

	scheduler := jobs.New(log, c, cfg.WarmInterval, cfg.PurgeInterval, stationSvc)
	if err = scheduler.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduled jobs")
	}
	defer scheduler.Stop()

	datasets := map[string]stations.StationService{
		stationSvc.Dataset(): stationSvc,
	}

	api := presentation.NewAPI(ctx, chi.NewRouter(), datasets, gridSvc)

	err = api.Start(cfg.ServicePort)
	if err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}
