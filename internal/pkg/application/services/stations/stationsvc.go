package stations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/cache"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/rws"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("api-measurements/svcs/stations")

const DefaultDataset string = "rws"

//go:generate moq -rm -out stationsvc_mock.go . StationService

type StationService interface {
	Dataset() string

	ResolveCatalog(ctx context.Context, filter string) (domain.Catalog, error)
	FetchSeries(ctx context.Context, record domain.StationRecord, start, end time.Time, validatedOnly bool) (domain.Series, error)

	StationsPerQuantity(ctx context.Context, filter string) (*domain.FeatureCollection, error)
	StationInfo(ctx context.Context, id string) ([]domain.StationRecord, error)
	Measurements(ctx context.Context, id, filter string, start, end time.Time, validatedOnly bool) (domain.SeriesCollection, error)

	Warm(ctx context.Context) error
}

func NewStationService(ctx context.Context, logger zerolog.Logger, dataset string, client rws.Client, c *cache.Cache, concurrency int) StationService {
	if concurrency < 1 {
		concurrency = 1
	}

	return &stationSvc{
		dataset:     dataset,
		client:      client,
		cache:       c,
		concurrency: concurrency,
		log:         logger,
	}
}

type stationSvc struct {
	dataset     string
	client      rws.Client
	cache       *cache.Cache
	concurrency int

	log zerolog.Logger
}

// DefaultWindow is the window used when a caller gives no start or end time.
func DefaultWindow(now time.Time) (time.Time, time.Time) {
	twoDays := 48 * time.Hour
	return now.Add(-twoDays), now.Add(twoDays)
}

func (svc *stationSvc) Dataset() string {
	return svc.dataset
}

func (svc *stationSvc) rawCatalog(ctx context.Context) (*rws.CatalogResponse, error) {
	return cache.Memoize(ctx, svc.cache, cache.LongTerm, "rws-catalog", svc.dataset, svc.client.Catalog)
}

func (svc *stationSvc) ResolveCatalog(ctx context.Context, filter string) (catalog domain.Catalog, err error) {
	ctx, span := tracer.Start(ctx, "resolve-catalog")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	var codes []string
	key := "*"

	if filter != "" {
		var ok bool
		if codes, ok = FilterCodes(filter); !ok {
			err = fmt.Errorf("%w: %s", domain.ErrUnknownQuantity, filter)
			return
		}
		key = strings.ToUpper(filter)
	}

	catalog, err = cache.Memoize(ctx, svc.cache, cache.ShortTerm, "catalog:"+svc.dataset, key, func(ctx context.Context) (domain.Catalog, error) {
		raw, err := svc.rawCatalog(ctx)
		if err != nil {
			return domain.Catalog{}, err
		}

		merged, err := MergeCatalog(svc.dataset, raw)
		if err != nil {
			return domain.Catalog{}, err
		}

		logger.Debug().
			Int("locations", merged.Locations).
			Int("joined", merged.Joined).
			Int("dropped", merged.Dropped).
			Msg("merged station catalog")

		return FilterCatalog(merged, codes), nil
	})

	return
}

func (svc *stationSvc) FetchSeries(ctx context.Context, record domain.StationRecord, start, end time.Time, validatedOnly bool) (series domain.Series, err error) {
	ctx, span := tracer.Start(ctx, "fetch-series")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	key := cache.Key(record.Code, record.Quantity, record.X, record.Y, start, end, validatedOnly)

	series, err = cache.Memoize(ctx, svc.cache, cache.ShortTerm, "series:"+svc.dataset, key, func(ctx context.Context) (domain.Series, error) {
		resp, err := svc.client.Observations(ctx, observationsRequest(record, start, end))
		if err != nil {
			return domain.Series{}, err
		}
		return toSeries(record, resp, validatedOnly)
	})

	return
}

func (svc *stationSvc) StationsPerQuantity(ctx context.Context, filter string) (*domain.FeatureCollection, error) {
	catalog, err := svc.ResolveCatalog(ctx, filter)
	if err != nil {
		return nil, err
	}

	fc := domain.NewFeatureCollection()
	for _, r := range catalog.Records {
		fc.Features = append(fc.Features, domain.Feature{
			Type:     "Feature",
			ID:       r.Code + ":" + r.Quantity,
			Geometry: r.Location,
			Properties: map[string]any{
				"code":             r.Code,
				"name":             r.Name,
				"quantity":         r.Quantity,
				"standard_name":    r.StandardName,
				"units":            r.Units,
				"x":                r.X,
				"y":                r.Y,
				"coordinateSystem": r.CoordinateSystem,
				"dataset":          svc.dataset,
			},
		})
	}

	return fc, nil
}

func (svc *stationSvc) StationInfo(ctx context.Context, id string) ([]domain.StationRecord, error) {
	catalog, err := svc.ResolveCatalog(ctx, "")
	if err != nil {
		return nil, err
	}

	records := recordsFor(catalog, id)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrStationNotFound, id)
	}

	return records, nil
}

// Measurements fetches every series the station has for the quantity filter. Series
// without data are logged and left out; any other failure fails the whole request.
func (svc *stationSvc) Measurements(ctx context.Context, id, filter string, start, end time.Time, validatedOnly bool) (collection domain.SeriesCollection, err error) {
	ctx, span := tracer.Start(ctx, "station-measurements")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	catalog, err := svc.ResolveCatalog(ctx, filter)
	if err != nil {
		return
	}

	records := recordsFor(catalog, id)
	if len(records) == 0 {
		err = fmt.Errorf("%w: %s has no %s series", domain.ErrStationNotFound, id, filter)
		return
	}

	results := make([]*domain.Series, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(svc.concurrency)

	for i, r := range records {
		i, r := i, r
		g.Go(func() error {
			s, err := svc.FetchSeries(gctx, r, start, end, validatedOnly)
			if errors.Is(err, domain.ErrNoData) {
				logger.Error().Err(err).Str("station", r.Code).Str("quantity", r.Quantity).Msg("no data for station, skipping")
				metrics.StationsSkipped.WithLabelValues(svc.dataset, r.Quantity).Inc()
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = &s
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return
	}

	collection.Series = []domain.Series{}
	for _, s := range results {
		if s != nil {
			collection.Series = append(collection.Series, *s)
		}
	}

	return
}

func (svc *stationSvc) Warm(ctx context.Context) error {
	svc.log.Info().Str("dataset", svc.dataset).Msg("warming station catalog")

	_, err := svc.ResolveCatalog(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to warm catalog for %s: %w", svc.dataset, err)
	}

	return nil
}

func recordsFor(catalog domain.Catalog, id string) []domain.StationRecord {
	records := []domain.StationRecord{}
	for _, r := range catalog.Records {
		if r.Code == id {
			records = append(records, r)
		}
	}
	return records
}
