package grids

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/cache"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/metrics"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/ncfile"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-measurements/svcs/grids")

//go:generate moq -rm -out gridsvc_mock.go . GridService

type GridService interface {
	Grids() []string
	Info(ctx context.Context, id string) (domain.GridInfo, error)
	ResolveGrid(ctx context.Context, id, quantity string, lat, lon float64, start, end time.Time) (domain.SeriesCollection, error)
	Resolve(ctx context.Context, archive Archive, quantity string, lat, lon float64, start, end time.Time, dataDir string) (domain.SeriesCollection, error)
}

func NewGridService(ctx context.Context, logger zerolog.Logger, cfg Config, c *cache.Cache) GridService {
	svc := &gridSvc{
		archives:    map[string]Archive{},
		order:       []string{},
		descriptors: map[string]*descriptor{},
		cache:       c,
		log:         logger,
	}

	for _, a := range cfg.Grids {
		if err := a.defaults(); err != nil {
			logger.Error().Err(err).Str("grid", a.ID).Msg("skipping misconfigured grid")
			continue
		}
		svc.archives[a.ID] = a
		svc.order = append(svc.order, a.ID)
	}

	return svc
}

type gridSvc struct {
	archives map[string]Archive
	order    []string

	mu          sync.Mutex
	descriptors map[string]*descriptor

	cache *cache.Cache

	log zerolog.Logger
}

func (svc *gridSvc) Grids() []string {
	return append([]string{}, svc.order...)
}

func (svc *gridSvc) archive(id string) (Archive, error) {
	a, ok := svc.archives[id]
	if !ok {
		return Archive{}, fmt.Errorf("%w: grid %s", domain.ErrUnknownDataset, id)
	}
	return a, nil
}

func (svc *gridSvc) ResolveGrid(ctx context.Context, id, quantity string, lat, lon float64, start, end time.Time) (domain.SeriesCollection, error) {
	a, err := svc.archive(id)
	if err != nil {
		return domain.SeriesCollection{}, err
	}

	return svc.Resolve(ctx, a, quantity, lat, lon, start, end, a.DataDir)
}

// Resolve extracts the series of every component of quantity at the grid cell nearest
// to (lat, lon), for the time steps in [start, end).
func (svc *gridSvc) Resolve(ctx context.Context, a Archive, quantity string, lat, lon float64, start, end time.Time, dataDir string) (collection domain.SeriesCollection, err error) {
	ctx, span := tracer.Start(ctx, "resolve-grid")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	started := time.Now()

	quantity = strings.ToLower(quantity)

	components, ok := a.Quantities[quantity]
	if !ok {
		err = fmt.Errorf("%w: %s has no quantity %s", domain.ErrUnknownQuantity, a.ID, quantity)
		return
	}

	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		err = fmt.Errorf("%w: (%v, %v)", domain.ErrInvalidPosition, lat, lon)
		return
	}

	d, err := svc.descriptor(a, quantity, components, dataDir)
	if err != nil {
		return
	}

	key := cache.Key(a.ID, quantity, dataDir, lat, lon, start, end, d.fingerprint)

	collection, err = cache.Memoize(ctx, svc.cache, cache.ShortTerm, "grid:"+a.ID, key, func(ctx context.Context) (domain.SeriesCollection, error) {
		return resolve(d, lat, lon, start, end)
	})
	if err != nil {
		return
	}

	metrics.ObserveGridResolve(a.ID, quantity, started)

	logger.Debug().
		Str("grid", a.ID).
		Str("quantity", quantity).
		Int("components", len(collection.Series)).
		Msg("resolved grid point")

	return
}

func resolve(d *descriptor, lat, lon float64, start, end time.Time) (domain.SeriesCollection, error) {
	i := nearestIndex(d.lat, lat)
	j := nearestLongitude(d.lon, lon)
	if i < 0 || j < 0 {
		return domain.SeriesCollection{}, fmt.Errorf("%w: empty spatial axis", domain.ErrGridArchiveInconsistent)
	}

	t0, t1 := window(d.times, start, end)

	collection := domain.SeriesCollection{Series: []domain.Series{}}

	for _, g := range d.groups {
		attrs, err := g.attributes()
		if err != nil {
			return domain.SeriesCollection{}, err
		}

		values, err := g.extract(g.component.Variable, t0, t1, i, j)
		if err != nil {
			return domain.SeriesCollection{}, err
		}

		series := domain.Series{
			Data:  []domain.Observation{},
			Name:  ncfile.String(attrs["long_name"]),
			Units: ncfile.String(attrs["units"]),
			Metadata: map[string]any{
				"component": g.component.Name,
				"variable":  g.component.Variable,
				"lat":       d.lat[i],
				"lon":       d.lon[j],
			},
		}
		if series.Name == "" {
			series.Name = g.component.Name
		}

		for k, v := range values {
			if math.IsNaN(v) {
				continue
			}
			series.Data = append(series.Data, domain.Observation{
				Time:  time.Unix(d.times[t0+int64(k)], 0).UTC(),
				Value: v,
			})
		}

		collection.Series = append(collection.Series, series)
	}

	return collection, nil
}

// descriptor returns the memoised descriptor for the quantity, rebuilding it when the
// file set has changed.
func (svc *gridSvc) descriptor(a Archive, quantity string, components []Component, dataDir string) (*descriptor, error) {
	groups, err := discover(dataDir, components)
	if err != nil {
		return nil, err
	}

	fp, err := fingerprint(groups)
	if err != nil {
		return nil, err
	}

	memoKey := a.ID + "/" + quantity + "@" + dataDir

	svc.mu.Lock()
	d, ok := svc.descriptors[memoKey]
	svc.mu.Unlock()

	if ok && d.fingerprint == fp {
		return d, nil
	}

	d, err = describe(a, groups)
	if err != nil {
		return nil, err
	}
	d.fingerprint = fp

	svc.mu.Lock()
	svc.descriptors[memoKey] = d
	svc.mu.Unlock()

	return d, nil
}

func (svc *gridSvc) Info(ctx context.Context, id string) (info domain.GridInfo, err error) {
	_, span := tracer.Start(ctx, "grid-info")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	a, err := svc.archive(id)
	if err != nil {
		return
	}

	info = domain.GridInfo{
		ID:         a.ID,
		Title:      a.Title,
		Quantities: map[string][]domain.GridComponent{},
	}

	for qi, q := range a.quantities() {
		var d *descriptor
		d, err = svc.descriptor(a, q, a.Quantities[q], a.DataDir)
		if err != nil {
			return
		}

		components := []domain.GridComponent{}
		for _, g := range d.groups {
			components = append(components, domain.GridComponent{
				Name:     g.component.Name,
				Variable: g.component.Variable,
				Pattern:  g.component.Pattern,
				Files:    len(g.files),
			})
		}
		info.Quantities[q] = components

		if qi > 0 {
			continue
		}

		info.Attributes, err = globalAttributes(d.groups[0].files[0])
		if err != nil {
			return
		}
		if title := ncfile.String(info.Attributes["title"]); title != "" {
			info.Title = title
		}

		info.TimeSteps = len(d.times)
		if len(d.times) > 0 {
			info.Start = time.Unix(d.times[0], 0).UTC()
			info.End = time.Unix(d.times[len(d.times)-1], 0).UTC()
		}
		info.Latitude = extent(d.lat)
		info.Longitude = extent(d.lon)
	}

	return
}

func globalAttributes(path string) (map[string]any, error) {
	f, err := ncfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGridArchiveNotFound, err.Error())
	}
	defer f.Close()

	return f.Attributes(), nil
}

func extent(axis []float64) domain.Extent {
	if len(axis) == 0 {
		return domain.Extent{}
	}

	e := domain.Extent{Min: axis[0], Max: axis[0]}
	for _, v := range axis[1:] {
		e.Min, e.Max = min(e.Min, v), max(e.Max, v)
	}
	return e
}
