package stations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/cache"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/rws"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestThatTheCatalogIsFetchedOnce(t *testing.T) {
	is, ctx, client := setupServiceTest(t)
	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	first, err := svc.ResolveCatalog(ctx, "")
	is.NoErr(err)
	second, err := svc.ResolveCatalog(ctx, "")
	is.NoErr(err)
	wind, err := svc.ResolveCatalog(ctx, "wind")
	is.NoErr(err)

	is.Equal(len(client.CatalogCalls()), 1) // raw catalog should be shared by all filters
	is.Equal(first, second)
	is.Equal(len(wind.Records), 2)
}

func TestThatAnUnknownFilterIsRejected(t *testing.T) {
	is, ctx, client := setupServiceTest(t)
	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	_, err := svc.ResolveCatalog(ctx, "pressure")
	is.True(errors.Is(err, domain.ErrUnknownQuantity))
	is.Equal(len(client.CatalogCalls()), 0)
}

func TestThatCatalogFailuresAreNotCached(t *testing.T) {
	is, ctx, client := setupServiceTest(t)

	failing := true
	client.CatalogFunc = func(ctx context.Context) (*rws.CatalogResponse, error) {
		if failing {
			return nil, domain.ErrUpstream
		}
		return parseCatalog(is, catalogJson), nil
	}

	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	_, err := svc.ResolveCatalog(ctx, "")
	is.True(errors.Is(err, domain.ErrUpstream))

	failing = false
	_, err = svc.ResolveCatalog(ctx, "")
	is.NoErr(err)
	is.Equal(len(client.CatalogCalls()), 2)
}

func TestStationsPerQuantity(t *testing.T) {
	is, ctx, client := setupServiceTest(t)
	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	fc, err := svc.StationsPerQuantity(ctx, "waterlevel")
	is.NoErr(err)

	is.Equal(len(fc.Features), 1)
	is.Equal(fc.Features[0].ID, "HOEKVHLD:WATHTE")
	is.Equal(fc.Features[0].Properties["dataset"], "rws")
	is.Equal(fc.Features[0].Geometry.Type, "Point")
}

func TestThatAnUnknownStationIsNotFound(t *testing.T) {
	is, ctx, client := setupServiceTest(t)
	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	_, err := svc.StationInfo(ctx, "DELFZL")
	is.True(errors.Is(err, domain.ErrStationNotFound))

	records, err := svc.StationInfo(ctx, "VLISSGN")
	is.NoErr(err)
	is.Equal(len(records), 2)
}

func TestThatSeriesWithoutDataAreSkipped(t *testing.T) {
	is, ctx, client := setupServiceTest(t)

	client.ObservationsFunc = func(ctx context.Context, req rws.ObservationsRequest) (*rws.ObservationsResponse, error) {
		if req.AquoPlusWaarnemingMetadata.AquoMetadata.Grootheid.Code == "WINDRTG" {
			return &rws.ObservationsResponse{Succesvol: false, Foutmelding: "Geen gegevens gevonden!"}, nil
		}
		return windSpeedResponse(), nil
	}

	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	collection, err := svc.Measurements(ctx, "VLISSGN", "wind", start, start.Add(24*time.Hour), false)
	is.NoErr(err)

	is.Equal(len(client.ObservationsCalls()), 2)
	is.Equal(len(collection.Series), 1)
	is.Equal(collection.Series[0].Name, "WINDSHD")
	is.Equal(collection.Series[0].Units, "m/s")
	is.Equal(collection.Series[0].Data[0].Value, 7.5)
}

func TestThatUpstreamFailuresFailTheRequest(t *testing.T) {
	is, ctx, client := setupServiceTest(t)

	client.ObservationsFunc = func(ctx context.Context, req rws.ObservationsRequest) (*rws.ObservationsResponse, error) {
		if req.AquoPlusWaarnemingMetadata.AquoMetadata.Grootheid.Code == "WINDRTG" {
			return nil, domain.ErrUpstream
		}
		return windSpeedResponse(), nil
	}

	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Measurements(ctx, "VLISSGN", "wind", start, start.Add(24*time.Hour), false)
	is.True(errors.Is(err, domain.ErrUpstream))
}

func TestThatRepeatedSeriesRequestsAreServedFromCache(t *testing.T) {
	is, ctx, client := setupServiceTest(t)

	client.ObservationsFunc = func(ctx context.Context, req rws.ObservationsRequest) (*rws.ObservationsResponse, error) {
		return windSpeedResponse(), nil
	}

	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	records, err := svc.StationInfo(ctx, "VLISSGN")
	is.NoErr(err)

	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.FetchSeries(ctx, records[0], start, start.Add(time.Hour), false)
	is.NoErr(err)

	first.Data[0].Value = -1 // callers get their own copy

	second, err := svc.FetchSeries(ctx, records[0], start, start.Add(time.Hour), false)
	is.NoErr(err)
	is.Equal(second.Data[0].Value, 7.5)
	is.Equal(len(client.ObservationsCalls()), 1)

	_, err = svc.FetchSeries(ctx, records[0], start, start.Add(2*time.Hour), false)
	is.NoErr(err)
	is.Equal(len(client.ObservationsCalls()), 2)
}

func TestThatWarmLoadsTheCatalog(t *testing.T) {
	is, ctx, client := setupServiceTest(t)
	svc := NewStationService(ctx, zerolog.Nop(), DefaultDataset, client, newTestCache(), 2)

	is.NoErr(svc.Warm(ctx))
	is.Equal(len(client.CatalogCalls()), 1)
}

func TestDefaultWindow(t *testing.T) {
	is := is.New(t)

	now := time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)
	start, end := DefaultWindow(now)

	is.Equal(now.Sub(start), 48*time.Hour)
	is.Equal(end.Sub(now), 48*time.Hour)
}

func setupServiceTest(t *testing.T) (*is.I, context.Context, *rws.ClientMock) {
	is := is.New(t)

	client := &rws.ClientMock{
		CatalogFunc: func(ctx context.Context) (*rws.CatalogResponse, error) {
			return parseCatalog(is, catalogJson), nil
		},
	}

	return is, context.Background(), client
}

func newTestCache() *cache.Cache {
	return cache.New(
		cache.WithRegion(cache.ShortTerm, cache.NewMemoryStore(), time.Minute),
		cache.WithRegion(cache.LongTerm, cache.NewMemoryStore(), time.Hour),
	)
}

func windSpeedResponse() *rws.ObservationsResponse {
	v := 7.5
	return &rws.ObservationsResponse{
		Succesvol: true,
		WaarnemingenLijst: []rws.Waarneming{
			{
				MetingenLijst: []rws.Meting{
					{Tijdstip: "2023-03-01T01:00:00Z", Meetwaarde: rws.Meetwaarde{WaardeNumeriek: &v}},
				},
			},
		},
	}
}
