package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/application/services/stations"
	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestThatStationMeasurementsAreReturnedAsSeries(t *testing.T) {
	is, rw := setup(t)
	svc := defaultStationServiceMock()
	router := stationRouter(svc)

	req, _ := http.NewRequest("GET", "/api/stations/rws/HOEKVHLD/measurements/waterlevel?start_time=2023-03-01T00:00:00Z&end_time=2023-03-02&validated=true", nil)
	router.ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusOK)
	is.Equal(rw.Header().Get("Content-Type"), "application/json")

	calls := svc.MeasurementsCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Id, "HOEKVHLD")
	is.Equal(calls[0].Filter, "waterlevel")
	is.Equal(calls[0].Start, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))
	is.Equal(calls[0].End, time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC))
	is.True(calls[0].ValidatedOnly)

	body := struct {
		Series []struct {
			Data []struct {
				T time.Time `json:"t"`
				V float64   `json:"v"`
			} `json:"data"`
			Name  string `json:"name"`
			Units string `json:"units"`
		} `json:"series"`
	}{}
	is.NoErr(json.Unmarshal(rw.Body.Bytes(), &body))
	is.Equal(len(body.Series), 1)
	is.Equal(body.Series[0].Units, "cm")
	is.Equal(body.Series[0].Data[0].V, 12.0)
}

func TestThatTheDefaultWindowIsUsedWithoutTimes(t *testing.T) {
	is, rw := setup(t)
	svc := defaultStationServiceMock()

	req, _ := http.NewRequest("GET", "/api/stations/rws/HOEKVHLD/measurements/waterlevel", nil)
	stationRouter(svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusOK)

	call := svc.MeasurementsCalls()[0]
	is.Equal(call.End.Sub(call.Start), 96*time.Hour)
	is.True(!call.ValidatedOnly)
}

func TestThatBadTimesAreRejected(t *testing.T) {
	is, _ := setup(t)
	svc := defaultStationServiceMock()

	for _, query := range []string{"start_time=gurka", "end_time=2023-13-01", "start_time=2023-03-02&end_time=2023-03-01", "validated=perhaps"} {
		rw := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/stations/rws/HOEKVHLD/measurements/waterlevel?"+query, nil)
		stationRouter(svc).ServeHTTP(rw, req)

		is.Equal(rw.Code, http.StatusBadRequest) // response status should be 400 bad request
	}

	is.Equal(len(svc.MeasurementsCalls()), 0)
}

func TestThatServiceErrorsAreMappedToStatusCodes(t *testing.T) {
	is, _ := setup(t)

	for err, status := range map[error]int{
		domain.ErrUnknownQuantity:      http.StatusBadRequest,
		domain.ErrStationNotFound:      http.StatusNotFound,
		domain.ErrUpstream:             http.StatusBadGateway,
		domain.ErrCatalogJoinInvariant: http.StatusInternalServerError,
		domain.ErrCoordinateSystem:     http.StatusInternalServerError,
	} {
		failure := fmt.Errorf("wrapped: %w", err)

		svc := defaultStationServiceMock()
		svc.MeasurementsFunc = func(ctx context.Context, id, filter string, start, end time.Time, validatedOnly bool) (domain.SeriesCollection, error) {
			return domain.SeriesCollection{}, failure
		}

		rw := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/stations/rws/HOEKVHLD/measurements/waterlevel", nil)
		stationRouter(svc).ServeHTTP(rw, req)

		is.Equal(rw.Code, status)
		is.Equal(rw.Header().Get("Content-Type"), "application/problem+json")
	}
}

func TestThatAnUnknownDatasetIsNotFound(t *testing.T) {
	is, rw := setup(t)
	svc := defaultStationServiceMock()

	req, _ := http.NewRequest("GET", "/api/stations/nope/quantities/wind", nil)
	stationRouter(svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusNotFound)
	is.Equal(len(svc.StationsPerQuantityCalls()), 0)
}

func TestStationsPerQuantity(t *testing.T) {
	is, rw := setup(t)
	svc := defaultStationServiceMock()

	req, _ := http.NewRequest("GET", "/api/stations/rws/quantities/wind", nil)
	stationRouter(svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusOK)
	is.Equal(svc.StationsPerQuantityCalls()[0].Filter, "wind")
	is.True(strings.Contains(rw.Body.String(), `"FeatureCollection"`))
}

func TestStationInfoAndDatasets(t *testing.T) {
	is, rw := setup(t)
	svc := defaultStationServiceMock()

	req, _ := http.NewRequest("GET", "/api/stations/rws/VLISSGN", nil)
	stationRouter(svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusOK)
	is.Equal(svc.StationInfoCalls()[0].Id, "VLISSGN")

	rw = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/stations", nil)
	stationRouter(svc).ServeHTTP(rw, req)

	is.Equal(rw.Code, http.StatusOK)
	is.Equal(rw.Body.String(), `["rws"]`)
}

func setup(t *testing.T) (*is.I, *httptest.ResponseRecorder) {
	return is.New(t), httptest.NewRecorder()
}

func stationRouter(svc stations.StationService) chi.Router {
	log := zerolog.Nop()
	datasets := map[string]stations.StationService{"rws": svc}

	r := chi.NewRouter()
	r.Get("/api/stations", NewRetrieveStationDatasetsHandler(log, datasets))
	r.Get("/api/stations/{dataset}/quantities/{quantity}", NewRetrieveStationsPerQuantityHandler(log, datasets))
	r.Get("/api/stations/{dataset}/{id}", NewRetrieveStationInfoHandler(log, datasets))
	r.Get("/api/stations/{dataset}/{id}/measurements/{quantity}", NewRetrieveStationMeasurementsHandler(log, datasets))
	return r
}

func defaultStationServiceMock() *stations.StationServiceMock {
	return &stations.StationServiceMock{
		DatasetFunc: func() string {
			return "rws"
		},
		StationsPerQuantityFunc: func(ctx context.Context, filter string) (*domain.FeatureCollection, error) {
			return domain.NewFeatureCollection(), nil
		},
		StationInfoFunc: func(ctx context.Context, id string) ([]domain.StationRecord, error) {
			return []domain.StationRecord{{Code: id, Quantity: "WINDSHD"}}, nil
		},
		MeasurementsFunc: func(ctx context.Context, id, filter string, start, end time.Time, validatedOnly bool) (domain.SeriesCollection, error) {
			return domain.SeriesCollection{
				Series: []domain.Series{
					{
						Data:  []domain.Observation{{Time: start, Value: 12}},
						Name:  "Waterhoogte",
						Units: "cm",
					},
				},
			}, nil
		},
	}
}
