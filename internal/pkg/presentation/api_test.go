package presentation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/application/services/grids"
	"github.com/diwise/api-measurements/internal/pkg/application/services/stations"
	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

func NewAppForTesting() (*httptest.Server, *stations.StationServiceMock, *grids.GridServiceMock) {
	stationSvc := &stations.StationServiceMock{
		MeasurementsFunc: func(ctx context.Context, id, filter string, start, end time.Time, validatedOnly bool) (domain.SeriesCollection, error) {
			return domain.SeriesCollection{Series: []domain.Series{}}, nil
		},
	}
	gridSvc := &grids.GridServiceMock{
		GridsFunc: func() []string {
			return []string{"ncep"}
		},
	}

	r := chi.NewRouter()
	newMeasurementsAPI(context.Background(), r, map[string]stations.StationService{"rws": stationSvc}, gridSvc)

	return httptest.NewServer(r), stationSvc, gridSvc
}

func NewTestRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

func TestHealthProbe(t *testing.T) {
	is := is.New(t)
	ts, _, _ := NewAppForTesting()
	defer ts.Close()

	resp, _ := NewTestRequest(is, ts, http.MethodGet, "/health", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestThatMetricsAreExposed(t *testing.T) {
	is := is.New(t)
	ts, _, _ := NewAppForTesting()
	defer ts.Close()

	resp, body := NewTestRequest(is, ts, http.MethodGet, "/metrics", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "go_goroutines"))
}

func TestThatStationRoutesAreWired(t *testing.T) {
	is := is.New(t)
	ts, stationSvc, _ := NewAppForTesting()
	defer ts.Close()

	resp, body := NewTestRequest(is, ts, http.MethodGet, "/api/stations/rws/HOEKVHLD/measurements/waterlevel", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `{"series":[]}`)
	is.Equal(len(stationSvc.MeasurementsCalls()), 1)

	resp, _ = NewTestRequest(is, ts, http.MethodGet, "/api/stations", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestThatGridRoutesAreWired(t *testing.T) {
	is := is.New(t)
	ts, _, gridSvc := NewAppForTesting()
	defer ts.Close()

	resp, body := NewTestRequest(is, ts, http.MethodGet, "/api/grids", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `["ncep"]`)
	is.Equal(len(gridSvc.GridsCalls()), 1)
}
