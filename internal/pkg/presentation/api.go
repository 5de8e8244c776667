package presentation

import (
	"compress/flate"
	"context"
	"net/http"

	"github.com/diwise/api-measurements/internal/pkg/application/services/grids"
	"github.com/diwise/api-measurements/internal/pkg/application/services/stations"
	"github.com/diwise/api-measurements/internal/pkg/presentation/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Start(port string) error
}

type measurementsAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(ctx context.Context, r chi.Router, datasets map[string]stations.StationService, gridSvc grids.GridService) API {
	return newMeasurementsAPI(ctx, r, datasets, gridSvc)
}

func newMeasurementsAPI(ctx context.Context, r chi.Router, datasets map[string]stations.StationService, gridSvc grids.GridService) *measurementsAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"application/json", "application/geo+json", "application/problem+json",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("api-measurements", otelchi.WithChiRoutes(r)))

	a := &measurementsAPI{
		router: r,
		log:    log,
	}

	a.addStationHandlers(r, log, datasets)
	a.addGridHandlers(r, log, gridSvc)
	a.addProbeHandlers(r)

	return a
}

func (a *measurementsAPI) Start(port string) error {
	a.log.Info().Msgf("Starting api-measurements on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *measurementsAPI) addStationHandlers(r chi.Router, log zerolog.Logger, datasets map[string]stations.StationService) {
	r.Get("/api/stations", handlers.NewRetrieveStationDatasetsHandler(log, datasets))
	r.Get(
		"/api/stations/{dataset}/quantities/{quantity}",
		handlers.NewRetrieveStationsPerQuantityHandler(log, datasets),
	)
	r.Get(
		"/api/stations/{dataset}/{id}",
		handlers.NewRetrieveStationInfoHandler(log, datasets),
	)
	r.Get(
		"/api/stations/{dataset}/{id}/measurements/{quantity}",
		handlers.NewRetrieveStationMeasurementsHandler(log, datasets),
	)
}

func (a *measurementsAPI) addGridHandlers(r chi.Router, log zerolog.Logger, svc grids.GridService) {
	r.Get("/api/grids", handlers.NewRetrieveGridsHandler(log, svc))
	r.Get("/api/grids/{id}", handlers.NewRetrieveGridInfoHandler(log, svc))
	r.Get(
		"/api/grids/{id}/measurements/{quantity}",
		handlers.NewRetrieveGridMeasurementsHandler(log, svc),
	)
}

func (a *measurementsAPI) addProbeHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}
