package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/application/services/stations"
	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type seriesQuery struct {
	Start     time.Time `validate:"required"`
	End       time.Time `validate:"required,gtefield=Start"`
	Validated bool
}

func lookupDataset(datasets map[string]stations.StationService, name string) (stations.StationService, error) {
	svc, ok := datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDataset, name)
	}
	return svc, nil
}

func NewRetrieveStationDatasetsHandler(log zerolog.Logger, datasets map[string]stations.StationService) http.HandlerFunc {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, names)
	})
}

func NewRetrieveStationsPerQuantityHandler(log zerolog.Logger, datasets map[string]stations.StationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "stations-per-quantity")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		svc, err := lookupDataset(datasets, chi.URLParam(r, "dataset"))
		if err != nil {
			writeError(w, log, statusFor(err), err)
			return
		}

		fc, err := svc.StationsPerQuantity(ctx, chi.URLParam(r, "quantity"))
		if err != nil {
			writeError(w, log, statusFor(err), err)
			return
		}

		writeJSON(w, log, fc)
	})
}

func NewRetrieveStationInfoHandler(log zerolog.Logger, datasets map[string]stations.StationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "station-info")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		svc, err := lookupDataset(datasets, chi.URLParam(r, "dataset"))
		if err != nil {
			writeError(w, log, statusFor(err), err)
			return
		}

		records, err := svc.StationInfo(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, log, statusFor(err), err)
			return
		}

		writeJSON(w, log, records)
	})
}

func NewRetrieveStationMeasurementsHandler(log zerolog.Logger, datasets map[string]stations.StationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "station-measurements")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		svc, err := lookupDataset(datasets, chi.URLParam(r, "dataset"))
		if err != nil {
			writeError(w, log, statusFor(err), err)
			return
		}

		q := seriesQuery{}

		defaultStart, defaultEnd := stations.DefaultWindow(time.Now().UTC())
		q.Start, q.End, err = getTimeParamsFromURL(r, defaultStart, defaultEnd)
		if err == nil {
			q.Validated, err = getBoolParam(r, "validated")
		}
		if err == nil {
			err = validate.Struct(q)
		}
		if err != nil {
			writeError(w, log, http.StatusBadRequest, err)
			return
		}

		collection, err := svc.Measurements(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "quantity"), q.Start, q.End, q.Validated)
		if err != nil {
			writeError(w, log, statusFor(err), err)
			return
		}

		writeJSON(w, log, collection)
	})
}
