package handlers

import (
	"net/http"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/application/services/grids"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type gridQuery struct {
	Lat   float64   `validate:"gte=-90,lte=90"`
	Lon   float64   `validate:"gte=-180,lte=360"`
	Start time.Time `validate:"required"`
	End   time.Time `validate:"required,gtefield=Start"`
}

func NewRetrieveGridsHandler(log zerolog.Logger, svc grids.GridService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, svc.Grids())
	})
}

func NewRetrieveGridInfoHandler(log zerolog.Logger, svc grids.GridService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "grid-info")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		info, err := svc.Info(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, log, statusFor(err), err)
			return
		}

		writeJSON(w, log, info)
	})
}

func NewRetrieveGridMeasurementsHandler(log zerolog.Logger, svc grids.GridService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "grid-measurements")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		q := gridQuery{}

		q.Lat, err = getFloatParam(r, "lat")
		if err == nil {
			q.Lon, err = getFloatParam(r, "lon")
		}
		if err == nil {
			q.Start, q.End, err = getTimeParamsFromURL(r, time.Time{}, time.Time{})
		}
		if err == nil {
			err = validate.Struct(q)
		}
		if err != nil {
			writeError(w, log, http.StatusBadRequest, err)
			return
		}

		collection, err := svc.ResolveGrid(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "quantity"), q.Lat, q.Lon, q.Start, q.End)
		if err != nil {
			writeError(w, log, statusFor(err), err)
			return
		}

		writeJSON(w, log, collection)
	})
}
