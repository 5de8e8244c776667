package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-measurements/api")

var validate = validator.New()

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseTime accepts RFC3339 timestamps, timestamps without an offset and plain dates.
// Values without an offset are taken to be UTC.
func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", value)
}

func getTimeParamsFromURL(r *http.Request, defaultStart, defaultEnd time.Time) (time.Time, time.Time, error) {
	var err error

	startTime, endTime := defaultStart, defaultEnd

	if from := r.URL.Query().Get("start_time"); from != "" {
		startTime, err = parseTime(from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if to := r.URL.Query().Get("end_time"); to != "" {
		endTime, err = parseTime(to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	return startTime, endTime, nil
}

func getFloatParam(r *http.Request, name string) (float64, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0, fmt.Errorf("missing query parameter %s", name)
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}

	return f, nil
}

func getBoolParam(r *http.Request, name string) (bool, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownQuantity), errors.Is(err, domain.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownDataset), errors.Is(err, domain.ErrStationNotFound),
		errors.Is(err, domain.ErrNoData), errors.Is(err, domain.ErrGridArchiveNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type problem struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, log zerolog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	b, _ := json.Marshal(problem{Status: status, Title: http.StatusText(status), Detail: err.Error()})

	w.Header().Add("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, log, http.StatusInternalServerError, fmt.Errorf("unable to marshal results to json: %w", err))
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
