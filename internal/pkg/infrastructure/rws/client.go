package rws

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/diwise/api-measurements/internal/pkg/domain"
	"github.com/diwise/api-measurements/internal/pkg/infrastructure/metrics"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultCatalogURL      string = "https://waterwebservices.rijkswaterstaat.nl/METADATASERVICES_DBO/OphalenCatalogus/"
	DefaultObservationsURL string = "https://waterwebservices.rijkswaterstaat.nl/ONLINEWAARNEMINGENSERVICES_DBO/OphalenWaarnemingen"

	// PeriodLayout is the timestamp layout the observation service expects in Periode.
	PeriodLayout string = "2006-01-02T15:04:05.000-07:00"

	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 5 * time.Second
)

//go:generate moq -rm -out client_mock.go . Client

type Client interface {
	Catalog(ctx context.Context) (*CatalogResponse, error)
	Observations(ctx context.Context, req ObservationsRequest) (*ObservationsResponse, error)
}

type Option func(*client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *client) {
		cl.httpClient = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *client) {
		cl.httpClient.Timeout = d
	}
}

func WithRetries(maxRetries int, initial, maxInterval time.Duration) Option {
	return func(cl *client) {
		cl.maxRetries = maxRetries
		cl.initialInterval = initial
		cl.maxInterval = maxInterval
	}
}

func WithURLs(catalogURL, observationsURL string) Option {
	return func(cl *client) {
		cl.catalogURL = catalogURL
		cl.observationsURL = observationsURL
	}
}

type client struct {
	catalogURL      string
	observationsURL string

	httpClient *http.Client

	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration

	catalogBreaker      *gobreaker.CircuitBreaker
	observationsBreaker *gobreaker.CircuitBreaker
}

func NewClient(opts ...Option) Client {
	c := &client{
		catalogURL:      DefaultCatalogURL,
		observationsURL: DefaultObservationsURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
		maxRetries:      3,
		initialInterval: DefaultInitialInterval,
		maxInterval:     DefaultMaxInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.catalogBreaker = newBreaker("rws-catalog")
	c.observationsBreaker = newBreaker("rws-observations")

	return c
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

func (c *client) Catalog(ctx context.Context) (*CatalogResponse, error) {
	body := CatalogRequest{
		CatalogusFilter: CatalogusFilter{
			Eenheden:       true,
			Grootheden:     true,
			Hoedanigheden:  true,
			Compartimenten: true,
		},
	}

	response := &CatalogResponse{}
	err := c.postJSON(ctx, "catalog", c.catalogBreaker, c.catalogURL, body, response)
	if err != nil {
		return nil, err
	}

	if response.Succesvol != nil && !*response.Succesvol {
		return nil, fmt.Errorf("%w: catalog request was not successful: %s", domain.ErrUpstream, response.Foutmelding)
	}

	return response, nil
}

func (c *client) Observations(ctx context.Context, req ObservationsRequest) (*ObservationsResponse, error) {
	response := &ObservationsResponse{}
	err := c.postJSON(ctx, "observations", c.observationsBreaker, c.observationsURL, req, response)
	if err != nil {
		return nil, err
	}

	return response, nil
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
)

// postJSON posts body and decodes the response into result. Transport errors, 429, 5xx
// and undecodable bodies are retried with exponential backoff. Other 4xx responses and
// an open circuit fail immediately.
func (c *client) postJSON(ctx context.Context, op string, cb *gobreaker.CircuitBreaker, url string, body, result any) error {
	logger := logging.GetFromContext(ctx)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %s", err.Error())
	}

	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %s", err.Error()))
		}
		req.Header.Add("Content-Type", "application/json")
		req.Header.Add("Accept", "application/json")

		started := time.Now()

		_, err = cb.Execute(func() (interface{}, error) {
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, fmt.Errorf("failed to send request: %w", err)
			}
			defer resp.Body.Close()

			respBody, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read response body: %w", err)
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				return nil, errRateLimited
			}
			if resp.StatusCode >= http.StatusInternalServerError {
				return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
			}
			if resp.StatusCode >= http.StatusBadRequest {
				reqbytes, _ := httputil.DumpRequest(req, false)
				respbytes, _ := httputil.DumpResponse(resp, false)
				logger.Error().Str("request", string(reqbytes)).Str("response", string(respbytes)).Msg("request failed")
				return nil, backoff.Permanent(fmt.Errorf("upstream returned status code %d: %s", resp.StatusCode, string(respBody)))
			}

			if err = json.Unmarshal(respBody, result); err != nil {
				return nil, fmt.Errorf("failed to unmarshal response body: %w", err)
			}

			return nil, nil
		})

		metrics.ObserveUpstream(op, started, err)

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(err)
		}

		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval
	b.MaxElapsedTime = 0

	notify := func(err error, d time.Duration) {
		logger.Warn().Err(err).Str("op", op).Dur("retry_in", d).Msg("upstream request failed, retrying")
	}

	err = backoff.RetryNotify(attempt, backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx), notify)
	if err != nil {
		return fmt.Errorf("%w: %s %s", domain.ErrUpstream, op, err.Error())
	}

	return nil
}
