package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "measurements"

var (
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by region, operation and result (hit, miss)",
		},
		[]string{"region", "op", "result"},
	)

	CacheLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_loads_total",
			Help:      "Loader executions by region, operation and status",
		},
		[]string{"region", "op", "status"},
	)

	CachePurged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_purged_entries_total",
			Help:      "Expired entries removed by region",
		},
		[]string{"region"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream requests by operation and status",
		},
		[]string{"op", "status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"op"},
	)

	GridResolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grid_resolve_duration_seconds",
			Help:      "Grid point resolution duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"grid", "quantity"},
	)

	StationsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_skipped_total",
			Help:      "Stations left out of an aggregated response because they had no data",
		},
		[]string{"dataset", "quantity"},
	)
)

func ObserveUpstream(op string, started time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	UpstreamRequests.WithLabelValues(op, status).Inc()
	UpstreamDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func ObserveGridResolve(grid, quantity string, started time.Time) {
	GridResolveDuration.WithLabelValues(grid, quantity).Observe(time.Since(started).Seconds())
}
