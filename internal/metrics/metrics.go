// Package metrics defines Prometheus metrics for chesskeep.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chesskeep_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chesskeep_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chesskeep_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	PositionsLoaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chesskeep_positions_loaded_total",
			Help: "Positions inserted by imports",
		},
	)

	PositionsUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chesskeep_positions_updated_total",
			Help: "Positions overwritten by imports",
		},
	)

	GamesStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chesskeep_games_stored_total",
			Help: "Games stored by imports",
		},
	)

	ImportErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chesskeep_import_errors_total",
			Help: "Records rejected during imports by source kind",
		},
		[]string{"kind"},
	)

	ImportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chesskeep_import_duration_seconds",
			Help:    "Batch import duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		},
		[]string{"kind"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chesskeep_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		PositionsLoaded, PositionsUpdated, GamesStored,
		ImportErrors, ImportDuration,
		WSConnections,
	)
}
