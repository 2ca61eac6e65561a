// Package metrics exposes Prometheus collectors for the dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Comment operation label values.
const (
	OpLoad   = "load"
	OpAppend = "append"
)

var (
	refreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_refresh_total",
			Help: "Total number of dashboard refreshes by result",
		},
		[]string{"result"},
	)

	refreshDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_refresh_duration_seconds",
			Help:    "Time spent fetching and aggregating both exports",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	commentOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_comment_ops_total",
			Help: "Comment log reads and appends by result",
		},
		[]string{"op", "result"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	requestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveRefresh records one refresh attempt.
func ObserveRefresh(result string, d time.Duration) {
	refreshTotal.WithLabelValues(result).Inc()
	refreshDurationSeconds.Observe(d.Seconds())
}

// ObserveCommentOp records one comment log operation.
func ObserveCommentOp(op, result string) {
	commentOpsTotal.WithLabelValues(op, result).Inc()
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
