// Package metrics provides Prometheus instrumentation for the dashboard backend.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeHTTPError = "http_error"
	OutcomeDecode    = "decode_error"
)

var (
	// UpstreamRequestsTotal counts outbound requests by upstream and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_upstream_requests_total",
		Help: "Outbound upstream API requests",
	}, []string{"upstream", "outcome"})

	// UpstreamLatency tracks outbound request latency.
	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_upstream_request_duration_seconds",
		Help:    "Outbound upstream API request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"upstream"})

	// FeedFallbacksTotal counts wallet feeds that degraded to mock or empty data.
	FeedFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_feed_fallbacks_total",
		Help: "Wallet data feeds that fell back to mock or empty data",
	}, []string{"feed", "reason"})

	// AggregationDuration tracks the pure aggregation step.
	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_portfolio_aggregation_seconds",
		Help:    "Portfolio aggregation duration in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	// MalformedRecordsTotal counts snapshots rejected for malformed upstream records.
	MalformedRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_malformed_records_total",
		Help: "Portfolio snapshots rejected because of malformed upstream records",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"method", "route"})
)

// ObserveUpstream records one outbound call.
func ObserveUpstream(upstream, outcome string, started time.Time) {
	UpstreamRequestsTotal.WithLabelValues(upstream, outcome).Inc()
	UpstreamLatency.WithLabelValues(upstream).Observe(time.Since(started).Seconds())
}

// GinMiddleware records request metrics. The route template is used as label
// to keep cardinality bounded.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
