// Package metrics provides Prometheus metrics for the news API.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nashra"

var (
	// HTTPRequestsTotal counts handled requests by route template.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RouteResolutionsTotal counts fragment resolutions by resulting view kind.
	RouteResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_resolutions_total",
			Help:      "Total number of fragment resolutions",
		},
		[]string{"kind", "corrected"},
	)

	// GenerationRequestsTotal counts summary and briefing calls.
	GenerationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Total number of text generation requests",
		},
		[]string{"operation", "status"},
	)

	// GenerationDuration measures text generation latency.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of text generation requests in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"operation"},
	)

	// CommentsTotal counts comment mutations.
	CommentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_total",
			Help:      "Total number of comment operations",
		},
		[]string{"operation"},
	)

	// MarketRefreshTotal counts market ticker refreshes.
	MarketRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "market_refresh_total",
			Help:      "Total number of market data refreshes",
		},
		[]string{"status"},
	)
)

// RecordRequest records a handled HTTP request.
func RecordRequest(method, route string, status int) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordResolution records a fragment resolution.
func RecordResolution(kind string, corrected bool) {
	RouteResolutionsTotal.WithLabelValues(kind, strconv.FormatBool(corrected)).Inc()
}

// RecordGeneration records a text generation call.
func RecordGeneration(operation, status string, duration float64) {
	GenerationRequestsTotal.WithLabelValues(operation, status).Inc()
	GenerationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordComment records a comment add or remove.
func RecordComment(operation string) {
	CommentsTotal.WithLabelValues(operation).Inc()
}

// RecordMarketRefresh records a market refresh outcome.
func RecordMarketRefresh(status string) {
	MarketRefreshTotal.WithLabelValues(status).Inc()
}
