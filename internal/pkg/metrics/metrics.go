package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the provider and resolver collectors
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

var (
	// Upstream provider metrics
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of requests sent to upstream movie providers",
		},
		[]string{"provider", "endpoint", "outcome"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Upstream provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "endpoint"},
	)

	// Resolver metrics
	ResolveAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolve_attempts_total",
			Help: "Total number of random-pick attempts, by whether a candidate was found",
		},
		[]string{"outcome"},
	)

	ResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolve_total",
			Help: "Total number of recommendation resolutions, by result",
		},
		[]string{"outcome"},
	)

	RatingsEnrichmentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_enrichment_failures_total",
			Help: "Total number of ratings lookups that failed and were replaced by an empty list",
		},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveProviderCall records one upstream round trip
func ObserveProviderCall(provider, endpoint string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	ProviderRequestsTotal.WithLabelValues(provider, endpoint, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(provider, endpoint).Observe(time.Since(start).Seconds())
}

// GinMiddleware records count and latency for every routed request.
// Unrouted requests (static files, 404s) share the "other" endpoint label.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "other"
		}
		method := c.Request.Method

		APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		APIRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
