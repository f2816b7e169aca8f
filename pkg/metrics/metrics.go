package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets covering fast cache hits through slow Airtable
	// round trips (the portal blocks on synchronous table-service calls)
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Table-service client metrics (Airtable)
	AirtableRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "table_client_operation_duration_seconds",
			Help:    "Table-service client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	AirtableRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "table_client_operation_total",
			Help: "Total number of table-service client operations",
		},
		[]string{"operation", "status"},
	)

	// Lookup cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_cache_hits_total",
			Help: "Total number of lookup cache hits",
		},
		[]string{"operation"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_cache_misses_total",
			Help: "Total number of lookup cache misses",
		},
		[]string{"operation"},
	)

	CacheFlushes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_cache_flushes_total",
			Help: "Total number of wholesale lookup cache invalidations",
		},
	)

	// Magic-link auth metrics
	AuthLoginRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_requests_total",
			Help: "Total number of magic-link login requests by outcome",
		},
		[]string{"outcome"},
	)

	AuthVerifyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_verify_requests_total",
			Help: "Total number of magic-link verifications by outcome",
		},
		[]string{"outcome"},
	)

	AuthPreviewRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_preview_requests_total",
			Help: "Total number of admin preview logins by outcome",
		},
		[]string{"outcome"},
	)

	// Notification sink metrics
	EmailSendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_send_total",
			Help: "Total number of outbound emails by status",
		},
		[]string{"status"},
	)

	// Runtime metrics
	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "runtime_goroutines",
			Help: "Number of running goroutines",
		},
	)
)

// Registry is the prometheus registry exposed on /api/metrics
var Registry = prometheus.DefaultRegisterer.(*prometheus.Registry)

// MeasureDuration returns the elapsed time since start in seconds
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// RecordInfrastructureMetrics starts a background collector for runtime stats
func RecordInfrastructureMetrics() {
	go func() {
		for {
			Goroutines.Set(float64(runtime.NumGoroutine()))
			time.Sleep(15 * time.Second)
		}
	}()
}
