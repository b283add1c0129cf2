package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	requestsTotal  *prometheus.CounterVec
	latencySeconds *prometheus.HistogramVec
	errorsTotal    *prometheus.CounterVec

	transitionsTotal   *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	trackerCacheHits   prometheus.Counter
	sseClientsActive   prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors for the contest API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contest_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		transitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_application_transitions_total",
			Help: "Total number of application status transitions.",
		}, []string{"from", "to"})

		notificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_notifications_published_total",
			Help: "Total number of lifecycle notifications published.",
		}, []string{"type"})

		trackerCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contest_tracker_cache_hits_total",
			Help: "Total number of tracker dashboard responses served from cache.",
		})

		sseClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "contest_sse_clients_active",
			Help: "Number of currently connected SSE notification clients.",
		})

		prometheus.MustRegister(
			requestsTotal,
			latencySeconds,
			errorsTotal,
			transitionsTotal,
			notificationsTotal,
			trackerCacheHits,
			sseClientsActive,
		)
	})
}

// Requests exposes the counter for served requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// ApplicationTransitionsTotal exposes the status transition counter.
func ApplicationTransitionsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return transitionsTotal
}

// NotificationsPublishedTotal exposes the published notification counter.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsTotal
}

// TrackerCacheHitsTotal exposes the tracker cache hit counter.
func TrackerCacheHitsTotal() prometheus.Counter {
	RegisterMetrics()
	return trackerCacheHits
}

// SSEClientsActive exposes the live SSE connection gauge.
func SSEClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return sseClientsActive
}
