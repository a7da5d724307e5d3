package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	apiRequestsTotal         *prometheus.CounterVec
	apiLatencySeconds        *prometheus.HistogramVec
	apiErrorsTotal           *prometheus.CounterVec
	recomputeRunsTotal       *prometheus.CounterVec
	recomputeDurationSeconds prometheus.Histogram
	resultRowsUpsertedTotal  prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rapor_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rapor_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rapor_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		recomputeRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rapor_recompute_runs_total",
			Help: "Total number of result recomputation runs by outcome.",
		}, []string{"status"})

		recomputeDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rapor_recompute_duration_seconds",
			Help:    "Duration distribution of result recomputation runs.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		resultRowsUpsertedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rapor_result_rows_upserted_total",
			Help: "Total number of result rows written by recomputation runs.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			recomputeRunsTotal,
			recomputeDurationSeconds,
			resultRowsUpsertedTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// RecomputeRuns exposes the counter for recomputation runs.
func RecomputeRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return recomputeRunsTotal
}

// RecomputeDuration exposes the histogram for recomputation durations.
func RecomputeDuration() prometheus.Histogram {
	RegisterMetrics()
	return recomputeDurationSeconds
}

// ResultRowsUpserted exposes the counter for written result rows.
func ResultRowsUpserted() prometheus.Counter {
	RegisterMetrics()
	return resultRowsUpsertedTotal
}
