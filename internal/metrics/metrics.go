// Package metrics holds the Prometheus collectors for searches, extraction and
// batch copies. Collectors register with the default registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cvsearch"

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches by outcome (matched, empty, rejected, error)",
		},
		[]string{"outcome"},
	)

	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of a full collection search",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	documentsScanned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_scanned_total",
			Help:      "Documents read during searches",
		},
	)

	extractionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "Documents whose text extraction failed",
		},
		[]string{"format"},
	)

	batchCopies = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_copies_total",
			Help:      "PDFs copied into the results directory by batch runs",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestDuration, httpRequestsTotal,
		searchesTotal, searchDuration, documentsScanned,
		extractionFailures, batchCopies,
	)
}

// ObserveSearch records one finished search.
func ObserveSearch(outcome string, scanned int, took time.Duration) {
	searchesTotal.WithLabelValues(outcome).Inc()
	if scanned > 0 {
		documentsScanned.Add(float64(scanned))
	}
	if took > 0 {
		searchDuration.Observe(took.Seconds())
	}
}

func ObserveExtractionFailure(format string) {
	extractionFailures.WithLabelValues(format).Inc()
}

func ObserveBatchCopy() {
	batchCopies.Inc()
}
