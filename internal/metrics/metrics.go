// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	crawlPagesTotal            *prometheus.CounterVec
	crawlDurationSeconds       prometheus.Histogram
	catalogRecords             prometheus.Gauge
	reindexTotal               *prometheus.CounterVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init registers the collectors. It is safe to call multiple times.
func Init() {
	once.Do(func() {
		crawlPagesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bevtrends_crawl_pages_total",
				Help: "Detail pages processed per crawl, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		crawlDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bevtrends_crawl_duration_seconds",
				Help:    "Histogram of full crawl durations.",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
			},
		)

		catalogRecords = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bevtrends_catalog_records",
				Help: "Number of cocktail records in the active snapshot.",
			},
		)

		reindexTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bevtrends_reindex_total",
				Help: "Reindex operations, labeled by result.",
			},
			[]string{"result"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bevtrends_http_requests_total",
				Help: "HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bevtrends_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCrawlPage counts one processed detail page by outcome.
func ObserveCrawlPage(outcome string) {
	Init()
	crawlPagesTotal.WithLabelValues(outcome).Inc()
}

// ObserveCrawlDuration records the wall time of a full crawl.
func ObserveCrawlDuration(d time.Duration) {
	Init()
	crawlDurationSeconds.Observe(d.Seconds())
}

// SetCatalogRecords tracks the size of the active snapshot.
func SetCatalogRecords(n int) {
	Init()
	catalogRecords.Set(float64(n))
}

// ObserveReindex counts a reindex by result (ok, failed, busy, safe).
func ObserveReindex(result string) {
	Init()
	reindexTotal.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
