package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	URLsInQueue         prometheus.Gauge
	ScrapesTotal        *prometheus.CounterVec
	ScrapeDuration      *prometheus.HistogramVec
	FieldsExtracted     *prometheus.CounterVec
)

func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	URLsInQueue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "urls_in_queue",
			Help: "Current number of statement URLs in the scrape queue.",
		},
	)

	ScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrapes_total",
			Help: "Total number of scrape attempts.",
		},
		[]string{"status", "error_type"}, // status: success, failure
	)

	ScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scrape_duration_seconds",
			Help:    "Duration of fetch-and-extract operations.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		},
		[]string{"domain"},
	)

	FieldsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fields_extracted_total",
			Help: "Number of statement fields successfully derived, by field.",
		},
		[]string{"field"},
	)
}
