package fetch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the gateway and the
// scrapers built on top of it.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	RetriesTotal    prometheus.Counter
	ErrorsTotal     *prometheus.CounterVec
	ImageChecks     *prometheus.CounterVec
	ProductsTotal   *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashionscrape_requests_total",
			Help: "Total storefront requests issued by the gateway.",
		},
		[]string{"phase"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fashionscrape_request_duration_seconds",
			Help:    "Storefront request latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	retries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fashionscrape_retries_total",
			Help: "Total retry attempts issued by the gateway.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashionscrape_errors_total",
			Help: "Total fetch errors by type.",
		},
		[]string{"error_type"},
	)
	imageChecks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashionscrape_image_checks_total",
			Help: "Image validation outcomes.",
		},
		[]string{"result"},
	)
	products := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashionscrape_products_total",
			Help: "Products accepted after extraction and validation.",
		},
		[]string{"brand"},
	)

	registry.MustRegister(requests, requestDuration, retries, errorsTotal, imageChecks, products)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		RequestDuration: requestDuration,
		RetriesTotal:    retries,
		ErrorsTotal:     errorsTotal,
		ImageChecks:     imageChecks,
		ProductsTotal:   products,
	}
}

// IncRequest increments the request counter for a phase.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(phase).Inc()
}

// ObserveDuration records one request latency.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncRetries counts one scheduled retry.
func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// IncError counts one fetch error by type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// IncImageCheck counts one image validation by outcome.
func (m *Metrics) IncImageCheck(result string) {
	if m == nil {
		return
	}
	m.ImageChecks.WithLabelValues(result).Inc()
}

// IncProducts counts one accepted product for a brand.
func (m *Metrics) IncProducts(brand string) {
	if m == nil {
		return
	}
	m.ProductsTotal.WithLabelValues(brand).Inc()
}
