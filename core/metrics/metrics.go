// Package metrics holds the Prometheus collectors shared by the crawl and sync commands.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles Prometheus collectors on a dedicated registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	RetriesTotal    prometheus.Counter
	ErrorsTotal     *prometheus.CounterVec
	CardsTotal      prometheus.Counter
	PriceRowsTotal  *prometheus.CounterVec
	StagedRowsTotal *prometheus.CounterVec
}

// New constructs and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardledger_requests_total",
			Help: "Total HTTP requests issued, by target and outcome.",
		},
		[]string{"target", "outcome"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cardledger_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	retries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cardledger_retries_total",
			Help: "Total number of retry attempts scheduled.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardledger_errors_total",
			Help: "Total number of transport errors by type.",
		},
		[]string{"error_type"},
	)
	cards := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cardledger_cards_collected_total",
			Help: "Card detail records extracted.",
		},
	)
	priceRows := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardledger_price_rows_total",
			Help: "Reconciled price rows written, by suspicion.",
		},
		[]string{"suspicious"},
	)
	staged := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardledger_staged_rows_total",
			Help: "Inventory rows processed by the staging sync, by outcome.",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(requests, duration, retries, errorsTotal, cards, priceRows, staged)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		RequestDuration: duration,
		RetriesTotal:    retries,
		ErrorsTotal:     errorsTotal,
		CardsTotal:      cards,
		PriceRowsTotal:  priceRows,
		StagedRowsTotal: staged,
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// IncRequest counts one request against a target.
func (m *Metrics) IncRequest(target, outcome string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(target, outcome).Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncRetries increments the retries counter.
func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// IncCards increments the extracted cards counter.
func (m *Metrics) IncCards() {
	if m == nil {
		return
	}
	m.CardsTotal.Inc()
}

// IncPriceRow counts one reconciled price row.
func (m *Metrics) IncPriceRow(suspicious bool) {
	if m == nil {
		return
	}
	label := "false"
	if suspicious {
		label = "true"
	}
	m.PriceRowsTotal.WithLabelValues(label).Inc()
}

// AddStaged adds n rows to the staged counter for an outcome
// (accepted, rejected, unresolved, skipped).
func (m *Metrics) AddStaged(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.StagedRowsTotal.WithLabelValues(outcome).Add(float64(n))
}
