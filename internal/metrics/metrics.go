// Package metrics holds the Prometheus collectors for the HTTP surface and
// billing activity.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the application collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	ReqTotal          *prometheus.CounterVec
	ReqDur            *prometheus.HistogramVec
	InFlight          prometheus.Gauge
	LineItemsAdded    prometheus.Counter
	InvoicesGenerated *prometheus.CounterVec
	CatalogRefreshes  *prometheus.CounterVec
	OpenBills         prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return NewWithRegistry(namespace, reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from g.
func NewWithRegistry(namespace string, reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		LineItemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_line_items_added_total",
			Help:      "Count of line items added to bills.",
		}),
		InvoicesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_generated_total",
			Help:      "Count of invoice generation outcomes.",
		}, []string{"result"}),
		CatalogRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_refreshes_total",
			Help:      "Count of catalogue reloads by outcome.",
		}, []string{"result"}),
		OpenBills: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_bills",
			Help:      "Number of bills currently held in memory.",
		}),
		gatherer: g,
	}

	for _, c := range []prometheus.Collector{
		m.ReqTotal, m.ReqDur, m.InFlight, m.LineItemsAdded,
		m.InvoicesGenerated, m.CatalogRefreshes, m.OpenBills,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
		}
	}
	return m
}

// Handler serves the registered collectors.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.ReqTotal.WithLabelValues(method, route, status).Inc()
	m.ReqDur.WithLabelValues(method, route).Observe(float64(d) / float64(time.Millisecond))
}

// LineItemAdded counts a line item added to a bill.
func (m *Metrics) LineItemAdded() {
	if m == nil {
		return
	}
	m.LineItemsAdded.Inc()
}

// InvoiceGenerated counts an invoice outcome, "ok" or "error".
func (m *Metrics) InvoiceGenerated(result string) {
	if m == nil {
		return
	}
	m.InvoicesGenerated.WithLabelValues(result).Inc()
}

// CatalogRefreshed counts a catalogue reload outcome.
func (m *Metrics) CatalogRefreshed(result string) {
	if m == nil {
		return
	}
	m.CatalogRefreshes.WithLabelValues(result).Inc()
}

// SetOpenBills reports the number of bills held in memory.
func (m *Metrics) SetOpenBills(n int) {
	if m == nil {
		return
	}
	m.OpenBills.Set(float64(n))
}
