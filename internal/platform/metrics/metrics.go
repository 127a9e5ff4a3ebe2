package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the storefront.
type Metrics struct {
	CatalogRefreshes     prometheus.Counter
	CatalogRefreshErrors prometheus.Counter
	TicketsSubmitted     prometheus.Counter
	ReconciliationsSold  prometheus.Counter
	ReconciliationsClean prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		CatalogRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainstore_catalog_refreshes_total",
			Help: "Total catalog snapshot replacements from upstream",
		}),
		CatalogRefreshErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainstore_catalog_refresh_errors_total",
			Help: "Catalog fetches that failed and kept the last-good snapshot",
		}),
		TicketsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainstore_tickets_submitted_total",
			Help: "Purchase tickets accepted by the backend",
		}),
		ReconciliationsSold: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainstore_reconciliations_sold_total",
			Help: "Purchase attempts where the re-check found sold domains",
		}),
		ReconciliationsClean: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainstore_reconciliations_clean_total",
			Help: "Purchase attempts where every requested domain was still available",
		}),
	}
}

// Increment helpers are nil-safe so services can run without metrics in tests.

func (m *Metrics) IncCatalogRefreshes() {
	if m != nil {
		m.CatalogRefreshes.Inc()
	}
}

func (m *Metrics) IncCatalogRefreshErrors() {
	if m != nil {
		m.CatalogRefreshErrors.Inc()
	}
}

func (m *Metrics) IncTicketsSubmitted() {
	if m != nil {
		m.TicketsSubmitted.Inc()
	}
}

func (m *Metrics) IncReconciliationsSold() {
	if m != nil {
		m.ReconciliationsSold.Inc()
	}
}

func (m *Metrics) IncReconciliationsClean() {
	if m != nil {
		m.ReconciliationsClean.Inc()
	}
}
