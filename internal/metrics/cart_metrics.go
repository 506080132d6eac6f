package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Cart records cart store activity. It satisfies cart.Recorder.
type Cart struct {
	operations          *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	liveSessions        prometheus.Gauge
}

// NewCart registers the cart collectors on the default registry
func NewCart() *Cart {
	return NewCartWithRegisterer(prometheus.DefaultRegisterer)
}

// NewCartWithRegisterer registers the cart collectors on registerer
func NewCartWithRegisterer(registerer prometheus.Registerer) *Cart {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Cart{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of committed cart mutations grouped by operation.",
		}, []string{"operation"}),
		persistenceFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "cart_persistence_failures_total",
			Help: "Total number of cart load, save and decode failures.",
		}, []string{"operation"}),
		liveSessions: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "cart_live_sessions",
			Help: "Number of carts currently held in memory.",
		}),
	}
}

// CartOperation counts a committed mutation
func (m *Cart) CartOperation(operation string) {
	m.operations.WithLabelValues(operation).Inc()
}

// PersistenceFailure counts a failed load, save or decode
func (m *Cart) PersistenceFailure(operation string) {
	m.persistenceFailures.WithLabelValues(operation).Inc()
}

// LiveSessions sets the number of in-memory carts
func (m *Cart) LiveSessions(count int) {
	m.liveSessions.Set(float64(count))
}
