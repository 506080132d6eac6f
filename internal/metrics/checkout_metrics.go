package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Checkout records placed orders
type Checkout struct {
	orders     prometheus.Counter
	orderValue prometheus.Histogram
}

// NewCheckout registers the checkout collectors on the default registry
func NewCheckout() *Checkout {
	return NewCheckoutWithRegisterer(prometheus.DefaultRegisterer)
}

// NewCheckoutWithRegisterer registers the checkout collectors on registerer
func NewCheckoutWithRegisterer(registerer prometheus.Registerer) *Checkout {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Checkout{
		orders: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_total",
			Help: "Total number of orders placed.",
		}),
		orderValue: registerHistogram(registerer, prometheus.HistogramOpts{
			Name: "checkout_order_value_cents",
			Help: "Order totals in cents.",
			// $250 .. $8000
			Buckets: prometheus.ExponentialBuckets(25000, 2, 6),
		}),
	}
}

// OrderPlaced records an order and its total in cents
func (m *Checkout) OrderPlaced(totalCents int64) {
	m.orders.Inc()
	m.orderValue.Observe(float64(totalCents))
}
