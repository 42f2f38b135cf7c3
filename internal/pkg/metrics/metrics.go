// Package metrics holds the Prometheus instruments shared by both services.
// Every service mux serves them on /metrics via the bootstrap router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersTotal counts orders by the terminal status they reached.
	OrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_total",
		Help: "Orders processed, labelled by terminal status.",
	}, []string{"status"})

	// StockDecrements counts commit-decrement attempts at the ledger.
	StockDecrements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_stock_decrements_total",
		Help: "Stock decrement attempts, labelled by outcome.",
	}, []string{"outcome"})

	// PublishFailures counts domain events the broker did not accept.
	// Publishing is best effort; this counter is the only trace of a loss.
	PublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_event_publish_failures_total",
		Help: "Domain event publishes rejected or failed, labelled by topic.",
	}, []string{"topic"})
)
