// Package metrics defines and registers all custom Prometheus metrics for
// the sweet-shop inventory API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// SweetsCreatedTotal counts catalog entries created.
// Label:
//   - category: the sweet's category as submitted (e.g. "Indian")
var SweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweets_created_total",
		Help:      "Total number of sweets added to the catalog, by category.",
	},
	[]string{"category"},
)

// PurchasesTotal counts purchase attempts.
// Label:
//   - result: "success" or "insufficient_stock"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase attempts, by result.",
	},
	[]string{"result"},
)

// RestocksTotal counts successful restocks.
var RestocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restocks_total",
		Help:      "Total number of successful restock operations.",
	},
)

// SearchesTotal counts catalog searches.
// Label:
//   - kind: "text", "numeric" (query parsed as a price), or "empty"
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of catalog searches, by query kind.",
	},
	[]string{"kind"},
)

// UnitsPurchased observes the quantity requested per successful purchase.
var UnitsPurchased = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "units_purchased",
		Help:      "Distribution of units removed from stock per purchase.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	},
)
