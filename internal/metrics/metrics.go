// Package metrics holds the Prometheus collectors of the catalog service.
// Collectors register with the default registry on import; /metrics serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hijab_store"

// RegistrationsTotal counts registration attempts.
// Label result: "created", "invalid", "conflict", "error".
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label result: "success", "invalid", "error".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SearchesTotal counts product searches.
// Label cache: "hit" or "miss".
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of product searches, by cache outcome.",
	},
	[]string{"cache"},
)

// SearchResults observes how many products a search returned.
var SearchResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_results",
		Help:      "Number of products returned per search.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
)

// AdminActionsTotal counts admin mutations.
// Labels action: "delete", "edit"; result: "ok", "not_found", "error".
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of admin user mutations, by action and result.",
	},
	[]string{"action", "result"},
)
