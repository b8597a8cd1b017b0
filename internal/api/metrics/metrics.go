// Package metrics defines and registers all custom Prometheus metrics for the
// client payments API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payments"

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientsCreatedTotal counts newly created clients.
// Label:
//   - source: "api" (single create) or "import" (bulk import)
var ClientsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of clients created, by source.",
	},
	[]string{"source"},
)

// ClientsDeletedTotal counts deleted clients (each delete cascades to the
// client's payment records).
var ClientsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_deleted_total",
		Help:      "Total number of clients deleted.",
	},
)

// QueryDuration measures how long one client filter query takes end-to-end.
var QueryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "client_query_duration_seconds",
		Help:      "Duration of client filter queries.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// TogglesTotal counts payment state toggles.
// Label:
//   - paid: "true" or "false", the state that was applied
var TogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_toggles_total",
		Help:      "Total number of payment state toggles, by applied state.",
	},
	[]string{"paid"},
)

// ── Import / export metrics ───────────────────────────────────────────────────

// ImportRowsTotal counts bulk import rows by outcome.
// Label:
//   - result: "imported" or "rejected"
var ImportRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of bulk import rows processed, by outcome.",
	},
	[]string{"result"},
)

// ExportsTotal counts CSV ledger exports.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of CSV exports served.",
	},
)
