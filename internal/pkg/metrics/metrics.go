// Package metrics defines and registers all custom Prometheus metrics of the
// online shop API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "onlineshop"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts successful registrations.
// Label:
//   - role: "client" or "admin"
var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of registered accounts, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "accepted" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogListDuration measures how long building a product listing takes.
// Label:
//   - order: "product" or "category"
var CatalogListDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_list_duration_seconds",
		Help:      "Duration of product listing queries including sorting.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"order"},
)

// ── Purchase metrics ──────────────────────────────────────────────────────────

// PurchasesTotal counts committed orders.
// Label:
//   - source: "product" (single product purchase) or "basket"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of committed purchases, by source.",
	},
	[]string{"source"},
)

// PurchaseAmountTotal sums the money spent on committed orders.
var PurchaseAmountTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchase_amount_total",
		Help:      "Total amount of money spent on committed purchases.",
	},
)

// PurchasesRejectedTotal counts purchases refused by a business rule.
// Label:
//   - reason: the error code (e.g. "NotEnoughMoney", "NotEnoughProduct")
var PurchasesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_rejected_total",
		Help:      "Total number of purchases rejected by business rules.",
	},
	[]string{"reason"},
)

// ── Journal metrics ───────────────────────────────────────────────────────────

// JournalQueueDepth tracks the number of purchases waiting in each journal worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var JournalQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "journal_queue_depth",
		Help:      "Current number of purchases pending in each journal worker channel.",
	},
	[]string{"worker_id"},
)

// JournalErrorsTotal counts purchases that could not be written to the journal.
var JournalErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_errors_total",
		Help:      "Total number of purchases that failed to reach the journal.",
	},
)
