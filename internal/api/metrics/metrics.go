// Package metrics defines and registers all custom Prometheus metrics for the
// alumni portal API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Roster import metrics ─────────────────────────────────────────────────────

// RosterImportsTotal counts roster import requests by final result.
// Labels:
//   - role: "student" or "alumni"
//   - result: "completed", "stream_error" or "error"
var RosterImportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_imports_total",
		Help:      "Total number of roster import requests, by role and result.",
	},
	[]string{"role", "result"},
)

// RosterRowsTotal counts reconciled roster rows by terminal disposition.
// Labels:
//   - role: "student" or "alumni"
//   - disposition: "inserted" or "skipped" (upgrades count as inserted,
//     matching the import summary)
var RosterRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_rows_total",
		Help:      "Total number of roster rows reconciled, by disposition.",
	},
	[]string{"role", "disposition"},
)

// RosterImportDuration measures how long one import batch takes end-to-end.
var RosterImportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "roster_import_duration_seconds",
		Help:      "Duration of a roster import from upload receipt to summary.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"role"},
)

// ── Payment event metrics ─────────────────────────────────────────────────────

// PaymentEventsReceivedTotal counts gateway events accepted on the webhook.
// Labels:
//   - status: the reported payment status
//   - source: the gateway that sent the event
var PaymentEventsReceivedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_events_received_total",
		Help:      "Total number of payment gateway events accepted for processing.",
	},
	[]string{"status", "source"},
)

// ── Assistant metrics ─────────────────────────────────────────────────────────

// ChatMessagesTotal counts assistant exchanges by resolved category.
var ChatMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of assistant exchanges, by category.",
	},
	[]string{"category"},
)
