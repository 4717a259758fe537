// Package metrics defines and registers all custom Prometheus metrics for the
// livestock marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Collectors register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "livestock"

// --- Identity metrics ---

// RegistrationsTotal counts account registrations.
// Labels:
//   - kind: "admin" or "customer"
//   - result: "success" or "conflict"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registrations, by kind and result.",
	},
	[]string{"kind", "result"},
)

// LoginsTotal counts login attempts that reached a terminal decision.
// Labels:
//   - kind: "admin" or "customer"
//   - result: "success" or "denied" (denied covers unknown identity and wrong password alike)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// PasswordResetsTotal counts password reset attempts.
// Label:
//   - result: "success" or "error"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password resets, by result.",
	},
	[]string{"result"},
)

// --- Catalog metrics ---

// ListingSearchesTotal counts listing searches, by dispatch branch.
// Label:
//   - branch: "price" (numeric term) or "text" (type/breed substring)
var ListingSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_searches_total",
		Help:      "Total number of listing searches, by dispatch branch.",
	},
	[]string{"branch"},
)

// --- Audit metrics ---

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// channel was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to full worker channels.",
	},
)
