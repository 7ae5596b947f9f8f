// Package metrics defines and registers all custom Prometheus metrics for the
// clinic console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreActionsTotal counts actions reduced by any store.
// Label:
//   - type: the action type (e.g. "[Auth] Login")
var StoreActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_actions_total",
		Help:      "Total number of actions dispatched to a store.",
	},
	[]string{"type"},
)

// EffectErrorsTotal counts effects that returned an error.
// Label:
//   - effect: the effect name (e.g. "auth.resolveClinic")
var EffectErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "effect_errors_total",
		Help:      "Total number of effects that failed.",
	},
	[]string{"effect"},
)

// EffectQueueDepth tracks the number of effects waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EffectQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "effect_queue_depth",
		Help:      "Current number of effects pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts requests sent to the REST backend.
// Labels:
//   - method: HTTP method
//   - status: response status code, or "error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the backend.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures backend round-trip latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDenialsTotal counts navigations refused by a route guard.
// Labels:
//   - guard: guard name (e.g. "auth", "audit_access")
//   - redirect: the redirect target ("/login" or "/unauthorized")
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of navigations denied by route guards.",
	},
	[]string{"guard", "redirect"},
)
