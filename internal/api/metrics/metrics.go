// Package metrics defines and registers all custom Prometheus metrics for
// the AutoCare Pro API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry via promauto at
// package load; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "autocare"

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsInitializedTotal counts checkout initializations.
// Labels:
//   - method: "paystack" or "paypal"
//   - currency: the charge currency (e.g. "NGN")
var PaymentsInitializedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_initialized_total",
		Help:      "Total number of payment initializations, by method and currency.",
	},
	[]string{"method", "currency"},
)

// PaymentsVerifiedTotal counts verification outcomes.
// Labels:
//   - method: the payment method
//   - result: the resulting local status ("completed", "failed")
var PaymentsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_verified_total",
		Help:      "Total number of payment verifications, by method and resulting status.",
	},
	[]string{"method", "result"},
)

// ProviderErrorsTotal counts upstream gateway failures.
// Label:
//   - method: the payment method whose provider failed
var ProviderErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_errors_total",
		Help:      "Total number of upstream payment provider errors.",
	},
	[]string{"method"},
)

// ── Relay metrics ─────────────────────────────────────────────────────────────

// RelaySessions tracks currently connected relay sessions.
// Label:
//   - channel: "admin" or "user" (per-user channels are collapsed)
var RelaySessions = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "relay_sessions",
		Help:      "Number of currently connected relay sessions, by channel class.",
	},
	[]string{"channel"},
)

// RelayEventsPublished counts events delivered into session buffers.
// Label:
//   - event: the relay event name (e.g. "payment-notification")
var RelayEventsPublished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_events_published_total",
		Help:      "Total number of relay events delivered to session buffers.",
	},
	[]string{"event"},
)

// RelayEventsDropped counts events dropped because a session buffer was full.
// Label:
//   - event: the relay event name
var RelayEventsDropped = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_events_dropped_total",
		Help:      "Total number of relay events dropped due to full session buffers.",
	},
	[]string{"event"},
)

// ── Service request metrics ───────────────────────────────────────────────────

// ServiceRequestsCreatedTotal counts newly opened service requests.
// Label:
//   - service_type: the requested service (e.g. "oil_change")
var ServiceRequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_requests_created_total",
		Help:      "Total number of service requests created, by service type.",
	},
	[]string{"service_type"},
)
