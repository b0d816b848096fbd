// Package metrics defines the Prometheus metrics exposed by the web client.
// It is the single source of truth for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "volunteerhub_client"

// UpstreamRequestsTotal counts API calls to the platform, by status class.
// Label:
//   - status: "2xx", "4xx", "5xx", or "error" for transport failures
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the platform API.",
	},
	[]string{"status"},
)

// TokenRefreshesTotal counts silent token refresh attempts.
// Label:
//   - outcome: "ok" or "failed"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of silent token refresh attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RequestReplaysTotal counts requests replayed after a successful refresh.
var RequestReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_replays_total",
		Help:      "Total number of requests replayed after a token refresh.",
	},
)

// GuardDecisionsTotal counts route guard outcomes per navigation.
// Label:
//   - action: "render", "pending", "redirect_login", "redirect_role_home", "redirect_unauthorized"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by action.",
	},
	[]string{"action"},
)
