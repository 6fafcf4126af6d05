// Package metrics defines and registers all custom Prometheus metrics for
// the feed API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register against the default registry at init
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feed"

// UsersRegisteredTotal counts successful registrations across both API
// surfaces.
// Label:
//   - surface: "rest" or "graphql"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of successfully registered users.",
	},
	[]string{"surface"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - surface: "rest" or "graphql"
//   - result:  "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by surface and result.",
	},
	[]string{"surface", "result"},
)

// RealtimeEventsTotal counts post lifecycle events published to the hub.
// Label:
//   - action: "create", "update", or "delete"
var RealtimeEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_events_total",
		Help:      "Total number of post events published to the realtime hub.",
	},
	[]string{"action"},
)

// RealtimeDroppedTotal counts frames dropped because a subscriber's buffer
// was full.
var RealtimeDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_dropped_frames_total",
		Help:      "Total number of frames dropped on saturated subscribers.",
	},
)

// RealtimeSubscribers tracks the number of currently connected realtime
// subscribers.
var RealtimeSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_subscribers",
		Help:      "Current number of connected realtime subscribers.",
	},
)
