// Package metrics defines all custom Prometheus metrics for the blog
// platform. It is the single source of truth for metric names, labels and
// help strings; counters register themselves with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// RegistrationsTotal counts completed email registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the authentication gate.
// The cause is deliberately not a label; the gate is opaque end to end.
var AuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected as not authenticated.",
	},
)

// MediaUploadsTotal counts hosted media uploads.
// Label:
//   - kind: "profile_pic", "background", "staged"
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of assets uploaded to the media service.",
	},
	[]string{"kind"},
)

// MediaCleanupTotal counts best-effort cleanup outcomes.
// Label:
//   - result: "ok", "error" or "dropped" (queue full)
var MediaCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_cleanup_total",
		Help:      "Total number of deferred media destroy attempts.",
	},
	[]string{"result"},
)

// EventsPublishedTotal counts broker publishes by topic.
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of events published to the broker.",
	},
	[]string{"topic"},
)
