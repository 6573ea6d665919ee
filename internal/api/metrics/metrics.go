// Package metrics defines and registers all custom Prometheus metrics for the
// benefits API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at import time
// via promauto, so importing any consumer package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "benefits"

// ── Claim metrics ─────────────────────────────────────────────────────────────

// ClaimsCreatedTotal counts claims that were accepted and stored as pending.
// Label:
//   - access: "locked" or "unlocked", the gating level of the claimed deal
var ClaimsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_created_total",
		Help:      "Total number of claims created, by deal access level.",
	},
	[]string{"access"},
)

// ClaimsReviewedTotal counts claims resolved to a terminal status.
// Label:
//   - decision: "approved" or "rejected"
var ClaimsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_reviewed_total",
		Help:      "Total number of claims resolved to a terminal status.",
	},
	[]string{"decision"},
)

// ReviewsErrorsTotal counts claim reviews that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "claim_not_found", "update_failed")
var ReviewsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_errors_total",
		Help:      "Total number of claim reviews that failed processing.",
	},
	[]string{"reason"},
)

// ClaimGuardTotal counts in-flight guard decisions.
// Label:
//   - result: "acquired" (claim proceeds) or "blocked" (overlapping attempt)
var ClaimGuardTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claim_guard_total",
		Help:      "Total number of in-flight guard checks, labelled by result.",
	},
	[]string{"result"},
)

// ReviewQueueDepth tracks the current number of reviews waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReviewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "review_queue_depth",
		Help:      "Current number of reviews pending in each scheduler worker channel.",
	},
	[]string{"worker_id"},
)

// ReviewDuration measures how long a single claim review takes end-to-end.
// Label:
//   - decision: the terminal status applied, or "error" on failure
var ReviewDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "review_duration_seconds",
		Help:      "Duration of claim review from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"decision"},
)
