// Package metrics defines and registers all custom Prometheus metrics for the
// AI-Broker API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "broker"

// ── Intake metrics ────────────────────────────────────────────────────────────

// EmailsProcessedTotal counts inbound emails that completed intake.
// Labels:
//   - intent: the classified email intent (e.g. "LOAD_TENDER")
//   - action: what intake did with it (e.g. "created", "clarification")
var EmailsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_processed_total",
		Help:      "Total number of inbound emails successfully processed.",
	},
	[]string{"intent", "action"},
)

// EmailsErrorsTotal counts emails that failed intake.
// Label:
//   - reason: short description of the failure (e.g. "store_failed", "lookup_failed")
var EmailsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_errors_total",
		Help:      "Total number of inbound emails that failed processing.",
	},
	[]string{"reason"},
)

// EmailsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new email, processed)
var EmailsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// IntakeQueueDepth tracks the current number of emails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var IntakeQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "intake_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EmailProcessingDuration measures how long one email takes to process end-to-end.
// Label:
//   - action: the resulting intake action, or "error" on failure
var EmailProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "email_processing_duration_seconds",
		Help:      "Duration of email processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"action"},
)

// ── Load metrics ──────────────────────────────────────────────────────────────

// LoadsClassifiedTotal counts loads by the freight type assigned at intake.
// Label:
//   - freight_type: "FTL_DRY_VAN", "FTL_REEFER", "FTL_FLATBED", "FTL_HAZMAT",
//     "LTL", "PARTIAL", or "UNKNOWN"
var LoadsClassifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loads_classified_total",
		Help:      "Total number of loads created, by classified freight type.",
	},
	[]string{"freight_type"},
)

// ClarificationsRequestedTotal counts outbound missing-info emails.
var ClarificationsRequestedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clarifications_requested_total",
		Help:      "Total number of clarification emails requested from shippers.",
	},
)

// QuotesGeneratedTotal counts quotes produced by the pricing engine.
// Label:
//   - market: the assessed market condition ("tight", "balanced", "loose")
var QuotesGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_generated_total",
		Help:      "Total number of quotes generated, by market condition.",
	},
	[]string{"market"},
)
