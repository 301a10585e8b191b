package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reschedule outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeInFlight = "rejected_in_flight"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "persistence_failed"
)

var (
	// ─── Scheduler ───────────────────────────────────────────────────────────────

	SchedulesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "loadboard",
		Subsystem: "scheduler",
		Name:      "schedules_computed_total",
		Help:      "Total full scheduling passes.",
	})

	ScheduleDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "loadboard",
		Subsystem: "scheduler",
		Name:      "compute_duration_seconds",
		Help:      "Time to load tasks and compute one schedule.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	BacklogTasks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loadboard",
		Subsystem: "scheduler",
		Name:      "backlog_tasks_total",
		Help:      "Backlog entries produced, labelled by reason.",
	}, []string{"reason"})

	PlacementFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "loadboard",
		Subsystem: "scheduler",
		Name:      "placement_failures_total",
		Help:      "Tasks that ran out of day advances with hours left.",
	})

	// ─── Reschedule ──────────────────────────────────────────────────────────────

	Reschedules = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loadboard",
		Subsystem: "reschedule",
		Name:      "requests_total",
		Help:      "Reschedule requests, labelled by outcome.",
	}, []string{"outcome"})

	ReschedulesInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "loadboard",
		Subsystem: "reschedule",
		Name:      "inflight",
		Help:      "Reschedules currently holding an assignee lock.",
	})

	// ─── HTTP ────────────────────────────────────────────────────────────────────

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loadboard",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests, labelled by route pattern and status code.",
	}, []string{"route", "code"})
)
