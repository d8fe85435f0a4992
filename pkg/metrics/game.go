package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Game-level collectors, registered on the default registry served by
// PrometheusServer.
//
//nolint:gochecknoglobals
var (
	RoundsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "craft_market",
		Name:      "rounds_completed_total",
		Help:      "Number of completed rounds across all runs.",
	})

	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "craft_market",
		Name:      "runs_completed_total",
		Help:      "Number of runs that reached the final day.",
	})

	Disqualifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "craft_market",
		Name:      "disqualifications_total",
		Help:      "Participants disqualified, by cause.",
	}, []string{"cause"})

	Violations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "craft_market",
		Name:      "violations_total",
		Help:      "Feasibility violations recorded by the order sanitizer.",
	})

	DecisionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "craft_market",
		Name:      "decision_duration_seconds",
		Help:      "Wall time of a single participant decision request.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
	})
)
