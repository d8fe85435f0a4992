package config

import "time"

// Run holds per-run defaults and limits.
type Run struct {
	// DecisionTimeout bounds every scripted and model decision.
	DecisionTimeout time.Duration `env:"DECISION_TIMEOUT" envDefault:"60s"`
	// HumanDecisionTimeout bounds a human decision wait. Zero waits
	// forever.
	HumanDecisionTimeout time.Duration `env:"HUMAN_DECISION_TIMEOUT" envDefault:"0"`

	MaxConcurrentRuns int `env:"MAX_CONCURRENT_RUNS" envDefault:"16"`
}
