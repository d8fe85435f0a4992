package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"craft_market/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	rq := require.New(t)

	cfg, err := config.Load()
	rq.NoError(err)

	rq.Equal("craft-market", cfg.App.Name)
	rq.Equal(":8080", cfg.HTTP.ListenAddress)

	rq.Equal(60*time.Second, cfg.Run.DecisionTimeout)
	rq.Equal(time.Duration(0), cfg.Run.HumanDecisionTimeout)
	rq.Equal(16, cfg.Run.MaxConcurrentRuns)

	rq.Equal([]int{6, 14}, cfg.Economy.TierBasePrices)
	rq.Equal([]int{2, 4}, cfg.Economy.TierPriceSpreads)
	rq.Equal([]int{8, 4}, cfg.Economy.TierBaseDemands)
	rq.Equal([]int{3, 2}, cfg.Economy.TierDemandSpreads)

	rq.Equal("gpt-4o-mini", cfg.LLM.Model)
	rq.Empty(cfg.Postgres.DSN)
}

func TestLoadFromEnvironment(t *testing.T) {
	rq := require.New(t)

	t.Setenv("HTTP_LISTEN_ADDRESS", ":9999")
	t.Setenv("ECONOMY_TIER_BASE_PRICES", "10,20,40")
	t.Setenv("DECISION_TIMEOUT", "5s")
	t.Setenv("MAX_CONCURRENT_RUNS", "2")

	cfg, err := config.Load()
	rq.NoError(err)

	rq.Equal(":9999", cfg.HTTP.ListenAddress)
	rq.Equal([]int{10, 20, 40}, cfg.Economy.TierBasePrices)
	rq.Equal(5*time.Second, cfg.Run.DecisionTimeout)
	rq.Equal(2, cfg.Run.MaxConcurrentRuns)
}
