// Package application wires configuration, the run manager, the HTTP
// surface, metrics, probes and the optional Postgres archive into one
// process.
package application

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"craft_market/internal/config"
	"craft_market/internal/domain/entity"
	"craft_market/internal/domain/service/economy"
	"craft_market/internal/infrastructure/decision"
	"craft_market/internal/infrastructure/persistence"
	"craft_market/internal/server"
	"craft_market/internal/worker"
	"craft_market/pkg/application/connectors"
	"craft_market/pkg/application/modules"
	"craft_market/pkg/logx"
	"craft_market/pkg/middlewarex"
)

const logFieldMaxLen = 9000

func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	catalog := entity.DefaultCatalog()

	manager := worker.NewManager(worker.ManagerConfig{
		Economy: economy.Params{
			TierBasePrices:    cfg.Economy.TierBasePrices,
			TierPriceSpreads:  cfg.Economy.TierPriceSpreads,
			TierBaseDemands:   cfg.Economy.TierBaseDemands,
			TierDemandSpreads: cfg.Economy.TierDemandSpreads,
			DailyPriceJitter:  cfg.Economy.DailyPriceJitter,
			DailyDemandJitter: cfg.Economy.DailyDemandJitter,
		},
		DecisionTimeout:   cfg.Run.DecisionTimeout,
		HumanTimeout:      cfg.Run.HumanDecisionTimeout,
		MaxConcurrentRuns: cfg.Run.MaxConcurrentRuns,
		LLM: decision.LLMConfig{
			BaseURL:             cfg.LLM.BaseURL,
			APIKey:              cfg.LLM.APIKey,
			Model:               cfg.LLM.Model,
			MaxTokens:           cfg.LLM.MaxTokens,
			Timeout:             cfg.LLM.Timeout,
			PromptCostMicro:     cfg.LLM.PromptCostMicrocents,
			CompletionCostMicro: cfg.LLM.CompletionCostMicrocents,
		},
	}, catalog)

	if cfg.Postgres.DSN != "" {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		defer pg.Close(ctx)

		db := pg.Client(ctx)
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("db.PingContext: %w", err)
		}

		archiver := worker.NewArchiver(persistence.NewRunRepository(db))
		manager.OnRunStarted(archiver.Watch)
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricsListenAddress,
	}.Run(ctx, g)

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           newRouter(manager),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newRouter(manager *worker.Manager) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
		middlewarex.Recovery,
	)

	server.NewServer(server.NewRunServer(manager)).RegisterRoutes(r)

	return r
}
