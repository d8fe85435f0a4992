// Offline simulation: runs scripted bots against a seeded economy and
// prints the day-by-day outcome.
//
//	go run cmd/simulate/main.go -seed demo -days 10 -participants 3
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"craft_market/internal/domain/entity"
	"craft_market/internal/domain/service/economy"
	"craft_market/internal/domain/service/stream"
	"craft_market/internal/infrastructure/decision"
	"craft_market/internal/worker"
	"craft_market/pkg/logx"
)

func main() {
	seed := flag.String("seed", "demo", "economy seed")
	days := flag.Int("days", 10, "run length in days")
	participants := flag.Int("participants", 3, "number of scripted participants")
	currency := flag.Int("currency", 100, "starting currency")
	flag.Parse()

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(log)

	if err := run(context.Background(), *seed, *days, *participants, *currency); err != nil {
		log.Error("simulation failed", logx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, seed string, days, participants, currency int) error {
	catalog := entity.DefaultCatalog()

	schedule, err := economy.Generate(catalog, economy.Params{
		Seed:              seed,
		Days:              days,
		TierBasePrices:    []int{6, 14},
		TierPriceSpreads:  []int{2, 4},
		TierBaseDemands:   []int{8, 4},
		TierDemandSpreads: []int{3, 2},
		DailyPriceJitter:  2,
		DailyDemandJitter: 2,
	})
	if err != nil {
		return fmt.Errorf("economy.Generate: %w", err)
	}

	deciders := make([]decision.Decider, participants)
	kinds := make([]string, participants)
	for i := range deciders {
		deciders[i] = decision.NewDecider(decision.NewScripted(catalog), catalog)
		kinds[i] = decision.KindScripted
	}

	st := stream.New(days + 1)

	orchestrator, err := worker.NewOrchestrator("simulate", catalog, schedule, deciders, kinds, currency, st)
	if err != nil {
		return err
	}

	states, cancel := st.Subscribe()
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- orchestrator.Run(ctx)
	}()

	for state := range states {
		if record, ok := state.LastRecord(); ok {
			printDay(record)
		}
	}

	if err := <-done; err != nil {
		return err
	}

	final, _ := st.Latest()
	for i, inv := range final.Inventories {
		fmt.Printf("participant %d: currency %d\n", i, inv.Currency)
	}

	return nil
}

func printDay(record entity.DayRecord) {
	fmt.Printf("day %d:", record.Day)
	for _, product := range []entity.ProductID{"P01", "P02", "P03"} {
		summary := record.Market[product]
		fmt.Printf("  %s sold %d/%d", product, summary.Fulfilled, summary.Fulfilled+summary.Remaining)
	}
	fmt.Println()
}
