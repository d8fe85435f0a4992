package persistence_test

import (
	"context"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/internal/infrastructure/persistence"
	"craft_market/pkg/dbtest"
	"craft_market/pkg/errcodes"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/0001_runs.sql"))

	return db
}

func TestRunRepository(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	repo := persistence.NewRunRepository(testDB(t))

	rq.NoError(repo.SaveRun(ctx, "run-it-1", "alpha", 3, 2))
	// Idempotent.
	rq.NoError(repo.SaveRun(ctx, "run-it-1", "alpha", 3, 2))

	run, err := repo.GetRun(ctx, "run-it-1")
	rq.NoError(err)
	rq.Equal("alpha", run.Seed)
	rq.Equal(3, run.Days)
	rq.False(run.Completed)
	rq.Nil(run.CompletedAt)

	record := entity.DayRecord{
		Day:    1,
		Prices: entity.DayPrices{"H01": 5},
		Demand: entity.DayDemand{"P01": 2},
		Outcomes: []entity.ActionOutcome{{
			StartInventory: entity.NewInventory(100),
			EndInventory:   entity.NewInventory(70),
			Violations:     []string{"offer P01: requested 3, only 2 in stock"},
		}},
		Market: entity.MarketSummary{"P01": {Fulfilled: 1, Remaining: 1, LowPrice: 10, HighPrice: 10}},
	}

	rq.NoError(repo.SaveDayRecord(ctx, "run-it-1", 1, record))
	// Records are append-only; a duplicate day is dropped silently.
	rq.NoError(repo.SaveDayRecord(ctx, "run-it-1", 1, entity.DayRecord{Day: 1}))

	got, err := repo.GetDayRecord(ctx, "run-it-1", 1)
	rq.NoError(err)
	rq.Equal(record.Prices, got.Prices)
	rq.Equal(record.Market, got.Market)
	rq.Equal(record.Outcomes[0].Violations, got.Outcomes[0].Violations)

	records, err := repo.ListDayRecords(ctx, "run-it-1")
	rq.NoError(err)
	rq.Len(records, 1)

	rq.NoError(repo.CompleteRun(ctx, "run-it-1"))

	run, err = repo.GetRun(ctx, "run-it-1")
	rq.NoError(err)
	rq.True(run.Completed)
	rq.NotNil(run.CompletedAt)
}

func TestRunRepositoryNotFound(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	repo := persistence.NewRunRepository(testDB(t))

	_, err := repo.GetRun(ctx, "missing")
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.RunNotFound, code)

	_, err = repo.GetDayRecord(ctx, "missing", 1)
	code, ok = domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.DayRecordNotFound, code)

	err = repo.CompleteRun(ctx, "missing")
	code, ok = domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.RunNotFound, code)
}
