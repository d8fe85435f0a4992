package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/internal/domain/service/economy"
	"craft_market/internal/infrastructure/decision"
	"craft_market/internal/worker"
	"craft_market/pkg/errcodes"
)

func testManager() *worker.Manager {
	return worker.NewManager(worker.ManagerConfig{
		Economy: economy.Params{
			TierBasePrices:    []int{6, 14},
			TierPriceSpreads:  []int{2, 4},
			TierBaseDemands:   []int{8, 4},
			TierDemandSpreads: []int{3, 2},
			DailyPriceJitter:  2,
			DailyDemandJitter: 2,
		},
		DecisionTimeout: 5 * time.Second,
	}, entity.DefaultCatalog())
}

func TestManagerScriptedRun(t *testing.T) {
	rq := require.New(t)

	manager := testManager()

	run, err := manager.StartRun(context.Background(), worker.RunSpec{
		Seed:             "alpha",
		Days:             3,
		StartingCurrency: 100,
		Providers:        []string{decision.KindScripted, decision.KindScripted},
	})
	rq.NoError(err)
	rq.NotEmpty(run.ID)
	rq.Equal(3, run.Schedule.TotalDays())

	got, err := manager.Get(run.ID)
	rq.NoError(err)
	rq.Equal(run.ID, got.ID)

	rq.Eventually(run.Stream.Closed, 5*time.Second, 10*time.Millisecond)

	final, ok := run.Stream.Latest()
	rq.True(ok)
	rq.True(final.Completed)
	rq.Equal(3, final.Day)
}

func TestManagerHumanRun(t *testing.T) {
	rq := require.New(t)

	manager := testManager()

	run, err := manager.StartRun(context.Background(), worker.RunSpec{
		Seed:             "alpha",
		Days:             1,
		StartingCurrency: 50,
		Providers:        []string{decision.KindHuman},
	})
	rq.NoError(err)

	rq.NoError(manager.SubmitDecision(run.ID, 0, []byte(`{"buys": [{"resource": "H01", "qty": 1}]}`)))

	rq.Eventually(run.Stream.Closed, 5*time.Second, 10*time.Millisecond)

	final, ok := run.Stream.Latest()
	rq.True(ok)
	rq.True(final.Completed)
	rq.False(final.Statuses[0].Disqualified)
	rq.Len(final.Records[0].Outcomes[0].ExecutedBuys, 1)
}

func TestManagerStartRunValidation(t *testing.T) {
	rq := require.New(t)

	manager := testManager()

	testCases := []struct {
		name string
		spec worker.RunSpec
	}{
		{
			name: "no participants",
			spec: worker.RunSpec{Seed: "a", Days: 3},
		},
		{
			name: "zero days",
			spec: worker.RunSpec{Seed: "a", Days: 0, Providers: []string{decision.KindScripted}},
		},
		{
			name: "unknown provider kind",
			spec: worker.RunSpec{Seed: "a", Days: 3, Providers: []string{"oracle"}},
		},
		{
			name: "llm without api key",
			spec: worker.RunSpec{Seed: "a", Days: 3, Providers: []string{decision.KindLLM}},
		},
		{
			name: "negative starting currency",
			spec: worker.RunSpec{
				Seed: "a", Days: 3, StartingCurrency: -5,
				Providers: []string{decision.KindScripted},
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(*testing.T) {
			_, err := manager.StartRun(context.Background(), tc.spec)
			rq.Error(err)
		})
	}
}

func TestManagerRunLimitCountsLiveRunsOnly(t *testing.T) {
	rq := require.New(t)

	manager := worker.NewManager(worker.ManagerConfig{
		Economy: economy.Params{
			TierBasePrices:    []int{6, 14},
			TierPriceSpreads:  []int{2, 4},
			TierBaseDemands:   []int{8, 4},
			TierDemandSpreads: []int{3, 2},
			DailyPriceJitter:  2,
			DailyDemandJitter: 2,
		},
		DecisionTimeout:   5 * time.Second,
		MaxConcurrentRuns: 2,
	}, entity.DefaultCatalog())

	spec := worker.RunSpec{
		Seed:             "alpha",
		Days:             1,
		StartingCurrency: 10,
		Providers:        []string{decision.KindHuman},
	}

	first, err := manager.StartRun(context.Background(), spec)
	rq.NoError(err)
	second, err := manager.StartRun(context.Background(), spec)
	rq.NoError(err)

	// Both runs are waiting on a human decision, so the cap is reached.
	_, err = manager.StartRun(context.Background(), spec)
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.InvalidRunConfig, code)

	rq.NoError(manager.SubmitDecision(first.ID, 0, []byte(`{}`)))
	rq.NoError(manager.SubmitDecision(second.ID, 0, []byte(`{}`)))
	rq.Eventually(first.Stream.Closed, 5*time.Second, 10*time.Millisecond)
	rq.Eventually(second.Stream.Closed, 5*time.Second, 10*time.Millisecond)

	// Completed runs stay retrievable but free their slot.
	third, err := manager.StartRun(context.Background(), spec)
	rq.NoError(err)
	rq.NotEmpty(third.ID)

	_, err = manager.Get(first.ID)
	rq.NoError(err)
}

func TestManagerSubmitDecisionErrors(t *testing.T) {
	rq := require.New(t)

	manager := testManager()

	err := manager.SubmitDecision("missing", 0, []byte(`{}`))
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.RunNotFound, code)

	run, err := manager.StartRun(context.Background(), worker.RunSpec{
		Seed:             "alpha",
		Days:             1,
		StartingCurrency: 10,
		Providers:        []string{decision.KindScripted},
	})
	rq.NoError(err)

	err = manager.SubmitDecision(run.ID, 0, []byte(`{}`))
	code, ok = domain.GetCode(err)
	rq.True(ok)
	rq.True(code == errcodes.ParticipantNotHuman || code == errcodes.RunAlreadyCompleted)

	err = manager.SubmitDecision(run.ID, 5, []byte(`{}`))
	code, ok = domain.GetCode(err)
	rq.True(ok)
	rq.True(code == errcodes.InvalidParticipant || code == errcodes.RunAlreadyCompleted)
}
