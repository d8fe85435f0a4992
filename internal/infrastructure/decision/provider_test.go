package decision_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/internal/infrastructure/decision"
	"craft_market/pkg/errcodes"
)

func TestScriptedProducesValidDecision(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()
	decider := decision.NewDecider(decision.NewScripted(catalog), catalog)

	inv := entity.NewInventory(100)

	action, usage, err := decider.Decide(context.Background(), decision.Request{
		Day:       1,
		TotalDays: 10,
		Inventory: inv,
		Prices:    entity.DayPrices{"H01": 5, "H02": 5, "H03": 7, "H04": 12, "H05": 15, "H06": 15},
	})
	rq.NoError(err)
	rq.Equal(1, usage.Requests)

	// Cheapest recipe is P01 (H01+H02 = 10): 10 pairs on 100 currency.
	rq.Equal([]entity.BuyOrder{
		{Resource: "H01", Qty: 10},
		{Resource: "H02", Qty: 10},
	}, action.Buys)
	rq.Equal([]entity.CraftOrder{{Product: "P01", Qty: 10}}, action.Crafts)

	rq.Len(action.Offers, 1)
	rq.Equal(entity.ProductID("P01"), action.Offers[0].Product)
	rq.Equal(15, action.Offers[0].Price)
	rq.Equal(10, action.Offers[0].Qty)
}

func TestScriptedBrokeParticipant(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()
	decider := decision.NewDecider(decision.NewScripted(catalog), catalog)

	action, _, err := decider.Decide(context.Background(), decision.Request{
		Inventory: entity.NewInventory(0),
		Prices:    entity.DayPrices{"H01": 5, "H02": 5},
	})
	rq.NoError(err)
	rq.True(action.IsEmpty())
}

func TestHumanMailboxRoundTrip(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()
	mailbox := decision.NewMailbox()
	decider := decision.NewDecider(decision.NewHuman(mailbox), catalog)

	rq.NoError(mailbox.Submit([]byte(`{"buys": [{"resource": "H01", "qty": 2}]}`)))

	action, _, err := decider.Decide(context.Background(), decision.Request{})
	rq.NoError(err)
	rq.Equal([]entity.BuyOrder{{Resource: "H01", Qty: 2}}, action.Buys)
}

func TestHumanMailboxRejectsSecondPending(t *testing.T) {
	rq := require.New(t)

	mailbox := decision.NewMailbox()

	rq.NoError(mailbox.Submit([]byte(`{}`)))

	err := mailbox.Submit([]byte(`{}`))
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.DecisionNotAwaited, code)
}

func TestHumanHonorsContext(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()
	decider := decision.NewDecider(decision.NewHuman(decision.NewMailbox()), catalog)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := decider.Decide(ctx, decision.Request{})
	rq.ErrorIs(err, context.Canceled)
}

type slowProvider struct{}

func (slowProvider) Kind() string { return "slow" }

func (slowProvider) Decide(ctx context.Context, _ decision.Request) (decision.Response, error) {
	select {
	case <-time.After(time.Minute):
		return decision.Response{Raw: []byte(`{}`)}, nil
	case <-ctx.Done():
		return decision.Response{}, ctx.Err()
	}
}

func TestWithTimeout(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()
	decider := decision.WithTimeout(decision.NewDecider(slowProvider{}, catalog), 20*time.Millisecond)

	start := time.Now()
	_, usage, err := decider.Decide(context.Background(), decision.Request{})

	rq.ErrorIs(err, context.DeadlineExceeded)
	rq.Less(time.Since(start), 10*time.Second)
	rq.Equal(1, usage.Requests)
}

func TestWithoutTimeoutPassthrough(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()
	inner := decision.NewDecider(decision.NewScripted(catalog), catalog)

	rq.Equal(inner, decision.WithTimeout(inner, 0))
}

type failingProvider struct{}

func (failingProvider) Kind() string { return "failing" }

func (failingProvider) Decide(context.Context, decision.Request) (decision.Response, error) {
	return decision.Response{}, errors.New("backend unreachable")
}

func TestBoundaryWrapsProviderError(t *testing.T) {
	rq := require.New(t)

	decider := decision.NewDecider(failingProvider{}, entity.DefaultCatalog())

	_, usage, err := decider.Decide(context.Background(), decision.Request{})
	rq.Error(err)
	rq.Contains(err.Error(), "failing provider")
	rq.Equal(1, usage.Requests)
}
