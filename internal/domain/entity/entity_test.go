package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"craft_market/internal/domain/entity"
)

func TestDefaultCatalogConsistency(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()

	rq.Len(catalog.Resources(), 6)
	rq.Len(catalog.Products(), 3)
	rq.Equal(2, catalog.Tiers())

	for _, product := range catalog.Products() {
		first, ok := catalog.Resource(product.Recipe[0])
		rq.True(ok, "recipe of %s references missing resource", product.ID)
		second, ok := catalog.Resource(product.Recipe[1])
		rq.True(ok, "recipe of %s references missing resource", product.ID)
		rq.NotEqual(first.ID, second.ID)
	}

	_, ok := catalog.Resource("H99")
	rq.False(ok)
	_, ok = catalog.Product("P99")
	rq.False(ok)
}

func TestInventoryCloneIsIndependent(t *testing.T) {
	rq := require.New(t)

	original := entity.NewInventory(100)
	original.Resources["H01"] = 3
	original.Products["P01"] = 1

	clone := original.Clone()
	clone.Currency = 5
	clone.Resources["H01"] = 9
	clone.Products["P02"] = 4

	rq.Equal(100, original.Currency)
	rq.Equal(3, original.Resources["H01"])
	rq.NotContains(original.Products, entity.ProductID("P02"))
}

func TestDecisionUsageAdd(t *testing.T) {
	rq := require.New(t)

	total := entity.DecisionUsage{}
	total = total.Add(entity.DecisionUsage{
		Requests:       1,
		InputTokens:    100,
		OutputTokens:   20,
		CostMicrocents: 400,
		Elapsed:        time.Second,
	})
	total = total.Add(entity.DecisionUsage{
		Requests:       1,
		InputTokens:    50,
		OutputTokens:   10,
		CostMicrocents: 200,
		Elapsed:        2 * time.Second,
	})

	rq.Equal(2, total.Requests)
	rq.EqualValues(150, total.InputTokens)
	rq.EqualValues(30, total.OutputTokens)
	rq.EqualValues(600, total.CostMicrocents)
	rq.Equal(3*time.Second, total.Elapsed)
}

func TestGameStateLastRecord(t *testing.T) {
	rq := require.New(t)

	state := entity.GameState{}
	_, ok := state.LastRecord()
	rq.False(ok)

	state.Records = []entity.DayRecord{{Day: 1}, {Day: 2}}
	record, ok := state.LastRecord()
	rq.True(ok)
	rq.Equal(2, record.Day)
}
