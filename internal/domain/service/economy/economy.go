// Package economy generates the per-day price/demand schedule for a run.
// The same seed and params always produce a byte-identical schedule, which
// is what makes replay and golden tests possible.
package economy

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/pkg/errcodes"
)

// Params tunes the generator. Tier slices are indexed by tier-1.
type Params struct {
	Seed string
	Days int

	TierBasePrices   []int
	TierPriceSpreads []int

	TierBaseDemands   []int
	TierDemandSpreads []int

	DailyPriceJitter  int
	DailyDemandJitter int
}

func (p Params) validate(catalog entity.Catalog) error {
	if p.Days < 1 {
		return domain.NewError(errcodes.InvalidRunConfig, "day count must be positive")
	}

	tiers := catalog.Tiers()
	for _, s := range [][]int{p.TierBasePrices, p.TierPriceSpreads, p.TierBaseDemands, p.TierDemandSpreads} {
		if len(s) < tiers {
			return domain.NewError(errcodes.InvalidRunConfig, "tier params do not cover all catalog tiers")
		}
	}

	return nil
}

// Generate builds the schedule. Pure: no clock, no global randomness.
//
// One base value is derived per resource and product by jittering the
// tier's base uniformly within the tier spread; every day then jitters
// independently around that base within the daily spread. Draw order is
// fixed by catalog declaration order, so determinism holds across runs.
func Generate(catalog entity.Catalog, params Params) (entity.EconomySchedule, error) {
	if err := params.validate(catalog); err != nil {
		return entity.EconomySchedule{}, err
	}

	rng := rand.New(rand.NewSource(seedToInt64(params.Seed))) //nolint:gosec // deterministic by design

	resources := catalog.Resources()
	products := catalog.Products()

	basePrices := make([]int, len(resources))
	for i, r := range resources {
		tier := r.Tier - 1
		basePrices[i] = params.TierBasePrices[tier] + jitter(rng, params.TierPriceSpreads[tier])
	}

	baseDemands := make([]int, len(products))
	for i, p := range products {
		tier := p.Tier - 1
		baseDemands[i] = params.TierBaseDemands[tier] + jitter(rng, params.TierDemandSpreads[tier])
	}

	days := make([]entity.DaySchedule, params.Days)
	for d := range days {
		prices := make(entity.DayPrices, len(resources))
		for i, r := range resources {
			prices[r.ID] = clampMin(basePrices[i]+jitter(rng, params.DailyPriceJitter), 1)
		}

		demand := make(entity.DayDemand, len(products))
		for i, p := range products {
			demand[p.ID] = clampMin(baseDemands[i]+jitter(rng, params.DailyDemandJitter), 0)
		}

		days[d] = entity.DaySchedule{
			Day:    d + 1,
			Prices: prices,
			Demand: demand,
		}
	}

	return entity.EconomySchedule{
		Seed: params.Seed,
		Days: days,
	}, nil
}

// jitter draws a uniform integer in [-spread, +spread].
func jitter(rng *rand.Rand, spread int) int {
	if spread <= 0 {
		return 0
	}
	return rng.Intn(2*spread+1) - spread
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}

func seedToInt64(seed string) int64 {
	sum := sha256.Sum256([]byte(seed))
	return int64(binary.BigEndian.Uint64(sum[:8])) //nolint:gosec // intentional wrap
}
