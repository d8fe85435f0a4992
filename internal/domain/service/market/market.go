// Package market clears aggregate sell offers against the day's demand.
package market

import (
	"sort"

	"craft_market/internal/domain/entity"
)

// Clearing is the result of one day's auction. Offers keeps the input
// collection order with FilledQty populated.
type Clearing struct {
	Offers  []entity.ExecutableOffer
	Summary entity.MarketSummary
}

// Clear fills offers per product in ascending price order, each offer
// filled fully before the next, until demand runs out. Equal prices are
// broken by collection order (participant index order): first come,
// first served, not an even split.
func Clear(offers []entity.ExecutableOffer, demand entity.DayDemand) Clearing {
	cleared := make([]entity.ExecutableOffer, len(offers))
	copy(cleared, offers)

	byProduct := make(map[entity.ProductID][]int)
	for i, offer := range cleared {
		cleared[i].FilledQty = 0
		byProduct[offer.Product] = append(byProduct[offer.Product], i)
	}

	summary := make(entity.MarketSummary, len(byProduct))

	for product, indexes := range byProduct {
		sort.SliceStable(indexes, func(a, b int) bool {
			return cleared[indexes[a]].Price < cleared[indexes[b]].Price
		})

		remaining := demand[product]

		for _, i := range indexes {
			if remaining <= 0 {
				break
			}

			fill := min(cleared[i].Qty, remaining)
			cleared[i].FilledQty = fill
			remaining -= fill
		}

		summary[product] = summarize(cleared, indexes)
	}

	return Clearing{
		Offers:  cleared,
		Summary: summary,
	}
}

func summarize(offers []entity.ExecutableOffer, indexes []int) entity.ProductSummary {
	s := entity.ProductSummary{}

	for _, i := range indexes {
		offer := offers[i]

		s.Fulfilled += offer.FilledQty
		s.Remaining += offer.Qty - offer.FilledQty

		if offer.FilledQty == 0 {
			continue
		}
		if s.LowPrice == 0 || offer.Price < s.LowPrice {
			s.LowPrice = offer.Price
		}
		if offer.Price > s.HighPrice {
			s.HighPrice = offer.Price
		}
	}

	return s
}
