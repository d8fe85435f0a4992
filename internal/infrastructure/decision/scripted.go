package decision

import (
	"context"
	"fmt"

	"craft_market/internal/domain/entity"
)

// Scripted is a deterministic heuristic bot: pick the product whose
// ingredients are cheapest today, buy as many ingredient pairs as the
// budget allows, craft them, and offer the whole stock at a fixed markup.
// Used for offline runs and as a predictable opponent.
type Scripted struct {
	catalog entity.Catalog

	// Markup numerator/denominator over ingredient cost, e.g. 3/2.
	markupNum int
	markupDen int
}

func NewScripted(catalog entity.Catalog) *Scripted {
	return &Scripted{
		catalog:   catalog,
		markupNum: 3,
		markupDen: 2,
	}
}

func (s *Scripted) Kind() string { return KindScripted }

func (s *Scripted) Decide(_ context.Context, req Request) (Response, error) {
	product, cost, ok := s.cheapestProduct(req.Prices)
	if !ok || cost <= 0 {
		return Response{Raw: []byte(`{}`)}, nil
	}

	pairs := req.Inventory.Currency / cost

	action := entity.RequestedAction{}

	if pairs > 0 {
		action.Buys = []entity.BuyOrder{
			{Resource: product.Recipe[0], Qty: pairs},
			{Resource: product.Recipe[1], Qty: pairs},
		}
		action.Crafts = []entity.CraftOrder{
			{Product: product.ID, Qty: pairs},
		}
	}

	stock := req.Inventory.Products[product.ID] + pairs
	if stock > 0 {
		price := (cost*s.markupNum + s.markupDen - 1) / s.markupDen
		if price < 1 {
			price = 1
		}
		action.Offers = []entity.SellOffer{
			{Product: product.ID, Price: price, Qty: stock},
		}
	}

	raw, err := json.Marshal(action)
	if err != nil {
		return Response{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return Response{Raw: raw}, nil
}

func (s *Scripted) cheapestProduct(prices entity.DayPrices) (entity.Product, int, bool) {
	var (
		best     entity.Product
		bestCost int
		found    bool
	)

	for _, p := range s.catalog.Products() {
		first, okFirst := prices[p.Recipe[0]]
		second, okSecond := prices[p.Recipe[1]]
		if !okFirst || !okSecond {
			continue
		}

		cost := first + second
		if !found || cost < bestCost {
			best = p
			bestCost = cost
			found = true
		}
	}

	return best, bestCost, found
}
