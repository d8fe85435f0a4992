// Package orders clamps a participant's requested action to what their
// private inventory and budget actually allow.
package orders

import (
	"fmt"

	"craft_market/internal/domain/entity"
)

// Result is the sanitized outcome. Shortfalls are reported as violations,
// never as errors: a partially feasible request executes at the maximum
// feasible quantity.
type Result struct {
	Inventory      entity.Inventory
	Offers         []entity.ExecutableOffer
	ExecutedBuys   []entity.BuyOrder
	ExecutedCrafts []entity.CraftOrder
	Violations     []string
}

// Sanitize processes buys, then crafts, then offers, in that fixed order:
// each stage consumes the output of the previous one. The input inventory
// is not mutated; the clamped copy is returned.
func Sanitize(
	catalog entity.Catalog,
	inventory entity.Inventory,
	action entity.RequestedAction,
	prices entity.DayPrices,
) Result {
	inv := inventory.Clone()

	result := Result{}

	for _, buy := range action.Buys {
		if buy.Qty <= 0 {
			continue
		}

		price, ok := prices[buy.Resource]
		if !ok {
			result.Violations = append(result.Violations,
				fmt.Sprintf("buy %s: unknown resource", buy.Resource))
			continue
		}

		// Generated price tables never go below 1; guard anyway so a
		// direct caller cannot divide by zero.
		if price <= 0 {
			result.Violations = append(result.Violations,
				fmt.Sprintf("buy %s: non-positive price %d", buy.Resource, price))
			continue
		}

		affordable := min(buy.Qty, inv.Currency/price)
		if affordable > 0 {
			inv.Currency -= affordable * price
			inv.Resources[buy.Resource] += affordable
			result.ExecutedBuys = append(result.ExecutedBuys, entity.BuyOrder{
				Resource: buy.Resource,
				Qty:      affordable,
			})
		}

		if affordable < buy.Qty {
			result.Violations = append(result.Violations,
				fmt.Sprintf("buy %s: requested %d at price %d, could only afford %d",
					buy.Resource, buy.Qty, price, affordable))
		}
	}

	for _, craft := range action.Crafts {
		if craft.Qty <= 0 {
			continue
		}

		product, ok := catalog.Product(craft.Product)
		if !ok {
			result.Violations = append(result.Violations,
				fmt.Sprintf("craft %s: unknown product", craft.Product))
			continue
		}

		first, second := product.Recipe[0], product.Recipe[1]

		craftable := min(craft.Qty, inv.Resources[first], inv.Resources[second])
		if craftable > 0 {
			inv.Resources[first] -= craftable
			inv.Resources[second] -= craftable
			inv.Products[craft.Product] += craftable
			result.ExecutedCrafts = append(result.ExecutedCrafts, entity.CraftOrder{
				Product: craft.Product,
				Qty:     craftable,
			})
		}

		if craftable < craft.Qty {
			result.Violations = append(result.Violations,
				fmt.Sprintf("craft %s: requested %d, had materials for %d (%s: %d, %s: %d needed each)",
					craft.Product, craft.Qty, craftable,
					first, inv.Resources[first]+craftable, second, inv.Resources[second]+craftable))
		}
	}

	for _, offer := range action.Offers {
		if offer.Qty <= 0 {
			continue
		}

		// Zero or negative prices are rejected at the decision boundary
		// and never reach this stage; guard anyway so a direct caller
		// cannot corrupt the market.
		if offer.Price <= 0 {
			result.Violations = append(result.Violations,
				fmt.Sprintf("offer %s: non-positive price %d", offer.Product, offer.Price))
			continue
		}

		offerable := min(offer.Qty, inv.Products[offer.Product])
		if offerable > 0 {
			// Offered units leave the inventory now; unsold ones come
			// back after market clearing.
			inv.Products[offer.Product] -= offerable
			result.Offers = append(result.Offers, entity.ExecutableOffer{
				Product: offer.Product,
				Price:   offer.Price,
				Qty:     offerable,
			})
		}

		if offerable < offer.Qty {
			result.Violations = append(result.Violations,
				fmt.Sprintf("offer %s: requested %d, only %d in stock",
					offer.Product, offer.Qty, offerable))
		}
	}

	result.Inventory = inv

	return result
}
