// Package round combines the order sanitizer and the market clearer into
// one day transition across all participants.
package round

import (
	"craft_market/internal/domain/entity"
	"craft_market/internal/domain/service/market"
	"craft_market/internal/domain/service/orders"
)

// Input is one day's worth of state and decisions. Inventories, Actions
// and Statuses are indexed by participant.
type Input struct {
	Day         entity.DaySchedule
	Inventories []entity.Inventory
	Actions     []entity.RequestedAction
	Statuses    []entity.ParticipantStatus
}

// Process runs one round: sanitize every participant in index order,
// clear the market once, credit revenue, return unsold units, and emit
// the immutable DayRecord. Disqualified participants contribute an empty
// action but stay in the record with their frozen inventory.
func Process(catalog entity.Catalog, in Input) ([]entity.Inventory, entity.DayRecord) {
	count := len(in.Inventories)

	sanitized := make([]orders.Result, count)
	var allOffers []entity.ExecutableOffer

	// Disqualified participants process the empty action; the record keeps
	// that empty action too, so the audit trail matches what executed.
	actions := make([]entity.RequestedAction, count)

	for i := 0; i < count; i++ {
		actions[i] = in.Actions[i]
		if in.Statuses[i].Disqualified {
			actions[i] = entity.EmptyAction()
		}

		sanitized[i] = orders.Sanitize(catalog, in.Inventories[i], actions[i], in.Day.Prices)

		for j := range sanitized[i].Offers {
			sanitized[i].Offers[j].Owner = i
		}
		allOffers = append(allOffers, sanitized[i].Offers...)
	}

	clearing := market.Clear(allOffers, in.Day.Demand)

	// Settle per participant: cleared offers keep collection order, so
	// walking them distributes fills back by Owner.
	settled := make([][]entity.ExecutableOffer, count)
	sales := make([][]entity.Sale, count)

	newInventories := make([]entity.Inventory, count)
	for i := 0; i < count; i++ {
		newInventories[i] = sanitized[i].Inventory
	}

	for _, offer := range clearing.Offers {
		inv := newInventories[offer.Owner]
		inv.Currency += offer.Price * offer.FilledQty
		// Unsold units are never lost.
		inv.Products[offer.Product] += offer.Qty - offer.FilledQty
		newInventories[offer.Owner] = inv

		settled[offer.Owner] = append(settled[offer.Owner], offer)
		sales[offer.Owner] = append(sales[offer.Owner], entity.Sale{
			Product: offer.Product,
			Offered: offer.Qty,
			Filled:  offer.FilledQty,
			Price:   offer.Price,
			Revenue: offer.Price * offer.FilledQty,
		})
	}

	outcomes := make([]entity.ActionOutcome, count)
	for i := 0; i < count; i++ {
		outcomes[i] = entity.ActionOutcome{
			StartInventory: in.Inventories[i],
			EndInventory:   newInventories[i],
			Requested:      actions[i],
			ExecutedBuys:   sanitized[i].ExecutedBuys,
			ExecutedCrafts: sanitized[i].ExecutedCrafts,
			ExecutedOffers: settled[i],
			Violations:     sanitized[i].Violations,
			Sales:          sales[i],
		}
	}

	record := entity.DayRecord{
		Day:      in.Day.Day,
		Prices:   in.Day.Prices,
		Demand:   in.Day.Demand,
		Outcomes: outcomes,
		Market:   clearing.Summary,
	}

	return newInventories, record
}
