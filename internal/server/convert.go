package server

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/internal/worker"
	"craft_market/pkg/errcodes"
	"craft_market/pkg/failure"
	"craft_market/pkg/lox"
	"craft_market/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func newRESTRun(run *worker.Run) rest.Run {
	return rest.Run{
		ID:           run.ID,
		Seed:         run.Spec.Seed,
		Days:         run.Spec.Days,
		Participants: run.Spec.Providers,
		Completed:    run.Stream.Closed(),
	}
}

func newRESTGameState(state entity.GameState) rest.GameState {
	return rest.GameState{
		RunID:       state.RunID,
		Day:         state.Day,
		TotalDays:   state.TotalDays,
		Completed:   state.Completed,
		Inventories: lox.Map(state.Inventories, newRESTInventory),
		Statuses:    lox.Map(state.Statuses, newRESTStatus),
		Usage:       lox.Map(state.Usage, newRESTUsage),
	}
}

func newRESTInventory(inv entity.Inventory) rest.Inventory {
	return rest.Inventory{
		Currency:  inv.Currency,
		Resources: stringKeys(inv.Resources),
		Products:  stringKeys(inv.Products),
	}
}

func newRESTStatus(status entity.ParticipantStatus) rest.ParticipantStatus {
	return rest.ParticipantStatus{
		Index:        status.Index,
		Disqualified: status.Disqualified,
		Reason:       status.Reason,
	}
}

func newRESTUsage(usage entity.DecisionUsage) rest.DecisionUsage {
	return rest.DecisionUsage{
		Requests:       usage.Requests,
		InputTokens:    usage.InputTokens,
		OutputTokens:   usage.OutputTokens,
		CostMicrocents: usage.CostMicrocents,
		ElapsedMs:      usage.Elapsed.Milliseconds(),
	}
}

func newRESTSchedule(schedule entity.EconomySchedule) rest.Schedule {
	return rest.Schedule{
		Seed: schedule.Seed,
		Days: lox.Map(schedule.Days, func(day entity.DaySchedule) rest.ScheduleDay {
			return rest.ScheduleDay{
				Day:    day.Day,
				Prices: stringKeys(day.Prices),
				Demand: stringKeys(day.Demand),
			}
		}),
	}
}

func newRESTDayRecord(record entity.DayRecord) rest.DayRecord {
	market := make(map[string]rest.ProductSummary, len(record.Market))
	for id, summary := range record.Market {
		market[string(id)] = rest.ProductSummary{
			Fulfilled: summary.Fulfilled,
			Remaining: summary.Remaining,
			LowPrice:  summary.LowPrice,
			HighPrice: summary.HighPrice,
		}
	}

	return rest.DayRecord{
		Day:      record.Day,
		Prices:   stringKeys(record.Prices),
		Demand:   stringKeys(record.Demand),
		Outcomes: lox.Map(record.Outcomes, newRESTOutcome),
		Market:   market,
	}
}

func newRESTOutcome(outcome entity.ActionOutcome) rest.ActionOutcome {
	return rest.ActionOutcome{
		StartInventory: newRESTInventory(outcome.StartInventory),
		EndInventory:   newRESTInventory(outcome.EndInventory),
		Requested:      newRESTDecision(outcome.Requested),
		ExecutedBuys:   lox.Map(outcome.ExecutedBuys, newRESTBuy),
		ExecutedCrafts: lox.Map(outcome.ExecutedCrafts, newRESTCraft),
		ExecutedOffers: lox.Map(outcome.ExecutedOffers, newRESTOffer),
		Violations:     outcome.Violations,
		Sales:          lox.Map(outcome.Sales, newRESTSale),
	}
}

func newRESTDecision(action entity.RequestedAction) rest.Decision {
	return rest.Decision{
		Buys:   lox.Map(action.Buys, newRESTBuy),
		Crafts: lox.Map(action.Crafts, newRESTCraft),
		Offers: lox.Map(action.Offers, func(offer entity.SellOffer) rest.DecisionOffer {
			return rest.DecisionOffer{
				Product: string(offer.Product),
				Price:   offer.Price,
				Qty:     offer.Qty,
			}
		}),
	}
}

func newRESTBuy(buy entity.BuyOrder) rest.Buy {
	return rest.Buy{Resource: string(buy.Resource), Qty: buy.Qty}
}

func newRESTCraft(craft entity.CraftOrder) rest.Craft {
	return rest.Craft{Product: string(craft.Product), Qty: craft.Qty}
}

func newRESTOffer(offer entity.ExecutableOffer) rest.Offer {
	return rest.Offer{
		Product:   string(offer.Product),
		Price:     offer.Price,
		Qty:       offer.Qty,
		FilledQty: offer.FilledQty,
	}
}

func newRESTSale(sale entity.Sale) rest.Sale {
	return rest.Sale{
		Product: string(sale.Product),
		Offered: sale.Offered,
		Filled:  sale.Filled,
		Price:   sale.Price,
		Revenue: sale.Revenue,
	}
}

func stringKeys[K ~string](m map[K]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

// httpError translates domain errors into reply-mappable failures so the
// response carries the right status and stable code.
func httpError(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return err
	}

	opts := []failure.Option{
		failure.WithCode(appErr.Code),
		failure.WithDescription(appErr.Message),
	}

	switch appErr.Code {
	case errcodes.RunNotFound, errcodes.DayRecordNotFound, errcodes.NotFound:
		return failure.NewNotFoundError(err.Error(), opts...)
	case errcodes.ValidationError, errcodes.InvalidRunConfig, errcodes.InvalidRunID, errcodes.InvalidParticipant,
		errcodes.InvalidDecision, errcodes.UnknownProviderKind,
		errcodes.UnknownResource, errcodes.UnknownProduct, errcodes.ParticipantNotHuman:
		return failure.NewInvalidArgumentError(err.Error(), opts...)
	case errcodes.DecisionNotAwaited, errcodes.RunAlreadyCompleted:
		return failure.NewConflictError(err.Error(), opts...)
	default:
		return failure.NewInternalError(err.Error(), opts...)
	}
}

func errNoSnapshot(runID string) error {
	return domain.NewError(errcodes.NotFound, fmt.Sprintf("run %s has no snapshot yet", runID))
}

func errInvalidDay(raw string) error {
	return domain.NewError(errcodes.ValidationError, fmt.Sprintf("invalid day %q", raw))
}

func errDayNotRecorded(runID string, day int) error {
	return domain.NewError(errcodes.DayRecordNotFound,
		fmt.Sprintf("day %d of run %s is not recorded yet", day, runID))
}

func errInvalidParticipant(raw string) error {
	return domain.NewError(errcodes.InvalidParticipant, fmt.Sprintf("invalid participant index %q", raw))
}
