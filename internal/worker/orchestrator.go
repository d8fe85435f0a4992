// Package worker drives a run day by day: it fans decision requests out
// to every live participant, joins the results, applies the round
// transition and publishes the snapshot stream.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/internal/domain/service/round"
	"craft_market/internal/domain/service/stream"
	"craft_market/internal/infrastructure/decision"
	"craft_market/pkg/contextx"
	"craft_market/pkg/errcodes"
	"craft_market/pkg/logx"
	"craft_market/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault

// Orchestrator owns one run from the first decision to the final
// snapshot. Rounds are strictly sequential; only the decision requests
// inside a round run concurrently.
type Orchestrator struct {
	runID            string
	catalog          entity.Catalog
	schedule         entity.EconomySchedule
	deciders         []decision.Decider
	kinds            []string
	startingCurrency int
	stream           *stream.Stream
}

func NewOrchestrator(
	runID string,
	catalog entity.Catalog,
	schedule entity.EconomySchedule,
	deciders []decision.Decider,
	kinds []string,
	startingCurrency int,
	st *stream.Stream,
) (*Orchestrator, error) {
	if runID == "" {
		return nil, domain.NewError(errcodes.InvalidRunConfig, "run id is empty")
	}
	if schedule.TotalDays() < 1 {
		return nil, domain.NewError(errcodes.InvalidRunConfig, "schedule has no days")
	}
	if len(deciders) == 0 {
		return nil, domain.NewError(errcodes.InvalidRunConfig, "no participants")
	}
	if len(kinds) != len(deciders) {
		return nil, domain.NewError(errcodes.InvalidRunConfig, "provider kinds do not match participants")
	}
	if startingCurrency < 0 {
		return nil, domain.NewError(errcodes.InvalidRunConfig, "negative starting currency")
	}

	return &Orchestrator{
		runID:            runID,
		catalog:          catalog,
		schedule:         schedule,
		deciders:         deciders,
		kinds:            kinds,
		startingCurrency: startingCurrency,
		stream:           st,
	}, nil
}

// decisionResult is a fan-in value: a failed decision is data, never a
// run failure.
type decisionResult struct {
	action entity.RequestedAction
	usage  entity.DecisionUsage
	err    error
}

// Run executes every round and closes the stream. It returns an error
// only for publishing faults; participant failures degrade to
// disqualification and the run carries on.
func (o *Orchestrator) Run(ctx context.Context) error {
	defer o.stream.Close()

	count := len(o.deciders)
	totalDays := o.schedule.TotalDays()

	inventories := make([]entity.Inventory, count)
	statuses := make([]entity.ParticipantStatus, count)
	usage := make([]entity.DecisionUsage, count)
	for i := 0; i < count; i++ {
		inventories[i] = entity.NewInventory(o.startingCurrency)
		statuses[i] = entity.ParticipantStatus{Index: i}
	}

	var records []entity.DayRecord

	if err := o.publish(0, totalDays, false, inventories, records, statuses, usage); err != nil {
		return err
	}

	logger(ctx).Info(
		"run started",
		slog.String(logx.FieldRunID, o.runID),
		slog.String(logx.FieldSeed, o.schedule.Seed),
		slog.Int("days", totalDays),
	)

	for day := 1; day <= totalDays; day++ {
		daySchedule, ok := o.schedule.Day(day)
		if !ok {
			return fmt.Errorf("schedule.Day(%d): missing day", day)
		}

		actions := o.collectDecisions(ctx, day, inventories, records, statuses, usage)

		var record entity.DayRecord
		inventories, record = round.Process(o.catalog, round.Input{
			Day:         daySchedule,
			Inventories: inventories,
			Actions:     actions,
			Statuses:    statuses,
		})
		records = append(records, record)

		for _, outcome := range record.Outcomes {
			metrics.Violations.Add(float64(len(outcome.Violations)))
		}
		metrics.RoundsCompleted.Inc()

		completed := day == totalDays
		if err := o.publish(day, totalDays, completed, inventories, records, statuses, usage); err != nil {
			return err
		}
	}

	metrics.RunsCompleted.Inc()

	logger(ctx).Info(
		"run completed",
		slog.String(logx.FieldRunID, o.runID),
	)

	return nil
}

// collectDecisions fans one request out per live participant and joins
// the whole set. A failed or invalid decision disqualifies its
// participant and falls back to the empty action.
func (o *Orchestrator) collectDecisions(
	ctx context.Context,
	day int,
	inventories []entity.Inventory,
	records []entity.DayRecord,
	statuses []entity.ParticipantStatus,
	usage []entity.DecisionUsage,
) []entity.RequestedAction {
	count := len(o.deciders)

	daySchedule, _ := o.schedule.Day(day)

	results := make([]decisionResult, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		if statuses[i].Disqualified {
			results[i] = decisionResult{action: entity.EmptyAction()}
			continue
		}

		req := o.buildRequest(day, i, count, inventories[i], daySchedule, records)

		wg.Add(1)
		go func(i int, req decision.Request) {
			defer wg.Done()

			action, spent, err := o.deciders[i].Decide(ctx, req)
			results[i] = decisionResult{action: action, usage: spent, err: err}
		}(i, req)
	}
	wg.Wait()

	actions := make([]entity.RequestedAction, count)
	for i := 0; i < count; i++ {
		usage[i] = usage[i].Add(results[i].usage)
		if results[i].usage.Requests > 0 {
			metrics.DecisionDuration.Observe(results[i].usage.Elapsed.Seconds())
		}

		if results[i].err != nil {
			reason := results[i].err.Error()
			statuses[i] = entity.ParticipantStatus{
				Index:        i,
				Disqualified: true,
				Reason:       reason,
			}
			metrics.Disqualifications.WithLabelValues(disqualifyCause(results[i].err)).Inc()

			logger(ctx).Warn(
				"participant disqualified",
				slog.String(logx.FieldRunID, o.runID),
				slog.Int(logx.FieldDay, day),
				slog.Int(logx.FieldParticipant, i),
				slog.String(logx.FieldProvider, o.kinds[i]),
				slog.String(logx.FieldReason, reason),
			)

			actions[i] = entity.EmptyAction()
			continue
		}

		actions[i] = results[i].action
	}

	return actions
}

// buildRequest assembles everything one participant is shown: private
// inventory, today's prices, the demand history of completed days, and
// their own prior-day violations and fills.
func (o *Orchestrator) buildRequest(
	day, index, count int,
	inventory entity.Inventory,
	daySchedule entity.DaySchedule,
	records []entity.DayRecord,
) decision.Request {
	history := make([]entity.DayDemand, 0, len(records))
	for _, rec := range records {
		history = append(history, rec.Demand)
	}

	var priorViolations []string
	var priorSales []entity.Sale
	if len(records) > 0 {
		last := records[len(records)-1].Outcomes[index]
		priorViolations = last.Violations
		priorSales = last.Sales
	}

	return decision.Request{
		RunID:            o.runID,
		Day:              day,
		TotalDays:        o.schedule.TotalDays(),
		ParticipantCount: count,
		Index:            index,
		Inventory:        inventory,
		Prices:           daySchedule.Prices,
		DemandHistory:    history,
		PriorViolations:  priorViolations,
		PriorSales:       priorSales,
	}
}

func (o *Orchestrator) publish(
	day, totalDays int,
	completed bool,
	inventories []entity.Inventory,
	records []entity.DayRecord,
	statuses []entity.ParticipantStatus,
	usage []entity.DecisionUsage,
) error {
	state := entity.GameState{
		RunID:       o.runID,
		Day:         day,
		TotalDays:   totalDays,
		Completed:   completed,
		Inventories: entity.CloneInventories(inventories),
		Records:     append([]entity.DayRecord(nil), records...),
		Statuses:    append([]entity.ParticipantStatus(nil), statuses...),
		Usage:       append([]entity.DecisionUsage(nil), usage...),
	}

	if err := o.stream.Publish(state); err != nil {
		return fmt.Errorf("stream.Publish: %w", err)
	}

	return nil
}

func disqualifyCause(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case domain.IsAppError(err):
		return "schema"
	default:
		return "provider_error"
	}
}
