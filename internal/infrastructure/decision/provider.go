// Package decision hosts the pluggable decision providers (AI model,
// scripted bot, human-in-the-loop) and the contract boundary that turns
// their untrusted output into a well-typed RequestedAction.
package decision

import (
	"context"

	"craft_market/internal/domain/entity"
)

// Provider kinds selectable by configuration.
const (
	KindScripted = "scripted"
	KindLLM      = "llm"
	KindHuman    = "human"
)

// Request is everything a decision-maker is shown for one round.
type Request struct {
	RunID            string               `json:"runId"`
	Day              int                  `json:"day"`
	TotalDays        int                  `json:"totalDays"`
	ParticipantCount int                  `json:"participantCount"`
	Index            int                  `json:"index"`
	Inventory        entity.Inventory     `json:"inventory"`
	Prices           entity.DayPrices     `json:"prices"`
	DemandHistory    []entity.DayDemand   `json:"demandHistory"`
	PriorViolations  []string             `json:"priorViolations"`
	PriorSales       []entity.Sale        `json:"priorSales"`
}

// Response carries the raw decision JSON plus whatever the provider spent
// producing it. Raw is untrusted until the boundary validates it.
type Response struct {
	Raw   []byte
	Usage entity.DecisionUsage
}

// Provider produces one raw decision per round.
type Provider interface {
	Kind() string
	Decide(ctx context.Context, req Request) (Response, error)
}

// Decider is what the orchestrator consumes: a provider wrapped by the
// validation boundary (and optionally a timeout), yielding typed actions.
type Decider interface {
	Decide(ctx context.Context, req Request) (entity.RequestedAction, entity.DecisionUsage, error)
}
