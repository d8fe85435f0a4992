package decision

import (
	"context"
	"fmt"
	"time"

	"craft_market/internal/domain/entity"
)

type boundary struct {
	provider Provider
	catalog  entity.Catalog
}

// NewDecider wraps a provider with the contract boundary: raw output is
// schema-validated and enum-checked before it becomes a typed action.
func NewDecider(provider Provider, catalog entity.Catalog) Decider {
	return boundary{
		provider: provider,
		catalog:  catalog,
	}
}

func (b boundary) Decide(ctx context.Context, req Request) (entity.RequestedAction, entity.DecisionUsage, error) {
	start := time.Now()

	resp, err := b.provider.Decide(ctx, req)

	usage := resp.Usage
	usage.Requests = 1
	usage.Elapsed = time.Since(start)

	if err != nil {
		return entity.RequestedAction{}, usage, fmt.Errorf("%s provider: %w", b.provider.Kind(), err)
	}

	action, err := ParseAction(b.catalog, resp.Raw)
	if err != nil {
		return entity.RequestedAction{}, usage, fmt.Errorf("%s provider: %w", b.provider.Kind(), err)
	}

	return action, usage, nil
}

type timeoutDecider struct {
	next    Decider
	timeout time.Duration
}

// WithTimeout bounds each decision request. A zero timeout waits forever,
// which is how a human participant pauses real time without advancing the
// state machine.
func WithTimeout(next Decider, timeout time.Duration) Decider {
	if timeout <= 0 {
		return next
	}
	return timeoutDecider{
		next:    next,
		timeout: timeout,
	}
}

func (d timeoutDecider) Decide(ctx context.Context, req Request) (entity.RequestedAction, entity.DecisionUsage, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return d.next.Decide(ctx, req)
}
