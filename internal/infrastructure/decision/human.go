package decision

import (
	"context"

	"craft_market/internal/domain"
	"craft_market/pkg/errcodes"
)

// Mailbox is the hand-off point between the HTTP decision endpoint and a
// waiting human provider. One pending decision at a time.
type Mailbox struct {
	ch chan []byte
}

func NewMailbox() *Mailbox {
	return &Mailbox{
		ch: make(chan []byte, 1),
	}
}

// Submit delivers one raw decision. A second submission while the first
// is still pending is rejected rather than queued.
func (m *Mailbox) Submit(raw []byte) error {
	select {
	case m.ch <- raw:
		return nil
	default:
		return domain.NewError(errcodes.DecisionNotAwaited, "a decision is already pending for this participant")
	}
}

// Human blocks each round until the mailbox receives a decision or the
// context is done. It carries no timeout of its own: bounding the wait is
// the caller's choice via WithTimeout.
type Human struct {
	mailbox *Mailbox
}

func NewHuman(mailbox *Mailbox) *Human {
	return &Human{mailbox: mailbox}
}

func (h *Human) Kind() string { return KindHuman }

func (h *Human) Decide(ctx context.Context, _ Request) (Response, error) {
	select {
	case raw := <-h.mailbox.ch:
		return Response{Raw: raw}, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}
