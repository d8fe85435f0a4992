// Package stream is the append-only sequence of GameState snapshots a run
// exposes to observers.
package stream

import (
	"errors"
	"sync"

	"craft_market/internal/domain/entity"
)

var ErrClosed = errors.New("stream closed")

// Stream holds every snapshot published so far. Subscribers attaching at
// any point replay from the first snapshot and then receive live ones.
// Runs have a fixed horizon, so the snapshot count is bounded up front
// and subscriber channels never block the publisher.
type Stream struct {
	mu       sync.Mutex
	capacity int
	states   []entity.GameState
	subs     map[int]chan entity.GameState
	nextSub  int
	closed   bool
}

// New creates a stream for a run emitting at most capacity snapshots
// (one initial plus one per day).
func New(capacity int) *Stream {
	return &Stream{
		capacity: capacity,
		states:   make([]entity.GameState, 0, capacity),
		subs:     make(map[int]chan entity.GameState),
	}
}

// Publish appends a snapshot and fans it out. Publishing past the
// declared capacity or after Close is a programming error.
func (s *Stream) Publish(state entity.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if len(s.states) >= s.capacity {
		return errors.New("stream capacity exceeded")
	}

	s.states = append(s.states, state)

	for _, ch := range s.subs {
		ch <- state
	}

	return nil
}

// Subscribe returns a channel that first replays every snapshot published
// so far and then delivers new ones. The channel closes when the stream
// closes. The returned cancel func detaches early.
func (s *Stream) Subscribe() (<-chan entity.GameState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Capacity covers full replay plus all future snapshots, so Publish
	// can always send without blocking.
	ch := make(chan entity.GameState, 2*s.capacity)

	for _, state := range s.states {
		ch <- state
	}

	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if ch, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

// Close seals the stream. Idempotent; after it returns no snapshot is
// ever emitted again.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// Latest returns the most recent snapshot.
func (s *Stream) Latest() (entity.GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.states) == 0 {
		return entity.GameState{}, false
	}
	return s.states[len(s.states)-1], true
}

// States returns a copy of every snapshot published so far.
func (s *Stream) States() []entity.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.GameState, len(s.states))
	copy(out, s.states)
	return out
}

// Closed reports whether the run has sealed the stream.
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}
