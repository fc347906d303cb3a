// Package changefeed fans relayed order change events out to tenant-scoped
// subscribers, in process or across processes through Postgres LISTEN/NOTIFY.
package changefeed

import (
	"context"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// DefaultBuffer is the number of undelivered events a subscriber may hold before it is
// dropped as slow.
const DefaultBuffer = 64

var (
	_ ports.ChangeFeed      = (*Hub)(nil)
	_ ports.ChangePublisher = (*Hub)(nil)
	_ ports.Subscription    = (*subscription)(nil)
)

// Hub is the in-process change feed. Publish never blocks: a subscriber whose buffer
// is full is ended with ports.ErrSlowSubscriber instead of silently missing events.
type Hub struct {
	mu     sync.Mutex
	buffer int
	subs   map[kernel.UUID]map[*subscription]struct{}
	closed bool
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		buffer: buffer,
		subs:   make(map[kernel.UUID]map[*subscription]struct{}),
	}
}

// Subscribe registers a subscriber for the events of tenantID.
func (h *Hub) Subscribe(tenantID kernel.UUID) (ports.Subscription, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("tenant", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ports.ErrFeedClosed
	}

	s := &subscription{
		hub:      h,
		tenantID: tenantID,
		events:   make(chan order.ChangeEvent, h.buffer),
	}
	if h.subs[tenantID] == nil {
		h.subs[tenantID] = make(map[*subscription]struct{})
	}
	h.subs[tenantID][s] = struct{}{}
	return s, nil
}

// Publish delivers event to every current subscriber of its tenant.
func (h *Hub) Publish(ctx context.Context, event order.ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ports.ErrFeedClosed
	}

	for s := range h.subs[event.TenantID] {
		select {
		case s.events <- event:
		default:
			h.endLocked(s, ports.ErrSlowSubscriber)
		}
	}
	return nil
}

// Subscribers returns the number of live subscriptions of tenantID.
func (h *Hub) Subscribers(tenantID kernel.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[tenantID])
}

// Close ends every subscription with ports.ErrFeedClosed. Later calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for s := range subs {
			h.endLocked(s, ports.ErrFeedClosed)
		}
	}
}

func (h *Hub) remove(s *subscription, reason error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endLocked(s, reason)
}

// endLocked must be called with h.mu held. Ending twice is a no-op.
func (h *Hub) endLocked(s *subscription, reason error) {
	if s.ended {
		return
	}
	s.ended = true
	s.err = reason
	close(s.events)

	subs := h.subs[s.tenantID]
	delete(subs, s)
	if len(subs) == 0 {
		delete(h.subs, s.tenantID)
	}
}

type subscription struct {
	hub      *Hub
	tenantID kernel.UUID
	events   chan order.ChangeEvent

	// guarded by hub.mu
	ended bool
	err   error
}

func (s *subscription) Events() <-chan order.ChangeEvent {
	return s.events
}

func (s *subscription) Unsubscribe() {
	s.hub.remove(s, nil)
}

func (s *subscription) Err() error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return s.err
}
