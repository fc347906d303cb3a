package ports

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

var (
	// ErrSlowSubscriber ends a subscription whose consumer fell too far behind. The
	// consumer must subscribe again and reload current state.
	ErrSlowSubscriber = errors.New("change feed subscriber is too slow")

	// ErrFeedClosed ends every subscription when the feed shuts down.
	ErrFeedClosed = errors.New("change feed is closed")
)

// ChangePublisher fans a relayed change event out to the subscribers of its tenant.
type ChangePublisher interface {
	Publish(ctx context.Context, event order.ChangeEvent) error
}

// ChangeFeed hands out tenant-scoped subscriptions.
type ChangeFeed interface {
	Subscribe(tenantID kernel.UUID) (Subscription, error)
}

// Subscription delivers the change events of one tenant.
//
// Delivery is at-least-once: consumers must treat a repeated event as a no-op.
// Unsubscribe may be called any number of times from any goroutine; after it returns no
// further event is delivered. Events is closed once the subscription ends, and Err then
// reports why (nil after Unsubscribe).
type Subscription interface {
	Events() <-chan order.ChangeEvent
	Unsubscribe()
	Err() error
}
