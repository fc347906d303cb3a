package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OutboxRepository reads and acknowledges change events that the unit of work stored
// in the same transaction as the state change that produced them.
type OutboxRepository interface {
	// FetchPending returns up to limit unpublished events, oldest first. Inside a
	// transaction the rows stay locked until commit and are skipped by other relays.
	FetchPending(ctx context.Context, limit int) ([]order.ChangeEvent, error)

	// MarkPublished stamps the given events as published.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error

	// DeletePublishedBefore removes events published before cutoff and reports how
	// many rows went away.
	DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
