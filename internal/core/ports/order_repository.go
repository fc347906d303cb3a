// Package ports defines the contracts between the application core and its adapters:
// repositories for every aggregate, the unit of work, the change feed and push delivery.
// Implementations live under internal/adapters.
package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read is scoped by tenant so one restaurant can never see another's orders.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus persists the status and update timestamp of aggregate, but only if
	// the stored status still equals expected (compare-and-set).
	//
	// Returns *errs.InvalidTransitionError when another caller changed the status first
	// and *errs.ObjectNotFoundError when the order does not exist.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// CountUnpaidByTable counts the orders of a table that are not paid yet.
	CountUnpaidByTable(ctx context.Context, tenantID, tableID kernel.UUID) (int64, error)
}
