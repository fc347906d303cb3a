package order

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
)

// EventKind distinguishes order placement from status changes on the change feed.
type EventKind string

const (
	EventPlaced        EventKind = "placed"
	EventStatusChanged EventKind = "status_changed"
)

// ChangeEvent is published on the change feed after an order is placed or advanced.
// Consumers must tolerate duplicate delivery; ID is stable across redeliveries.
type ChangeEvent struct {
	ID          kernel.UUID
	Kind        EventKind
	OrderID     kernel.UUID
	TenantID    kernel.UUID
	TableID     kernel.UUID
	TableNumber int
	OldStatus   Status
	NewStatus   Status
	Actor       kernel.Role
	OccurredAt  time.Time
}

// OrderNumber is the short, human-friendly order number shown on tickets and alerts.
func (e ChangeEvent) OrderNumber() string {
	return ShortNumber(e.OrderID)
}
