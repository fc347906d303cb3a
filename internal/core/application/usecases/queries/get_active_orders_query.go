package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery lists the orders of a tenant in the given statuses.
//
// Example:
//
//	kitchen := NewKitchenBoardQuery(tenantID)   // confirmed and preparing, oldest first
//	waiter := NewWaiterBoardQuery(tenantID)     // everything not paid, newest first
type GetActiveOrdersQuery struct {
	tenantID    kernel.UUID
	statuses    []order.Status
	oldestFirst bool

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery builds the query. An empty statuses list means every status
// except paid.
func NewGetActiveOrdersQuery(tenantID kernel.UUID, statuses []order.Status, oldestFirst bool) (GetActiveOrdersQuery, error) {
	if err := requireID("tenant", tenantID); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	if len(statuses) == 0 {
		statuses = []order.Status{order.Pending, order.Confirmed, order.Preparing, order.Ready, order.Served}
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetActiveOrdersQuery{}, err
		}
	}

	q := GetActiveOrdersQuery{
		tenantID:    tenantID,
		statuses:    make([]order.Status, len(statuses)),
		oldestFirst: oldestFirst,
		guard:       guard.NewConstructorGuard(),
	}
	copy(q.statuses, statuses)
	return q, nil
}

// NewKitchenBoardQuery lists what the kitchen has to cook, oldest first.
func NewKitchenBoardQuery(tenantID kernel.UUID) (GetActiveOrdersQuery, error) {
	return NewGetActiveOrdersQuery(tenantID, []order.Status{order.Confirmed, order.Preparing}, true)
}

// NewWaiterBoardQuery lists every unpaid order, newest first.
func NewWaiterBoardQuery(tenantID kernel.UUID) (GetActiveOrdersQuery, error) {
	return NewGetActiveOrdersQuery(tenantID, nil, false)
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

func (q GetActiveOrdersQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetActiveOrdersQuery) Statuses() []order.Status {
	statuses := make([]order.Status, len(q.statuses))
	copy(statuses, q.statuses)
	return statuses
}

func (q GetActiveOrdersQuery) OldestFirst() bool {
	return q.oldestFirst
}
