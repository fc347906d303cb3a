package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrGetKitchenTicketQueryIsNotConstructed = errors.New(
		"GetKitchenTicketQuery must be created via NewGetKitchenTicketQuery constructor",
	)
)

// GetKitchenTicketQuery renders the printable ticket of a confirmed order.
type GetKitchenTicketQuery struct {
	tenantID kernel.UUID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetKitchenTicketQuery(tenantID, orderID kernel.UUID) (GetKitchenTicketQuery, error) {
	if err := errors.Join(
		requireID("tenant", tenantID),
		requireID("order", orderID),
	); err != nil {
		return GetKitchenTicketQuery{}, err
	}
	return GetKitchenTicketQuery{tenantID: tenantID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetKitchenTicketQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenTicketQueryIsNotConstructed)
}

func (q GetKitchenTicketQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetKitchenTicketQuery) OrderID() kernel.UUID {
	return q.orderID
}
