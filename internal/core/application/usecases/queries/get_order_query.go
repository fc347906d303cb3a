package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery loads one order for customer tracking.
type GetOrderQuery struct {
	tenantID kernel.UUID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(tenantID, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(
		requireID("tenant", tenantID),
		requireID("order", orderID),
	); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{tenantID: tenantID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
