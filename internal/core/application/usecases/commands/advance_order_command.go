package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
)

// AdvanceOrderCommand asks to move an order one step along its lifecycle on behalf of
// a role.
//
// Example:
//
//	cmd, err := NewAdvanceOrderCommand(tenantID, orderID, order.Confirmed, kernel.RoleWaiter)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	orderID  kernel.UUID
	target   order.Status
	actor    kernel.Role

	guard guard.ConstructorGuard
}

func NewAdvanceOrderCommand(tenantID, orderID kernel.UUID, target order.Status, actor kernel.Role) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

func (c AdvanceOrderCommand) Actor() kernel.Role {
	return c.actor
}

func (c *AdvanceOrderCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant", err)
	}
	c.tenantID = id
	return nil
}

func (c *AdvanceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order", err)
	}
	c.orderID = id
	return nil
}

func (c *AdvanceOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *AdvanceOrderCommand) setActor(actor kernel.Role) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
