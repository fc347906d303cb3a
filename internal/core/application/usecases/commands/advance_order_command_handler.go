package commands

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

// advanceAttempts is the first try plus one retry after re-fetching the order.
const advanceAttempts = 2

// AdvanceOrderCommandHandler moves an order to its next status.
//
// The status is persisted with a compare-and-set on the previous status, so when two
// waiters confirm the same order at once exactly one succeeds. A rejected transition is
// retried once against freshly loaded state before it is reported; the loser of a race
// therefore sees "order is already confirmed" rather than a spurious conflict.
//
// Settling the last unpaid order of a table frees the table.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // someone else moved the order, or the role may not perform this step
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order
//	}
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	relay      RelayTrigger
	clock      kernel.Clock
}

func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory, relay RelayTrigger, clock kernel.Clock) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		relay:      relay,
		clock:      clock,
	}
}

// Handle processes the command.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 1; attempt <= advanceAttempts; attempt++ {
		err = h.advance(ctx, cmd)
		if !errors.Is(err, errs.ErrInvalidTransition) {
			break
		}
	}
	if err != nil {
		return err
	}

	h.relay.Trigger()
	return nil
}

func (h AdvanceOrderCommandHandler) advance(ctx context.Context, cmd AdvanceOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.Unavailable("database", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return errs.Unavailable("database", err)
	}

	previous := o.Status()
	if err = o.Advance(cmd.Target(), cmd.Actor(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.UpdateStatus(ctx, o, previous); err != nil {
		return errs.Unavailable("database", err)
	}

	if o.Status() == order.Paid {
		if err = h.releaseTable(ctx, uow, o); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.Unavailable("database", err)
	}

	return nil
}

func (h AdvanceOrderCommandHandler) releaseTable(ctx context.Context, uow OrderUoW, o *order.Order) error {
	unpaid, err := uow.OrderRepository().CountUnpaidByTable(ctx, o.TenantID(), o.TableID())
	if err != nil {
		return errs.Unavailable("database", err)
	}
	if unpaid > 0 {
		return nil
	}

	tableRepo := uow.TableRepository()
	t, err := tableRepo.Get(ctx, o.TenantID(), o.TableID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return errs.Unavailable("database", err)
	}

	t.Release()
	return errs.Unavailable("database", tableRepo.Update(ctx, t))
}
