package commands

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
)

// PlaceOrderCommandHandler turns a customer's cart into a pending order.
//
// The table token is resolved to its tenant and table, menu prices are captured, the
// order and its items are stored with a placed change event in one transaction and the
// table is marked occupied.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, relayJob, kernel.SystemClock{})
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // ValidationError, NotFoundError or CollaboratorUnavailableError
//	}
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	relay      RelayTrigger
	clock      kernel.Clock
}

func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, relay RelayTrigger, clock kernel.Clock) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		relay:      relay,
		clock:      clock,
	}
}

// Handle processes the command and returns the committed order. Nothing is written
// unless every step succeeds.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.Unavailable("database", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tableRepo := uow.TableRepository()
	t, err := tableRepo.GetByToken(ctx, cmd.TableToken())
	if err != nil {
		return nil, errs.Unavailable("database", err)
	}

	items, err := h.priceLines(ctx, uow, t, cmd.Lines())
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		t.TenantID(),
		t.ID(),
		t.Number(),
		cmd.Contact(),
		items,
		cmd.Notes(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, errs.Unavailable("database", err)
	}

	if t.Status() != table.Occupied {
		t.Occupy()
		if err = tableRepo.Update(ctx, t); err != nil {
			return nil, errs.Unavailable("database", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.Unavailable("database", err)
	}

	h.relay.Trigger()
	return o, nil
}

// priceLines merges repeated menu items and captures name, category and price from the
// current menu. Unknown, foreign and unavailable items are validation errors.
func (h PlaceOrderCommandHandler) priceLines(
	ctx context.Context,
	uow OrderUoW,
	t *table.Table,
	lines []OrderLine,
) ([]order.Item, error) {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MenuItemID)
	}

	menuItems, err := uow.MenuRepository().GetMany(ctx, ids)
	if err != nil {
		return nil, errs.Unavailable("database", err)
	}

	byID := make(map[kernel.UUID]*menu.Item, len(menuItems))
	for _, m := range menuItems {
		byID[m.ID()] = m
	}

	c := cart.Cart{}
	for _, l := range lines {
		m, ok := byID[l.MenuItemID]
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("menu item", fmt.Errorf("%s does not exist", l.MenuItemID))
		}
		if err = m.CheckOrderable(t.TenantID()); err != nil {
			return nil, err
		}
		if c, err = c.Add(cart.Line{
			MenuItemID: m.ID(),
			Name:       m.Name(),
			Category:   m.Category(),
			UnitPrice:  m.Price(),
			Quantity:   l.Quantity,
		}); err != nil {
			return nil, err
		}
	}

	items := make([]order.Item, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		item, itemErr := order.NewItem(l.MenuItemID, l.Name, l.Category, l.UnitPrice, l.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return items, nil
}
