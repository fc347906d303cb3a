package commands

import (
	"context"

	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/pkg/errs"
)

// StockAlerter warns staff that an item ran low. Like EventNotifier it is best-effort
// and logs its own failures.
type StockAlerter interface {
	NotifyLowStock(ctx context.Context, item *inventory.Item)
}

// AdjustInventoryCommandHandler stores a new stock level. When the adjustment takes an
// item from above its threshold to at or below it, staff are alerted once the change is
// committed; further counts while the item stays low do not alert again.
type AdjustInventoryCommandHandler struct {
	uowFactory ReferenceUoWFactory
	alerter    StockAlerter
}

func NewAdjustInventoryCommandHandler(uowFactory ReferenceUoWFactory, alerter StockAlerter) AdjustInventoryCommandHandler {
	return AdjustInventoryCommandHandler{uowFactory: uowFactory, alerter: alerter}
}

func (h AdjustInventoryCommandHandler) Handle(ctx context.Context, cmd AdjustInventoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.Unavailable("database", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InventoryRepository()
	item, err := repo.Get(ctx, cmd.TenantID(), cmd.ItemID())
	if err != nil {
		return errs.Unavailable("database", err)
	}

	wasLow := item.IsLow()
	if err = item.SetQuantity(cmd.Quantity()); err != nil {
		return err
	}
	if err = repo.Update(ctx, item); err != nil {
		return errs.Unavailable("database", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return errs.Unavailable("database", err)
	}

	if !wasLow && item.IsLow() {
		h.alerter.NotifyLowStock(ctx, item)
	}
	return nil
}
