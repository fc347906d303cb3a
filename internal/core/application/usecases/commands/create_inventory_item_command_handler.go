package commands

import (
	"context"

	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/pkg/errs"
)

type CreateInventoryItemCommandHandler struct {
	uowFactory ReferenceUoWFactory
}

func NewCreateInventoryItemCommandHandler(uowFactory ReferenceUoWFactory) CreateInventoryItemCommandHandler {
	return CreateInventoryItemCommandHandler{uowFactory: uowFactory}
}

func (h CreateInventoryItemCommandHandler) Handle(ctx context.Context, cmd CreateInventoryItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := inventory.NewItem(cmd.ItemID(), cmd.TenantID(), cmd.Name(), cmd.Unit(), cmd.Quantity(), cmd.MinThreshold())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return errs.Unavailable("database", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.TenantRepository().Get(ctx, cmd.TenantID()); err != nil {
		return errs.Unavailable("database", err)
	}

	if err = uow.InventoryRepository().Add(ctx, item); err != nil {
		return errs.Unavailable("database", err)
	}

	return errs.Unavailable("database", uow.Commit(ctx))
}
