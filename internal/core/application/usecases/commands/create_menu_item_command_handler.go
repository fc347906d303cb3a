package commands

import (
	"context"

	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"
)

type CreateMenuItemCommandHandler struct {
	uowFactory ReferenceUoWFactory
}

func NewCreateMenuItemCommandHandler(uowFactory ReferenceUoWFactory) CreateMenuItemCommandHandler {
	return CreateMenuItemCommandHandler{uowFactory: uowFactory}
}

func (h CreateMenuItemCommandHandler) Handle(ctx context.Context, cmd CreateMenuItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := menu.NewItem(cmd.ItemID(), cmd.TenantID(), cmd.Name(), cmd.Description(),
		cmd.Price(), cmd.Category(), cmd.PrepMinutes())
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

	if err = uow.MenuRepository().Add(ctx, item); err != nil {
		return errs.Unavailable("database", err)
	}

	return errs.Unavailable("database", uow.Commit(ctx))
}
