package commands

import (
	"context"

	"restaurant/internal/pkg/errs"
)

type SetMenuItemAvailabilityCommandHandler struct {
	uowFactory ReferenceUoWFactory
}

func NewSetMenuItemAvailabilityCommandHandler(uowFactory ReferenceUoWFactory) SetMenuItemAvailabilityCommandHandler {
	return SetMenuItemAvailabilityCommandHandler{uowFactory: uowFactory}
}

func (h SetMenuItemAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetMenuItemAvailabilityCommand) error {
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

	menuRepo := uow.MenuRepository()
	item, err := menuRepo.Get(ctx, cmd.TenantID(), cmd.ItemID())
	if err != nil {
		return errs.Unavailable("database", err)
	}

	if item.IsAvailable() == cmd.Available() {
		return nil
	}

	item.SetAvailability(cmd.Available())
	if err = menuRepo.Update(ctx, item); err != nil {
		return errs.Unavailable("database", err)
	}

	return errs.Unavailable("database", uow.Commit(ctx))
}
