package commands

import (
	"context"

	"restaurant/internal/core/domain/model/device"
	"restaurant/internal/pkg/errs"
)

type RegisterDeviceCommandHandler struct {
	uowFactory ReferenceUoWFactory
}

func NewRegisterDeviceCommandHandler(uowFactory ReferenceUoWFactory) RegisterDeviceCommandHandler {
	return RegisterDeviceCommandHandler{uowFactory: uowFactory}
}

// Handle stores the device. Registering a push token again moves it to the new tenant
// and role.
func (h RegisterDeviceCommandHandler) Handle(ctx context.Context, cmd RegisterDeviceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := device.NewDevice(cmd.DeviceID(), cmd.TenantID(), cmd.Role(), cmd.PushToken())
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

	if err = uow.DeviceRepository().Save(ctx, d); err != nil {
		return errs.Unavailable("database", err)
	}

	return errs.Unavailable("database", uow.Commit(ctx))
}
