package commands

import (
	"context"

	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/pkg/errs"
)

type CreateTenantCommandHandler struct {
	uowFactory ReferenceUoWFactory
}

func NewCreateTenantCommandHandler(uowFactory ReferenceUoWFactory) CreateTenantCommandHandler {
	return CreateTenantCommandHandler{uowFactory: uowFactory}
}

// Handle stores the tenant. A domain that is already registered is a validation error.
func (h CreateTenantCommandHandler) Handle(ctx context.Context, cmd CreateTenantCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	t, err := tenant.NewTenant(cmd.TenantID(), cmd.Name(), cmd.Domain())
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

	if err = uow.TenantRepository().Add(ctx, t); err != nil {
		return errs.Unavailable("database", err)
	}

	return errs.Unavailable("database", uow.Commit(ctx))
}
