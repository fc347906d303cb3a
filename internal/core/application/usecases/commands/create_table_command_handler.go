package commands

import (
	"context"

	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
)

type CreateTableCommandHandler struct {
	uowFactory ReferenceUoWFactory
}

func NewCreateTableCommandHandler(uowFactory ReferenceUoWFactory) CreateTableCommandHandler {
	return CreateTableCommandHandler{uowFactory: uowFactory}
}

// Handle creates the table with a fresh access token. The tenant must exist and the
// number must be unused within it.
func (h CreateTableCommandHandler) Handle(ctx context.Context, cmd CreateTableCommand) error {
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

	if _, err := uow.TenantRepository().Get(ctx, cmd.TenantID()); err != nil {
		return errs.Unavailable("database", err)
	}

	t, err := table.NewTable(cmd.TableID(), cmd.TenantID(), cmd.Number())
	if err != nil {
		return err
	}

	if err = uow.TableRepository().Add(ctx, t); err != nil {
		return errs.Unavailable("database", err)
	}

	return errs.Unavailable("database", uow.Commit(ctx))
}
