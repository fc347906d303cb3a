package commands

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateTableCommandIsNotConstructed = errors.New(
		"CreateTableCommand must be created via NewCreateTableCommand constructor",
	)
)

// CreateTableCommand adds a table to a tenant. The access token is generated by the
// handler.
type CreateTableCommand struct { //nolint:recvcheck //using for validation
	tableID  kernel.UUID
	tenantID kernel.UUID
	number   int

	guard guard.ConstructorGuard
}

func NewCreateTableCommand(tableID, tenantID kernel.UUID, number int) (CreateTableCommand, error) {
	cmd := CreateTableCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setTableID(tableID),
		cmd.setTenantID(tenantID),
		cmd.setNumber(number),
	); err != nil {
		return CreateTableCommand{}, err
	}

	return cmd, nil
}

func (c CreateTableCommand) Validate() error {
	return c.guard.Validate(ErrCreateTableCommandIsNotConstructed)
}

func (c CreateTableCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c CreateTableCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c CreateTableCommand) Number() int {
	return c.number
}

func (c *CreateTableCommand) setTableID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.tableID = id
	return nil
}

func (c *CreateTableCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant", err)
	}
	c.tenantID = id
	return nil
}

func (c *CreateTableCommand) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("table number is invalid", fmt.Errorf("%d is not greater than 0", number))
	}
	c.number = number
	return nil
}
