package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateTenantCommandIsNotConstructed = errors.New(
		"CreateTenantCommand must be created via NewCreateTenantCommand constructor",
	)
)

// CreateTenantCommand registers a restaurant.
type CreateTenantCommand struct {
	tenant *tenant.Tenant

	guard guard.ConstructorGuard
}

// NewCreateTenantCommand validates the fields by building the tenant up front.
func NewCreateTenantCommand(tenantID kernel.UUID, name, domain string) (CreateTenantCommand, error) {
	t, err := tenant.NewTenant(tenantID, name, domain)
	if err != nil {
		return CreateTenantCommand{}, err
	}
	return CreateTenantCommand{tenant: t, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateTenantCommand) Validate() error {
	return c.guard.Validate(ErrCreateTenantCommandIsNotConstructed)
}

func (c CreateTenantCommand) TenantID() kernel.UUID {
	return c.tenant.ID()
}

func (c CreateTenantCommand) Name() string {
	return c.tenant.Name()
}

func (c CreateTenantCommand) Domain() string {
	return c.tenant.Domain()
}
