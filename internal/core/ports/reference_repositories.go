package ports

import (
	"context"

	"restaurant/internal/core/domain/model/device"
	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/domain/model/tenant"
)

type TenantRepository interface {
	// Add persists a new tenant. A duplicate domain is a validation error.
	Add(ctx context.Context, aggregate *tenant.Tenant) error
	Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)
}

type TableRepository interface {
	// Add persists a new table. A duplicate number within the tenant is a validation error.
	Add(ctx context.Context, aggregate *table.Table) error
	Update(ctx context.Context, aggregate *table.Table) error
	Get(ctx context.Context, tenantID, id kernel.UUID) (*table.Table, error)

	// GetByToken resolves the token printed in a QR code. Unknown tokens yield
	// *errs.ObjectNotFoundError.
	GetByToken(ctx context.Context, token kernel.AccessToken) (*table.Table, error)
}

type MenuRepository interface {
	Add(ctx context.Context, aggregate *menu.Item) error
	Update(ctx context.Context, aggregate *menu.Item) error
	Get(ctx context.Context, tenantID, id kernel.UUID) (*menu.Item, error)

	// GetMany loads the items with the given ids regardless of tenant, so the caller can
	// tell a foreign item from a missing one. Missing ids are simply absent from the result.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error)
}

type DeviceRepository interface {
	// Save registers a device, replacing any previous registration of the same push token.
	Save(ctx context.Context, aggregate *device.Device) error

	// ListByRole returns the devices of a tenant registered for role.
	ListByRole(ctx context.Context, tenantID kernel.UUID, role kernel.Role) ([]*device.Device, error)
}

type InventoryRepository interface {
	// Add persists a new stock entry. A duplicate name within the tenant is a validation error.
	Add(ctx context.Context, aggregate *inventory.Item) error
	Update(ctx context.Context, aggregate *inventory.Item) error
	Get(ctx context.Context, tenantID, id kernel.UUID) (*inventory.Item, error)
}
