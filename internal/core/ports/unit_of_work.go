package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
//
// Change events recorded by the order aggregates handed to its repositories are written
// to the outbox inside the same transaction on Commit, so a state change and its
// notification are stored together or not at all.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TableRepository() TableRepository
	MenuRepository() MenuRepository
	TenantRepository() TenantRepository
	DeviceRepository() DeviceRepository
	InventoryRepository() InventoryRepository
	OutboxRepository() OutboxRepository
}
