// Package commands contains business operations that modify system state.
// Every command follows the same pattern: a constructor-validated command object and a
// handler that runs it inside a unit of work.
package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TableRepoFactory interface {
		TableRepository() ports.TableRepository
	}

	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	TenantRepoFactory interface {
		TenantRepository() ports.TenantRepository
	}

	DeviceRepoFactory interface {
		DeviceRepository() ports.DeviceRepository
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW covers placing and advancing orders: the order itself, the table it
	// occupies and the menu it is priced from.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		TableRepoFactory
		MenuRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReferenceUoW covers the admin-owned reference data.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   tenant, err := uow.TenantRepository().Get(ctx, tenantID)
	//   err = uow.TableRepository().Add(ctx, newTable)
	//
	//   err = uow.Commit(ctx)
	ReferenceUoW interface {
		TxManager
		TenantRepoFactory
		TableRepoFactory
		MenuRepoFactory
		DeviceRepoFactory
		InventoryRepoFactory
	}

	ReferenceUoWFactory interface {
		Create() ReferenceUoW
	}

	// OutboxUoW covers relaying and pruning stored change events.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// RelayTrigger asks the outbox relay to run as soon as possible. Handlers call it
// after a commit that stored change events.
type RelayTrigger interface {
	Trigger()
}

// EventNotifier reacts to relayed change events, for example by alerting staff devices.
// It must not fail the relay; delivery problems are its own to log.
type EventNotifier interface {
	Notify(ctx context.Context, event order.ChangeEvent)
}
