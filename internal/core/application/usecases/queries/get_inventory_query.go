package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrGetInventoryQueryIsNotConstructed = errors.New(
		"GetInventoryQuery must be created via NewGetInventoryQuery or NewGetInventoryAlertsQuery constructor",
	)
)

// GetInventoryQuery lists a tenant's stock, optionally only the items at or below their
// alert threshold.
type GetInventoryQuery struct {
	tenantID     kernel.UUID
	lowStockOnly bool

	guard guard.ConstructorGuard
}

func NewGetInventoryQuery(tenantID kernel.UUID) (GetInventoryQuery, error) {
	if err := requireID("tenant", tenantID); err != nil {
		return GetInventoryQuery{}, err
	}
	return GetInventoryQuery{tenantID: tenantID, guard: guard.NewConstructorGuard()}, nil
}

// NewGetInventoryAlertsQuery selects the low stock items only.
func NewGetInventoryAlertsQuery(tenantID kernel.UUID) (GetInventoryQuery, error) {
	q, err := NewGetInventoryQuery(tenantID)
	q.lowStockOnly = true
	return q, err
}

func (q GetInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryQueryIsNotConstructed)
}

func (q GetInventoryQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetInventoryQuery) LowStockOnly() bool {
	return q.lowStockOnly
}

type InventoryItemView struct {
	ID           kernel.UUID
	Name         string
	Unit         inventory.Unit
	Quantity     float64
	MinThreshold float64
	Low          bool
}
