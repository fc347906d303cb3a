// Package inventoryrepo persists stock entries.
package inventoryrepo

import (
	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type InventoryItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_tenant_name,priority:1"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_inventory_tenant_name,priority:2"`
	Unit         string    `gorm:"type:varchar(8);not null"`
	Quantity     float64   `gorm:"type:numeric(12,3);not null"`
	MinThreshold float64   `gorm:"type:numeric(12,3);not null;default:0"`
}

func (InventoryItemDTO) TableName() string {
	return "inventory"
}

func fromDomain(i *inventory.Item) InventoryItemDTO {
	return InventoryItemDTO{
		ID:           i.ID().Bytes(),
		TenantID:     i.TenantID().Bytes(),
		Name:         i.Name(),
		Unit:         string(i.Unit()),
		Quantity:     i.Quantity(),
		MinThreshold: i.MinThreshold(),
	}
}

func toDomain(dto InventoryItemDTO) (*inventory.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	return inventory.RestoreItem(id, tenantID, dto.Name, inventory.Unit(dto.Unit), dto.Quantity, dto.MinThreshold)
}
