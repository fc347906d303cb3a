// Package menurepo persists menu items.
package menurepo

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

type MenuItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Price       int64     `gorm:"type:bigint;not null"`
	Category    string    `gorm:"type:varchar(100);not null"`
	Available   bool      `gorm:"not null;default:true"`
	PrepMinutes int       `gorm:"type:int;not null;default:0"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(i *menu.Item) MenuItemDTO {
	return MenuItemDTO{
		ID:          i.ID().Bytes(),
		TenantID:    i.TenantID().Bytes(),
		Name:        i.Name(),
		Description: i.Description(),
		Price:       i.Price().Amount(),
		Category:    i.Category(),
		Available:   i.IsAvailable(),
		PrepMinutes: i.PrepMinutes(),
	}
}

func toDomain(dto MenuItemDTO) (*menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return menu.RestoreItem(id, tenantID, dto.Name, dto.Description, price, dto.Category, dto.Available, dto.PrepMinutes)
}
