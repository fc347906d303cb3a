// Package orderrepo persists order aggregates and their line items.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Items are stored in order_items and loaded with Preload.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_orders_tenant_status,priority:1"`
	TableID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	TableNumber   int            `gorm:"type:int;not null"`
	CustomerName  string         `gorm:"type:varchar(255);not null"`
	CustomerPhone string         `gorm:"type:varchar(32);not null"`
	TotalAmount   int64          `gorm:"type:bigint;not null"`
	Status        int            `gorm:"type:smallint;not null;index:idx_orders_tenant_status,priority:2"`
	Notes         string         `gorm:"type:text;not null;default:''"`
	CreatedAt     time.Time      `gorm:"not null;index"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime:false"`
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one captured order line. Position keeps the lines in placement order.
type OrderItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"type:int;primaryKey;autoIncrement:false"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Category   string    `gorm:"type:varchar(100);not null"`
	UnitPrice  int64     `gorm:"type:bigint;not null"`
	Quantity   int       `gorm:"type:int;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := o.Items()
	dtoItems := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		dtoItems = append(dtoItems, OrderItemDTO{
			OrderID:    orderID,
			Position:   i,
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Category:   item.Category(),
			UnitPrice:  item.UnitPrice().Amount(),
			Quantity:   item.Quantity(),
		})
	}

	return OrderDTO{
		ID:            orderID,
		TenantID:      o.TenantID().Bytes(),
		TableID:       o.TableID().Bytes(),
		TableNumber:   o.TableNumber(),
		CustomerName:  o.Contact().Name(),
		CustomerPhone: o.Contact().Phone(),
		TotalAmount:   o.Total().Amount(),
		Status:        int(o.Status()),
		Notes:         o.Notes(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Items:         dtoItems,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}

	contact, err := order.NewContact(dto.CustomerName, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, tenantID, tableID, dto.TableNumber,
		contact, items, total, order.Status(dto.Status), dto.Notes,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(menuItemID, dto.Name, dto.Category, price, dto.Quantity)
}
