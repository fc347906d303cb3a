package http

import (
	"time"

	"restaurant/internal/core/application/usecases/queries"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type PlaceOrderLine struct {
	MenuItemID openapi_types.UUID `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
}

type PlaceOrderRequest struct {
	TableToken string           `json:"tableToken"`
	Customer   Customer         `json:"customer"`
	Items      []PlaceOrderLine `json:"items"`
	Notes      string           `json:"notes"`
}

type AdvanceOrderRequest struct {
	Status string `json:"status"`
}

type NewTenant struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

type NewTable struct {
	Number int `json:"number"`
}

type NewMenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	PrepMinutes int    `json:"prepMinutes"`
}

type Availability struct {
	Available bool `json:"available"`
}

type NewDevice struct {
	Role      string `json:"role"`
	PushToken string `json:"pushToken"`
}

type NewInventoryItem struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	MinThreshold float64 `json:"minThreshold"`
}

type StockAdjustment struct {
	Quantity float64 `json:"quantity"`
}

type Created struct {
	ID      openapi_types.UUID `json:"id"`
	MenuURL string             `json:"menuUrl,omitempty"`
}

type OrderItem struct {
	MenuItemID openapi_types.UUID `json:"menuItemId"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	UnitPrice  int64              `json:"unitPrice"`
	Quantity   int                `json:"quantity"`
	Subtotal   int64              `json:"subtotal"`
}

type Order struct {
	ID          openapi_types.UUID `json:"id"`
	Number      string             `json:"number"`
	TableID     openapi_types.UUID `json:"tableId"`
	TableNumber int                `json:"tableNumber"`
	Customer    Customer           `json:"customer"`
	Status      string             `json:"status"`
	Total       int64              `json:"total"`
	Notes       string             `json:"notes,omitempty"`
	Items       []OrderItem        `json:"items"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type MenuItem struct {
	ID          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Price       int64              `json:"price"`
	Category    string             `json:"category"`
	PrepMinutes int                `json:"prepMinutes,omitempty"`
}

type MenuSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

type Menu struct {
	TenantID    openapi_types.UUID `json:"tenantId"`
	TenantName  string             `json:"tenantName"`
	TableID     openapi_types.UUID `json:"tableId"`
	TableNumber int                `json:"tableNumber"`
	Sections    []MenuSection      `json:"sections"`
}

type Table struct {
	ID      openapi_types.UUID `json:"id"`
	Number  int                `json:"number"`
	Status  string             `json:"status"`
	Token   string             `json:"token"`
	MenuURL string             `json:"menuUrl"`
}

type InventoryItem struct {
	ID           openapi_types.UUID `json:"id"`
	Name         string             `json:"name"`
	Unit         string             `json:"unit"`
	Quantity     float64            `json:"quantity"`
	MinThreshold float64            `json:"minThreshold"`
	Low          bool               `json:"low"`
}

type DailySales struct {
	Day     string `json:"day"`
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

func toOrder(v queries.OrderView) Order {
	items := make([]OrderItem, len(v.Items))
	for i, item := range v.Items {
		items[i] = OrderItem{
			MenuItemID: item.MenuItemID.Bytes(),
			Name:       item.Name,
			Category:   item.Category,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal,
		}
	}

	return Order{
		ID:          v.ID.Bytes(),
		Number:      v.Number,
		TableID:     v.TableID.Bytes(),
		TableNumber: v.TableNumber,
		Customer:    Customer{Name: v.CustomerName, Phone: v.CustomerPhone},
		Status:      v.Status.String(),
		Total:       v.Total,
		Notes:       v.Notes,
		Items:       items,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toOrders(views []queries.OrderView) []Order {
	orders := make([]Order, len(views))
	for i, v := range views {
		orders[i] = toOrder(v)
	}
	return orders
}

func toMenu(m queries.GetMenuQueryResponse) Menu {
	sections := make([]MenuSection, len(m.Sections))
	for i, section := range m.Sections {
		items := make([]MenuItem, len(section.Items))
		for j, item := range section.Items {
			items[j] = MenuItem{
				ID:          item.ID.Bytes(),
				Name:        item.Name,
				Description: item.Description,
				Price:       item.Price,
				Category:    item.Category,
				PrepMinutes: item.PrepMinutes,
			}
		}
		sections[i] = MenuSection{Category: section.Category, Items: items}
	}

	return Menu{
		TenantID:    m.TenantID.Bytes(),
		TenantName:  m.TenantName,
		TableID:     m.TableID.Bytes(),
		TableNumber: m.TableNumber,
		Sections:    sections,
	}
}

func toTables(views []queries.TableView) []Table {
	tables := make([]Table, len(views))
	for i, v := range views {
		tables[i] = Table{
			ID:      v.ID.Bytes(),
			Number:  v.Number,
			Status:  v.Status.String(),
			Token:   v.Token,
			MenuURL: v.MenuURL,
		}
	}
	return tables
}

func toInventory(views []queries.InventoryItemView) []InventoryItem {
	items := make([]InventoryItem, len(views))
	for i, v := range views {
		items[i] = InventoryItem{
			ID:           v.ID.Bytes(),
			Name:         v.Name,
			Unit:         string(v.Unit),
			Quantity:     v.Quantity,
			MinThreshold: v.MinThreshold,
			Low:          v.Low,
		}
	}
	return items
}

func toDailySales(rows []queries.DailySales) []DailySales {
	sales := make([]DailySales, len(rows))
	for i, r := range rows {
		sales[i] = DailySales{Day: r.Day, Orders: r.Orders, Revenue: r.Revenue}
	}
	return sales
}
