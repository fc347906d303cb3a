package queries

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderView is the read model of an order shared by tracking and the boards.
type OrderView struct {
	ID            kernel.UUID
	Number        string
	TableID       kernel.UUID
	TableNumber   int
	CustomerName  string
	CustomerPhone string
	Status        order.Status
	Total         int64
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItemView
}

// OrderItemView is one captured line of an order.
type OrderItemView struct {
	MenuItemID kernel.UUID
	Name       string
	Category   string
	UnitPrice  int64
	Quantity   int
	Subtotal   int64
}

// NewOrderView projects an order aggregate without reading it back from storage.
func NewOrderView(o *order.Order) OrderView {
	items := o.Items()
	view := OrderView{
		ID:            o.ID(),
		Number:        o.Number(),
		TableID:       o.TableID(),
		TableNumber:   o.TableNumber(),
		CustomerName:  o.Contact().Name(),
		CustomerPhone: o.Contact().Phone(),
		Status:        o.Status(),
		Total:         o.Total().Amount(),
		Notes:         o.Notes(),
		CreatedAt:     o.CreatedAt().UTC(),
		UpdatedAt:     o.UpdatedAt().UTC(),
		Items:         make([]OrderItemView, 0, len(items)),
	}
	for _, item := range items {
		view.Items = append(view.Items, OrderItemView{
			MenuItemID: item.MenuItemID(),
			Name:       item.Name(),
			Category:   item.Category(),
			UnitPrice:  item.UnitPrice().Amount(),
			Quantity:   item.Quantity(),
			Subtotal:   item.Subtotal().Amount(),
		})
	}
	return view
}

const orderColumns = `
		o.id,
		o.table_id,
		o.table_number,
		o.customer_name,
		o.customer_phone,
		o.status,
		o.total_amount,
		o.notes,
		o.created_at,
		o.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(rows rowScanner) (OrderView, error) {
	var view OrderView
	var id, tableID uuid.UUID
	var status int

	err := rows.Scan(
		&id,
		&tableID,
		&view.TableNumber,
		&view.CustomerName,
		&view.CustomerPhone,
		&status,
		&view.Total,
		&view.Notes,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.TableID, err = kernel.UUIDFromBytes(tableID[:]); err != nil {
		return OrderView{}, err
	}
	view.Number = order.ShortNumber(view.ID)
	view.Status = order.Status(status)
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	view.Items = make([]OrderItemView, 0)
	return view, nil
}

// loadItems fills the Items of every view with one query.
func loadItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(views))
	index := make(map[uuid.UUID]int, len(views))
	for i, v := range views {
		raw := v.ID.Bytes()
		ids = append(ids, raw)
		index[raw] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			menu_item_id,
			name,
			category,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, menuItemID uuid.UUID
		var item OrderItemView

		err = rows.Scan(
			&orderID,
			&menuItemID,
			&item.Name,
			&item.Category,
			&item.UnitPrice,
			&item.Quantity,
		)
		if err != nil {
			return err
		}

		if item.MenuItemID, err = kernel.UUIDFromBytes(menuItemID[:]); err != nil {
			return err
		}
		item.Subtotal = item.UnitPrice * int64(item.Quantity)

		i := index[orderID]
		views[i].Items = append(views[i].Items, item)
	}

	return rows.Err()
}
