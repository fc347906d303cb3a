package queries

import (
	"context"
	"database/sql"
	"errors"

	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order with its items, or a not found error when the order does not
// exist within the tenant.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT`+orderColumns+`
		FROM orders o
		WHERE o.id = ? AND o.tenant_id = ?
	`, query.OrderID().Bytes(), query.TenantID().Bytes()).Row()

	view, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return OrderView{}, errs.Unavailable("database", err)
	}

	views := []OrderView{view}
	if err = loadItems(ctx, h.db, views); err != nil {
		return OrderView{}, errs.Unavailable("database", err)
	}

	return views[0], nil
}
