package queries

import (
	"context"

	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetInventoryQueryHandler struct {
	db *gorm.DB
}

func NewGetInventoryQueryHandler(db *gorm.DB) GetInventoryQueryHandler {
	return GetInventoryQueryHandler{db: db}
}

// Handle returns the stock ordered by name.
func (h GetInventoryQueryHandler) Handle(ctx context.Context, query GetInventoryQuery) ([]InventoryItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			unit,
			quantity,
			min_threshold
		FROM inventory
		WHERE tenant_id = ? AND (NOT ? OR quantity <= min_threshold)
		ORDER BY name
	`, query.TenantID().Bytes(), query.LowStockOnly()).Rows()
	if err != nil {
		return nil, errs.Unavailable("database", err)
	}
	defer rows.Close()

	items := make([]InventoryItemView, 0)
	for rows.Next() {
		var id uuid.UUID
		var view InventoryItemView
		var unit string

		if err = rows.Scan(&id, &view.Name, &unit, &view.Quantity, &view.MinThreshold); err != nil {
			return nil, errs.Unavailable("database", err)
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.Unit = inventory.Unit(unit)
		view.Low = view.Quantity <= view.MinThreshold
		items = append(items, view)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.Unavailable("database", err)
	}
	return items, nil
}
