package queries

import (
	"context"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetMenuQueryHandler struct {
	db *gorm.DB
}

func NewGetMenuQueryHandler(db *gorm.DB) GetMenuQueryHandler {
	return GetMenuQueryHandler{db: db}
}

// Handle resolves the table token and returns the tenant's available menu items,
// grouped by category in alphabetical order. An unknown token is not found.
func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) (GetMenuQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMenuQueryResponse{}, err
	}

	ref, err := lookupTable(ctx, h.db, query.TableToken())
	if err != nil {
		return GetMenuQueryResponse{}, err
	}

	items, err := h.loadItems(ctx, ref.TenantID)
	if err != nil {
		return GetMenuQueryResponse{}, errs.Unavailable("database", err)
	}

	return GetMenuQueryResponse{
		TableRef: ref,
		Sections: cart.GroupBy(items, func(i MenuItemView) string { return i.Category }),
	}, nil
}

func (h GetMenuQueryHandler) loadItems(ctx context.Context, tenantID kernel.UUID) ([]MenuItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			price,
			category,
			prep_minutes
		FROM menu_items
		WHERE tenant_id = ? AND available
		ORDER BY category, name
	`, tenantID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]MenuItemView, 0)
	for rows.Next() {
		var item MenuItemView
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Category,
			&item.PrepMinutes,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
