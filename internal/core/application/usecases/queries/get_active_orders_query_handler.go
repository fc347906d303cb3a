package queries

import (
	"context"

	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]int, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statuses = append(statuses, int(s))
	}

	direction := "DESC"
	if query.OldestFirst() {
		direction = "ASC"
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderColumns+`
		FROM orders o
		WHERE o.tenant_id = ? AND o.status IN ?
		ORDER BY o.created_at `+direction+`, o.id
	`, query.TenantID().Bytes(), statuses).Rows()
	if err != nil {
		return nil, errs.Unavailable("database", err)
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, errs.Unavailable("database", scanErr)
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.Unavailable("database", err)
	}

	if err = loadItems(ctx, h.db, views); err != nil {
		return nil, errs.Unavailable("database", err)
	}

	return views, nil
}
