package queries

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetTablesQueryHandler struct {
	db *gorm.DB
}

func NewGetTablesQueryHandler(db *gorm.DB) GetTablesQueryHandler {
	return GetTablesQueryHandler{db: db}
}

// Handle returns the tables ordered by number.
func (h GetTablesQueryHandler) Handle(ctx context.Context, query GetTablesQuery) ([]TableView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			token,
			status
		FROM restaurant_tables
		WHERE tenant_id = ?
		ORDER BY number
	`, query.TenantID().Bytes()).Rows()
	if err != nil {
		return nil, errs.Unavailable("database", err)
	}
	defer rows.Close()

	tables := make([]TableView, 0)
	for rows.Next() {
		var id uuid.UUID
		var number int
		var token, status string

		if err = rows.Scan(&id, &number, &token, &status); err != nil {
			return nil, errs.Unavailable("database", err)
		}

		t, restoreErr := restoreTable(query.TenantID(), id, number, token, status)
		if restoreErr != nil {
			return nil, restoreErr
		}

		tables = append(tables, TableView{
			ID:      t.ID(),
			Number:  t.Number(),
			Status:  t.Status(),
			Token:   t.Token().String(),
			MenuURL: t.MenuURL(query.BaseURL()),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errs.Unavailable("database", err)
	}
	return tables, nil
}

func restoreTable(tenantID kernel.UUID, rawID uuid.UUID, number int, rawToken, rawStatus string) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return nil, err
	}
	token, err := kernel.AccessTokenFromString(rawToken)
	if err != nil {
		return nil, err
	}
	status, err := table.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return table.RestoreTable(id, tenantID, number, token, status)
}
