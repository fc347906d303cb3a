package queries

import (
	"context"
	"database/sql"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TableRef identifies the table a customer sits at and the restaurant it belongs to.
type TableRef struct {
	TenantID    kernel.UUID
	TenantName  string
	TableID     kernel.UUID
	TableNumber int
}

// lookupTable resolves a QR code token. An unknown token is not found.
func lookupTable(ctx context.Context, db *gorm.DB, token kernel.AccessToken) (TableRef, error) {
	var ref TableRef
	var tenantID, tableID uuid.UUID

	row := db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.name,
			rt.id,
			rt.number
		FROM restaurant_tables rt
		JOIN tenants t ON t.id = rt.tenant_id
		WHERE rt.token = ?
	`, token.String()).Row()

	err := row.Scan(&tenantID, &ref.TenantName, &tableID, &ref.TableNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return ref, errs.NewObjectNotFoundError("table", "token")
	}
	if err != nil {
		return ref, errs.Unavailable("database", err)
	}

	if ref.TenantID, err = kernel.UUIDFromBytes(tenantID[:]); err != nil {
		return ref, err
	}
	if ref.TableID, err = kernel.UUIDFromBytes(tableID[:]); err != nil {
		return ref, err
	}
	return ref, nil
}
