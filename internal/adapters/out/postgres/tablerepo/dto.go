// Package tablerepo persists restaurant tables and resolves their QR access tokens.
package tablerepo

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"

	"github.com/google/uuid"
)

type TableDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tables_tenant_number,priority:1"`
	Number   int       `gorm:"type:int;not null;uniqueIndex:idx_tables_tenant_number,priority:2"`
	Token    string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status   string    `gorm:"type:varchar(16);not null"`
}

func (TableDTO) TableName() string {
	return "restaurant_tables"
}

func fromDomain(t *table.Table) TableDTO {
	return TableDTO{
		ID:       t.ID().Bytes(),
		TenantID: t.TenantID().Bytes(),
		Number:   t.Number(),
		Token:    t.Token().String(),
		Status:   t.Status().String(),
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	token, err := kernel.AccessTokenFromString(dto.Token)
	if err != nil {
		return nil, err
	}
	status, err := table.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return table.RestoreTable(id, tenantID, dto.Number, token, status)
}
