// Package tenantrepo persists restaurants.
package tenantrepo

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Domain string    `gorm:"type:varchar(253);not null;uniqueIndex"`
}

func (TenantDTO) TableName() string {
	return "tenants"
}

// GormTenantRepository implements ports.TenantRepository using GORM.
type GormTenantRepository struct {
	db *gorm.DB
}

func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// Add inserts the tenant. The database must be opened with TranslateError so that a
// taken domain surfaces as gorm.ErrDuplicatedKey.
func (r *GormTenantRepository) Add(ctx context.Context, aggregate *tenant.Tenant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := TenantDTO{
		ID:     aggregate.ID().Bytes(),
		Name:   aggregate.Name(),
		Domain: aggregate.Domain(),
	}
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewValueIsInvalidErrorWithCause("tenant domain", fmt.Errorf("%q is already registered", dto.Domain))
	}
	return err
}

func (r *GormTenantRepository) Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TenantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tenant", id.String())
		}
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return tenant.RestoreTenant(tenantID, dto.Name, dto.Domain)
}
