package tablerepo

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTableRepository implements ports.TableRepository using GORM.
type GormTableRepository struct {
	db *gorm.DB
}

func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// Add inserts the table. A number already used by the tenant is a validation error.
func (r *GormTableRepository) Add(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewValueIsInvalidErrorWithCause("table number", fmt.Errorf("table %d already exists", dto.Number))
	}
	return err
}

// Update persists the availability status of the table.
func (r *GormTableRepository) Update(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TableDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("table", aggregate.ID().String())
	}
	return nil
}

func (r *GormTableRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*table.Table, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto TableDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByToken resolves a QR access token to its table.
func (r *GormTableRepository) GetByToken(ctx context.Context, token kernel.AccessToken) (*table.Table, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	var dto TableDTO
	if err := r.db.WithContext(ctx).First(&dto, "token = ?", token.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", "token")
		}
		return nil, err
	}

	return toDomain(dto)
}
