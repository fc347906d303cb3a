package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Add inserts the entry. A name already stocked by the tenant is a validation error.
func (r *GormInventoryRepository) Add(ctx context.Context, aggregate *inventory.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewValueIsInvalidErrorWithCause("inventory item name", fmt.Errorf("%s is already stocked", dto.Name))
	}
	return err
}

// Update persists the stock level.
func (r *GormInventoryRepository) Update(ctx context.Context, aggregate *inventory.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&InventoryItemDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Update("quantity", dto.Quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("inventory item", aggregate.ID().String())
	}
	return nil
}

func (r *GormInventoryRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*inventory.Item, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto InventoryItemDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
