package menurepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMenuRepository implements ports.MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) Add(ctx context.Context, aggregate *menu.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update rewrites every column; a map is used so that false and zero values are kept.
func (r *GormMenuRepository) Update(ctx context.Context, aggregate *menu.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&MenuItemDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Updates(map[string]any{
			"name":         dto.Name,
			"description":  dto.Description,
			"price":        dto.Price,
			"category":     dto.Category,
			"available":    dto.Available,
			"prep_minutes": dto.PrepMinutes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", aggregate.ID().String())
	}
	return nil
}

func (r *GormMenuRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*menu.Item, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto MenuItemDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany loads items by id across tenants. Unknown ids are skipped.
func (r *GormMenuRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error) {
	if len(ids) == 0 {
		return []*menu.Item{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	items := make([]*menu.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
