// Package devicerepo persists staff devices registered for push notifications.
package devicerepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/device"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index:idx_devices_tenant_role,priority:1"`
	Role      int       `gorm:"type:smallint;not null;index:idx_devices_tenant_role,priority:2"`
	PushToken string    `gorm:"type:text;not null;uniqueIndex"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (DeviceDTO) TableName() string {
	return "devices"
}

// GormDeviceRepository implements ports.DeviceRepository using GORM.
type GormDeviceRepository struct {
	db *gorm.DB
}

func NewGormDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

// Save upserts by push token: a phone that logs in to another restaurant or role keeps
// a single registration.
func (r *GormDeviceRepository) Save(ctx context.Context, aggregate *device.Device) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := DeviceDTO{
		ID:        aggregate.ID().Bytes(),
		TenantID:  aggregate.TenantID().Bytes(),
		Role:      int(aggregate.Role()),
		PushToken: aggregate.PushToken(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "push_token"}},
			DoUpdates: clause.AssignmentColumns([]string{"tenant_id", "role", "updated_at"}),
		}).
		Create(&dto).Error
}

func (r *GormDeviceRepository) ListByRole(ctx context.Context, tenantID kernel.UUID, role kernel.Role) ([]*device.Device, error) {
	if err := errors.Join(tenantID.Validate(), role.Validate()); err != nil {
		return nil, err
	}

	var dtos []DeviceDTO
	err := r.db.WithContext(ctx).
		Order("updated_at").
		Find(&dtos, "tenant_id = ? AND role = ?", tenantID.Bytes(), int(role)).Error
	if err != nil {
		return nil, err
	}

	devices := make([]*device.Device, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		d, dErr := device.RestoreDevice(id, tenantID, kernel.Role(dto.Role), dto.PushToken)
		if dErr != nil {
			return nil, dErr
		}
		devices = append(devices, d)
	}
	return devices, nil
}
