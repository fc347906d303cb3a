// Package outboxrepo stores order change events until the relay has published them.
package outboxrepo

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind        string     `gorm:"type:varchar(32);not null"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null"`
	TableID     uuid.UUID  `gorm:"type:uuid;not null"`
	TableNumber int        `gorm:"type:int;not null"`
	OldStatus   int        `gorm:"type:smallint;not null"`
	NewStatus   int        `gorm:"type:smallint;not null"`
	Actor       int        `gorm:"type:smallint;not null"`
	OccurredAt  time.Time  `gorm:"not null;index:idx_outbox_pending,priority:2"`
	PublishedAt *time.Time `gorm:"index:idx_outbox_pending,priority:1"`
}

func (EventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(e order.ChangeEvent) EventDTO {
	return EventDTO{
		ID:          e.ID.Bytes(),
		Kind:        string(e.Kind),
		OrderID:     e.OrderID.Bytes(),
		TenantID:    e.TenantID.Bytes(),
		TableID:     e.TableID.Bytes(),
		TableNumber: e.TableNumber,
		OldStatus:   int(e.OldStatus),
		NewStatus:   int(e.NewStatus),
		Actor:       int(e.Actor),
		OccurredAt:  e.OccurredAt,
	}
}

func toDomain(dto EventDTO) (order.ChangeEvent, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.TenantID, dto.TableID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return order.ChangeEvent{}, err
		}
		ids = append(ids, id)
	}

	return order.ChangeEvent{
		ID:          ids[0],
		Kind:        order.EventKind(dto.Kind),
		OrderID:     ids[1],
		TenantID:    ids[2],
		TableID:     ids[3],
		TableNumber: dto.TableNumber,
		OldStatus:   order.Status(dto.OldStatus),
		NewStatus:   order.Status(dto.NewStatus),
		Actor:       kernel.Role(dto.Actor),
		OccurredAt:  dto.OccurredAt.UTC(),
	}, nil
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append stores events as pending. The unit of work calls it right before commit.
func (r *GormOutboxRepository) Append(ctx context.Context, events []order.ChangeEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, fromDomain(e))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending locks up to limit unpublished rows with FOR UPDATE SKIP LOCKED, so two
// relays never publish the same batch concurrently.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]order.ChangeEvent, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]order.ChangeEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at).Error
}

func (r *GormOutboxRepository) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at < ?", cutoff).
		Delete(&EventDTO{})
	return result.RowsAffected, result.Error
}
