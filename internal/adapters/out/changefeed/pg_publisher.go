package changefeed

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultChannel is the Postgres NOTIFY channel carrying change events.
const DefaultChannel = "order_changes"

var _ ports.ChangePublisher = (*PGPublisher)(nil)

// PGPublisher sends change events with pg_notify so that every process listening on
// the channel can feed its own Hub.
type PGPublisher struct {
	db      *gorm.DB
	channel string
}

func NewPGPublisher(db *gorm.DB, channel string) *PGPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &PGPublisher{db: db, channel: channel}
}

func (p *PGPublisher) Publish(ctx context.Context, event order.ChangeEvent) error {
	payload, err := Encode(event)
	if err != nil {
		return err
	}
	return p.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", p.channel, string(payload)).Error
}
