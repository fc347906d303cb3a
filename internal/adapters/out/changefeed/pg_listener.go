package changefeed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/ports"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 100 * time.Millisecond
	maxReconnectInterval = 10 * time.Second
	pingInterval         = 90 * time.Second
)

// PGListener receives NOTIFY payloads on a channel and republishes the decoded change
// events to a local publisher, normally a Hub.
type PGListener struct {
	dsn     string
	channel string
	target  ports.ChangePublisher
	logger  *slog.Logger
}

func NewPGListener(dsn, channel string, target ports.ChangePublisher, logger *slog.Logger) *PGListener {
	if channel == "" {
		channel = DefaultChannel
	}
	return &PGListener{
		dsn:     dsn,
		channel: channel,
		target:  target,
		logger:  logger.With("component", "pg_listener", "channel", channel),
	}
}

// Run listens until ctx is cancelled. Notifications sent while the connection was
// down are lost; the outbox relay and client reloads cover that gap.
func (l *PGListener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval, l.onConnectionEvent)
	defer func() {
		if err := listener.Close(); err != nil {
			l.logger.WarnContext(ctx, "Failed to close listener", "error", err)
		}
	}()

	if err := listener.Listen(l.channel); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}
	l.logger.InfoContext(ctx, "Listening for change events")

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.InfoContext(ctx, "Listener stopped")
			return nil
		case n := <-listener.Notify:
			// nil after a reconnect
			if n == nil {
				continue
			}
			l.dispatch(ctx, []byte(n.Extra))
		case <-ping.C:
			go func() {
				if err := listener.Ping(); err != nil {
					l.logger.WarnContext(ctx, "Listener ping failed", "error", err)
				}
			}()
		}
	}
}

func (l *PGListener) dispatch(ctx context.Context, payload []byte) {
	event, err := Decode(payload)
	if err != nil {
		l.logger.ErrorContext(ctx, "Dropping malformed change event", "error", err)
		return
	}
	if err := l.target.Publish(ctx, event); err != nil {
		l.logger.ErrorContext(ctx, "Failed to republish change event",
			"event_id", event.ID.String(), "order_id", event.OrderID.String(), "error", err)
	}
}

func (l *PGListener) onConnectionEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		l.logger.Debug("Listener connected")
	case pq.ListenerEventDisconnected:
		l.logger.Warn("Listener disconnected", "error", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("Listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Warn("Listener connection attempt failed", "error", err)
	}
}
