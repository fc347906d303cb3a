package push

import (
	"context"
	"log/slog"

	"restaurant/internal/core/ports"
)

var _ ports.PushSender = (*LogSender)(nil)

// LogSender writes notifications to the log. It is used when no broker is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "log_push_sender")}
}

func (s *LogSender) Send(ctx context.Context, n ports.Notification) error {
	attrs := []any{"target", n.Target, "title", n.Title, "body", n.Body}
	for k, v := range n.Data {
		attrs = append(attrs, "data."+k, v)
	}
	s.logger.InfoContext(ctx, "Push notification", attrs...)
	return nil
}
