package ports

import "context"

// Notification is a push alert for one staff device.
type Notification struct {
	Target string            `json:"target"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// PushSender delivers notifications on a best-effort basis.
type PushSender interface {
	Send(ctx context.Context, notification Notification) error
}
