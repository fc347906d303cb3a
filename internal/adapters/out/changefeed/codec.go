package changefeed

import (
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// Message is the JSON form of a change event on the wire, used for NOTIFY payloads and
// server-sent events.
type Message struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	TenantID    string    `json:"tenantId"`
	TableID     string    `json:"tableId"`
	TableNumber int       `json:"tableNumber"`
	OldStatus   string    `json:"oldStatus,omitempty"`
	NewStatus   string    `json:"newStatus"`
	Actor       string    `json:"actor"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewMessage(e order.ChangeEvent) Message {
	m := Message{
		ID:          e.ID.String(),
		Kind:        string(e.Kind),
		OrderID:     e.OrderID.String(),
		OrderNumber: e.OrderNumber(),
		TenantID:    e.TenantID.String(),
		TableID:     e.TableID.String(),
		TableNumber: e.TableNumber,
		NewStatus:   e.NewStatus.String(),
		Actor:       e.Actor.String(),
		Timestamp:   e.OccurredAt.UTC(),
	}
	if e.OldStatus != order.Unknown {
		m.OldStatus = e.OldStatus.String()
	}
	return m
}

// Event converts the message back into a change event.
func (m Message) Event() (order.ChangeEvent, error) {
	var e order.ChangeEvent
	var err error

	if e.ID, err = kernel.UUIDFromString(m.ID); err != nil {
		return order.ChangeEvent{}, fmt.Errorf("event id: %w", err)
	}
	if e.OrderID, err = kernel.UUIDFromString(m.OrderID); err != nil {
		return order.ChangeEvent{}, fmt.Errorf("order id: %w", err)
	}
	if e.TenantID, err = kernel.UUIDFromString(m.TenantID); err != nil {
		return order.ChangeEvent{}, fmt.Errorf("tenant id: %w", err)
	}
	if e.TableID, err = kernel.UUIDFromString(m.TableID); err != nil {
		return order.ChangeEvent{}, fmt.Errorf("table id: %w", err)
	}

	switch kind := order.EventKind(m.Kind); kind {
	case order.EventPlaced, order.EventStatusChanged:
		e.Kind = kind
	default:
		return order.ChangeEvent{}, fmt.Errorf("unknown event kind %q", m.Kind)
	}

	if m.OldStatus != "" {
		if e.OldStatus, err = order.ParseStatus(m.OldStatus); err != nil {
			return order.ChangeEvent{}, err
		}
	}
	if e.NewStatus, err = order.ParseStatus(m.NewStatus); err != nil {
		return order.ChangeEvent{}, err
	}
	if e.Actor, err = kernel.ParseRole(m.Actor); err != nil {
		return order.ChangeEvent{}, err
	}

	e.TableNumber = m.TableNumber
	e.OccurredAt = m.Timestamp.UTC()
	return e, nil
}

func Encode(e order.ChangeEvent) ([]byte, error) {
	return json.Marshal(NewMessage(e))
}

func Decode(payload []byte) (order.ChangeEvent, error) {
	var m Message
	if err := json.Unmarshal(payload, &m); err != nil {
		return order.ChangeEvent{}, fmt.Errorf("decode change event: %w", err)
	}
	return m.Event()
}
