// Package notifications turns relayed order change events and low stock into push
// alerts for staff devices.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"restaurant/internal/core/domain/model/device"
	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

const (
	TypeNewOrder       = "new_order"
	TypeOrderReady     = "order_ready"
	TypeInventoryAlert = "inventory_alert"
)

// DeviceDirectory lists the staff devices registered for a role.
type DeviceDirectory interface {
	ListByRole(ctx context.Context, tenantID kernel.UUID, role kernel.Role) ([]*device.Device, error)
}

// StaffNotifier alerts waiters when an order is placed and when the kitchen marks it
// ready, and the kitchen when stock runs low. Delivery is best-effort: every failure is
// logged and swallowed.
type StaffNotifier struct {
	devices DeviceDirectory
	sender  ports.PushSender
	logger  *slog.Logger
}

func NewStaffNotifier(devices DeviceDirectory, sender ports.PushSender, logger *slog.Logger) *StaffNotifier {
	return &StaffNotifier{
		devices: devices,
		sender:  sender,
		logger:  logger.With("component", "staff_notifier"),
	}
}

// Notify sends the alert that matches event, if any.
func (n *StaffNotifier) Notify(ctx context.Context, event order.ChangeEvent) {
	alert, ok := alertFor(event)
	if !ok {
		return
	}
	n.broadcast(ctx, event.TenantID, kernel.RoleWaiter, alert, "order_id", event.OrderID.String())
}

// NotifyLowStock tells the kitchen that an inventory item ran low.
func (n *StaffNotifier) NotifyLowStock(ctx context.Context, item *inventory.Item) {
	alert := ports.Notification{
		Title: "Low Inventory",
		Body:  fmt.Sprintf("%s is running low", item.Name()),
		Data: map[string]string{
			"type":    TypeInventoryAlert,
			"item_id": item.ID().String(),
		},
	}
	n.broadcast(ctx, item.TenantID(), kernel.RoleKitchen, alert, "item_id", item.ID().String())
}

func (n *StaffNotifier) broadcast(ctx context.Context, tenantID kernel.UUID, role kernel.Role, alert ports.Notification, subject ...any) {
	devices, err := n.devices.ListByRole(ctx, tenantID, role)
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to list "+role.String()+" devices",
			append([]any{"tenant_id", tenantID.String(), "error", err}, subject...)...)
		return
	}

	sent := 0
	for _, d := range devices {
		alert.Target = d.PushToken()
		if err := n.sender.Send(ctx, alert); err != nil {
			n.logger.WarnContext(ctx, "Push notification failed",
				append([]any{"device_id", d.ID().String(), "error", err}, subject...)...)
			continue
		}
		sent++
	}

	n.logger.DebugContext(ctx, "Staff notified",
		append([]any{"type", alert.Data["type"], "devices", len(devices), "sent", sent}, subject...)...)
}

func alertFor(event order.ChangeEvent) (ports.Notification, bool) {
	data := func(kind string) map[string]string {
		return map[string]string{
			"type":         kind,
			"order_id":     event.OrderID.String(),
			"table_number": strconv.Itoa(event.TableNumber),
		}
	}

	switch {
	case event.Kind == order.EventPlaced:
		return ports.Notification{
			Title: "New Order!",
			Body:  fmt.Sprintf("Table %d placed an order", event.TableNumber),
			Data:  data(TypeNewOrder),
		}, true
	case event.Kind == order.EventStatusChanged && event.NewStatus == order.Ready:
		return ports.Notification{
			Title: "Order Ready!",
			Body:  fmt.Sprintf("Order #%s is ready to serve", event.OrderNumber()),
			Data:  data(TypeOrderReady),
		}, true
	default:
		return ports.Notification{}, false
	}
}
