package notifications_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"restaurant/internal/core/application/notifications"
	"restaurant/internal/core/domain/model/device"
	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeviceDirectory struct{ mock.Mock }

func (m *MockDeviceDirectory) ListByRole(ctx context.Context, tenantID kernel.UUID, role kernel.Role) ([]*device.Device, error) {
	args := m.Called(ctx, tenantID, role)
	devices, _ := args.Get(0).([]*device.Device)
	return devices, args.Error(1)
}

type MockPushSender struct{ mock.Mock }

func (m *MockPushSender) Send(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type fixture struct {
	tenantID kernel.UUID
	devices  *MockDeviceDirectory
	sender   *MockPushSender
	logs     *bytes.Buffer
	notifier *notifications.StaffNotifier
}

func newFixture() *fixture {
	f := &fixture{
		tenantID: kernel.NewUUID(),
		devices:  new(MockDeviceDirectory),
		sender:   new(MockPushSender),
		logs:     new(bytes.Buffer),
	}
	logger := slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f.notifier = notifications.NewStaffNotifier(f.devices, f.sender, logger)
	return f
}

func (f *fixture) waiter(t *testing.T, token string) *device.Device {
	d, err := device.NewDevice(kernel.NewUUID(), f.tenantID, kernel.RoleWaiter, token)
	require.NoError(t, err)
	return d
}

func (f *fixture) event(kind order.EventKind, from, to order.Status) order.ChangeEvent {
	return order.ChangeEvent{
		ID:          kernel.NewUUID(),
		Kind:        kind,
		OrderID:     kernel.NewUUID(),
		TenantID:    f.tenantID,
		TableID:     kernel.NewUUID(),
		TableNumber: 7,
		OldStatus:   from,
		NewStatus:   to,
		OccurredAt:  time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC),
	}
}

func TestStaffNotifier_PlacedAlertsEveryWaiter(t *testing.T) {
	f := newFixture()
	event := f.event(order.EventPlaced, order.Unknown, order.Pending)
	f.devices.On("ListByRole", mock.Anything, f.tenantID, kernel.RoleWaiter).
		Return([]*device.Device{f.waiter(t, "token-a"), f.waiter(t, "token-b")}, nil)
	f.sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	f.notifier.Notify(context.Background(), event)

	f.sender.AssertNumberOfCalls(t, "Send", 2)
	first := f.sender.Calls[0].Arguments.Get(1).(ports.Notification)
	assert.Equal(t, "token-a", first.Target)
	assert.Equal(t, "New Order!", first.Title)
	assert.Equal(t, "Table 7 placed an order", first.Body)
	assert.Equal(t, map[string]string{
		"type":         notifications.TypeNewOrder,
		"order_id":     event.OrderID.String(),
		"table_number": "7",
	}, first.Data)
	assert.Equal(t, "token-b", f.sender.Calls[1].Arguments.Get(1).(ports.Notification).Target)
}

func TestStaffNotifier_ReadyAlertsWaiters(t *testing.T) {
	f := newFixture()
	event := f.event(order.EventStatusChanged, order.Preparing, order.Ready)
	f.devices.On("ListByRole", mock.Anything, f.tenantID, kernel.RoleWaiter).
		Return([]*device.Device{f.waiter(t, "token-a")}, nil)
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Title == "Order Ready!" &&
			n.Body == "Order #"+event.OrderNumber()+" is ready to serve" &&
			n.Data["type"] == notifications.TypeOrderReady
	})).Return(nil).Once()

	f.notifier.Notify(context.Background(), event)

	f.sender.AssertExpectations(t)
}

func TestStaffNotifier_IgnoresOtherTransitions(t *testing.T) {
	for _, to := range []order.Status{order.Confirmed, order.Preparing, order.Served, order.Paid} {
		t.Run(to.String(), func(t *testing.T) {
			f := newFixture()

			f.notifier.Notify(context.Background(), f.event(order.EventStatusChanged, to-1, to))

			f.devices.AssertNotCalled(t, "ListByRole", mock.Anything, mock.Anything, mock.Anything)
			f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestStaffNotifier_SendFailureDoesNotStopOtherDevices(t *testing.T) {
	f := newFixture()
	f.devices.On("ListByRole", mock.Anything, f.tenantID, kernel.RoleWaiter).
		Return([]*device.Device{f.waiter(t, "token-a"), f.waiter(t, "token-b")}, nil)
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool { return n.Target == "token-a" })).
		Return(errors.New("gateway down"))
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool { return n.Target == "token-b" })).
		Return(nil)

	f.notifier.Notify(context.Background(), f.event(order.EventPlaced, order.Unknown, order.Pending))

	f.sender.AssertNumberOfCalls(t, "Send", 2)
	assert.Contains(t, f.logs.String(), "Push notification failed")
	assert.Contains(t, f.logs.String(), "gateway down")
	assert.Contains(t, f.logs.String(), "sent=1")
}

func TestStaffNotifier_DirectoryFailureIsLogged(t *testing.T) {
	f := newFixture()
	f.devices.On("ListByRole", mock.Anything, f.tenantID, kernel.RoleWaiter).
		Return(nil, errors.New("connection refused"))

	assert.NotPanics(t, func() {
		f.notifier.Notify(context.Background(), f.event(order.EventPlaced, order.Unknown, order.Pending))
	})

	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Contains(t, f.logs.String(), "Failed to list waiter devices")
}

func TestStaffNotifier_NoDevices(t *testing.T) {
	f := newFixture()
	f.devices.On("ListByRole", mock.Anything, f.tenantID, kernel.RoleWaiter).Return([]*device.Device{}, nil)

	f.notifier.Notify(context.Background(), f.event(order.EventPlaced, order.Unknown, order.Pending))

	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestStaffNotifier_LowStockAlertsKitchen(t *testing.T) {
	f := newFixture()
	cook, err := device.NewDevice(kernel.NewUUID(), f.tenantID, kernel.RoleKitchen, "token-k")
	require.NoError(t, err)
	paneer, err := inventory.NewItem(kernel.NewUUID(), f.tenantID, "Paneer", inventory.Kilogram, 1, 2)
	require.NoError(t, err)
	f.devices.On("ListByRole", mock.Anything, f.tenantID, kernel.RoleKitchen).Return([]*device.Device{cook}, nil)
	f.sender.On("Send", mock.Anything, ports.Notification{
		Target: "token-k",
		Title:  "Low Inventory",
		Body:   "Paneer is running low",
		Data:   map[string]string{"type": notifications.TypeInventoryAlert, "item_id": paneer.ID().String()},
	}).Return(nil).Once()

	f.notifier.NotifyLowStock(context.Background(), paneer)

	f.sender.AssertExpectations(t)
	f.devices.AssertNotCalled(t, "ListByRole", mock.Anything, mock.Anything, kernel.RoleWaiter)
	assert.Contains(t, f.logs.String(), "type=inventory_alert")
}
