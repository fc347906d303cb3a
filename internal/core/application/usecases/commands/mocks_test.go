package commands_test

import (
	"context"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/device"
	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var now = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) CountUnpaidByTable(ctx context.Context, tenantID, tableID kernel.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, tableID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTableRepository struct{ mock.Mock }

func (m *MockTableRepository) Add(ctx context.Context, t *table.Table) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTableRepository) Update(ctx context.Context, t *table.Table) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTableRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*table.Table, error) {
	args := m.Called(ctx, tenantID, id)
	t, _ := args.Get(0).(*table.Table)
	return t, args.Error(1)
}

func (m *MockTableRepository) GetByToken(ctx context.Context, token kernel.AccessToken) (*table.Table, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*table.Table)
	return t, args.Error(1)
}

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) Add(ctx context.Context, i *menu.Item) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockMenuRepository) Update(ctx context.Context, i *menu.Item) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockMenuRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*menu.Item, error) {
	args := m.Called(ctx, tenantID, id)
	i, _ := args.Get(0).(*menu.Item)
	return i, args.Error(1)
}

func (m *MockMenuRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]*menu.Item)
	return items, args.Error(1)
}

type MockTenantRepository struct{ mock.Mock }

func (m *MockTenantRepository) Add(ctx context.Context, t *tenant.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantRepository) Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*tenant.Tenant)
	return t, args.Error(1)
}

type MockDeviceRepository struct{ mock.Mock }

func (m *MockDeviceRepository) Save(ctx context.Context, d *device.Device) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeviceRepository) ListByRole(ctx context.Context, tenantID kernel.UUID, role kernel.Role) ([]*device.Device, error) {
	args := m.Called(ctx, tenantID, role)
	d, _ := args.Get(0).([]*device.Device)
	return d, args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, i *inventory.Item) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, i *inventory.Item) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, tenantID, id)
	i, _ := args.Get(0).(*inventory.Item)
	return i, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]order.ChangeEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]order.ChangeEvent)
	return events, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

func (m *MockOutboxRepository) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW implements every unit of work flavour the handlers depend on.
type MockUoW struct {
	mock.Mock
	orders  *MockOrderRepository
	tables  *MockTableRepository
	menu    *MockMenuRepository
	tenants *MockTenantRepository
	devices *MockDeviceRepository
	stock   *MockInventoryRepository
	outbox  *MockOutboxRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:  new(MockOrderRepository),
		tables:  new(MockTableRepository),
		menu:    new(MockMenuRepository),
		tenants: new(MockTenantRepository),
		devices: new(MockDeviceRepository),
		stock:   new(MockInventoryRepository),
		outbox:  new(MockOutboxRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository         { return m.orders }
func (m *MockUoW) TableRepository() ports.TableRepository         { return m.tables }
func (m *MockUoW) MenuRepository() ports.MenuRepository           { return m.menu }
func (m *MockUoW) TenantRepository() ports.TenantRepository       { return m.tenants }
func (m *MockUoW) DeviceRepository() ports.DeviceRepository       { return m.devices }
func (m *MockUoW) InventoryRepository() ports.InventoryRepository { return m.stock }
func (m *MockUoW) OutboxRepository() ports.OutboxRepository       { return m.outbox }

// expectTx sets up Begin and the deferred Rollback, plus Commit when committed is true.
func (m *MockUoW) expectTx(committed bool) {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
	if committed {
		m.On("Commit", mock.Anything).Return(nil).Once()
	}
}

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.tables.AssertExpectations(t)
	m.menu.AssertExpectations(t)
	m.tenants.AssertExpectations(t)
	m.devices.AssertExpectations(t)
	m.stock.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
}

// uowFactory hands out the same mock for every Create call.
type uowFactory struct {
	uow     *MockUoW
	created int
}

func (f *uowFactory) next() *MockUoW {
	f.created++
	return f.uow
}

type orderUoWFactory struct{ *uowFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.next() }

type referenceUoWFactory struct{ *uowFactory }

func (f referenceUoWFactory) Create() commands.ReferenceUoW { return f.next() }

type outboxUoWFactory struct{ *uowFactory }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.next() }

type MockRelayTrigger struct{ mock.Mock }

func (m *MockRelayTrigger) Trigger() {
	m.Called()
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event order.ChangeEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event order.ChangeEvent) {
	m.Called(ctx, event)
}

type MockStockAlerter struct{ mock.Mock }

func (m *MockStockAlerter) NotifyLowStock(ctx context.Context, item *inventory.Item) {
	m.Called(ctx, item)
}
