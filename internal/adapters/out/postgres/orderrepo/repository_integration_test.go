package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/pgtest"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var placedAt = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the repository against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	restaurant pgtest.Restaurant
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, _, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	var err error
	suite.restaurant, err = pgtest.SeedRestaurant(context.Background(), suite.db, "spice", 5)
	suite.Require().NoError(err)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(quantity int) *order.Order {
	o, err := suite.restaurant.NewOrder(quantity, placedAt)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsOrderAndItems() {
	ctx := context.Background()
	pizza, soda := suite.restaurant.Pizza, suite.restaurant.Soda

	first, err := order.NewItem(pizza.ID(), pizza.Name(), pizza.Category(), pizza.Price(), 2)
	suite.Require().NoError(err)
	second, err := order.NewItem(soda.ID(), soda.Name(), soda.Category(), soda.Price(), 3)
	suite.Require().NoError(err)
	contact, err := order.NewContact("", "9999999999")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), suite.restaurant.Tenant.ID(), suite.restaurant.Table.ID(), 5,
		contact, []order.Item{first, second}, "extra cheese", placedAt)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, suite.restaurant.Tenant.ID(), o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
	suite.Equal(int64(778), got.Total().Amount())
	suite.Equal(order.Pending, got.Status())
	suite.Equal("Guest", got.Contact().Name())
	suite.Equal("extra cheese", got.Notes())
	suite.Equal(5, got.TableNumber())
	suite.True(placedAt.Equal(got.CreatedAt()))
	suite.Empty(got.DomainEvents(), "restored orders carry no events")

	items := got.Items()
	suite.Require().Len(items, 2)
	suite.Equal("Pizza", items[0].Name())
	suite.Equal(2, items[0].Quantity())
	suite.Equal("Soda", items[1].Name())
	suite.Equal(int64(60), items[1].UnitPrice().Amount())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_StoredTotalIsNotRecomputed() {
	ctx := context.Background()
	o := suite.addOrder(2)

	suite.Require().NoError(suite.db.Exec("UPDATE menu_items SET price = 999 WHERE id = ?", suite.restaurant.Pizza.ID().Bytes()).Error)
	suite.Require().NoError(suite.db.Exec("UPDATE order_items SET unit_price = 999 WHERE order_id = ?", o.ID().Bytes()).Error)

	got, err := suite.repository.Get(ctx, suite.restaurant.Tenant.ID(), o.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(598), got.Total().Amount())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OtherTenantIsNotFound() {
	o := suite.addOrder(1)

	got, err := suite.repository.Get(context.Background(), kernel.NewUUID(), o.ID())

	suite.Nil(got)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_CompareAndSet() {
	ctx := context.Background()
	tenantID := suite.restaurant.Tenant.ID()
	o := suite.addOrder(1)

	suite.Require().NoError(o.Advance(order.Confirmed, kernel.RoleWaiter, placedAt.Add(time.Minute)))
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, o, order.Pending))

	stored, err := suite.repository.Get(ctx, tenantID, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Status())
	suite.True(placedAt.Add(time.Minute).Equal(stored.UpdatedAt()))

	// a second writer still holding the pending snapshot loses
	stale, err := suite.restaurant.NewOrder(1, placedAt)
	suite.Require().NoError(err)
	staleCopy, err := order.RestoreOrder(o.ID(), tenantID, stale.TableID(), 5, stale.Contact(), stale.Items(),
		stale.Total(), order.Pending, "", placedAt, placedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(staleCopy.Advance(order.Confirmed, kernel.RoleWaiter, placedAt.Add(2*time.Minute)))

	err = suite.repository.UpdateStatus(ctx, staleCopy, order.Pending)

	var transitionErr *errs.InvalidTransitionError
	suite.Require().ErrorAs(err, &transitionErr)
	suite.Equal("pending", transitionErr.From)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_MissingOrderIsNotFound() {
	o, err := suite.restaurant.NewOrder(1, placedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Advance(order.Confirmed, kernel.RoleWaiter, placedAt))

	err = suite.repository.UpdateStatus(context.Background(), o, order.Pending)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountUnpaidByTable() {
	ctx := context.Background()
	tenantID, tableID := suite.restaurant.Tenant.ID(), suite.restaurant.Table.ID()

	paid := suite.addOrder(1)
	suite.addOrder(2)
	suite.Require().NoError(suite.db.Exec("UPDATE orders SET status = ? WHERE id = ?", int(order.Paid), paid.ID().Bytes()).Error)

	count, err := suite.repository.CountUnpaidByTable(ctx, tenantID, tableID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.repository.CountUnpaidByTable(ctx, tenantID, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(count)
}
