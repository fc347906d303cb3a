package commands_test

import (
	"errors"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type placeOrderFixture struct {
	uow      *MockUoW
	factory  *uowFactory
	relay    *MockRelayTrigger
	handler  commands.PlaceOrderCommandHandler
	table    *table.Table
	tenantID kernel.UUID
}

func newPlaceOrderFixture(t *testing.T) *placeOrderFixture {
	t.Helper()
	tenantID := kernel.NewUUID()
	token, err := kernel.AccessTokenFromString(tableToken)
	require.NoError(t, err)
	tb, err := table.RestoreTable(kernel.NewUUID(), tenantID, 7, token, table.Available)
	require.NoError(t, err)

	f := &placeOrderFixture{
		uow:      newMockUoW(),
		relay:    new(MockRelayTrigger),
		table:    tb,
		tenantID: tenantID,
	}
	f.factory = &uowFactory{uow: f.uow}
	f.handler = commands.NewPlaceOrderCommandHandler(orderUoWFactory{f.factory}, f.relay, kernel.FixedClock(now))
	return f
}

func (f *placeOrderFixture) menuItem(t *testing.T, name, category string, price int64) *menu.Item {
	t.Helper()
	m, err := kernel.NewMoney(price)
	require.NoError(t, err)
	item, err := menu.NewItem(kernel.NewUUID(), f.tenantID, name, "", m, category, 10)
	require.NoError(t, err)
	return item
}

func placeCommand(t *testing.T, lines ...commands.OrderLine) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), tableToken, "", "9999999999", lines, "")
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	f := newPlaceOrderFixture(t)
	pizza := f.menuItem(t, "Pizza", "Mains", 299)
	cmd := placeCommand(t, commands.OrderLine{MenuItemID: pizza.ID(), Quantity: 2})

	var stored *order.Order
	f.uow.expectTx(true)
	f.uow.tables.On("GetByToken", mock.Anything, f.table.Token()).Return(f.table, nil).Once()
	f.uow.menu.On("GetMany", mock.Anything, []kernel.UUID{pizza.ID()}).Return([]*menu.Item{pizza}, nil).Once()
	f.uow.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	f.uow.tables.On("Update", mock.Anything, f.table).Return(nil).Once()
	f.relay.On("Trigger").Once()

	placed, err := f.handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Same(t, stored, placed, "the committed order is returned to the caller")
	assert.Equal(t, cmd.OrderID(), stored.ID())
	assert.Equal(t, int64(598), stored.Total().Amount())
	assert.Equal(t, order.Pending, stored.Status())
	assert.Equal(t, 7, stored.TableNumber())
	assert.True(t, stored.TenantID().IsEqual(f.tenantID))
	assert.Equal(t, now, stored.CreatedAt())
	require.Len(t, stored.DomainEvents(), 1)
	assert.Equal(t, order.EventPlaced, stored.DomainEvents()[0].Kind)
	assert.Equal(t, table.Occupied, f.table.Status())
	f.uow.assertAll(t)
	f.relay.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_MergesRepeatedItemsAndCapturesMenu(t *testing.T) {
	f := newPlaceOrderFixture(t)
	f.table.Occupy()
	pizza := f.menuItem(t, "Pizza", "Mains", 299)
	soda := f.menuItem(t, "Soda", "", 150)
	cmd := placeCommand(t,
		commands.OrderLine{MenuItemID: pizza.ID(), Quantity: 1},
		commands.OrderLine{MenuItemID: soda.ID(), Quantity: 2},
		commands.OrderLine{MenuItemID: pizza.ID(), Quantity: 1},
	)

	var stored *order.Order
	f.uow.expectTx(true)
	f.uow.tables.On("GetByToken", mock.Anything, f.table.Token()).Return(f.table, nil).Once()
	f.uow.menu.On("GetMany", mock.Anything, mock.Anything).Return([]*menu.Item{soda, pizza}, nil).Once()
	f.uow.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	f.relay.On("Trigger").Once()

	_, err := f.handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	items := stored.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Pizza", items[0].Name())
	assert.Equal(t, 2, items[0].Quantity())
	assert.Equal(t, kernel.DefaultCategory, items[1].Category())
	assert.Equal(t, int64(2*299+2*150), stored.Total().Amount())
	f.uow.tables.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.assertAll(t)
}

func TestPlaceOrderCommandHandler_Handle_RejectsBadMenuItems(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(t *testing.T, f *placeOrderFixture) (*menu.Item, []*menu.Item)
		expected string
	}{
		{
			name: "unknown item",
			setup: func(t *testing.T, f *placeOrderFixture) (*menu.Item, []*menu.Item) {
				return f.menuItem(t, "Pizza", "Mains", 299), nil
			},
			expected: "does not exist",
		},
		{
			name: "unavailable item",
			setup: func(t *testing.T, f *placeOrderFixture) (*menu.Item, []*menu.Item) {
				item := f.menuItem(t, "Pizza", "Mains", 299)
				item.SetAvailability(false)
				return item, []*menu.Item{item}
			},
			expected: "unavailable",
		},
		{
			name: "item of another tenant",
			setup: func(t *testing.T, _ *placeOrderFixture) (*menu.Item, []*menu.Item) {
				m, err := kernel.NewMoney(100)
				require.NoError(t, err)
				item, err := menu.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Foreign", "", m, "", 0)
				require.NoError(t, err)
				return item, []*menu.Item{item}
			},
			expected: "not on this menu",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPlaceOrderFixture(t)
			requested, found := tc.setup(t, f)
			cmd := placeCommand(t, commands.OrderLine{MenuItemID: requested.ID(), Quantity: 1})

			f.uow.expectTx(false)
			f.uow.tables.On("GetByToken", mock.Anything, f.table.Token()).Return(f.table, nil).Once()
			f.uow.menu.On("GetMany", mock.Anything, mock.Anything).Return(found, nil).Once()

			_, err := f.handler.Handle(t.Context(), cmd)

			require.ErrorIs(t, err, errs.ErrValidation)
			assert.Contains(t, err.Error(), tc.expected)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
			f.uow.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			f.relay.AssertNotCalled(t, "Trigger")
		})
	}
}

func TestPlaceOrderCommandHandler_Handle_UnknownTableToken(t *testing.T) {
	f := newPlaceOrderFixture(t)
	cmd := placeCommand(t, commands.OrderLine{MenuItemID: kernel.NewUUID(), Quantity: 1})

	f.uow.expectTx(false)
	f.uow.tables.On("GetByToken", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("table", tableToken)).Once()

	_, err := f.handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.uow.menu.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
	f.relay.AssertNotCalled(t, "Trigger")
}

func TestPlaceOrderCommandHandler_Handle_DatabaseFailures(t *testing.T) {
	t.Run("begin", func(t *testing.T) {
		f := newPlaceOrderFixture(t)
		f.uow.On("Begin", mock.Anything).Return(errors.New("connection refused")).Once()

		_, err := f.handler.Handle(t.Context(), placeCommand(t, commands.OrderLine{MenuItemID: kernel.NewUUID(), Quantity: 1}))

		require.ErrorIs(t, err, errs.ErrCollaboratorUnavailable)
	})

	t.Run("add leaves nothing behind", func(t *testing.T) {
		f := newPlaceOrderFixture(t)
		pizza := f.menuItem(t, "Pizza", "Mains", 299)

		f.uow.expectTx(false)
		f.uow.tables.On("GetByToken", mock.Anything, mock.Anything).Return(f.table, nil).Once()
		f.uow.menu.On("GetMany", mock.Anything, mock.Anything).Return([]*menu.Item{pizza}, nil).Once()
		f.uow.orders.On("Add", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		_, err := f.handler.Handle(t.Context(), placeCommand(t, commands.OrderLine{MenuItemID: pizza.ID(), Quantity: 1}))

		require.ErrorIs(t, err, errs.ErrCollaboratorUnavailable)
		assert.Contains(t, err.Error(), "disk full")
		f.uow.AssertCalled(t, "Rollback", mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.relay.AssertNotCalled(t, "Trigger")
	})

	t.Run("commit", func(t *testing.T) {
		f := newPlaceOrderFixture(t)
		pizza := f.menuItem(t, "Pizza", "Mains", 299)

		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
		f.uow.On("Commit", mock.Anything).Return(errors.New("serialization failure")).Once()
		f.uow.tables.On("GetByToken", mock.Anything, mock.Anything).Return(f.table, nil).Once()
		f.uow.tables.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		f.uow.menu.On("GetMany", mock.Anything, mock.Anything).Return([]*menu.Item{pizza}, nil).Once()
		f.uow.orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.handler.Handle(t.Context(), placeCommand(t, commands.OrderLine{MenuItemID: pizza.ID(), Quantity: 1}))

		require.ErrorIs(t, err, errs.ErrCollaboratorUnavailable)
		f.relay.AssertNotCalled(t, "Trigger")
	})
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newPlaceOrderFixture(t)

	_, err := f.handler.Handle(t.Context(), commands.PlaceOrderCommand{})

	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	assert.Equal(t, 0, f.factory.created)
}
