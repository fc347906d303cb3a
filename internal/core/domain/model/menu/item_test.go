package menu_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func TestNewItem(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		tenantID := kernel.NewUUID()

		item, err := menu.NewItem(kernel.NewUUID(), tenantID, " Margherita ", "", price(t, 299), "  ", 0)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "Margherita", item.Name())
		assert.Equal(t, kernel.DefaultCategory, item.Category())
		assert.True(t, item.IsAvailable())
		assert.Equal(t, 0, item.PrepMinutes())
		assert.Equal(t, int64(299), item.Price().Amount())
		assert.True(t, item.TenantID().IsEqual(tenantID))
	})

	t.Run("free items are allowed", func(t *testing.T) {
		_, err := menu.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Water", "tap", kernel.Zero(), "Drinks", 1)

		require.NoError(t, err)
	})

	t.Run("rejects bad fields", func(t *testing.T) {
		_, err := menu.NewItem(kernel.NewUUID(), kernel.UUID{}, "", "", price(t, 1), "", -5)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "menu item name")
		assert.Contains(t, err.Error(), "tenant")
	})
}

func TestItem_CheckOrderable(t *testing.T) {
	tenantID := kernel.NewUUID()
	item, err := menu.NewItem(kernel.NewUUID(), tenantID, "Soup", "", price(t, 500), "Starters", 10)
	require.NoError(t, err)

	require.NoError(t, item.CheckOrderable(tenantID))

	err = item.CheckOrderable(kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, err.Error(), "not on this menu")

	item.SetAvailability(false)
	err = item.CheckOrderable(tenantID)
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestRestoreItem_KeepsAvailability(t *testing.T) {
	item, err := menu.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), "Soup", "", price(t, 500), "Starters", false, 10)

	require.NoError(t, err)
	assert.False(t, item.IsAvailable())
}
