package cart_test

import (
	"math"
	"testing"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, name, category string, price int64, qty int) cart.Line {
	t.Helper()
	m, err := kernel.NewMoney(price)
	require.NoError(t, err)
	return cart.Line{MenuItemID: kernel.NewUUID(), Name: name, Category: category, UnitPrice: m, Quantity: qty}
}

func total(t *testing.T, lines []cart.Line) int64 {
	t.Helper()
	m, err := cart.Total(lines)
	require.NoError(t, err)
	return m.Amount()
}

func TestCart_Add(t *testing.T) {
	t.Run("pizza for two", func(t *testing.T) {
		c, err := cart.Cart{}.Add(line(t, "Pizza", "Mains", 299, 2))

		require.NoError(t, err)
		assert.Equal(t, int64(598), total(t, c.Lines()))
		assert.Equal(t, 2, c.Count())
	})

	t.Run("same item merges into one line", func(t *testing.T) {
		pizza := line(t, "Pizza", "Mains", 299, 1)
		c, err := cart.New(pizza, line(t, "Soda", "", 100, 1), pizza)

		require.NoError(t, err)
		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.Equal(t, kernel.DefaultCategory, lines[1].Category)
	})

	t.Run("receiver is untouched", func(t *testing.T) {
		empty := cart.Cart{}

		_, err := empty.Add(line(t, "Pizza", "Mains", 299, 1))

		require.NoError(t, err)
		assert.True(t, empty.IsEmpty())
	})

	t.Run("rejects invalid lines", func(t *testing.T) {
		_, err := cart.Cart{}.Add(line(t, "Pizza", "Mains", 299, 0))
		require.ErrorIs(t, err, errs.ErrValidation)

		_, err = cart.Cart{}.Add(cart.Line{Name: "Ghost", Quantity: 1})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCart_QuantityLimits(t *testing.T) {
	t.Run("line above the limit is rejected", func(t *testing.T) {
		_, err := cart.Cart{}.Add(line(t, "Pizza", "Mains", 299, kernel.MaxQuantity+1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("merging repeated lines past the limit is rejected", func(t *testing.T) {
		pizza := line(t, "Pizza", "Mains", 299, kernel.MaxQuantity)
		c, err := cart.New(pizza)
		require.NoError(t, err)

		again, err := c.Add(pizza)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, kernel.MaxQuantity, again.Count(), "cart is unchanged")
	})

	t.Run("increment stops at the limit", func(t *testing.T) {
		pizza := line(t, "Pizza", "Mains", 299, kernel.MaxQuantity)
		c, err := cart.New(pizza)
		require.NoError(t, err)

		_, err = c.Increment(pizza.MenuItemID)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("total past int64 fails instead of wrapping", func(t *testing.T) {
		gold := line(t, "Gold", "Mains", math.MaxInt64/2, 1)
		platinum := line(t, "Platinum", "Mains", math.MaxInt64/2, 1)
		c, err := cart.New(gold, platinum, line(t, "Soda", "Drinks", 100, 1))
		require.NoError(t, err)

		_, err = c.Total()

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCart_IncrementDecrement(t *testing.T) {
	pizza := line(t, "Pizza", "Mains", 299, 1)
	soda := line(t, "Soda", "Drinks", 100, 1)
	c, err := cart.New(pizza, soda)
	require.NoError(t, err)

	c, err = c.Increment(pizza.MenuItemID)
	require.NoError(t, err)
	assert.Equal(t, int64(698), total(t, c.Lines()))

	before := c
	c, err = c.Decrement(soda.MenuItemID)
	require.NoError(t, err)
	require.Len(t, c.Lines(), 1, "line removed at zero")
	assert.Equal(t, "Pizza", c.Lines()[0].Name)
	assert.Len(t, before.Lines(), 2, "decrement does not mutate the receiver")

	c, err = c.Decrement(pizza.MenuItemID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	_, err = c.Increment(soda.MenuItemID)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = c.Decrement(kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGroupByCategory(t *testing.T) {
	lines := []cart.Line{
		line(t, "Pizza", "Mains", 299, 2),
		line(t, "Soda", "Drinks", 100, 1),
		line(t, "Bread", "", 50, 1),
		line(t, "Pasta", "Mains", 450, 1),
		line(t, "Beer", "Drinks", 350, 3),
	}

	groups := cart.GroupByCategory(lines)

	require.Len(t, groups, 3)
	assert.Equal(t, "Mains", groups[0].Category)
	assert.Equal(t, "Drinks", groups[1].Category)
	assert.Equal(t, kernel.DefaultCategory, groups[2].Category)
	assert.Equal(t, "Pizza", groups[0].Items[0].Name)
	assert.Equal(t, "Pasta", groups[0].Items[1].Name)
	assert.Equal(t, "Beer", groups[1].Items[1].Name)
}

func TestGroupByCategory_FlattenRoundTrip(t *testing.T) {
	lines := []cart.Line{
		line(t, "Pizza", "Mains", 299, 2),
		line(t, "Soda", "Drinks", 100, 1),
		line(t, "Pasta", "Mains", 450, 1),
		line(t, "Cake", "Desserts", 300, 4),
		line(t, "Bread", "", 50, 1),
	}

	flat := cart.Flatten(cart.GroupByCategory(lines))

	assert.ElementsMatch(t, lines, flat)
	assert.Equal(t, total(t, lines), total(t, flat))
}

func TestGroupBy_Empty(t *testing.T) {
	groups := cart.GroupByCategory(nil)

	assert.NotNil(t, groups)
	assert.Empty(t, groups)
	assert.Empty(t, cart.Flatten(groups))
	assert.Equal(t, int64(0), total(t, nil))
}

func TestGroupBy_Deterministic(t *testing.T) {
	lines := []cart.Line{
		line(t, "A", "x", 1, 1),
		line(t, "B", "y", 1, 1),
		line(t, "C", "x", 1, 1),
	}

	assert.Equal(t, cart.GroupByCategory(lines), cart.GroupByCategory(lines))
}
