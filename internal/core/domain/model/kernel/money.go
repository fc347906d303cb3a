package kernel

import (
	"fmt"
	"math"
	"strconv"

	"restaurant/internal/pkg/errs"
)

// Money is an amount in the tenant's smallest billing unit. Menu prices and order
// totals are stored as Money so that sums are exact.
type Money struct {
	amount int64
}

// NewMoney fails for negative amounts.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, int64(math.MaxInt64))
	}
	return Money{amount: amount}, nil
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{}
}

func (m Money) Amount() int64 {
	return m.amount
}

// Add returns m + other. Sums past math.MaxInt64 are out of range.
func (m Money) Add(other Money) (Money, error) {
	if other.amount > math.MaxInt64-m.amount {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d + %d", m.amount, other.amount), 0, int64(math.MaxInt64))
	}
	return Money{amount: m.amount + other.amount}, nil
}

// Times returns m × quantity. Negative quantities and products past math.MaxInt64 are
// out of range.
func (m Money) Times(quantity int) (Money, error) {
	q := int64(quantity)
	if q < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, MaxQuantity)
	}
	if q > 0 && m.amount > math.MaxInt64/q {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d × %d", m.amount, q), 0, int64(math.MaxInt64))
	}
	return Money{amount: m.amount * q}, nil
}

func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

func (m Money) String() string {
	return strconv.FormatInt(m.amount, 10)
}

// GoString keeps test failure output readable.
func (m Money) GoString() string {
	return fmt.Sprintf("kernel.Money(%d)", m.amount)
}
