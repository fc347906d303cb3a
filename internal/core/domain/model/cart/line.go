package cart

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Line is one item with its captured unit price and quantity.
type Line struct {
	MenuItemID kernel.UUID
	Name       string
	Category   string
	UnitPrice  kernel.Money
	Quantity   int
}

// Subtotal is unit price × quantity.
func (l Line) Subtotal() (kernel.Money, error) {
	return l.UnitPrice.Times(l.Quantity)
}

// Validate checks the line can be added to a cart.
func (l Line) Validate() error {
	if err := l.MenuItemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("menu item", err)
	}
	if strings.TrimSpace(l.Name) == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	if l.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", l.Quantity))
	}
	if err := kernel.CheckQuantityLimit(l.Quantity); err != nil {
		return err
	}
	_, err := l.Subtotal()
	return err
}

func (l Line) categoryOrDefault() string {
	return kernel.CategoryOrDefault(l.Category)
}

// Total sums the subtotals of lines. It fails instead of wrapping when the sum does not
// fit in kernel.Money.
func Total(lines []Line) (kernel.Money, error) {
	total := kernel.Zero()
	for _, l := range lines {
		subtotal, err := l.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(subtotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}
