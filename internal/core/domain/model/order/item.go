package order

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Item is one order line. Name, category and unit price are copied from the menu when
// the order is placed, so later menu edits never change historical orders.
type Item struct {
	menuItemID kernel.UUID
	name       string
	category   string
	unitPrice  kernel.Money
	quantity   int
	subtotal   kernel.Money
}

// NewItem validates a line. A blank category becomes kernel.DefaultCategory.
func NewItem(menuItemID kernel.UUID, name, category string, unitPrice kernel.Money, quantity int) (Item, error) {
	item := Item{
		category:  kernel.CategoryOrDefault(category),
		unitPrice: unitPrice,
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	subtotal, err := unitPrice.Times(item.quantity)
	if err != nil {
		return Item{}, err
	}
	item.subtotal = subtotal

	return item, nil
}

func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Category() string {
	return i.category
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal is unit price × quantity.
func (i Item) Subtotal() kernel.Money {
	return i.subtotal
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := kernel.CheckQuantityLimit(quantity); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}
