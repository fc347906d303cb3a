package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateMenuItemCommandIsNotConstructed = errors.New(
		"CreateMenuItemCommand must be created via NewCreateMenuItemCommand constructor",
	)
)

// CreateMenuItemCommand adds an available dish to a tenant's menu.
type CreateMenuItemCommand struct {
	item *menu.Item

	guard guard.ConstructorGuard
}

// NewCreateMenuItemCommand validates the fields by building the menu item up front.
// price is in minor currency units.
func NewCreateMenuItemCommand(
	itemID, tenantID kernel.UUID,
	name, description string,
	price int64,
	category string,
	prepMinutes int,
) (CreateMenuItemCommand, error) {
	amount, err := kernel.NewMoney(price)
	if err != nil {
		return CreateMenuItemCommand{}, err
	}

	item, err := menu.NewItem(itemID, tenantID, name, description, amount, category, prepMinutes)
	if err != nil {
		return CreateMenuItemCommand{}, err
	}

	return CreateMenuItemCommand{item: item, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateMenuItemCommandIsNotConstructed)
}

func (c CreateMenuItemCommand) ItemID() kernel.UUID {
	return c.item.ID()
}

func (c CreateMenuItemCommand) TenantID() kernel.UUID {
	return c.item.TenantID()
}

func (c CreateMenuItemCommand) Name() string {
	return c.item.Name()
}

func (c CreateMenuItemCommand) Description() string {
	return c.item.Description()
}

func (c CreateMenuItemCommand) Price() kernel.Money {
	return c.item.Price()
}

func (c CreateMenuItemCommand) Category() string {
	return c.item.Category()
}

func (c CreateMenuItemCommand) PrepMinutes() int {
	return c.item.PrepMinutes()
}
