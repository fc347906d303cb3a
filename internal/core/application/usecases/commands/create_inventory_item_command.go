package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateInventoryItemCommandIsNotConstructed = errors.New(
		"CreateInventoryItemCommand must be created via NewCreateInventoryItemCommand constructor",
	)
)

// CreateInventoryItemCommand starts tracking the stock of an ingredient or supply.
type CreateInventoryItemCommand struct {
	item *inventory.Item

	guard guard.ConstructorGuard
}

// NewCreateInventoryItemCommand validates the fields by building the stock entry up front.
func NewCreateInventoryItemCommand(
	itemID, tenantID kernel.UUID,
	name, unit string,
	quantity, minThreshold float64,
) (CreateInventoryItemCommand, error) {
	u, err := inventory.ParseUnit(unit)
	if err != nil {
		return CreateInventoryItemCommand{}, err
	}

	item, err := inventory.NewItem(itemID, tenantID, name, u, quantity, minThreshold)
	if err != nil {
		return CreateInventoryItemCommand{}, err
	}

	return CreateInventoryItemCommand{item: item, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateInventoryItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateInventoryItemCommandIsNotConstructed)
}

func (c CreateInventoryItemCommand) ItemID() kernel.UUID {
	return c.item.ID()
}

func (c CreateInventoryItemCommand) TenantID() kernel.UUID {
	return c.item.TenantID()
}

func (c CreateInventoryItemCommand) Name() string {
	return c.item.Name()
}

func (c CreateInventoryItemCommand) Unit() inventory.Unit {
	return c.item.Unit()
}

func (c CreateInventoryItemCommand) Quantity() float64 {
	return c.item.Quantity()
}

func (c CreateInventoryItemCommand) MinThreshold() float64 {
	return c.item.MinThreshold()
}
