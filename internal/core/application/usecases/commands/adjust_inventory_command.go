package commands

import (
	"errors"
	"math"

	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrAdjustInventoryCommandIsNotConstructed = errors.New(
		"AdjustInventoryCommand must be created via NewAdjustInventoryCommand constructor",
	)
)

// AdjustInventoryCommand records a stock count or a restock as the new quantity on hand.
type AdjustInventoryCommand struct {
	tenantID kernel.UUID
	itemID   kernel.UUID
	quantity float64

	guard guard.ConstructorGuard
}

func NewAdjustInventoryCommand(tenantID, itemID kernel.UUID, quantity float64) (AdjustInventoryCommand, error) {
	if err := errors.Join(
		validateRequired("tenant", tenantID),
		validateRequired("inventory item", itemID),
		validateStock(quantity),
	); err != nil {
		return AdjustInventoryCommand{}, err
	}

	return AdjustInventoryCommand{
		tenantID: tenantID,
		itemID:   itemID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustInventoryCommand) Validate() error {
	return c.guard.Validate(ErrAdjustInventoryCommandIsNotConstructed)
}

func (c AdjustInventoryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c AdjustInventoryCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c AdjustInventoryCommand) Quantity() float64 {
	return c.quantity
}

func validateStock(quantity float64) error {
	if math.IsNaN(quantity) || quantity < 0 || quantity > inventory.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, inventory.MaxQuantity)
	}
	return nil
}
