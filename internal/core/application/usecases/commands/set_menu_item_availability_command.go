package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrSetMenuItemAvailabilityCommandIsNotConstructed = errors.New(
		"SetMenuItemAvailabilityCommand must be created via NewSetMenuItemAvailabilityCommand constructor",
	)
)

// SetMenuItemAvailabilityCommand takes a dish off the menu or puts it back. Orders that
// already contain the dish are not affected.
type SetMenuItemAvailabilityCommand struct {
	tenantID  kernel.UUID
	itemID    kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

func NewSetMenuItemAvailabilityCommand(tenantID, itemID kernel.UUID, available bool) (SetMenuItemAvailabilityCommand, error) {
	if err := errors.Join(
		validateRequired("tenant", tenantID),
		validateRequired("menu item", itemID),
	); err != nil {
		return SetMenuItemAvailabilityCommand{}, err
	}

	return SetMenuItemAvailabilityCommand{
		tenantID:  tenantID,
		itemID:    itemID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetMenuItemAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetMenuItemAvailabilityCommandIsNotConstructed)
}

func (c SetMenuItemAvailabilityCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c SetMenuItemAvailabilityCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c SetMenuItemAvailabilityCommand) Available() bool {
	return c.available
}

func validateRequired(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
