// Package menu models the dishes a tenant offers. Menu items are admin-owned reference
// data; orders copy name, category and price from them at placement time.
package menu

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const maxPrepMinutes = 600

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created through
	// NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("menu Item must be created via NewItem constructor")
)

// Item is a dish on a tenant's menu.
//
// Invariants:
//   - price is never negative
//   - category is never blank; it defaults to kernel.DefaultCategory
//   - prep time is 0 (unknown) or a positive number of minutes
type Item struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	name        string
	description string
	price       kernel.Money
	category    string
	available   bool
	prepMinutes int

	isConstructed bool
}

// NewItem creates an available menu item.
func NewItem(
	id, tenantID kernel.UUID,
	name, description string,
	price kernel.Money,
	category string,
	prepMinutes int,
) (*Item, error) {
	return RestoreItem(id, tenantID, name, description, price, category, true, prepMinutes)
}

// RestoreItem rebuilds a menu item from storage.
func RestoreItem(
	id, tenantID kernel.UUID,
	name, description string,
	price kernel.Money,
	category string,
	available bool,
	prepMinutes int,
) (*Item, error) {
	i := &Item{
		description:   strings.TrimSpace(description),
		price:         price,
		category:      kernel.CategoryOrDefault(category),
		available:     available,
		isConstructed: true,
	}

	if err := errors.Join(
		i.setID(id),
		i.setTenantID(tenantID),
		i.setName(name),
		i.setPrepMinutes(prepMinutes),
	); err != nil {
		return nil, err
	}

	return i, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) TenantID() kernel.UUID {
	return i.tenantID
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Description() string {
	return i.description
}

func (i *Item) Price() kernel.Money {
	return i.price
}

func (i *Item) Category() string {
	return i.category
}

func (i *Item) IsAvailable() bool {
	return i.available
}

// PrepMinutes is the estimated preparation time, 0 when unknown.
func (i *Item) PrepMinutes() int {
	return i.prepMinutes
}

// SetAvailability toggles whether customers can order the item.
func (i *Item) SetAvailability(available bool) {
	i.available = available
}

// CheckOrderable fails with a validation error unless the item belongs to tenantID and
// is currently available.
func (i *Item) CheckOrderable(tenantID kernel.UUID) error {
	if !i.tenantID.IsEqual(tenantID) {
		return errs.NewValueIsInvalidErrorWithCause("menu item", fmt.Errorf("%s is not on this menu", i.id))
	}
	if !i.available {
		return errs.NewValueIsInvalidErrorWithCause("menu item", fmt.Errorf("%s is currently unavailable", i.name))
	}
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant", err)
	}
	i.tenantID = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("menu item name")
	}
	i.name = name
	return nil
}

func (i *Item) setPrepMinutes(minutes int) error {
	if minutes < 0 || minutes > maxPrepMinutes {
		return errs.NewValueIsOutOfRangeError("prep minutes", minutes, 0, maxPrepMinutes)
	}
	i.prepMinutes = minutes
	return nil
}
