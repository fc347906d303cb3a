// Package inventory models the stock a tenant keeps of its ingredients and supplies.
// Stock is admin-owned reference data; it is counted and restocked by hand and never
// drawn down by orders.
package inventory

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// MaxQuantity bounds both the stock level and the alert threshold.
const MaxQuantity = 1_000_000

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created through
	// NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("inventory Item must be created via NewItem constructor")
)

// Unit is the measure an item is counted in.
type Unit string

const (
	Kilogram   Unit = "kg"
	Gram       Unit = "g"
	Litre      Unit = "l"
	Millilitre Unit = "ml"
	Piece      Unit = "pcs"
)

// ParseUnit accepts the lower-case unit names. A blank unit is Piece.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	switch u {
	case "":
		return Piece, nil
	case Kilogram, Gram, Litre, Millilitre, Piece:
		return u, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not one of kg, g, l, ml, pcs", s))
	}
}

// Item is one stocked ingredient or supply.
//
// Invariants:
//   - quantity and threshold are finite and within 0..MaxQuantity
//   - the item is low on stock when quantity <= threshold
type Item struct {
	id           kernel.UUID
	tenantID     kernel.UUID
	name         string
	unit         Unit
	quantity     float64
	minThreshold float64

	isConstructed bool
}

// NewItem creates a stock entry.
//
//	flour, err := inventory.NewItem(kernel.NewUUID(), tenantID, "Flour", inventory.Kilogram, 25, 5)
func NewItem(id, tenantID kernel.UUID, name string, unit Unit, quantity, minThreshold float64) (*Item, error) {
	return RestoreItem(id, tenantID, name, unit, quantity, minThreshold)
}

// RestoreItem rebuilds a stock entry from storage.
func RestoreItem(id, tenantID kernel.UUID, name string, unit Unit, quantity, minThreshold float64) (*Item, error) {
	i := &Item{isConstructed: true}

	if err := errors.Join(
		i.setID(id),
		i.setTenantID(tenantID),
		i.setName(name),
		i.setUnit(unit),
		i.SetQuantity(quantity),
		i.setMinThreshold(minThreshold),
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

func (i *Item) Unit() Unit {
	return i.unit
}

func (i *Item) Quantity() float64 {
	return i.quantity
}

func (i *Item) MinThreshold() float64 {
	return i.minThreshold
}

// IsLow reports whether stock has fallen to the alert threshold.
func (i *Item) IsLow() bool {
	return i.quantity <= i.minThreshold
}

// SetQuantity records a stock count or restock.
func (i *Item) SetQuantity(quantity float64) error {
	if err := checkAmount("quantity", quantity); err != nil {
		return err
	}
	i.quantity = quantity
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
		return errs.NewValueIsRequiredError("inventory item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnit(unit Unit) error {
	u, err := ParseUnit(string(unit))
	if err != nil {
		return err
	}
	i.unit = u
	return nil
}

func (i *Item) setMinThreshold(threshold float64) error {
	if err := checkAmount("min threshold", threshold); err != nil {
		return err
	}
	i.minThreshold = threshold
	return nil
}

func checkAmount(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > MaxQuantity {
		return errs.NewValueIsOutOfRangeError(name, v, 0, MaxQuantity)
	}
	return nil
}
