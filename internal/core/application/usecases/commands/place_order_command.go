package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// MaxNotesLength is the most characters of kitchen notes an order may carry.
const MaxNotesLength = 500

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// OrderLine is one requested menu item and how many of it the customer wants.
type OrderLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// PlaceOrderCommand represents a customer submitting their cart from a table.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, token, "Ann", "9999999999",
//	    []OrderLine{{MenuItemID: pizzaID, Quantity: 2}}, "no onions")
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	tableToken kernel.AccessToken
	contact    order.Contact
	lines      []OrderLine
	notes      string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the request shape. Whether the table and menu items
// exist is checked by the handler.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	tableToken string,
	customerName, customerPhone string,
	lines []OrderLine,
	notes string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTableToken(tableToken),
		cmd.setContact(customerName, customerPhone),
		cmd.setLines(lines),
		cmd.setNotes(notes),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) TableToken() kernel.AccessToken {
	return c.tableToken
}

func (c PlaceOrderCommand) Contact() order.Contact {
	return c.contact
}

// Lines returns a copy of the requested lines.
func (c PlaceOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c PlaceOrderCommand) Notes() string {
	return c.notes
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setTableToken(token string) error {
	t, err := kernel.AccessTokenFromString(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	c.tableToken = t
	return nil
}

func (c *PlaceOrderCommand) setContact(name, phone string) error {
	contact, err := order.NewContact(name, phone)
	if err != nil {
		return err
	}
	c.contact = contact
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, l := range lines {
		if err := l.MenuItemID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].menuItemId", i), err)
		}
		if l.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", l.Quantity))
		}
		if err := kernel.CheckQuantityLimit(l.Quantity); err != nil {
			return err
		}
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *PlaceOrderCommand) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, MaxNotesLength)
	}
	c.notes = notes
	return nil
}
