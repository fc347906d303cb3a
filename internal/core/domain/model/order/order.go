package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root shared by the customer, waiter and kitchen roles.
//
// Invariants:
//   - belongs to exactly one tenant and one table
//   - has at least one item and a customer phone number
//   - total equals Σ unit price × quantity at placement and is never recomputed
//   - status only moves forward one step at a time, performed by the authorized role
type Order struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	tableID     kernel.UUID
	tableNumber int
	contact     Contact
	items       []Item
	total       kernel.Money
	status      Status
	notes       string
	createdAt   time.Time
	updatedAt   time.Time

	// events are recorded by state changes and drained by the unit of work
	events []ChangeEvent

	isConstructed bool
}

// NewOrder places an order in Pending status and records an EventPlaced change event.
//
//	o, err := order.NewOrder(kernel.NewUUID(), tenantID, tableID, 7, contact, items, "no onions", clock.Now())
func NewOrder(
	id, tenantID, tableID kernel.UUID,
	tableNumber int,
	contact Contact,
	items []Item,
	notes string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		notes:         strings.TrimSpace(notes),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setTable(tableID, tableNumber),
		o.setContact(contact),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	total, err := sumItems(o.items)
	if err != nil {
		return nil, err
	}
	o.total = total
	o.record(EventPlaced, Unknown, Pending, kernel.RoleCustomer, now)

	return o, nil
}

// RestoreOrder rebuilds an order from storage. The stored total is kept as is and no
// change events are recorded.
func RestoreOrder(
	id, tenantID, tableID kernel.UUID,
	tableNumber int,
	contact Contact,
	items []Item,
	total kernel.Money,
	status Status,
	notes string,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		total:         total,
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setTable(tableID, tableNumber),
		o.setContact(contact),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

func (o *Order) TableID() kernel.UUID {
	return o.tableID
}

func (o *Order) TableNumber() int {
	return o.tableNumber
}

func (o *Order) Contact() Contact {
	return o.contact
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Number is the short order number printed on kitchen tickets.
func (o *Order) Number() string {
	return ShortNumber(o.id)
}

// Advance moves the order to target on behalf of actor.
//
// Business rules:
//   - target must be the immediate successor of the current status
//   - actor must be the role authorized for that step (see Status)
//
// On success the status and update timestamp change and an EventStatusChanged event is
// recorded. On failure the order is left untouched and an *errs.InvalidTransitionError
// is returned.
func (o *Order) Advance(target Status, actor kernel.Role, now time.Time) error {
	newStatus, err := o.status.Advance(target, actor)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = newStatus
	o.updatedAt = now
	o.record(EventStatusChanged, previous, newStatus, actor, now)
	return nil
}

// DomainEvents returns the change events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []ChangeEvent {
	events := make([]ChangeEvent, len(o.events))
	copy(events, o.events)
	return events
}

// ClearDomainEvents drops recorded events once they have been handed to the outbox.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// ShortNumber returns the first eight characters of the id, upper-cased.
func ShortNumber(id kernel.UUID) string {
	s := id.String()
	if len(s) > 8 {
		s = s[:8]
	}
	return strings.ToUpper(s)
}

func (o *Order) record(kind EventKind, from, to Status, actor kernel.Role, now time.Time) {
	o.events = append(o.events, ChangeEvent{
		ID:          kernel.NewUUID(),
		Kind:        kind,
		OrderID:     o.id,
		TenantID:    o.tenantID,
		TableID:     o.tableID,
		TableNumber: o.tableNumber,
		OldStatus:   from,
		NewStatus:   to,
		Actor:       actor,
		OccurredAt:  now,
	})
}

func sumItems(items []Item) (kernel.Money, error) {
	total := kernel.Zero()
	for _, item := range items {
		var err error
		if total, err = total.Add(item.Subtotal()); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant", err)
	}
	o.tenantID = id
	return nil
}

func (o *Order) setTable(id kernel.UUID, number int) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("table", err)
	}
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("table number is invalid", fmt.Errorf("%d is not greater than 0", number))
	}
	o.tableID = id
	o.tableNumber = number
	return nil
}

func (o *Order) setContact(contact Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	o.contact = contact
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if item.quantity <= 0 || item.menuItemID.Validate() != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d must be created via NewItem", i))
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
