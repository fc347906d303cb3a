package order

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (forward only, one step at a time):
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> Served ──> Paid
//	  (waiter)     (kitchen)      (kitchen)   (waiter)   (waiter)
//
// The role under each arrow is the only role allowed to perform that step.
// Customers only create orders, which start in Pending.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a placed order awaiting waiter confirmation.
	Pending

	// Confirmed means a waiter accepted the order and its ticket went to the kitchen.
	Confirmed

	// Preparing means the kitchen started cooking.
	Preparing

	// Ready means the food is waiting to be carried to the table.
	Ready

	// Served means the food reached the table.
	Served

	// Paid is the terminal status; the bill was settled.
	Paid
)

var statusNames = map[Status]string{
	Unknown:   "unknown",
	Pending:   "pending",
	Confirmed: "confirmed",
	Preparing: "preparing",
	Ready:     "ready",
	Served:    "served",
	Paid:      "paid",
}

// transitionActors maps a target status to the role allowed to move an order into it.
var transitionActors = map[Status]kernel.Role{
	Confirmed: kernel.RoleWaiter,
	Preparing: kernel.RoleKitchen,
	Ready:     kernel.RoleKitchen,
	Served:    kernel.RoleWaiter,
	Paid:      kernel.RoleWaiter,
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, Served, Paid}
}

// ParseStatus converts the lower-case wire name into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st, n := range statusNames {
		if st != Unknown && n == name {
			return st, nil
		}
	}
	if name == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of Pending..Paid.
func (s Status) Validate() error {
	if s < Pending || s > Paid {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, "unknown" for invalid values.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Paid
}

// Next returns the unique successor of s.
func (s Status) Next() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionError(s.String(), "", "paid is a final status")
	}
	return s + 1, nil
}

// AuthorizedRole returns the only role allowed to move an order into target.
// Pending and invalid targets have no authorized role.
func AuthorizedRole(target Status) (kernel.Role, bool) {
	r, ok := transitionActors[target]
	return r, ok
}

// ValidateAdvance checks without side effects that actor may move an order from s to
// target. Every rejection is an *errs.InvalidTransitionError.
func (s Status) ValidateAdvance(target Status, actor kernel.Role) error {
	if err := target.Validate(); err != nil {
		return errs.NewInvalidTransitionError(s.String(), target.String(), "target status is invalid")
	}
	if err := s.Validate(); err != nil {
		return errs.NewInvalidTransitionError(s.String(), target.String(), "current status is invalid")
	}

	switch {
	case target == s:
		return errs.NewInvalidTransitionError(s.String(), target.String(), "order is already "+s.String())
	case target < s:
		return errs.NewInvalidTransitionError(s.String(), target.String(), "orders cannot move backwards")
	case target != s+1:
		return errs.NewInvalidTransitionError(
			s.String(), target.String(),
			fmt.Sprintf("next status is %s", (s + 1).String()),
		)
	}

	allowed, _ := AuthorizedRole(target)
	if actor != allowed {
		return errs.NewInvalidTransitionError(
			s.String(), target.String(),
			fmt.Sprintf("%s may not move orders to %s", actor.String(), target.String()),
		)
	}

	return nil
}

// Advance returns target when actor may move an order from s to target.
func (s Status) Advance(target Status, actor kernel.Role) (Status, error) {
	if err := s.ValidateAdvance(target, actor); err != nil {
		return Unknown, err
	}
	return target, nil
}
