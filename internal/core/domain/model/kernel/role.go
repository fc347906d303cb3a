package kernel

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Role is the kind of client acting on an order. The role is declared by the caller;
// the order state machine decides which transitions each role may perform.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleWaiter
	RoleKitchen
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleUnknown:  "unknown",
	RoleCustomer: "customer",
	RoleWaiter:   "waiter",
	RoleKitchen:  "kitchen",
	RoleAdmin:    "admin",
}

// ParseRole accepts the lower-case role name, ignoring surrounding spaces and case.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r, n := range roleNames {
		if r != RoleUnknown && n == name {
			return r, nil
		}
	}
	if name == "" {
		return RoleUnknown, errs.NewValueIsRequiredError("role")
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return roleNames[RoleUnknown]
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsStaff reports whether the role belongs to restaurant personnel that can receive
// push notifications.
func (r Role) IsStaff() bool {
	return r == RoleWaiter || r == RoleKitchen || r == RoleAdmin
}
