package order

import (
	"fmt"
	"regexp"
	"strings"

	"restaurant/internal/pkg/errs"
)

// GuestName is used when the customer leaves the name blank.
const GuestName = "Guest"

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{3,18}[0-9]$`)

// Contact identifies the customer who placed an order. The phone number is the only
// mandatory field.
type Contact struct {
	name  string
	phone string
}

func NewContact(name, phone string) (Contact, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Contact{}, errs.NewValueIsRequiredError("customer phone")
	}
	if !phonePattern.MatchString(phone) {
		return Contact{}, errs.NewValueIsInvalidErrorWithCause("customer phone", fmt.Errorf("%q is not a phone number", phone))
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = GuestName
	}

	return Contact{name: name, phone: phone}, nil
}

func (c Contact) Name() string {
	return c.name
}

func (c Contact) Phone() string {
	return c.phone
}

func (c Contact) Validate() error {
	if c.phone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}
	return nil
}
