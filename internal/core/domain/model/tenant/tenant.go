// Package tenant models a restaurant account. Every table, menu item, order and staff
// device belongs to exactly one tenant.
package tenant

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrTenantIsNotConstructed is returned when a Tenant instance was not created through
	// NewTenant or RestoreTenant.
	ErrTenantIsNotConstructed = errors.New("Tenant must be created via NewTenant constructor")

	domainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9.-]{0,251}[a-z0-9])?$`)
)

// Tenant is one restaurant. Domain is unique across the installation and is stored
// lower-cased.
type Tenant struct {
	id     kernel.UUID
	name   string
	domain string

	isConstructed bool
}

func NewTenant(id kernel.UUID, name, domain string) (*Tenant, error) {
	t := &Tenant{isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setDomain(domain),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTenant rebuilds a tenant from storage.
func RestoreTenant(id kernel.UUID, name, domain string) (*Tenant, error) {
	return NewTenant(id, name, domain)
}

func (t *Tenant) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTenantIsNotConstructed
	}
	return nil
}

func (t *Tenant) ID() kernel.UUID {
	return t.id
}

func (t *Tenant) Name() string {
	return t.name
}

func (t *Tenant) Domain() string {
	return t.domain
}

func (t *Tenant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tenant) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("tenant name")
	}
	t.name = name
	return nil
}

func (t *Tenant) setDomain(domain string) error {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return errs.NewValueIsRequiredError("tenant domain")
	}
	if !domainPattern.MatchString(domain) {
		return errs.NewValueIsInvalidErrorWithCause("tenant domain", fmt.Errorf("%q is not a host name", domain))
	}
	t.domain = domain
	return nil
}
