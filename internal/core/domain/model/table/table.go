// Package table models the dining tables of a tenant. Each table carries the access
// token printed in its QR code; customers reach the menu through that token only.
package table

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrTableIsNotConstructed is returned when a Table instance was not created through
	// NewTable or RestoreTable.
	ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")
)

// Table is admin-owned reference data. Number is unique per tenant.
type Table struct {
	id       kernel.UUID
	tenantID kernel.UUID
	number   int
	token    kernel.AccessToken
	status   Status

	isConstructed bool
}

// NewTable creates an available table with a freshly generated access token.
func NewTable(id, tenantID kernel.UUID, number int) (*Table, error) {
	return RestoreTable(id, tenantID, number, kernel.NewAccessToken(), Available)
}

// RestoreTable rebuilds a table from storage.
func RestoreTable(id, tenantID kernel.UUID, number int, token kernel.AccessToken, status Status) (*Table, error) {
	t := &Table{isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		t.setTenantID(tenantID),
		t.setNumber(number),
		t.setToken(token),
		t.setStatus(status),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

func (t *Table) ID() kernel.UUID {
	return t.id
}

func (t *Table) TenantID() kernel.UUID {
	return t.tenantID
}

func (t *Table) Number() int {
	return t.number
}

func (t *Table) Token() kernel.AccessToken {
	return t.token
}

func (t *Table) Status() Status {
	return t.status
}

// Occupy marks the table as in use. Occupying an occupied table is a no-op.
func (t *Table) Occupy() {
	t.status = Occupied
}

// Release marks the table as free again.
func (t *Table) Release() {
	t.status = Available
}

// MenuURL is the address encoded in the table's QR code.
//
//	t.MenuURL("https://luigi.example.com") // https://luigi.example.com/menu?table=3f2a...
func (t *Table) MenuURL(baseURL string) string {
	q := url.Values{}
	q.Set("table", t.token.String())
	return strings.TrimRight(baseURL, "/") + "/menu?" + q.Encode()
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant", err)
	}
	t.tenantID = id
	return nil
}

func (t *Table) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("table number is invalid", fmt.Errorf("%d is not greater than 0", number))
	}
	t.number = number
	return nil
}

func (t *Table) setToken(token kernel.AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	t.token = token
	return nil
}

func (t *Table) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}
