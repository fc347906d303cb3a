// Package device models the staff devices that opted in to push notifications.
package device

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const maxPushTokenLength = 4096

var (
	// ErrDeviceIsNotConstructed is returned when a Device instance was not created through
	// NewDevice or RestoreDevice.
	ErrDeviceIsNotConstructed = errors.New("Device must be created via NewDevice constructor")
)

// Device is a staff phone or tablet identified by the push token its platform issued.
// Only staff roles can register devices.
type Device struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	role      kernel.Role
	pushToken string

	isConstructed bool
}

func NewDevice(id, tenantID kernel.UUID, role kernel.Role, pushToken string) (*Device, error) {
	d := &Device{isConstructed: true}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setRole(role),
		d.setPushToken(pushToken),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDevice rebuilds a device from storage.
func RestoreDevice(id, tenantID kernel.UUID, role kernel.Role, pushToken string) (*Device, error) {
	return NewDevice(id, tenantID, role, pushToken)
}

func (d *Device) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeviceIsNotConstructed
	}
	return nil
}

func (d *Device) ID() kernel.UUID {
	return d.id
}

func (d *Device) TenantID() kernel.UUID {
	return d.tenantID
}

func (d *Device) Role() kernel.Role {
	return d.role
}

func (d *Device) PushToken() string {
	return d.pushToken
}

func (d *Device) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Device) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant", err)
	}
	d.tenantID = id
	return nil
}

func (d *Device) setRole(role kernel.Role) error {
	if !role.IsStaff() {
		return errs.NewValueIsInvalidErrorWithCause("device role", fmt.Errorf("%s devices cannot receive staff notifications", role))
	}
	d.role = role
	return nil
}

func (d *Device) setPushToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errs.NewValueIsRequiredError("push token")
	}
	if len(token) > maxPushTokenLength {
		return errs.NewValueIsOutOfRangeError("push token length", len(token), 1, maxPushTokenLength)
	}
	d.pushToken = token
	return nil
}
