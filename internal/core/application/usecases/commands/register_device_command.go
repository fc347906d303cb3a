package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/device"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrRegisterDeviceCommandIsNotConstructed = errors.New(
		"RegisterDeviceCommand must be created via NewRegisterDeviceCommand constructor",
	)
)

// RegisterDeviceCommand subscribes a staff device to push notifications.
type RegisterDeviceCommand struct {
	device *device.Device

	guard guard.ConstructorGuard
}

func NewRegisterDeviceCommand(deviceID, tenantID kernel.UUID, role kernel.Role, pushToken string) (RegisterDeviceCommand, error) {
	d, err := device.NewDevice(deviceID, tenantID, role, pushToken)
	if err != nil {
		return RegisterDeviceCommand{}, err
	}
	return RegisterDeviceCommand{device: d, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterDeviceCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDeviceCommandIsNotConstructed)
}

func (c RegisterDeviceCommand) DeviceID() kernel.UUID {
	return c.device.ID()
}

func (c RegisterDeviceCommand) TenantID() kernel.UUID {
	return c.device.TenantID()
}

func (c RegisterDeviceCommand) Role() kernel.Role {
	return c.device.Role()
}

func (c RegisterDeviceCommand) PushToken() string {
	return c.device.PushToken()
}
