package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrPickupPackageCommandIsNotConstructed = errors.New(
	"PickupPackageCommand must be created via NewPickupPackageCommand constructor",
)

// PickupPackageCommand represents a courier claiming a package at their
// resolved location.
type PickupPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	courierID kernel.UUID
	location  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewPickupPackageCommand creates a command for a courier to claim a package.
func NewPickupPackageCommand(
	packageID kernel.UUID,
	courierID kernel.UUID,
	location kernel.GeoPoint,
) (PickupPackageCommand, error) {
	cmd := PickupPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setCourierID(courierID),
		cmd.setLocation(location),
	); err != nil {
		return PickupPackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupPackageCommand) Validate() error {
	return c.guard.Validate(ErrPickupPackageCommandIsNotConstructed)
}

// PackageID returns the package being claimed.
func (c PickupPackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// CourierID returns the authenticated courier's identifier.
func (c PickupPackageCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the courier's resolved location.
func (c PickupPackageCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *PickupPackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *PickupPackageCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *PickupPackageCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
