package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrDropoffPackageCommandIsNotConstructed = errors.New(
	"DropoffPackageCommand must be created via NewDropoffPackageCommand constructor",
)

// DropoffPackageCommand represents the active courier releasing a package at
// their resolved location, optionally leaving a message for the feed.
type DropoffPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	courierID kernel.UUID
	location  kernel.GeoPoint
	message   string

	guard guard.ConstructorGuard
}

// NewDropoffPackageCommand creates a command for a courier to release a
// package. The message is optional.
func NewDropoffPackageCommand(
	packageID kernel.UUID,
	courierID kernel.UUID,
	location kernel.GeoPoint,
	message string,
) (DropoffPackageCommand, error) {
	cmd := DropoffPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setCourierID(courierID),
		cmd.setLocation(location),
	); err != nil {
		return DropoffPackageCommand{}, err
	}

	cmd.message = message
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DropoffPackageCommand) Validate() error {
	return c.guard.Validate(ErrDropoffPackageCommandIsNotConstructed)
}

// PackageID returns the package being released.
func (c DropoffPackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// CourierID returns the authenticated courier's identifier.
func (c DropoffPackageCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the courier's resolved location.
func (c DropoffPackageCommand) Location() kernel.GeoPoint {
	return c.location
}

// Message returns the optional dropoff message, possibly empty.
func (c DropoffPackageCommand) Message() string {
	return c.message
}

func (c *DropoffPackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *DropoffPackageCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *DropoffPackageCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
