package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrTrackMovementCommandIsNotConstructed = errors.New(
	"TrackMovementCommand must be created via NewTrackMovementCommand constructor",
)

// TrackMovementCommand represents a location sample reported by the active
// courier while carrying a package.
type TrackMovementCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	courierID kernel.UUID
	location  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewTrackMovementCommand creates a command to record a movement sample.
func NewTrackMovementCommand(
	packageID kernel.UUID,
	courierID kernel.UUID,
	location kernel.GeoPoint,
) (TrackMovementCommand, error) {
	cmd := TrackMovementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setCourierID(courierID),
		cmd.setLocation(location),
	); err != nil {
		return TrackMovementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TrackMovementCommand) Validate() error {
	return c.guard.Validate(ErrTrackMovementCommandIsNotConstructed)
}

// PackageID returns the package being carried.
func (c TrackMovementCommand) PackageID() kernel.UUID {
	return c.packageID
}

// CourierID returns the reporting courier's identifier.
func (c TrackMovementCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the sampled location.
func (c TrackMovementCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *TrackMovementCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *TrackMovementCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *TrackMovementCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
