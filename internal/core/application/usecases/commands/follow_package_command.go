package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrFollowPackageCommandIsNotConstructed = errors.New(
	"FollowPackageCommand must be created via NewFollowPackageCommand constructor",
)

// FollowPackageCommand represents a user subscribing to a package's journey.
type FollowPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewFollowPackageCommand creates a command to follow a package.
func NewFollowPackageCommand(packageID kernel.UUID, userID kernel.UUID) (FollowPackageCommand, error) {
	cmd := FollowPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setUserID(userID),
	); err != nil {
		return FollowPackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FollowPackageCommand) Validate() error {
	return c.guard.Validate(ErrFollowPackageCommandIsNotConstructed)
}

// PackageID returns the package being followed.
func (c FollowPackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// UserID returns the authenticated user's identifier.
func (c FollowPackageCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *FollowPackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *FollowPackageCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
