package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrUnfollowPackageCommandIsNotConstructed = errors.New(
	"UnfollowPackageCommand must be created via NewUnfollowPackageCommand constructor",
)

// UnfollowPackageCommand represents a user unsubscribing from a package.
type UnfollowPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnfollowPackageCommand creates a command to unfollow a package.
func NewUnfollowPackageCommand(packageID kernel.UUID, userID kernel.UUID) (UnfollowPackageCommand, error) {
	cmd := UnfollowPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setUserID(userID),
	); err != nil {
		return UnfollowPackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnfollowPackageCommand) Validate() error {
	return c.guard.Validate(ErrUnfollowPackageCommandIsNotConstructed)
}

// PackageID returns the package being unfollowed.
func (c UnfollowPackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// UserID returns the authenticated user's identifier.
func (c UnfollowPackageCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *UnfollowPackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *UnfollowPackageCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
