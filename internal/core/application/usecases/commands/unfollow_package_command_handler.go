package commands

import (
	"context"
)

// UnfollowPackageCommandHandler handles the business logic for unfollowing a
// package. Unfollowing a package the user never followed writes nothing and
// succeeds.
type UnfollowPackageCommandHandler struct {
	uowFactory FollowUoWFactory
}

// NewUnfollowPackageCommandHandler creates a handler for unfollow operations.
func NewUnfollowPackageCommandHandler(uowFactory FollowUoWFactory) UnfollowPackageCommandHandler {
	return UnfollowPackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the unfollow command. Conflict failures rerun the whole unit.
func (h UnfollowPackageCommandHandler) Handle(ctx context.Context, cmd UnfollowPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, "unfollow package", func(ctx context.Context) error {
		return h.handleOnce(ctx, cmd)
	})
}

func (h UnfollowPackageCommandHandler) handleOnce(ctx context.Context, cmd UnfollowPackageCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	accountRepo := uow.AccountRepository()

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}
	follower, err := accountRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	changed, err := pkg.Unfollow(cmd.UserID())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if _, err = follower.RecordUnfollowing(pkg.ID()); err != nil {
		return err
	}

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return err
	}
	if err = accountRepo.Update(ctx, follower); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
