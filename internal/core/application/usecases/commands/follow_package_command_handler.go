package commands

import (
	"context"
	"time"

	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
)

// FollowPackageCommandHandler handles the business logic for following a
// package. Following is idempotent: a repeat follow by the same user writes
// nothing and succeeds.
type FollowPackageCommandHandler struct {
	uowFactory FollowUoWFactory
}

// NewFollowPackageCommandHandler creates a handler for follow operations.
func NewFollowPackageCommandHandler(uowFactory FollowUoWFactory) FollowPackageCommandHandler {
	return FollowPackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the follow command. Conflict failures rerun the whole unit.
func (h FollowPackageCommandHandler) Handle(ctx context.Context, cmd FollowPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, "follow package", func(ctx context.Context) error {
		return h.handleOnce(ctx, cmd)
	})
}

func (h FollowPackageCommandHandler) handleOnce(ctx context.Context, cmd FollowPackageCommand) error {
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

	now := time.Now().UTC()

	changed, err := pkg.Follow(cmd.UserID(), now)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if _, err = follower.RecordFollowing(pkg.ID(), now); err != nil {
		return err
	}

	event, err := account.NewFeedEvent(
		kernel.NewUUID(), now, account.ActivityPackageFollow,
		follower.ID(), follower.DisplayName(), follower.PicURL(),
		pkg.ID(), account.ObjectPackage, pkg.Content().Headline(),
		"", "", pkg.Followers())
	if err != nil {
		return err
	}
	if err = uow.ActivityRepository().AddFeedEvent(ctx, event); err != nil {
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
