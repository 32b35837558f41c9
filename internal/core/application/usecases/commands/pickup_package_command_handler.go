package commands

import (
	"context"
	"errors"
	"time"

	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/transit"
	"relay/internal/pkg/errs"
)

// PickupPackageCommandHandler handles the business logic for claiming a
// package. A pickup takes the package over from its previous courier (or
// from an unclaimed Pending state), marks the new courier as carrying it,
// opens or restarts their transit record, and subscribes them as a follower
// when they were not one yet.
type PickupPackageCommandHandler struct {
	uowFactory TransitUoWFactory
}

// NewPickupPackageCommandHandler creates a handler for package pickups.
func NewPickupPackageCommandHandler(uowFactory TransitUoWFactory) PickupPackageCommandHandler {
	return PickupPackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup command. Conflict failures rerun the whole unit.
func (h PickupPackageCommandHandler) Handle(ctx context.Context, cmd PickupPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, "pickup package", func(ctx context.Context) error {
		return h.handleOnce(ctx, cmd)
	})
}

func (h PickupPackageCommandHandler) handleOnce(ctx context.Context, cmd PickupPackageCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	accountRepo := uow.AccountRepository()
	transitRepo := uow.TransitRepository()
	activityRepo := uow.ActivityRepository()

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}
	courier, err := accountRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	result, err := pkg.Pickup(cmd.CourierID(), cmd.Location(), now)
	if err != nil {
		return err
	}

	if err = courier.SetCurrentPackage(pkg.ID()); err != nil {
		return err
	}

	if result.PreviousCourier != nil {
		previous, err := accountRepo.Get(ctx, *result.PreviousCourier)
		if err != nil {
			return err
		}
		if err = previous.ClearCurrentPackage(); err != nil {
			return err
		}
		if err = accountRepo.Update(ctx, previous); err != nil {
			return err
		}
	}

	if result.AutoFollowed {
		if _, err = courier.RecordFollowing(pkg.ID(), now); err != nil {
			return err
		}
	}

	// A courier who carried this package before reuses their record with a
	// fresh leg; a first-time courier opens a new one.
	record, err := transitRepo.Get(ctx, pkg.ID(), cmd.CourierID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		record, err = transit.NewRecord(pkg.ID(), cmd.CourierID(), cmd.Location(), now)
		if err != nil {
			return err
		}
		err = transitRepo.Add(ctx, record)
	case err == nil:
		if err = record.Restart(cmd.Location(), now); err != nil {
			return err
		}
		err = transitRepo.Update(ctx, record)
	}
	if err != nil {
		return err
	}

	pickupRow, err := account.NewActivity(
		courier.ID(), now, pkg.ID(), account.ObjectPackage, pkg.Content().Headline(),
		account.ActivityPackagePickup,
		courier.ID(), courier.DisplayName(), courier.PicURL(), 0)
	if err != nil {
		return err
	}
	if err = activityRepo.Add(ctx, pickupRow); err != nil {
		return err
	}

	event, err := account.NewFeedEvent(
		kernel.NewUUID(), now, account.ActivityPackagePickup,
		courier.ID(), courier.DisplayName(), courier.PicURL(),
		pkg.ID(), account.ObjectPackage, pkg.Content().Headline(),
		"", "", pkg.Followers())
	if err != nil {
		return err
	}
	if err = activityRepo.AddFeedEvent(ctx, event); err != nil {
		return err
	}

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return err
	}
	if err = accountRepo.Update(ctx, courier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
