package commands

import (
	"context"
	"time"

	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/services"
)

// DropoffPackageCommandHandler handles the business logic for releasing a
// package. A dropoff is only legal when it moves the package strictly closer
// to its destination than the courier's pickup was; the net progress and the
// elapsed carrying time decide the courier's reward. Landing inside the
// actionable radius delivers the package and earns the delivery bonus.
type DropoffPackageCommandHandler struct {
	uowFactory TransitUoWFactory
	calculator services.RewardCalculator
}

// NewDropoffPackageCommandHandler creates a handler for package dropoffs.
func NewDropoffPackageCommandHandler(uowFactory TransitUoWFactory) DropoffPackageCommandHandler {
	return DropoffPackageCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewRewardCalculator(),
	}
}

// Handle processes the dropoff command. Conflict failures rerun the whole unit.
func (h DropoffPackageCommandHandler) Handle(ctx context.Context, cmd DropoffPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, "dropoff package", func(ctx context.Context) error {
		return h.handleOnce(ctx, cmd)
	})
}

func (h DropoffPackageCommandHandler) handleOnce(ctx context.Context, cmd DropoffPackageCommand) error {
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
	record, err := transitRepo.Get(ctx, cmd.PackageID(), cmd.CourierID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	result, err := pkg.Dropoff(cmd.CourierID(), record.PickupPoint(), cmd.Location())
	if err != nil {
		return err
	}

	if err = record.CompleteDropoff(cmd.Location(), now); err != nil {
		return err
	}

	elapsed := now.Sub(record.PickupDate()).Seconds()
	reward, err := h.calculator.Calculate(result.DistanceMovedMeters, elapsed, result.Delivered)
	if err != nil {
		return err
	}

	if reward.Credits > 0 {
		if err = courier.Credit(reward.Credits); err != nil {
			return err
		}
	}
	if err = courier.ClearCurrentPackage(); err != nil {
		return err
	}
	if err = courier.RecordMoved(pkg.ID(), now); err != nil {
		return err
	}

	dropoffRow, err := account.NewActivity(
		courier.ID(), now, pkg.ID(), account.ObjectPackage, pkg.Content().Headline(),
		account.ActivityPackageDropoff,
		courier.ID(), courier.DisplayName(), courier.PicURL(), reward.Credits)
	if err != nil {
		return err
	}
	if err = activityRepo.Add(ctx, dropoffRow); err != nil {
		return err
	}

	if result.Delivered {
		if err = courier.Credit(reward.DeliveryBonus); err != nil {
			return err
		}

		bonusRow, err := account.NewActivity(
			courier.ID(), now, pkg.ID(), account.ObjectPackage, pkg.Content().Headline(),
			account.ActivityDeliveryBonus,
			courier.ID(), courier.DisplayName(), courier.PicURL(), reward.DeliveryBonus)
		if err != nil {
			return err
		}
		if err = activityRepo.Add(ctx, bonusRow); err != nil {
			return err
		}
	}

	event, err := account.NewFeedEvent(
		kernel.NewUUID(), now, account.ActivityPackageDropoff,
		courier.ID(), courier.DisplayName(), courier.PicURL(),
		pkg.ID(), account.ObjectPackage, pkg.Content().Headline(),
		cmd.Message(), supplementsTypeFor(cmd.Message()), pkg.Followers())
	if err != nil {
		return err
	}
	if err = activityRepo.AddFeedEvent(ctx, event); err != nil {
		return err
	}

	if err = transitRepo.Update(ctx, record); err != nil {
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

func supplementsTypeFor(message string) string {
	if message == "" {
		return ""
	}
	return "message"
}
