package commands

import (
	"context"
	"time"
)

// TrackMovementCommandHandler records location samples from the active
// courier: the package's current location moves and the sample is appended
// to the courier's transit trail.
type TrackMovementCommandHandler struct {
	uowFactory TransitUoWFactory
}

// NewTrackMovementCommandHandler creates a handler for movement tracking.
func NewTrackMovementCommandHandler(uowFactory TransitUoWFactory) TrackMovementCommandHandler {
	return TrackMovementCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the movement sample. Conflict failures rerun the whole unit.
func (h TrackMovementCommandHandler) Handle(ctx context.Context, cmd TrackMovementCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, "track movement", func(ctx context.Context) error {
		return h.handleOnce(ctx, cmd)
	})
}

func (h TrackMovementCommandHandler) handleOnce(ctx context.Context, cmd TrackMovementCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	transitRepo := uow.TransitRepository()

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}
	record, err := transitRepo.Get(ctx, cmd.PackageID(), cmd.CourierID())
	if err != nil {
		return err
	}

	if err = pkg.UpdateLocation(cmd.CourierID(), cmd.Location()); err != nil {
		return err
	}
	if err = record.AppendMovement(cmd.Location(), time.Now().UTC()); err != nil {
		return err
	}

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return err
	}
	if err = transitRepo.Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
