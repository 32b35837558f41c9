package jobs

import (
	"context"
	"log/slog"

	"relay/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// mediaCleanupSchedule runs the sweep once an hour. Orphans only appear when
// a creation transaction fails after its image upload, so a tighter schedule
// buys nothing.
const mediaCleanupSchedule = "0 0 * * * *"

// MediaCleanupJob periodically removes stored cover images that no package
// references anymore.
type MediaCleanupJob struct {
	handler commands.CleanupMediaCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewMediaCleanupJob creates the scheduled orphaned media sweep.
func NewMediaCleanupJob(handler commands.CleanupMediaCommandHandler, logger *slog.Logger) *MediaCleanupJob {
	return &MediaCleanupJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "media_cleanup_job"),
	}
}

// Start schedules the hourly sweep.
func (j *MediaCleanupJob) Start() error {
	_, err := j.cron.AddFunc(mediaCleanupSchedule, func() {
		ctx := context.Background()

		removed, err := j.handler.Handle(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Media cleanup sweep failed", "error", err)
			return
		}
		if removed > 0 {
			j.logger.InfoContext(ctx, "Media cleanup sweep removed orphans", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Media cleanup job started (running hourly)")
	return nil
}

// Stop stops the sweep.
func (j *MediaCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Media cleanup job stopped")
}
