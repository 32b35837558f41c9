package commands

import (
	"context"
	"time"

	"relay/internal/core/ports"
)

// DefaultMediaRetention is how long an unreferenced media object survives
// before the sweep removes it. Uploads happen before the creation
// transaction commits, so a grace period keeps in-flight images safe.
const DefaultMediaRetention = 24 * time.Hour

// CleanupMediaCommandHandler removes stored cover images that no package
// references. An upload followed by a failed creation leaves such an orphan
// behind; the sweep reconciles the store against the package documents.
type CleanupMediaCommandHandler struct {
	uowFactory PackageUoWFactory
	mediaStore ports.MediaStore
	retention  time.Duration
}

// NewCleanupMediaCommandHandler creates a handler for the orphaned media sweep.
// A non-positive retention falls back to DefaultMediaRetention.
func NewCleanupMediaCommandHandler(
	uowFactory PackageUoWFactory,
	mediaStore ports.MediaStore,
	retention time.Duration,
) CleanupMediaCommandHandler {
	if retention <= 0 {
		retention = DefaultMediaRetention
	}

	return CleanupMediaCommandHandler{
		uowFactory: uowFactory,
		mediaStore: mediaStore,
		retention:  retention,
	}
}

// Handle runs one sweep and returns how many orphans were removed.
// Objects younger than the retention window are skipped even when
// unreferenced, since their creation transaction may still be in flight.
func (h CleanupMediaCommandHandler) Handle(ctx context.Context) (int, error) {
	stored, err := h.mediaStore.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(stored) == 0 {
		return 0, nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	referenced, err := uow.PackageRepository().ListCoverImageURLs(ctx)
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	inUse := make(map[string]bool, len(referenced))
	for _, url := range referenced {
		inUse[url] = true
	}

	cutoff := time.Now().UTC().Add(-h.retention)
	removed := 0
	for url, uploadedAt := range stored {
		if inUse[url] || uploadedAt.After(cutoff) {
			continue
		}
		if err = h.mediaStore.Remove(ctx, url); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}
