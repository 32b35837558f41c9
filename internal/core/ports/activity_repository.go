package ports

import (
	"context"
	"time"

	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
)

// ActivityRepository defines the persistence contract for the append-only
// activity ledger and the public feed. Rows are immutable once written.
type ActivityRepository interface {
	// Add appends a ledger row to an account's activity log.
	Add(ctx context.Context, activity *account.Activity) error

	// AddFeedEvent appends an entry to the public feed.
	AddFeedEvent(ctx context.Context, event *account.FeedEvent) error

	// ListByOwner returns an account's ledger rows, newest first.
	ListByOwner(ctx context.Context, owner kernel.UUID, limit int) ([]*account.Activity, error)

	// ListFeed returns public feed entries older than the given cursor,
	// newest first.
	ListFeed(ctx context.Context, olderThan time.Time, limit int) ([]*account.FeedEvent, error)
}
