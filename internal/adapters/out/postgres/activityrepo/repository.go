package activityrepo

import (
	"context"
	"time"

	"relay/internal/adapters/out/postgres/pgerr"
	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// defaultListLimit caps reads when the caller does not supply a limit.
const defaultListLimit = 50

// GormActivityRepository implements ActivityRepository using GORM. Ledger
// rows and feed entries are immutable, so the repository is append-and-read
// only and tracks no aggregates.
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GORM activity repository.
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Add appends a ledger row to an account's activity log.
func (r *GormActivityRepository) Add(ctx context.Context, activity *account.Activity) error {
	if err := activity.Validate(); err != nil {
		return err
	}

	dto := activityFromDomain(activity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Convert("activities insert", err)
	}

	return nil
}

// AddFeedEvent appends an entry to the public feed.
func (r *GormActivityRepository) AddFeedEvent(ctx context.Context, event *account.FeedEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := feedEventFromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Convert("feed_events insert", err)
	}

	return nil
}

// ListByOwner returns an account's ledger rows, newest first.
func (r *GormActivityRepository) ListByOwner(
	ctx context.Context,
	owner kernel.UUID,
	limit int,
) ([]*account.Activity, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	var dtos []ActivityDTO
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner.Bytes()).
		Order("date DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Convert("activities select", err)
	}

	activities := make([]*account.Activity, 0, len(dtos))
	for _, dto := range dtos {
		activity, convErr := activityToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		activities = append(activities, activity)
	}

	return activities, nil
}

// ListFeed returns public feed entries older than the given cursor, newest
// first. A zero cursor reads from the top of the feed.
func (r *GormActivityRepository) ListFeed(
	ctx context.Context,
	olderThan time.Time,
	limit int,
) ([]*account.FeedEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := r.db.WithContext(ctx).Order("date DESC").Limit(limit)
	if !olderThan.IsZero() {
		query = query.Where("date < ?", olderThan)
	}

	var dtos []FeedEventDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, pgerr.Convert("feed_events select", err)
	}

	events := make([]*account.FeedEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, convErr := feedEventToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, event)
	}

	return events, nil
}
