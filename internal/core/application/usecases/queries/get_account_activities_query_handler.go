package queries

import (
	"context"

	"relay/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAccountActivitiesQueryHandler reads an account's reward ledger from the
// database. The ledger is append-only, so this view never goes through the
// domain aggregates.
type GetAccountActivitiesQueryHandler struct {
	db *gorm.DB
}

// NewGetAccountActivitiesQueryHandler creates a handler for ledger queries.
func NewGetAccountActivitiesQueryHandler(db *gorm.DB) GetAccountActivitiesQueryHandler {
	return GetAccountActivitiesQueryHandler{db: db}
}

// Handle executes the query. Entries are returned newest first.
func (h GetAccountActivitiesQueryHandler) Handle(
	ctx context.Context,
	query GetAccountActivitiesQuery,
) ([]GetAccountActivitiesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	activities := make([]GetAccountActivitiesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			date,
			activity_type,
			object_ref,
			object_type,
			object_name,
			actor_ref,
			actor_name,
			actor_pic,
			amount
		FROM activities
		WHERE owner = ?
		ORDER BY date DESC
		LIMIT ?
	`, query.Owner().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetAccountActivitiesQueryResponse
		var objectRef, actorRef uuid.UUID

		err = rows.Scan(
			&entry.Date,
			&entry.ActivityType,
			&objectRef,
			&entry.ObjectType,
			&entry.ObjectName,
			&actorRef,
			&entry.ActorName,
			&entry.ActorPic,
			&entry.Amount,
		)
		if err != nil {
			return nil, err
		}

		objectID, idErr := kernel.UUIDFromBytes(objectRef[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ObjectRef = objectID

		actorID, idErr := kernel.UUIDFromBytes(actorRef[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ActorRef = actorID

		activities = append(activities, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}
