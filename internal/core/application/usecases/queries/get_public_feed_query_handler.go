package queries

import (
	"context"

	"relay/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPublicFeedQueryHandler reads the public activity feed from the database.
type GetPublicFeedQueryHandler struct {
	db *gorm.DB
}

// NewGetPublicFeedQueryHandler creates a handler for public feed queries.
func NewGetPublicFeedQueryHandler(db *gorm.DB) GetPublicFeedQueryHandler {
	return GetPublicFeedQueryHandler{db: db}
}

// Handle executes the query. Events are returned newest first; a non-zero
// cursor excludes everything at or after it.
func (h GetPublicFeedQueryHandler) Handle(
	ctx context.Context,
	query GetPublicFeedQuery,
) ([]GetPublicFeedQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx)

	sql := `
		SELECT
			id,
			date,
			activity_type,
			actor_ref,
			actor_name,
			actor_pic,
			object_ref,
			object_type,
			object_name,
			supplements,
			supplements_type
		FROM feed_events
	`
	args := make([]any, 0, 2)
	if !query.OlderThan().IsZero() {
		sql += " WHERE date < ?"
		args = append(args, query.OlderThan())
	}
	sql += " ORDER BY date DESC LIMIT ?"
	args = append(args, query.Limit())

	rows, err := tx.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]GetPublicFeedQueryResponse, 0)

	for rows.Next() {
		var event GetPublicFeedQueryResponse
		var id, actorRef, objectRef uuid.UUID

		err = rows.Scan(
			&id,
			&event.Date,
			&event.ActivityType,
			&actorRef,
			&event.ActorName,
			&event.ActorPic,
			&objectRef,
			&event.ObjectType,
			&event.ObjectName,
			&event.Supplements,
			&event.SupplementsType,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ID = eventID

		actorID, idErr := kernel.UUIDFromBytes(actorRef[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ActorRef = actorID

		objectID, idErr := kernel.UUIDFromBytes(objectRef[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ObjectRef = objectID

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
