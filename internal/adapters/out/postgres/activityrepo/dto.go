// Package activityrepo provides data transfer objects and mapping functions
// for the append-only activity ledger and the public feed. Rows are immutable
// once written; the repository exposes inserts and time-ordered reads only.
package activityrepo

import (
	"time"

	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ActivityDTO represents one ledger row in the database. The row id is
// generated at insert time; the domain treats rows as anonymous entries of
// an owner's log.
type ActivityDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Owner        uuid.UUID `gorm:"type:uuid;not null;index:idx_activities_owner_date"`
	Date         time.Time `gorm:"not null;index:idx_activities_owner_date"`
	ObjectRef    uuid.UUID `gorm:"type:uuid;not null"`
	ObjectType   string    `gorm:"type:varchar(32);not null"`
	ObjectName   string    `gorm:"type:varchar(255)"`
	ActivityType string    `gorm:"type:varchar(32);not null"`
	ActorRef     uuid.UUID `gorm:"type:uuid;not null"`
	ActorName    string    `gorm:"type:varchar(255)"`
	ActorPic     string    `gorm:"type:text"`
	Amount       int       `gorm:"not null"`
}

// TableName specifies the database table name for ledger rows.
func (ActivityDTO) TableName() string {
	return "activities"
}

// FeedEventDTO represents one public feed entry in the database. The
// follower snapshot is stored as a jsonb document for the fan-out layer.
type FeedEventDTO struct {
	ID              uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Date            time.Time            `gorm:"not null;index"`
	ActivityType    string               `gorm:"type:varchar(32);not null"`
	ActorRef        uuid.UUID            `gorm:"type:uuid;not null"`
	ActorName       string               `gorm:"type:varchar(255)"`
	ActorPic        string               `gorm:"type:text"`
	ObjectRef       uuid.UUID            `gorm:"type:uuid;not null"`
	ObjectType      string               `gorm:"type:varchar(32);not null"`
	ObjectName      string               `gorm:"type:varchar(255)"`
	Supplements     string               `gorm:"type:text"`
	SupplementsType string               `gorm:"type:varchar(32)"`
	Followers       map[string]time.Time `gorm:"type:jsonb;serializer:json"`
}

// TableName specifies the database table name for feed entries.
func (FeedEventDTO) TableName() string {
	return "feed_events"
}

// activityFromDomain converts a ledger row to its database representation,
// assigning the generated row id.
func activityFromDomain(activity *account.Activity) ActivityDTO {
	return ActivityDTO{
		ID:           uuid.New(),
		Owner:        activity.Owner().Bytes(),
		Date:         activity.Date(),
		ObjectRef:    activity.ObjectRef().Bytes(),
		ObjectType:   activity.ObjectType().String(),
		ObjectName:   activity.ObjectName(),
		ActivityType: activity.ActivityType().String(),
		ActorRef:     activity.ActorRef().Bytes(),
		ActorName:    activity.ActorName(),
		ActorPic:     activity.ActorPic(),
		Amount:       activity.Amount(),
	}
}

// activityToDomain converts a database DTO to a ledger row.
func activityToDomain(dto ActivityDTO) (*account.Activity, error) {
	owner, err := kernel.UUIDFromBytes(dto.Owner[:])
	if err != nil {
		return nil, err
	}

	objectRef, err := kernel.UUIDFromBytes(dto.ObjectRef[:])
	if err != nil {
		return nil, err
	}

	actorRef, err := kernel.UUIDFromBytes(dto.ActorRef[:])
	if err != nil {
		return nil, err
	}

	objectType, err := account.ObjectTypeFromString(dto.ObjectType)
	if err != nil {
		return nil, err
	}

	activityType, err := account.ActivityTypeFromString(dto.ActivityType)
	if err != nil {
		return nil, err
	}

	return account.NewActivity(
		owner, dto.Date, objectRef, objectType, dto.ObjectName,
		activityType, actorRef, dto.ActorName, dto.ActorPic, dto.Amount)
}

// feedEventFromDomain converts a feed entry to its database representation.
func feedEventFromDomain(event *account.FeedEvent) FeedEventDTO {
	followers := make(map[string]time.Time)
	for id, at := range event.Followers() {
		followers[id.String()] = at
	}

	return FeedEventDTO{
		ID:              event.ID().Bytes(),
		Date:            event.Date(),
		ActivityType:    event.ActivityType().String(),
		ActorRef:        event.ActorRef().Bytes(),
		ActorName:       event.ActorName(),
		ActorPic:        event.ActorPic(),
		ObjectRef:       event.ObjectRef().Bytes(),
		ObjectType:      event.ObjectType().String(),
		ObjectName:      event.ObjectName(),
		Supplements:     event.Supplements(),
		SupplementsType: event.SupplementsType(),
		Followers:       followers,
	}
}

// feedEventToDomain converts a database DTO to a feed entry.
func feedEventToDomain(dto FeedEventDTO) (*account.FeedEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	actorRef, err := kernel.UUIDFromBytes(dto.ActorRef[:])
	if err != nil {
		return nil, err
	}

	objectRef, err := kernel.UUIDFromBytes(dto.ObjectRef[:])
	if err != nil {
		return nil, err
	}

	activityType, err := account.ActivityTypeFromString(dto.ActivityType)
	if err != nil {
		return nil, err
	}

	objectType, err := account.ObjectTypeFromString(dto.ObjectType)
	if err != nil {
		return nil, err
	}

	followers := make(map[kernel.UUID]time.Time, len(dto.Followers))
	for raw, at := range dto.Followers {
		followerID, followerErr := kernel.UUIDFromString(raw)
		if followerErr != nil {
			return nil, followerErr
		}
		followers[followerID] = at
	}

	return account.NewFeedEvent(
		id, dto.Date, activityType, actorRef, dto.ActorName, dto.ActorPic,
		objectRef, objectType, dto.ObjectName,
		dto.Supplements, dto.SupplementsType, followers)
}
