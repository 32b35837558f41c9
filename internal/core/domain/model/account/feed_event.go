package account

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
)

// FeedEvent is one entry of the public activity stream: a denormalized
// snapshot of who did what to which object, rendered without further reads.
// Supplements carry optional free-form context (e.g. the dropoff message).
type FeedEvent struct {
	id              kernel.UUID
	date            time.Time
	activityType    ActivityType
	actorRef        kernel.UUID
	actorName       string
	actorPic        string
	objectRef       kernel.UUID
	objectType      ObjectType
	objectName      string
	supplements     string
	supplementsType string
	followers       map[kernel.UUID]time.Time

	isConstructed bool
}

// NewFeedEvent creates a public feed entry. The follower snapshot lets the
// notification layer fan out to the package's followers without re-reading
// the package document.
func NewFeedEvent(
	id kernel.UUID,
	date time.Time,
	activityType ActivityType,
	actorRef kernel.UUID,
	actorName string,
	actorPic string,
	objectRef kernel.UUID,
	objectType ObjectType,
	objectName string,
	supplements string,
	supplementsType string,
	followers map[kernel.UUID]time.Time,
) (*FeedEvent, error) {
	if err := errors.Join(
		id.Validate(), activityType.Validate(), actorRef.Validate(),
		objectRef.Validate(), objectType.Validate(),
	); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("feed event date")
	}

	if followers == nil {
		followers = make(map[kernel.UUID]time.Time)
	}

	return &FeedEvent{
		id:              id,
		date:            date,
		activityType:    activityType,
		actorRef:        actorRef,
		actorName:       actorName,
		actorPic:        actorPic,
		objectRef:       objectRef,
		objectType:      objectType,
		objectName:      objectName,
		supplements:     supplements,
		supplementsType: supplementsType,
		followers:       followers,
		isConstructed:   true,
	}, nil
}

// Validate ensures the feed event was created through NewFeedEvent.
func (e *FeedEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return errors.New("FeedEvent must be created via NewFeedEvent constructor")
	}
	return nil
}

// ID returns the feed event's identifier.
func (e *FeedEvent) ID() kernel.UUID { return e.id }

// Date returns when the event happened.
func (e *FeedEvent) Date() time.Time { return e.date }

// ActivityType returns the event classification.
func (e *FeedEvent) ActivityType() ActivityType { return e.activityType }

// ActorRef returns who performed the event.
func (e *FeedEvent) ActorRef() kernel.UUID { return e.actorRef }

// ActorName returns the actor's display name snapshot.
func (e *FeedEvent) ActorName() string { return e.actorName }

// ActorPic returns the actor's picture URL snapshot.
func (e *FeedEvent) ActorPic() string { return e.actorPic }

// ObjectRef returns the id of the object the event refers to.
func (e *FeedEvent) ObjectRef() kernel.UUID { return e.objectRef }

// ObjectType returns what kind of object the event refers to.
func (e *FeedEvent) ObjectType() ObjectType { return e.objectType }

// ObjectName returns the display name of the object, possibly empty.
func (e *FeedEvent) ObjectName() string { return e.objectName }

// Supplements returns the optional free-form context, possibly empty.
func (e *FeedEvent) Supplements() string { return e.supplements }

// SupplementsType describes how to render the supplements, possibly empty.
func (e *FeedEvent) SupplementsType() string { return e.supplementsType }

// Followers returns a copy of the follower snapshot taken at event time.
func (e *FeedEvent) Followers() map[kernel.UUID]time.Time {
	followers := make(map[kernel.UUID]time.Time, len(e.followers))
	for k, v := range e.followers {
		followers[k] = v
	}
	return followers
}
