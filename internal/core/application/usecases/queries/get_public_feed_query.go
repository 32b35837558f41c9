package queries

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

// ErrGetPublicFeedQueryIsNotConstructed is returned when a GetPublicFeedQuery
// was not created through its constructor.
var ErrGetPublicFeedQueryIsNotConstructed = errors.New(
	"GetPublicFeedQuery must be created via NewGetPublicFeedQuery constructor",
)

const defaultFeedLimit = 50

// GetPublicFeedQuery retrieves a page of the public activity feed. The cursor
// is time based: a zero olderThan reads from the newest event, a non-zero
// cursor returns only events strictly older than it.
type GetPublicFeedQuery struct {
	olderThan time.Time
	limit     int

	guard guard.ConstructorGuard
}

// NewGetPublicFeedQuery creates a feed query. A non-positive limit falls back
// to the default page size.
func NewGetPublicFeedQuery(olderThan time.Time, limit int) (GetPublicFeedQuery, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	return GetPublicFeedQuery{
		olderThan: olderThan,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPublicFeedQuery) Validate() error {
	return q.guard.Validate(ErrGetPublicFeedQueryIsNotConstructed)
}

// OlderThan returns the pagination cursor. Zero means start from the top.
func (q GetPublicFeedQuery) OlderThan() time.Time { return q.olderThan }

// Limit returns the maximum number of events to return.
func (q GetPublicFeedQuery) Limit() int { return q.limit }

// GetPublicFeedQueryResponse is one event of the public feed.
type GetPublicFeedQueryResponse struct {
	ID              kernel.UUID `json:"id"`
	Date            time.Time   `json:"date"`
	ActivityType    string      `json:"activity_type"`
	ActorRef        kernel.UUID `json:"actor_ref"`
	ActorName       string      `json:"actor_name"`
	ActorPic        string      `json:"actor_pic,omitempty"`
	ObjectRef       kernel.UUID `json:"object_ref"`
	ObjectType      string      `json:"object_type"`
	ObjectName      string      `json:"object_name"`
	Supplements     string      `json:"supplements,omitempty"`
	SupplementsType string      `json:"supplements_type,omitempty"`
}
