package queries

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

// ErrGetAccountActivitiesQueryIsNotConstructed is returned when a
// GetAccountActivitiesQuery was not created through its constructor.
var ErrGetAccountActivitiesQueryIsNotConstructed = errors.New(
	"GetAccountActivitiesQuery must be created via NewGetAccountActivitiesQuery constructor",
)

const defaultActivitiesLimit = 50

// GetAccountActivitiesQuery retrieves an account's personal ledger, newest
// entries first.
type GetAccountActivitiesQuery struct {
	owner kernel.UUID
	limit int

	guard guard.ConstructorGuard
}

// NewGetAccountActivitiesQuery creates a ledger query for the given account.
// A non-positive limit falls back to the default page size.
func NewGetAccountActivitiesQuery(owner kernel.UUID, limit int) (GetAccountActivitiesQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetAccountActivitiesQuery{}, err
	}
	if limit <= 0 {
		limit = defaultActivitiesLimit
	}

	return GetAccountActivitiesQuery{
		owner: owner,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAccountActivitiesQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountActivitiesQueryIsNotConstructed)
}

// Owner returns the account whose ledger is requested.
func (q GetAccountActivitiesQuery) Owner() kernel.UUID { return q.owner }

// Limit returns the maximum number of entries to return.
func (q GetAccountActivitiesQuery) Limit() int { return q.limit }

// GetAccountActivitiesQueryResponse is one ledger entry of an account.
type GetAccountActivitiesQueryResponse struct {
	Date         time.Time   `json:"date"`
	ActivityType string      `json:"activity_type"`
	ObjectRef    kernel.UUID `json:"object_ref"`
	ObjectType   string      `json:"object_type"`
	ObjectName   string      `json:"object_name"`
	ActorRef     kernel.UUID `json:"actor_ref"`
	ActorName    string      `json:"actor_name"`
	ActorPic     string      `json:"actor_pic,omitempty"`
	Amount       int         `json:"amount"`
}
