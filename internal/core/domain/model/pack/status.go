package pack

import (
	"fmt"

	"relay/internal/pkg/errs"
)

// Status represents the lifecycle state of a package.
// It implements a state machine with defined transitions to ensure
// packages follow the relay workflow.
//
// State transitions:
//
//	Draft ──> Pending ──> Transit ──> Delivered
//	             ▲           │ │
//	             └───────────┘ └──> Transit (courier switch)
//
// A dropoff inside the actionable radius of the destination delivers the
// package; a dropoff outside it returns the package to Pending so the next
// courier can claim it.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusDraft marks a package that is still being composed.
	// Drafts never reach the ledger; they exist for template editing only.
	StatusDraft

	// StatusPending marks a package waiting for a courier to pick it up.
	StatusPending

	// StatusTransit marks a package currently carried by a courier.
	StatusTransit

	// StatusDelivered marks a package dropped off within the actionable
	// distance of its destination. This is a final state.
	StatusDelivered
)

// statusCodec is the single bidirectional table mapping Status values to
// their persisted string form. All string conversion goes through this
// table so the two directions cannot drift apart.
var statusCodec = map[Status]string{
	StatusDraft:     "draft",
	StatusPending:   "pending",
	StatusTransit:   "transit",
	StatusDelivered: "delivered",
}

// StatusFromString decodes a persisted status string into a Status value.
// Returns an error for strings outside the codec table.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusCodec {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a known status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: Draft, Pending, Transit, Delivered.
func (s Status) Validate() error {
	if _, ok := statusCodec[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted string form of the status, or "unknown" for
// values outside the codec table. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusCodec[s]; ok {
		return str
	}
	return "unknown"
}

// ValidatePickup checks if a courier may claim a package in this status
// without performing the transition.
//
// Pickup is allowed from Pending (unclaimed package) and from Transit
// (courier hand-over). Draft and Delivered packages cannot be picked up.
func (s Status) ValidatePickup() error {
	if s != StatusPending && s != StatusTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to pick up from", s),
		)
	}
	return nil
}

// Pickup transitions the status to Transit.
//
// Valid transitions:
//   - Pending -> Transit (courier claims the package)
//   - Transit -> Transit (hand-over to a different courier)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Pickup() (Status, error) {
	if err := s.ValidatePickup(); err != nil {
		return 0, err
	}

	return StatusTransit, nil
}

// Dropoff transitions the status out of Transit.
//
// When delivered is true the package reaches Delivered, the final state.
// Otherwise it returns to Pending to await the next courier.
// Dropoff is only legal from Transit.
func (s Status) Dropoff(delivered bool) (Status, error) {
	if s != StatusTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to drop off from", s),
		)
	}

	if delivered {
		return StatusDelivered, nil
	}
	return StatusPending, nil
}

// ValidateCanHaveCourier validates the consistency between package status and
// courier assignment. Transit packages must have a courier; packages in any
// other status must not.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != StatusTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && s == StatusTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}
