package pack

import (
	"errors"
	"fmt"
	"time"

	"relay/internal/core/domain/model/kernel"
)

const (
	// ActionableDistanceMeters is the radius around a destination within
	// which a dropoff counts as delivery.
	ActionableDistanceMeters = 100.0

	// TooFarDistanceMeters is the search/display radius beyond which a
	// package is presented as out of reach. It does not affect lifecycle
	// transitions.
	TooFarDistanceMeters = 50_000.0
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not
	// created through the NewPackage or RestorePackage factory functions.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")

	// ErrDropoffNotCloserThanPickup is the sentinel for dropoff attempts that
	// made no net progress toward the destination.
	ErrDropoffNotCloserThanPickup = errors.New("dropoff location is not closer to destination than pickup")

	// ErrNotCurrentCourier is returned when a transit operation is attempted
	// by a user who is not the package's active courier.
	ErrNotCurrentCourier = errors.New("user is not the current courier of the package")

	// ErrCourierAlreadyCarrying is returned when the active courier attempts
	// to pick up the package they already carry.
	ErrCourierAlreadyCarrying = errors.New("courier already carries this package")
)

// DropoffNotCloserError reports a rejected dropoff with the two distances
// that decided it, so callers can explain the failure to the user.
type DropoffNotCloserError struct {
	PickupDistanceMeters  float64
	DropoffDistanceMeters float64
}

// Error formats the rejection with both distances.
func (e *DropoffNotCloserError) Error() string {
	return fmt.Sprintf("%s: pickup was %.0fm from destination, dropoff is %.0fm",
		ErrDropoffNotCloserThanPickup, e.PickupDistanceMeters, e.DropoffDistanceMeters)
}

// Unwrap returns the sentinel error to support errors.Is classification.
func (e *DropoffNotCloserError) Unwrap() error {
	return ErrDropoffNotCloserThanPickup
}

// PickupResult reports the side effects of a successful pickup so the
// caller can stage the matching account updates in the same atomic unit.
type PickupResult struct {
	// PreviousCourier is the courier the package was taken over from,
	// or nil when the package was unclaimed.
	PreviousCourier *kernel.UUID

	// AutoFollowed is true when the courier was not yet a follower and the
	// pickup subscribed them.
	AutoFollowed bool
}

// DropoffResult reports the outcome of a successful dropoff.
type DropoffResult struct {
	// Delivered is true when the dropoff landed within the actionable
	// distance of the destination, ending the package's journey.
	Delivered bool

	// DistanceMovedMeters is the net progress toward the destination,
	// always positive for a legal dropoff.
	DistanceMovedMeters float64

	// DistanceToDestinationMeters is how far the package now is from its
	// destination.
	DistanceToDestinationMeters float64
}

// Package is the aggregate root of the relay: a symbolic parcel created by
// one user and carried hand-to-hand by couriers toward its destination.
//
// Package maintains these invariants:
//   - the follower count always equals the size of the follower map
//   - at most one courier is active at a time, and only in Transit status
//   - Delivered is terminal; no transition leaves it
//
// All mutation goes through methods that enforce the state machine; the
// struct uses private fields so invalid states cannot be constructed.
type Package struct {
	id kernel.UUID

	content Content

	// logistics
	author          kernel.UUID
	inTransitBy     *kernel.UUID
	origin          kernel.GeoPoint
	currentLocation kernel.GeoPoint
	status          Status
	createdDate     time.Time
	templateBy      *kernel.UUID

	// relations
	followers      map[kernel.UUID]time.Time
	countFollowers int
	countMovers    int

	isConstructed bool
}

// NewPackage creates a package at the moment of its creation: the author is
// the first courier, the package starts in Transit at its origin, and the
// author is its sole follower.
//
// templateBy records the author of the template the content was copied
// from, or nil when the package was composed from scratch.
func NewPackage(
	id kernel.UUID,
	author kernel.UUID,
	content Content,
	origin kernel.GeoPoint,
	createdDate time.Time,
	templateBy *kernel.UUID,
) (*Package, error) {
	if err := errors.Join(id.Validate(), author.Validate(), content.Validate(), origin.Validate()); err != nil {
		return nil, err
	}
	if createdDate.IsZero() {
		return nil, errors.New("created date is required")
	}
	if templateBy != nil {
		if err := templateBy.Validate(); err != nil {
			return nil, err
		}
	}

	authorRef := author
	return &Package{
		id:              id,
		content:         content,
		author:          author,
		inTransitBy:     &authorRef,
		origin:          origin,
		currentLocation: origin,
		status:          StatusTransit,
		createdDate:     createdDate,
		templateBy:      templateBy,
		followers:       map[kernel.UUID]time.Time{author: createdDate},
		countFollowers:  1,
		countMovers:     0,
		isConstructed:   true,
	}, nil
}

// RestorePackage reconstructs a package from persistence. The follower count
// is re-derived from the follower map so the stored counter cannot drift
// from the map it summarizes.
func RestorePackage(
	id kernel.UUID,
	content Content,
	author kernel.UUID,
	inTransitBy *kernel.UUID,
	origin kernel.GeoPoint,
	currentLocation kernel.GeoPoint,
	status Status,
	createdDate time.Time,
	templateBy *kernel.UUID,
	followers map[kernel.UUID]time.Time,
	countMovers int,
) (*Package, error) {
	if err := errors.Join(
		id.Validate(), author.Validate(), content.Validate(),
		origin.Validate(), currentLocation.Validate(), status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveCourier(inTransitBy != nil); err != nil {
		return nil, err
	}

	if followers == nil {
		followers = make(map[kernel.UUID]time.Time)
	}

	return &Package{
		id:              id,
		content:         content,
		author:          author,
		inTransitBy:     inTransitBy,
		origin:          origin,
		currentLocation: currentLocation,
		status:          status,
		createdDate:     createdDate,
		templateBy:      templateBy,
		followers:       followers,
		countFollowers:  len(followers),
		countMovers:     countMovers,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Package instance was properly constructed through
// NewPackage or RestorePackage.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}

	return nil
}

// IsEqual compares two packages by their identifiers.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the package's identifier.
func (p *Package) ID() kernel.UUID { return p.id }

// Content returns the authored content of the package.
func (p *Package) Content() Content { return p.content }

// Author returns the creator of the package.
func (p *Package) Author() kernel.UUID { return p.author }

// Courier returns the active courier's id, or nil when the package is
// not in transit.
func (p *Package) Courier() *kernel.UUID { return p.inTransitBy }

// Origin returns where the package started its journey.
func (p *Package) Origin() kernel.GeoPoint { return p.origin }

// CurrentLocation returns the package's last known position.
func (p *Package) CurrentLocation() kernel.GeoPoint { return p.currentLocation }

// Status returns the package's lifecycle status.
func (p *Package) Status() Status { return p.status }

// CreatedDate returns when the package was created.
func (p *Package) CreatedDate() time.Time { return p.createdDate }

// TemplateBy returns the author of the template the content was copied
// from, or nil.
func (p *Package) TemplateBy() *kernel.UUID { return p.templateBy }

// Followers returns a copy of the follower map keyed by user id.
func (p *Package) Followers() map[kernel.UUID]time.Time {
	followers := make(map[kernel.UUID]time.Time, len(p.followers))
	for id, at := range p.followers {
		followers[id] = at
	}
	return followers
}

// IsFollowedBy reports whether the user currently follows the package.
func (p *Package) IsFollowedBy(userID kernel.UUID) bool {
	_, ok := p.followers[userID]
	return ok
}

// CountFollowers returns the number of followers. The count always equals
// the size of the follower map.
func (p *Package) CountFollowers() int { return p.countFollowers }

// CountMovers returns the number of successful courier legs.
func (p *Package) CountMovers() int { return p.countMovers }

// Pickup claims the package for a courier at the given location and time.
//
// Pickup is legal from Pending (unclaimed) or Transit (hand-over from the
// previous courier). The active courier cannot pick up their own package
// again. When the courier is not yet a follower, pickup subscribes them
// (the returned result reports this so the caller can mirror the follow on
// the courier's account in the same atomic unit).
func (p *Package) Pickup(courierID kernel.UUID, at kernel.GeoPoint, when time.Time) (PickupResult, error) {
	if err := errors.Join(p.Validate(), courierID.Validate(), at.Validate()); err != nil {
		return PickupResult{}, err
	}

	if p.inTransitBy != nil && p.inTransitBy.IsEqual(courierID) {
		return PickupResult{}, ErrCourierAlreadyCarrying
	}

	newStatus, err := p.status.Pickup()
	if err != nil {
		return PickupResult{}, err
	}

	result := PickupResult{PreviousCourier: p.inTransitBy}

	p.status = newStatus
	courierRef := courierID
	p.inTransitBy = &courierRef
	p.currentLocation = at

	if !p.IsFollowedBy(courierID) {
		p.followers[courierID] = when
		p.countFollowers = len(p.followers)
		result.AutoFollowed = true
	}

	return result, nil
}

// Dropoff releases the package at the given location.
//
// Only the active courier may drop off, and only when the dropoff location
// is strictly closer to the destination than the pickup location was —
// otherwise DropoffNotCloserError is returned and nothing changes. A dropoff
// within ActionableDistanceMeters of the destination delivers the package;
// any other dropoff returns it to Pending for the next courier. Either way
// the courier is released and the mover count is incremented.
func (p *Package) Dropoff(
	courierID kernel.UUID,
	pickupLocation kernel.GeoPoint,
	dropoffLocation kernel.GeoPoint,
) (DropoffResult, error) {
	if err := errors.Join(p.Validate(), courierID.Validate(),
		pickupLocation.Validate(), dropoffLocation.Validate()); err != nil {
		return DropoffResult{}, err
	}

	if p.inTransitBy == nil || !p.inTransitBy.IsEqual(courierID) {
		return DropoffResult{}, ErrNotCurrentCourier
	}

	destination := p.content.Destination().Point()
	pickupDist, err := pickupLocation.DistanceTo(destination)
	if err != nil {
		return DropoffResult{}, err
	}
	newDist, err := dropoffLocation.DistanceTo(destination)
	if err != nil {
		return DropoffResult{}, err
	}

	if newDist >= pickupDist {
		return DropoffResult{}, &DropoffNotCloserError{
			PickupDistanceMeters:  pickupDist,
			DropoffDistanceMeters: newDist,
		}
	}

	delivered := newDist < ActionableDistanceMeters
	newStatus, err := p.status.Dropoff(delivered)
	if err != nil {
		return DropoffResult{}, err
	}

	p.status = newStatus
	p.inTransitBy = nil
	p.currentLocation = dropoffLocation
	p.countMovers++

	return DropoffResult{
		Delivered:                   delivered,
		DistanceMovedMeters:         pickupDist - newDist,
		DistanceToDestinationMeters: newDist,
	}, nil
}

// UpdateLocation records a movement sample from the active courier.
// Rejected when the requester is not the active courier.
func (p *Package) UpdateLocation(courierID kernel.UUID, at kernel.GeoPoint) error {
	if err := errors.Join(p.Validate(), courierID.Validate(), at.Validate()); err != nil {
		return err
	}

	if p.inTransitBy == nil || !p.inTransitBy.IsEqual(courierID) {
		return ErrNotCurrentCourier
	}

	p.currentLocation = at
	return nil
}

// Follow subscribes a user to the package. Following is idempotent: a second
// follow by the same user changes nothing and reports false.
func (p *Package) Follow(userID kernel.UUID, when time.Time) (bool, error) {
	if err := errors.Join(p.Validate(), userID.Validate()); err != nil {
		return false, err
	}

	if p.IsFollowedBy(userID) {
		return false, nil
	}

	p.followers[userID] = when
	p.countFollowers = len(p.followers)
	return true, nil
}

// Unfollow removes a user from the package's followers. Removing a user who
// is not a follower is a no-op and reports false.
func (p *Package) Unfollow(userID kernel.UUID) (bool, error) {
	if err := errors.Join(p.Validate(), userID.Validate()); err != nil {
		return false, err
	}

	if !p.IsFollowedBy(userID) {
		return false, nil
	}

	delete(p.followers, userID)
	p.countFollowers = len(p.followers)
	return true, nil
}
