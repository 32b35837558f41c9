package transit

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not
	// created through the NewRecord or RestoreRecord factory functions.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

	// ErrRecordAlreadyDroppedOff is returned when completing a dropoff on a
	// record that already has one.
	ErrRecordAlreadyDroppedOff = errors.New("transit record already has a dropoff")

	// ErrMovementDateOutOfOrder is returned when a movement sample is older
	// than the latest entry in the trail.
	ErrMovementDateOutOfOrder = errors.New("movement date is before the latest trail entry")
)

// Record is one courier's leg of a package's journey: where and when they
// picked it up, the movement trail while carrying it, and — once the leg
// ends — where and when they dropped it off.
//
// Records are keyed by (package, courier): each courier has at most one
// record per package. Dropoff fields stay absent until a dropoff commits,
// and the movement trail is monotonically non-decreasing in time.
type Record struct {
	packageID kernel.UUID
	courierID kernel.UUID

	pickupPoint kernel.GeoPoint
	pickupDate  time.Time

	dropoffPoint *kernel.GeoPoint
	dropoffDate  *time.Time

	movements []Movement

	isConstructed bool
}

// NewRecord opens a transit leg anchored at the courier's location and time
// of pickup. The trail starts with the pickup sample.
func NewRecord(
	packageID kernel.UUID,
	courierID kernel.UUID,
	pickupPoint kernel.GeoPoint,
	pickupDate time.Time,
) (*Record, error) {
	if err := errors.Join(packageID.Validate(), courierID.Validate(), pickupPoint.Validate()); err != nil {
		return nil, err
	}
	if pickupDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("pickup date")
	}

	pickup, err := NewMovement(pickupPoint, pickupDate)
	if err != nil {
		return nil, err
	}

	return &Record{
		packageID:     packageID,
		courierID:     courierID,
		pickupPoint:   pickupPoint,
		pickupDate:    pickupDate,
		movements:     []Movement{pickup},
		isConstructed: true,
	}, nil
}

// RestoreRecord reconstructs a transit record from persistence.
func RestoreRecord(
	packageID kernel.UUID,
	courierID kernel.UUID,
	pickupPoint kernel.GeoPoint,
	pickupDate time.Time,
	dropoffPoint *kernel.GeoPoint,
	dropoffDate *time.Time,
	movements []Movement,
) (*Record, error) {
	if err := errors.Join(packageID.Validate(), courierID.Validate(), pickupPoint.Validate()); err != nil {
		return nil, err
	}
	if (dropoffPoint == nil) != (dropoffDate == nil) {
		return nil, errs.NewValueIsInvalidError("dropoff point and date must be set together")
	}
	if dropoffPoint != nil {
		if err := dropoffPoint.Validate(); err != nil {
			return nil, err
		}
	}

	return &Record{
		packageID:     packageID,
		courierID:     courierID,
		pickupPoint:   pickupPoint,
		pickupDate:    pickupDate,
		dropoffPoint:  dropoffPoint,
		dropoffDate:   dropoffDate,
		movements:     movements,
		isConstructed: true,
	}, nil
}

// Validate ensures the record was created through NewRecord or RestoreRecord.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}

	return nil
}

// PackageID returns the package this leg belongs to.
func (r *Record) PackageID() kernel.UUID { return r.packageID }

// CourierID returns the courier who carried this leg.
func (r *Record) CourierID() kernel.UUID { return r.courierID }

// PickupPoint returns where the leg started.
func (r *Record) PickupPoint() kernel.GeoPoint { return r.pickupPoint }

// PickupDate returns when the leg started.
func (r *Record) PickupDate() time.Time { return r.pickupDate }

// DropoffPoint returns where the leg ended, or nil while still open.
func (r *Record) DropoffPoint() *kernel.GeoPoint { return r.dropoffPoint }

// DropoffDate returns when the leg ended, or nil while still open.
func (r *Record) DropoffDate() *time.Time { return r.dropoffDate }

// HasDroppedOff reports whether the leg has ended.
func (r *Record) HasDroppedOff() bool { return r.dropoffPoint != nil }

// Movements returns a copy of the time-ordered movement trail.
func (r *Record) Movements() []Movement {
	trail := make([]Movement, len(r.movements))
	copy(trail, r.movements)
	return trail
}

// AppendMovement adds a sample to the trail. The trail is append-only and
// must stay non-decreasing in time; an open leg is required.
func (r *Record) AppendMovement(point kernel.GeoPoint, date time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.HasDroppedOff() {
		return ErrRecordAlreadyDroppedOff
	}

	movement, err := NewMovement(point, date)
	if err != nil {
		return err
	}

	if n := len(r.movements); n > 0 && date.Before(r.movements[n-1].Date()) {
		return ErrMovementDateOutOfOrder
	}

	r.movements = append(r.movements, movement)
	return nil
}

// CompleteDropoff closes the leg at the given location and time.
// A leg can only be closed once, and not before it was opened.
func (r *Record) CompleteDropoff(point kernel.GeoPoint, date time.Time) error {
	if err := errors.Join(r.Validate(), point.Validate()); err != nil {
		return err
	}
	if r.HasDroppedOff() {
		return ErrRecordAlreadyDroppedOff
	}
	if date.Before(r.pickupDate) {
		return errs.NewValueIsInvalidError("dropoff date is before pickup date")
	}

	final, err := NewMovement(point, date)
	if err != nil {
		return err
	}

	r.dropoffPoint = &point
	r.dropoffDate = &date
	r.movements = append(r.movements, final)
	return nil
}

// Restart reopens the leg for a courier who picks the package up again:
// new pickup anchor, cleared dropoff, and the trail continues from the new
// pickup sample.
func (r *Record) Restart(point kernel.GeoPoint, date time.Time) error {
	if err := errors.Join(r.Validate(), point.Validate()); err != nil {
		return err
	}
	if date.IsZero() {
		return errs.NewValueIsRequiredError("pickup date")
	}

	pickup, err := NewMovement(point, date)
	if err != nil {
		return err
	}

	r.pickupPoint = point
	r.pickupDate = date
	r.dropoffPoint = nil
	r.dropoffDate = nil
	r.movements = append(r.movements, pickup)
	return nil
}
