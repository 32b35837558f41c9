package transit

import (
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
)

// Movement is a single (timestamp, location) sample appended to a transit
// record's trail while the courier is moving. Movements are immutable once
// created.
type Movement struct {
	point kernel.GeoPoint
	date  time.Time
}

// NewMovement creates a movement sample from a resolved location and a timestamp.
func NewMovement(point kernel.GeoPoint, date time.Time) (Movement, error) {
	if err := point.Validate(); err != nil {
		return Movement{}, err
	}
	if date.IsZero() {
		return Movement{}, errs.NewValueIsRequiredError("movement date")
	}

	return Movement{point: point, date: date}, nil
}

// Point returns where the sample was taken.
func (m Movement) Point() kernel.GeoPoint { return m.point }

// Date returns when the sample was taken.
func (m Movement) Date() time.Time { return m.date }
