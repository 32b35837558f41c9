package kernel

import (
	"errors"
	"fmt"
	"math"

	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

const (
	// MinLatitude is the minimum valid latitude in decimal degrees.
	MinLatitude = -90.0
	// MaxLatitude is the maximum valid latitude in decimal degrees.
	MaxLatitude = 90.0
	// MinLongitude is the minimum valid longitude in decimal degrees.
	MinLongitude = -180.0
	// MaxLongitude is the maximum valid longitude in decimal degrees.
	MaxLongitude = 180.0

	// earthRadiusMeters is the mean Earth radius used by the haversine formula.
	earthRadiusMeters = 6371000.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position as validated decimal-degree
// coordinates. It is an immutable value object; the zero value is invalid
// and fails validation.
//
// Callers of the core supply already-resolved coordinates (device location,
// geocoded destination), so GeoPoint performs range validation only.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(52.5200, 13.4050)
//	if err != nil {
//	    // Handle validation error
//	}
//	meters, _ := point.DistanceTo(destination)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from decimal-degree coordinates.
// Latitude must be within [-90..90] and longitude within [-180..180].
// Returns an error if either coordinate is out of bounds.
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed via NewGeoPoint.
// The zero value fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation in the form
// "GeoPoint(lat,lon)". Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two geo points for coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// DistanceTo calculates the great-circle distance to another point in meters
// using the haversine formula. Both points must be properly constructed.
//
// Example:
//
//	berlin, _ := kernel.NewGeoPoint(52.5200, 13.4050)
//	hamburg, _ := kernel.NewGeoPoint(53.5511, 9.9937)
//	meters, _ := berlin.DistanceTo(hamburg) // ≈ 255000
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLon := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

// setLatitude sets the latitude with validation.
// Note: private setters use pointer receivers to enable self-encapsulated
// validation during object construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	p.longitude = longitude
	return nil
}
