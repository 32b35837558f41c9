// Package transitrepo provides data transfer objects and mapping functions
// for transit record persistence. Records are keyed by the (package, courier)
// pair; the movement trail is stored as a jsonb array ordered by time.
package transitrepo

import (
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/transit"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting transit records.
type RecordDTO struct {
	PackageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID uuid.UUID `gorm:"type:uuid;primaryKey"`

	PickupLatitude  float64   `gorm:"type:double precision;not null"`
	PickupLongitude float64   `gorm:"type:double precision;not null"`
	PickupDate      time.Time `gorm:"not null"`

	DropoffLatitude  *float64   `gorm:"type:double precision"`
	DropoffLongitude *float64   `gorm:"type:double precision"`
	DropoffDate      *time.Time

	Movements []MovementDTO `gorm:"type:jsonb;serializer:json"`
}

// TableName specifies the database table name for transit records.
func (RecordDTO) TableName() string {
	return "transit_records"
}

// MovementDTO is one sample of the movement trail inside the jsonb array.
type MovementDTO struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Date      time.Time `json:"date"`
}

// fromDomain converts a transit record to its database representation.
func fromDomain(record *transit.Record) RecordDTO {
	dto := RecordDTO{
		PackageID:       record.PackageID().Bytes(),
		CourierID:       record.CourierID().Bytes(),
		PickupLatitude:  record.PickupPoint().Latitude(),
		PickupLongitude: record.PickupPoint().Longitude(),
		PickupDate:      record.PickupDate(),
	}

	if point := record.DropoffPoint(); point != nil {
		latitude := point.Latitude()
		longitude := point.Longitude()
		dto.DropoffLatitude = &latitude
		dto.DropoffLongitude = &longitude
		dto.DropoffDate = record.DropoffDate()
	}

	movements := record.Movements()
	dto.Movements = make([]MovementDTO, 0, len(movements))
	for _, movement := range movements {
		dto.Movements = append(dto.Movements, MovementDTO{
			Latitude:  movement.Point().Latitude(),
			Longitude: movement.Point().Longitude(),
			Date:      movement.Date(),
		})
	}

	return dto
}

// toDomain converts a database DTO to a transit record.
func toDomain(dto RecordDTO) (*transit.Record, error) {
	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	pickupPoint, err := kernel.NewGeoPoint(dto.PickupLatitude, dto.PickupLongitude)
	if err != nil {
		return nil, err
	}

	var dropoffPoint *kernel.GeoPoint
	if dto.DropoffLatitude != nil && dto.DropoffLongitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DropoffLatitude, *dto.DropoffLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		dropoffPoint = &point
	}

	movements := make([]transit.Movement, 0, len(dto.Movements))
	for _, sample := range dto.Movements {
		point, pointErr := kernel.NewGeoPoint(sample.Latitude, sample.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}

		movement, movementErr := transit.NewMovement(point, sample.Date)
		if movementErr != nil {
			return nil, movementErr
		}
		movements = append(movements, movement)
	}

	return transit.RestoreRecord(
		packageID, courierID, pickupPoint, dto.PickupDate,
		dropoffPoint, dto.DropoffDate, movements)
}
