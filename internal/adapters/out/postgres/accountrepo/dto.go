// Package accountrepo provides data transfer objects and mapping functions
// for account persistence. The relation maps (interests, followed and moved
// packages) are stored as jsonb documents; the balance and the public
// counters live in plain columns for the query layer.
package accountrepo

import (
	"time"

	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting account
// aggregates.
type AccountDTO struct {
	ID                     uuid.UUID            `gorm:"type:uuid;primaryKey"`
	DisplayName            string               `gorm:"type:varchar(255);not null"`
	PicURL                 string               `gorm:"type:text"`
	CreatedDate            time.Time            `gorm:"not null"`
	PointsBalance          int                  `gorm:"not null"`
	CurrentPackage         *uuid.UUID           `gorm:"type:uuid;column:current_package;index"`
	Interests              map[string]bool      `gorm:"type:jsonb;serializer:json"`
	PackagesFollowing      map[string]time.Time `gorm:"type:jsonb;serializer:json"`
	PackagesMoved          map[string]time.Time `gorm:"type:jsonb;serializer:json"`
	CountPackagesFollowing int                  `gorm:"not null"`
	CountPackagesMoved     int                  `gorm:"not null"`
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain aggregate to its database representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	var currentPackage *uuid.UUID
	if id := aggregate.CurrentPackage(); id != nil {
		raw := id.Bytes()
		currentPackage = &raw
	}

	return AccountDTO{
		ID:                     aggregate.ID().Bytes(),
		DisplayName:            aggregate.DisplayName(),
		PicURL:                 aggregate.PicURL(),
		CreatedDate:            aggregate.CreatedDate(),
		PointsBalance:          aggregate.PointsBalance(),
		CurrentPackage:         currentPackage,
		Interests:              aggregate.Interests(),
		PackagesFollowing:      uuidMapToStrings(aggregate.PackagesFollowing()),
		PackagesMoved:          uuidMapToStrings(aggregate.PackagesMoved()),
		CountPackagesFollowing: aggregate.CountPackagesFollowing(),
		CountPackagesMoved:     aggregate.CountPackagesMoved(),
	}
}

// toDomain converts a database DTO to an account domain aggregate.
// The public counters are re-derived from the maps by RestoreAccount.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var currentPackage *kernel.UUID
	if dto.CurrentPackage != nil {
		packageID, packageErr := kernel.UUIDFromBytes((*dto.CurrentPackage)[:])
		if packageErr != nil {
			return nil, packageErr
		}
		currentPackage = &packageID
	}

	following, err := stringMapToUUIDs(dto.PackagesFollowing)
	if err != nil {
		return nil, err
	}

	moved, err := stringMapToUUIDs(dto.PackagesMoved)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(
		id, dto.DisplayName, dto.PicURL, dto.CreatedDate,
		dto.PointsBalance, currentPackage, dto.Interests, following, moved)
}

func uuidMapToStrings(m map[kernel.UUID]time.Time) map[string]time.Time {
	out := make(map[string]time.Time, len(m))
	for id, at := range m {
		out[id.String()] = at
	}
	return out
}

func stringMapToUUIDs(m map[string]time.Time) (map[kernel.UUID]time.Time, error) {
	out := make(map[kernel.UUID]time.Time, len(m))
	for raw, at := range m {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		out[id] = at
	}
	return out, nil
}
