package queries

import (
	"context"
	"database/sql"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PackageCache is a read-through cache for package views. A miss is reported
// with errs.ErrObjectNotFound; cache failures never fail the query.
type PackageCache interface {
	Get(ctx context.Context, packageID kernel.UUID) (GetPackageQueryResponse, error)
	Set(ctx context.Context, response GetPackageQueryResponse) error
	Invalidate(ctx context.Context, packageID kernel.UUID) error
}

// GetPackageQueryHandler retrieves the public view of a package, consulting
// the cache before the database and refilling it on a miss.
type GetPackageQueryHandler struct {
	db    *gorm.DB
	cache PackageCache
}

// NewGetPackageQueryHandler creates a handler for package view queries.
// The cache is optional; a nil cache means every read hits the database.
func NewGetPackageQueryHandler(db *gorm.DB, cache PackageCache) GetPackageQueryHandler {
	return GetPackageQueryHandler{db: db, cache: cache}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no package
// with the requested id exists.
func (h GetPackageQueryHandler) Handle(
	ctx context.Context,
	query GetPackageQuery,
) (GetPackageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPackageQueryResponse{}, err
	}

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, query.PackageID()); err == nil {
			return cached, nil
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			content ->> 'category',
			content ->> 'headline',
			content ->> 'description',
			content ->> 'cover_pic_url',
			content -> 'destination' ->> 'name',
			content -> 'destination' ->> 'address',
			(content -> 'destination' ->> 'latitude')::double precision,
			(content -> 'destination' ->> 'longitude')::double precision,
			current_location_latitude,
			current_location_longitude,
			status,
			logistics_author,
			logistics_in_transit_by,
			created_date,
			relations_count_followers,
			relations_count_movers
		FROM packages
		WHERE id = ?
	`, query.PackageID().Bytes()).Rows()
	if err != nil {
		return GetPackageQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetPackageQueryResponse{}, err
		}
		return GetPackageQueryResponse{},
			errs.NewObjectNotFoundError("package", query.PackageID())
	}

	var response GetPackageQueryResponse
	var id, author uuid.UUID
	var inTransitBy uuid.NullUUID
	var description, coverPicURL, destinationName sql.NullString

	err = rows.Scan(
		&id,
		&response.Category,
		&response.Headline,
		&description,
		&coverPicURL,
		&destinationName,
		&response.DestinationAddress,
		&response.DestinationLatitude,
		&response.DestinationLongitude,
		&response.CurrentLatitude,
		&response.CurrentLongitude,
		&response.Status,
		&author,
		&inTransitBy,
		&response.CreatedDate,
		&response.CountFollowers,
		&response.CountMovers,
	)
	if err != nil {
		return GetPackageQueryResponse{}, err
	}

	packageID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetPackageQueryResponse{}, err
	}
	response.ID = packageID

	authorID, err := kernel.UUIDFromBytes(author[:])
	if err != nil {
		return GetPackageQueryResponse{}, err
	}
	response.Author = authorID

	if inTransitBy.Valid {
		courierID, courierErr := kernel.UUIDFromBytes(inTransitBy.UUID[:])
		if courierErr != nil {
			return GetPackageQueryResponse{}, courierErr
		}
		response.InTransitBy = &courierID
	}

	response.Description = description.String
	response.CoverPicURL = coverPicURL.String
	response.DestinationName = destinationName.String

	if err = rows.Err(); err != nil {
		return GetPackageQueryResponse{}, err
	}

	if h.cache != nil {
		// Best effort: a cache write failure must not fail the read.
		_ = h.cache.Set(ctx, response)
	}

	return response, nil
}
