package packrepo

import (
	"context"
	"errors"

	"relay/internal/adapters/out/postgres/pgerr"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"
	"relay/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package to the database.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *pack.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Convert("packages insert", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing package to the database. All columns are written,
// so cleared fields (a released courier, a removed follower) persist too.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *pack.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Convert("packages update", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a package by ID.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*pack.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, pgerr.Convert("packages select", err)
	}

	return toDomain(dto)
}

// ListCoverImageURLs returns the cover image URLs referenced by any stored
// package, for the orphaned media sweep.
func (r *GormPackageRepository) ListCoverImageURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("content ->> 'cover_pic_url' <> ''").
		Pluck("content ->> 'cover_pic_url'", &urls).Error
	if err != nil {
		return nil, pgerr.Convert("packages select", err)
	}

	return urls, nil
}
