package transitrepo

import (
	"context"
	"errors"

	"relay/internal/adapters/out/postgres/pgerr"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/transit"
	"relay/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransitRepository implements TransitRepository using GORM.
type GormTransitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTransitRepository creates a new GORM transit record repository.
func NewGormTransitRepository(db *gorm.DB, tracker aggregateTracker) *GormTransitRepository {
	return &GormTransitRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new transit record to the database.
func (r *GormTransitRepository) Add(ctx context.Context, record *transit.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Convert("transit_records insert", err)
	}

	r.tracker.TrackAggregate(record.PackageID(), record)
	return nil
}

// Update saves an existing transit record to the database. All columns are
// written, so a restarted leg's cleared dropoff persists as NULL.
func (r *GormTransitRepository) Update(ctx context.Context, record *transit.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("package_id = ? AND courier_id = ?", dto.PackageID, dto.CourierID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Convert("transit_records update", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(record.PackageID(), record)
	return nil
}

// Get retrieves the transit record for a courier on a package.
func (r *GormTransitRepository) Get(
	ctx context.Context,
	packageID kernel.UUID,
	courierID kernel.UUID,
) (*transit.Record, error) {
	if err := errors.Join(packageID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	var dto RecordDTO
	err := r.db.WithContext(ctx).
		First(&dto, "package_id = ? AND courier_id = ?", packageID.Bytes(), courierID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transit record", packageID.String())
		}
		return nil, pgerr.Convert("transit_records select", err)
	}

	return toDomain(dto)
}
