package topicrepo

import (
	"context"
	"errors"

	"relay/internal/adapters/out/postgres/pgerr"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/topic"
	"relay/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTopicRepository implements TopicRepository using GORM.
type GormTopicRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTopicRepository creates a new GORM topic repository.
func NewGormTopicRepository(db *gorm.DB, tracker aggregateTracker) *GormTopicRepository {
	return &GormTopicRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new topic to the database.
func (r *GormTopicRepository) Add(ctx context.Context, aggregate *topic.Topic) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := topicFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Convert("topics insert", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing topic to the database.
func (r *GormTopicRepository) Update(ctx context.Context, aggregate *topic.Topic) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := topicFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TopicDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Convert("topics update", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a topic by ID.
func (r *GormTopicRepository) Get(ctx context.Context, id kernel.UUID) (*topic.Topic, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TopicDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("topic", id.String())
		}
		return nil, pgerr.Convert("topics select", err)
	}

	return topicToDomain(dto)
}

// GetByName retrieves a topic by its display name.
func (r *GormTopicRepository) GetByName(ctx context.Context, name string) (*topic.Topic, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("topic name")
	}

	var dto TopicDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("topic", name)
		}
		return nil, pgerr.Convert("topics select", err)
	}

	return topicToDomain(dto)
}

// AddTemplate saves a new package template to the database.
func (r *GormTopicRepository) AddTemplate(ctx context.Context, template *topic.Template) error {
	if err := template.Validate(); err != nil {
		return err
	}

	dto := templateFromDomain(template)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Convert("package_templates insert", err)
	}

	r.tracker.TrackAggregate(template.ID(), template)
	return nil
}

// UpdateTemplate saves an existing package template to the database.
func (r *GormTopicRepository) UpdateTemplate(ctx context.Context, template *topic.Template) error {
	if err := template.Validate(); err != nil {
		return err
	}

	dto := templateFromDomain(template)
	result := r.db.WithContext(ctx).
		Model(&TemplateDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Convert("package_templates update", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(template.ID(), template)
	return nil
}

// GetTemplate retrieves a package template by ID.
func (r *GormTopicRepository) GetTemplate(ctx context.Context, id kernel.UUID) (*topic.Template, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TemplateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("template", id.String())
		}
		return nil, pgerr.Convert("package_templates select", err)
	}

	return templateToDomain(dto)
}
