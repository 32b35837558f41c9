package ports

import (
	"context"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/topic"
)

// TopicRepository defines the persistence contract for topics and the
// templates saved under them.
type TopicRepository interface {
	// Add persists a new topic.
	Add(ctx context.Context, aggregate *topic.Topic) error

	// Update persists changes to an existing topic.
	Update(ctx context.Context, aggregate *topic.Topic) error

	// Get retrieves a topic by its unique identifier.
	// Returns an errs.ObjectNotFoundError when no such topic exists.
	Get(ctx context.Context, id kernel.UUID) (*topic.Topic, error)

	// GetByName retrieves a topic by its display name.
	// Returns an errs.ObjectNotFoundError when no such topic exists.
	GetByName(ctx context.Context, name string) (*topic.Topic, error)

	// AddTemplate persists a new package template.
	AddTemplate(ctx context.Context, template *topic.Template) error

	// UpdateTemplate persists changes to an existing template.
	UpdateTemplate(ctx context.Context, template *topic.Template) error

	// GetTemplate retrieves a template by its unique identifier.
	// Returns an errs.ObjectNotFoundError when no such template exists.
	GetTemplate(ctx context.Context, id kernel.UUID) (*topic.Template, error)
}
