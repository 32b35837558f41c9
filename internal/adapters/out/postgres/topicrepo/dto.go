// Package topicrepo provides data transfer objects and mapping functions for
// topic and package template persistence.
package topicrepo

import (
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/topic"

	"github.com/google/uuid"
)

// TopicDTO represents the database structure for persisting topics.
type TopicDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description    string    `gorm:"type:text"`
	CountPackages  int       `gorm:"not null"`
	CountTemplates int       `gorm:"not null"`
}

// TableName specifies the database table name for topic entities.
func (TopicDTO) TableName() string {
	return "topics"
}

// TemplateDTO represents the database structure for persisting package
// templates saved under a topic.
type TemplateDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TopicID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Author        uuid.UUID `gorm:"type:uuid;not null;index"`
	Category      string    `gorm:"type:varchar(255);not null"`
	Headline      string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	CountPackages int       `gorm:"not null"`
}

// TableName specifies the database table name for template entities.
func (TemplateDTO) TableName() string {
	return "package_templates"
}

// topicFromDomain converts a topic aggregate to its database representation.
func topicFromDomain(aggregate *topic.Topic) TopicDTO {
	return TopicDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Description:    aggregate.Description(),
		CountPackages:  aggregate.CountPackages(),
		CountTemplates: aggregate.CountTemplates(),
	}
}

// topicToDomain converts a database DTO to a topic aggregate.
func topicToDomain(dto TopicDTO) (*topic.Topic, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return topic.RestoreTopic(id, dto.Name, dto.Description, dto.CountPackages, dto.CountTemplates)
}

// templateFromDomain converts a template to its database representation.
func templateFromDomain(template *topic.Template) TemplateDTO {
	return TemplateDTO{
		ID:            template.ID().Bytes(),
		TopicID:       template.TopicID().Bytes(),
		Author:        template.Author().Bytes(),
		Category:      template.Category(),
		Headline:      template.Headline(),
		Description:   template.Description(),
		CountPackages: template.CountPackages(),
	}
}

// templateToDomain converts a database DTO to a template.
func templateToDomain(dto TemplateDTO) (*topic.Template, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	topicID, err := kernel.UUIDFromBytes(dto.TopicID[:])
	if err != nil {
		return nil, err
	}

	author, err := kernel.UUIDFromBytes(dto.Author[:])
	if err != nil {
		return nil, err
	}

	return topic.RestoreTemplate(
		id, topicID, author, dto.Category, dto.Headline, dto.Description, dto.CountPackages)
}
