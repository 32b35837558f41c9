package topic

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
)

// ErrTemplateIsNotConstructed is returned when a Template instance was not
// created through the NewTemplate or RestoreTemplate factory functions.
var ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate constructor")

// Template is reusable package content saved under a topic. Reusing a
// template credits its author, so the template keeps track of who saved it
// and how often it has been used.
type Template struct {
	id            kernel.UUID
	topicID       kernel.UUID
	author        kernel.UUID
	category      string
	headline      string
	description   string
	countPackages int

	isConstructed bool
}

// NewTemplate saves package content as a reusable template.
func NewTemplate(
	id kernel.UUID,
	topicID kernel.UUID,
	author kernel.UUID,
	category string,
	headline string,
	description string,
) (*Template, error) {
	if err := errors.Join(id.Validate(), topicID.Validate(), author.Validate()); err != nil {
		return nil, err
	}
	if headline == "" {
		return nil, errs.NewValueIsRequiredError("template headline")
	}

	return &Template{
		id:            id,
		topicID:       topicID,
		author:        author,
		category:      category,
		headline:      headline,
		description:   description,
		isConstructed: true,
	}, nil
}

// RestoreTemplate reconstructs a template from persistence.
func RestoreTemplate(
	id kernel.UUID,
	topicID kernel.UUID,
	author kernel.UUID,
	category string,
	headline string,
	description string,
	countPackages int,
) (*Template, error) {
	template, err := NewTemplate(id, topicID, author, category, headline, description)
	if err != nil {
		return nil, err
	}

	template.countPackages = countPackages
	return template, nil
}

// Validate ensures the template was created through NewTemplate or RestoreTemplate.
func (t *Template) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTemplateIsNotConstructed
	}
	return nil
}

// ID returns the template's identifier.
func (t *Template) ID() kernel.UUID { return t.id }

// TopicID returns the topic the template was saved under.
func (t *Template) TopicID() kernel.UUID { return t.topicID }

// Author returns who saved the template.
func (t *Template) Author() kernel.UUID { return t.author }

// Category returns the template's package category.
func (t *Template) Category() string { return t.category }

// Headline returns the template's headline.
func (t *Template) Headline() string { return t.headline }

// Description returns the template's description, possibly empty.
func (t *Template) Description() string { return t.description }

// CountPackages returns how many packages were created from the template.
func (t *Template) CountPackages() int { return t.countPackages }

// IncrementPackages records another package created from the template.
func (t *Template) IncrementPackages() {
	t.countPackages++
}
