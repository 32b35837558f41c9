// Package topic contains the aggregation entities packages are created
// under: the Topic itself and the reusable PackageTemplate. Both carry
// usage counters that are incremented inside the same atomic unit as the
// package creation that references them.
package topic

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
)

// ErrTopicIsNotConstructed is returned when a Topic instance was not created
// through the NewTopic or RestoreTopic factory functions.
var ErrTopicIsNotConstructed = errors.New("Topic must be created via NewTopic constructor")

// Topic groups packages by cause. Its counters track how many packages and
// templates were created under it.
type Topic struct {
	id             kernel.UUID
	name           string
	description    string
	countPackages  int
	countTemplates int

	isConstructed bool
}

// NewTopic creates a topic with zeroed counters.
func NewTopic(id kernel.UUID, name string, description string) (*Topic, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("topic name")
	}

	return &Topic{
		id:            id,
		name:          name,
		description:   description,
		isConstructed: true,
	}, nil
}

// RestoreTopic reconstructs a topic from persistence.
func RestoreTopic(id kernel.UUID, name, description string, countPackages, countTemplates int) (*Topic, error) {
	topic, err := NewTopic(id, name, description)
	if err != nil {
		return nil, err
	}

	topic.countPackages = countPackages
	topic.countTemplates = countTemplates
	return topic, nil
}

// Validate ensures the topic was created through NewTopic or RestoreTopic.
func (t *Topic) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTopicIsNotConstructed
	}
	return nil
}

// ID returns the topic's identifier.
func (t *Topic) ID() kernel.UUID { return t.id }

// Name returns the topic's display name.
func (t *Topic) Name() string { return t.name }

// Description returns the topic's description, possibly empty.
func (t *Topic) Description() string { return t.description }

// CountPackages returns how many packages were created under the topic.
func (t *Topic) CountPackages() int { return t.countPackages }

// CountTemplates returns how many templates were saved under the topic.
func (t *Topic) CountTemplates() int { return t.countTemplates }

// IncrementPackages records another package created under the topic.
func (t *Topic) IncrementPackages() {
	t.countPackages++
}

// IncrementTemplates records another template saved under the topic.
func (t *Topic) IncrementTemplates() {
	t.countTemplates++
}
