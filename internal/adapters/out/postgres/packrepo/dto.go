// Package packrepo provides data transfer objects and mapping functions for
// package persistence. The authored content and the follower map are stored
// as jsonb documents; logistics and counters live in plain columns so the
// query layer can filter and sort on them.
package packrepo

import (
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"

	"github.com/google/uuid"
)

// PackageDTO represents the database structure for persisting package
// aggregates.
type PackageDTO struct {
	ID                      uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Content                 ContentDTO           `gorm:"type:jsonb;serializer:json"`
	LogisticsAuthor         uuid.UUID            `gorm:"type:uuid;column:logistics_author;not null;index"`
	LogisticsInTransitBy    *uuid.UUID           `gorm:"type:uuid;column:logistics_in_transit_by;index"`
	Origin                  GeoPointDTO          `gorm:"embedded;embeddedPrefix:origin_"`
	CurrentLocation         GeoPointDTO          `gorm:"embedded;embeddedPrefix:current_location_"`
	Status                  string               `gorm:"type:varchar(16);not null;index"`
	CreatedDate             time.Time            `gorm:"not null"`
	ContentTemplateBy       *uuid.UUID           `gorm:"type:uuid;column:content_template_by"`
	Followers               map[string]time.Time `gorm:"type:jsonb;serializer:json"`
	RelationsCountFollowers int                  `gorm:"column:relations_count_followers;not null"`
	RelationsCountMovers    int                  `gorm:"column:relations_count_movers;not null"`
}

// TableName specifies the database table name for package entities.
func (PackageDTO) TableName() string {
	return "packages"
}

// GeoPointDTO represents embedded decimal-degree coordinates.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// ContentDTO is the jsonb document holding everything the creator authored.
type ContentDTO struct {
	Category        string               `json:"category"`
	Headline        string               `json:"headline"`
	Description     string               `json:"description,omitempty"`
	DueDate         time.Time            `json:"due_date"`
	Recipient       RecipientDTO         `json:"recipient"`
	Destination     DestinationDTO       `json:"destination"`
	Topic           TopicRefDTO          `json:"topic"`
	CoverPicURL     string               `json:"cover_pic_url,omitempty"`
	DropoffMessage  string               `json:"dropoff_message,omitempty"`
	ExternalActions []pack.ExternalAction `json:"external_actions,omitempty"`
}

// RecipientDTO is the recipient part of the content document.
type RecipientDTO struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	PicURL   string `json:"pic_url,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
}

// DestinationDTO is the destination part of the content document.
type DestinationDTO struct {
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TopicRefDTO links the content to the topic it was created under.
type TopicRefDTO struct {
	Name string    `json:"name"`
	Ref  uuid.UUID `json:"ref"`
}

// fromDomain converts a package domain aggregate to its database representation.
func fromDomain(aggregate *pack.Package) PackageDTO {
	var inTransitBy *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		inTransitBy = &raw
	}

	var templateBy *uuid.UUID
	if id := aggregate.TemplateBy(); id != nil {
		raw := id.Bytes()
		templateBy = &raw
	}

	followers := make(map[string]time.Time, aggregate.CountFollowers())
	for id, at := range aggregate.Followers() {
		followers[id.String()] = at
	}

	return PackageDTO{
		ID:                   aggregate.ID().Bytes(),
		Content:              contentFromDomain(aggregate.Content()),
		LogisticsAuthor:      aggregate.Author().Bytes(),
		LogisticsInTransitBy: inTransitBy,
		Origin: GeoPointDTO{
			Latitude:  aggregate.Origin().Latitude(),
			Longitude: aggregate.Origin().Longitude(),
		},
		CurrentLocation: GeoPointDTO{
			Latitude:  aggregate.CurrentLocation().Latitude(),
			Longitude: aggregate.CurrentLocation().Longitude(),
		},
		Status:                  aggregate.Status().String(),
		CreatedDate:             aggregate.CreatedDate(),
		ContentTemplateBy:       templateBy,
		Followers:               followers,
		RelationsCountFollowers: aggregate.CountFollowers(),
		RelationsCountMovers:    aggregate.CountMovers(),
	}
}

// contentFromDomain flattens the content value object into its jsonb form.
func contentFromDomain(content pack.Content) ContentDTO {
	recipient := content.Recipient()
	destination := content.Destination()
	topic := content.Topic()

	return ContentDTO{
		Category:    content.Category(),
		Headline:    content.Headline(),
		Description: content.Description(),
		DueDate:     content.DueDate(),
		Recipient: RecipientDTO{
			Name:     recipient.Name(),
			Phone:    recipient.Phone(),
			PicURL:   recipient.PicURL(),
			Twitter:  recipient.Twitter(),
			Facebook: recipient.Facebook(),
		},
		Destination: DestinationDTO{
			Name:      destination.Name(),
			Address:   destination.Address(),
			Latitude:  destination.Point().Latitude(),
			Longitude: destination.Point().Longitude(),
		},
		Topic: TopicRefDTO{
			Name: topic.Name(),
			Ref:  topic.Reference().Bytes(),
		},
		CoverPicURL:     content.CoverPicURL(),
		DropoffMessage:  content.DropoffMessage(),
		ExternalActions: content.ExternalActions(),
	}
}

// toDomain converts a database DTO to a package domain aggregate.
func toDomain(dto PackageDTO) (*pack.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	author, err := kernel.UUIDFromBytes(dto.LogisticsAuthor[:])
	if err != nil {
		return nil, err
	}

	var inTransitBy *kernel.UUID
	if dto.LogisticsInTransitBy != nil {
		courierID, courierErr := kernel.UUIDFromBytes((*dto.LogisticsInTransitBy)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		inTransitBy = &courierID
	}

	var templateBy *kernel.UUID
	if dto.ContentTemplateBy != nil {
		templateID, templateErr := kernel.UUIDFromBytes((*dto.ContentTemplateBy)[:])
		if templateErr != nil {
			return nil, templateErr
		}
		templateBy = &templateID
	}

	origin, err := kernel.NewGeoPoint(dto.Origin.Latitude, dto.Origin.Longitude)
	if err != nil {
		return nil, err
	}

	currentLocation, err := kernel.NewGeoPoint(dto.CurrentLocation.Latitude, dto.CurrentLocation.Longitude)
	if err != nil {
		return nil, err
	}

	status, err := pack.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	content, err := contentToDomain(dto.Content)
	if err != nil {
		return nil, err
	}

	followers := make(map[kernel.UUID]time.Time, len(dto.Followers))
	for raw, at := range dto.Followers {
		followerID, followerErr := kernel.UUIDFromString(raw)
		if followerErr != nil {
			return nil, followerErr
		}
		followers[followerID] = at
	}

	return pack.RestorePackage(
		id, content, author, inTransitBy, origin, currentLocation,
		status, dto.CreatedDate, templateBy, followers, dto.RelationsCountMovers)
}

// contentToDomain rebuilds the content value object from its jsonb form.
func contentToDomain(dto ContentDTO) (pack.Content, error) {
	recipient, err := pack.NewRecipient(
		dto.Recipient.Name, dto.Recipient.Phone, dto.Recipient.PicURL,
		dto.Recipient.Twitter, dto.Recipient.Facebook)
	if err != nil {
		return pack.Content{}, err
	}

	point, err := kernel.NewGeoPoint(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return pack.Content{}, err
	}

	destination, err := pack.NewDestination(dto.Destination.Name, dto.Destination.Address, point)
	if err != nil {
		return pack.Content{}, err
	}

	topicRef, err := kernel.UUIDFromBytes(dto.Topic.Ref[:])
	if err != nil {
		return pack.Content{}, err
	}

	topic, err := pack.NewTopicRef(dto.Topic.Name, topicRef)
	if err != nil {
		return pack.Content{}, err
	}

	return pack.NewContent(
		dto.Category, dto.Headline, dto.Description, dto.DueDate,
		recipient, destination, topic,
		dto.CoverPicURL, dto.DropoffMessage, dto.ExternalActions)
}
