package pack

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var (
	// ErrContentIsNotConstructed is returned when a Content instance was not
	// created through the NewContent constructor.
	ErrContentIsNotConstructed = errors.New("Content must be created via NewContent constructor")

	// ErrRecipientIsNotConstructed is returned when a Recipient instance was
	// not created through the NewRecipient constructor.
	ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient constructor")

	// ErrDestinationIsNotConstructed is returned when a Destination instance
	// was not created through the NewDestination constructor.
	ErrDestinationIsNotConstructed = errors.New("Destination must be created via NewDestination constructor")
)

// Recipient identifies the person a package is addressed to, together with
// the contact references the presentation layer uses to render them.
type Recipient struct { //nolint:recvcheck //using for validation
	name     string
	phone    string
	picURL   string
	twitter  string
	facebook string

	guard guard.ConstructorGuard
}

// NewRecipient creates a recipient. Only the display name is required; the
// contact references are optional and may be empty.
func NewRecipient(name, phone, picURL, twitter, facebook string) (Recipient, error) {
	if name == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient name")
	}

	return Recipient{
		name:     name,
		phone:    phone,
		picURL:   picURL,
		twitter:  twitter,
		facebook: facebook,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the recipient was created through NewRecipient.
func (r Recipient) Validate() error {
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// Name returns the recipient's display name.
func (r Recipient) Name() string { return r.name }

// Phone returns the recipient's phone number, possibly empty.
func (r Recipient) Phone() string { return r.phone }

// PicURL returns the recipient's picture URL, possibly empty.
func (r Recipient) PicURL() string { return r.picURL }

// Twitter returns the recipient's twitter handle, possibly empty.
func (r Recipient) Twitter() string { return r.twitter }

// Facebook returns the recipient's facebook handle, possibly empty.
func (r Recipient) Facebook() string { return r.facebook }

// Destination is the resolved geographic target of a package. The point is
// supplied already geocoded by the caller.
type Destination struct { //nolint:recvcheck //using for validation
	name    string
	address string
	point   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewDestination creates a destination from a display name, a postal
// address, and resolved coordinates.
func NewDestination(name, address string, point kernel.GeoPoint) (Destination, error) {
	if err := point.Validate(); err != nil {
		return Destination{}, err
	}
	if address == "" {
		return Destination{}, errs.NewValueIsRequiredError("destination address")
	}

	return Destination{
		name:    name,
		address: address,
		point:   point,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the destination was created through NewDestination.
func (d Destination) Validate() error {
	return d.guard.Validate(ErrDestinationIsNotConstructed)
}

// Name returns the destination's display name, possibly empty.
func (d Destination) Name() string { return d.name }

// Address returns the destination's postal address.
func (d Destination) Address() string { return d.address }

// Point returns the destination's resolved coordinates.
func (d Destination) Point() kernel.GeoPoint { return d.point }

// TopicRef links a package to the topic it was created under.
type TopicRef struct {
	name      string
	reference kernel.UUID
}

// NewTopicRef creates a topic reference from the topic's name and id.
func NewTopicRef(name string, reference kernel.UUID) (TopicRef, error) {
	if name == "" {
		return TopicRef{}, errs.NewValueIsRequiredError("topic name")
	}
	if err := reference.Validate(); err != nil {
		return TopicRef{}, err
	}

	return TopicRef{name: name, reference: reference}, nil
}

// Name returns the topic's display name.
func (t TopicRef) Name() string { return t.name }

// Reference returns the topic's id.
func (t TopicRef) Reference() kernel.UUID { return t.reference }

// ExternalAction is a link the presentation layer renders alongside a
// package, e.g. a petition or donation page.
type ExternalAction struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Content groups everything a creator authors about a package: what it is,
// who it is for, and where it must go. Content is immutable after creation.
type Content struct { //nolint:recvcheck //using for validation
	category        string
	headline        string
	description     string
	dueDate         time.Time
	recipient       Recipient
	destination     Destination
	topic           TopicRef
	coverPicURL     string
	dropoffMessage  string
	externalActions []ExternalAction

	guard guard.ConstructorGuard
}

// NewContent creates package content. Category, headline, recipient,
// destination and topic are required; cover image, dropoff message and
// external actions are optional.
func NewContent(
	category string,
	headline string,
	description string,
	dueDate time.Time,
	recipient Recipient,
	destination Destination,
	topic TopicRef,
	coverPicURL string,
	dropoffMessage string,
	externalActions []ExternalAction,
) (Content, error) {
	if category == "" {
		return Content{}, errs.NewValueIsRequiredError("category")
	}
	if headline == "" {
		return Content{}, errs.NewValueIsRequiredError("headline")
	}
	if dueDate.IsZero() {
		return Content{}, errs.NewValueIsRequiredError("due date")
	}
	if err := errors.Join(recipient.Validate(), destination.Validate()); err != nil {
		return Content{}, err
	}
	if topic.Name() == "" {
		return Content{}, errs.NewValueIsRequiredError("topic")
	}

	return Content{
		category:        category,
		headline:        headline,
		description:     description,
		dueDate:         dueDate,
		recipient:       recipient,
		destination:     destination,
		topic:           topic,
		coverPicURL:     coverPicURL,
		dropoffMessage:  dropoffMessage,
		externalActions: externalActions,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the content was created through NewContent.
func (c Content) Validate() error {
	return c.guard.Validate(ErrContentIsNotConstructed)
}

// Category returns the package category.
func (c Content) Category() string { return c.category }

// Headline returns the package headline.
func (c Content) Headline() string { return c.headline }

// Description returns the package description, possibly empty.
func (c Content) Description() string { return c.description }

// DueDate returns the date the package should arrive by.
func (c Content) DueDate() time.Time { return c.dueDate }

// Recipient returns the addressee of the package.
func (c Content) Recipient() Recipient { return c.recipient }

// Destination returns the package destination.
func (c Content) Destination() Destination { return c.destination }

// Topic returns the topic reference the package was created under.
func (c Content) Topic() TopicRef { return c.topic }

// CoverPicURL returns the resolved cover image URL, possibly empty.
func (c Content) CoverPicURL() string { return c.coverPicURL }

// DropoffMessage returns the message shown to couriers at dropoff, possibly empty.
func (c Content) DropoffMessage() string { return c.dropoffMessage }

// ExternalActions returns the external action links attached to the package.
func (c Content) ExternalActions() []ExternalAction { return c.externalActions }
