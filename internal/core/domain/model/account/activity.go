package account

import (
	"errors"
	"fmt"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
)

// ActivityType classifies a point-affecting event on an account's ledger.
type ActivityType int

const (
	// ActivityUnknown represents an invalid or undefined activity type.
	ActivityUnknown ActivityType = iota

	// ActivityPackageCreation is the debit charged for creating a package.
	ActivityPackageCreation

	// ActivityPackagePickup marks a courier claiming a package. Carries no
	// points; the effort credit is granted at dropoff.
	ActivityPackagePickup

	// ActivityPackageDropoff is the effort credit for a completed leg.
	ActivityPackageDropoff

	// ActivityDeliveryBonus is the extra credit for the leg that delivered
	// the package.
	ActivityDeliveryBonus

	// ActivityTemplateBonus is the credit granted to template authors when
	// their template is saved or reused.
	ActivityTemplateBonus

	// ActivityPackageFollow marks a user subscribing to a package.
	ActivityPackageFollow
)

// activityTypeCodec is the single bidirectional table mapping ActivityType
// values to their persisted string form.
var activityTypeCodec = map[ActivityType]string{
	ActivityPackageCreation: "package_creation",
	ActivityPackagePickup:   "package_pickup",
	ActivityPackageDropoff:  "package_dropoff",
	ActivityDeliveryBonus:   "delivery_bonus",
	ActivityTemplateBonus:   "template_bonus",
	ActivityPackageFollow:   "package_follow",
}

// ActivityTypeFromString decodes a persisted activity type string.
func ActivityTypeFromString(s string) (ActivityType, error) {
	for activityType, str := range activityTypeCodec {
		if str == s {
			return activityType, nil
		}
	}
	return ActivityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"activity type is invalid", fmt.Errorf("%q is not a known activity type", s))
}

// Validate checks if the ActivityType value is valid.
func (t ActivityType) Validate() error {
	if _, ok := activityTypeCodec[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"activity type is invalid", fmt.Errorf("%d is not a valid activity type", t))
	}
	return nil
}

// String returns the persisted string form, or "unknown" for values outside
// the codec table. Implements fmt.Stringer.
func (t ActivityType) String() string {
	if str, ok := activityTypeCodec[t]; ok {
		return str
	}
	return "unknown"
}

// ObjectType classifies what a ledger row or feed event refers to.
type ObjectType int

const (
	// ObjectUnknown represents an invalid or undefined object type.
	ObjectUnknown ObjectType = iota

	// ObjectPackage references a package document.
	ObjectPackage

	// ObjectTopic references a topic document.
	ObjectTopic

	// ObjectTemplate references a package template document.
	ObjectTemplate
)

// objectTypeCodec is the single bidirectional table mapping ObjectType
// values to their persisted string form.
var objectTypeCodec = map[ObjectType]string{
	ObjectPackage:  "package",
	ObjectTopic:    "topic",
	ObjectTemplate: "template",
}

// ObjectTypeFromString decodes a persisted object type string.
func ObjectTypeFromString(s string) (ObjectType, error) {
	for objectType, str := range objectTypeCodec {
		if str == s {
			return objectType, nil
		}
	}
	return ObjectUnknown, errs.NewValueIsInvalidErrorWithCause(
		"object type is invalid", fmt.Errorf("%q is not a known object type", s))
}

// Validate checks if the ObjectType value is valid.
func (t ObjectType) Validate() error {
	if _, ok := objectTypeCodec[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"object type is invalid", fmt.Errorf("%d is not a valid object type", t))
	}
	return nil
}

// String returns the persisted string form, or "unknown" for values outside
// the codec table. Implements fmt.Stringer.
func (t ObjectType) String() string {
	if str, ok := objectTypeCodec[t]; ok {
		return str
	}
	return "unknown"
}

// Activity is one immutable row of an account's point ledger: who did what
// to which object, when, and how many points it was worth. The amount is
// signed — negative for debits, positive for credits, zero for events that
// are logged but carry no points.
//
// The account's cached balance is the running sum of its rows; the atomic
// unit that appends a row adjusts the balance in the same commit.
type Activity struct {
	owner        kernel.UUID
	date         time.Time
	objectRef    kernel.UUID
	objectType   ObjectType
	objectName   string
	activityType ActivityType
	actorRef     kernel.UUID
	actorName    string
	actorPic     string
	amount       int

	isConstructed bool
}

// NewActivity creates a ledger row. Owner is the account the row belongs
// to; actor is who performed the event (usually, but not always, the owner —
// a template bonus is owned by the template's author and acted by the
// package creator).
func NewActivity(
	owner kernel.UUID,
	date time.Time,
	objectRef kernel.UUID,
	objectType ObjectType,
	objectName string,
	activityType ActivityType,
	actorRef kernel.UUID,
	actorName string,
	actorPic string,
	amount int,
) (*Activity, error) {
	if err := errors.Join(
		owner.Validate(), objectRef.Validate(), objectType.Validate(),
		activityType.Validate(), actorRef.Validate(),
	); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("activity date")
	}

	return &Activity{
		owner:         owner,
		date:          date,
		objectRef:     objectRef,
		objectType:    objectType,
		objectName:    objectName,
		activityType:  activityType,
		actorRef:      actorRef,
		actorName:     actorName,
		actorPic:      actorPic,
		amount:        amount,
		isConstructed: true,
	}, nil
}

// Validate ensures the activity was created through NewActivity.
func (a *Activity) Validate() error {
	if a == nil || !a.isConstructed {
		return errors.New("Activity must be created via NewActivity constructor")
	}
	return nil
}

// Owner returns the account this ledger row belongs to.
func (a *Activity) Owner() kernel.UUID { return a.owner }

// Date returns when the event happened.
func (a *Activity) Date() time.Time { return a.date }

// ObjectRef returns the id of the object the event refers to.
func (a *Activity) ObjectRef() kernel.UUID { return a.objectRef }

// ObjectType returns what kind of object the event refers to.
func (a *Activity) ObjectType() ObjectType { return a.objectType }

// ObjectName returns the display name of the object, possibly empty.
func (a *Activity) ObjectName() string { return a.objectName }

// ActivityType returns the event classification.
func (a *Activity) ActivityType() ActivityType { return a.activityType }

// ActorRef returns who performed the event.
func (a *Activity) ActorRef() kernel.UUID { return a.actorRef }

// ActorName returns the actor's display name at the time of the event.
func (a *Activity) ActorName() string { return a.actorName }

// ActorPic returns the actor's picture URL at the time of the event.
func (a *Activity) ActorPic() string { return a.actorPic }

// Amount returns the signed points value of the event.
func (a *Activity) Amount() int { return a.amount }
