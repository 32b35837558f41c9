package account

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
)

var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not
	// created through the NewAccount or RestoreAccount factory functions.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")

	// ErrAlreadyCarryingPackage is returned when an account that already has
	// a current package tries to take another one.
	ErrAlreadyCarryingPackage = errors.New("account already carries a package")
)

// Account is a user of the relay: a public profile (display name, picture,
// aggregate counters) and a private profile (points balance, the package
// currently carried, interests, and the followed/moved package maps).
//
// Invariant: currentPackage is set if and only if the user is the active
// courier of exactly one in-transit package. The counters mirror their maps.
type Account struct {
	id kernel.UUID

	// public profile
	displayName            string
	picURL                 string
	createdDate            time.Time
	countPackagesFollowing int
	countPackagesMoved     int

	// private profile
	pointsBalance     int
	currentPackage    *kernel.UUID
	interests         map[string]bool
	packagesFollowing map[kernel.UUID]time.Time
	packagesMoved     map[kernel.UUID]time.Time

	isConstructed bool
}

// NewAccount creates an account with an opening points balance and empty
// relation maps.
func NewAccount(
	id kernel.UUID,
	displayName string,
	picURL string,
	createdDate time.Time,
	openingBalance int,
) (*Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if displayName == "" {
		return nil, errs.NewValueIsRequiredError("display name")
	}

	return &Account{
		id:                id,
		displayName:       displayName,
		picURL:            picURL,
		createdDate:       createdDate,
		pointsBalance:     openingBalance,
		interests:         make(map[string]bool),
		packagesFollowing: make(map[kernel.UUID]time.Time),
		packagesMoved:     make(map[kernel.UUID]time.Time),
		isConstructed:     true,
	}, nil
}

// RestoreAccount reconstructs an account from persistence. The following and
// moved counters are re-derived from their maps.
func RestoreAccount(
	id kernel.UUID,
	displayName string,
	picURL string,
	createdDate time.Time,
	pointsBalance int,
	currentPackage *kernel.UUID,
	interests map[string]bool,
	packagesFollowing map[kernel.UUID]time.Time,
	packagesMoved map[kernel.UUID]time.Time,
) (*Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if displayName == "" {
		return nil, errs.NewValueIsRequiredError("display name")
	}
	if currentPackage != nil {
		if err := currentPackage.Validate(); err != nil {
			return nil, err
		}
	}

	if interests == nil {
		interests = make(map[string]bool)
	}
	if packagesFollowing == nil {
		packagesFollowing = make(map[kernel.UUID]time.Time)
	}
	if packagesMoved == nil {
		packagesMoved = make(map[kernel.UUID]time.Time)
	}

	return &Account{
		id:                     id,
		displayName:            displayName,
		picURL:                 picURL,
		createdDate:            createdDate,
		countPackagesFollowing: len(packagesFollowing),
		countPackagesMoved:     len(packagesMoved),
		pointsBalance:          pointsBalance,
		currentPackage:         currentPackage,
		interests:              interests,
		packagesFollowing:      packagesFollowing,
		packagesMoved:          packagesMoved,
		isConstructed:          true,
	}, nil
}

// Validate ensures the account was created through NewAccount or RestoreAccount.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}

	return nil
}

// ID returns the account's identifier.
func (a *Account) ID() kernel.UUID { return a.id }

// DisplayName returns the public display name.
func (a *Account) DisplayName() string { return a.displayName }

// PicURL returns the public profile picture URL, possibly empty.
func (a *Account) PicURL() string { return a.picURL }

// CreatedDate returns when the account was created.
func (a *Account) CreatedDate() time.Time { return a.createdDate }

// PointsBalance returns the cached points balance. The balance equals the
// running sum of the account's ledger rows; the atomic unit that appends a
// row always adjusts the balance in the same commit.
func (a *Account) PointsBalance() int { return a.pointsBalance }

// CurrentPackage returns the package the user currently carries, or nil.
func (a *Account) CurrentPackage() *kernel.UUID { return a.currentPackage }

// CountPackagesFollowing returns the public following counter.
func (a *Account) CountPackagesFollowing() int { return a.countPackagesFollowing }

// CountPackagesMoved returns the public moved counter.
func (a *Account) CountPackagesMoved() int { return a.countPackagesMoved }

// Interests returns a copy of the interest map keyed by category.
func (a *Account) Interests() map[string]bool {
	interests := make(map[string]bool, len(a.interests))
	for k, v := range a.interests {
		interests[k] = v
	}
	return interests
}

// PackagesFollowing returns a copy of the followed package map.
func (a *Account) PackagesFollowing() map[kernel.UUID]time.Time {
	following := make(map[kernel.UUID]time.Time, len(a.packagesFollowing))
	for k, v := range a.packagesFollowing {
		following[k] = v
	}
	return following
}

// PackagesMoved returns a copy of the moved package map.
func (a *Account) PackagesMoved() map[kernel.UUID]time.Time {
	moved := make(map[kernel.UUID]time.Time, len(a.packagesMoved))
	for k, v := range a.packagesMoved {
		moved[k] = v
	}
	return moved
}

// SetInterest records or clears an interest in a category.
func (a *Account) SetInterest(category string, interested bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if category == "" {
		return errs.NewValueIsRequiredError("category")
	}

	a.interests[category] = interested
	return nil
}

// Debit removes points from the balance. The amount must be positive; the
// balance itself may go negative, matching the ledger's signed rows.
func (a *Account) Debit(amount int) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidError("debit amount must be positive")
	}

	a.pointsBalance -= amount
	return nil
}

// Credit adds points to the balance. The amount must be positive.
func (a *Account) Credit(amount int) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidError("credit amount must be positive")
	}

	a.pointsBalance += amount
	return nil
}

// SetCurrentPackage marks the account as the active courier of a package.
// An account can carry at most one package at a time.
func (a *Account) SetCurrentPackage(packageID kernel.UUID) error {
	if err := errors.Join(a.Validate(), packageID.Validate()); err != nil {
		return err
	}
	if a.currentPackage != nil && !a.currentPackage.IsEqual(packageID) {
		return ErrAlreadyCarryingPackage
	}

	ref := packageID
	a.currentPackage = &ref
	return nil
}

// ClearCurrentPackage releases the account from courier duty.
func (a *Account) ClearCurrentPackage() error {
	if err := a.Validate(); err != nil {
		return err
	}

	a.currentPackage = nil
	return nil
}

// RecordFollowing mirrors a package follow on the account. Idempotent: a
// package already in the following map changes nothing and reports false.
func (a *Account) RecordFollowing(packageID kernel.UUID, when time.Time) (bool, error) {
	if err := errors.Join(a.Validate(), packageID.Validate()); err != nil {
		return false, err
	}

	if _, ok := a.packagesFollowing[packageID]; ok {
		return false, nil
	}

	a.packagesFollowing[packageID] = when
	a.countPackagesFollowing = len(a.packagesFollowing)
	return true, nil
}

// RecordUnfollowing mirrors a package unfollow on the account. No-op when
// the package is not in the following map.
func (a *Account) RecordUnfollowing(packageID kernel.UUID) (bool, error) {
	if err := errors.Join(a.Validate(), packageID.Validate()); err != nil {
		return false, err
	}

	if _, ok := a.packagesFollowing[packageID]; !ok {
		return false, nil
	}

	delete(a.packagesFollowing, packageID)
	a.countPackagesFollowing = len(a.packagesFollowing)
	return true, nil
}

// RecordMoved marks a package as moved by this account. The moved counter
// counts distinct packages; a second leg on the same package only refreshes
// the timestamp.
func (a *Account) RecordMoved(packageID kernel.UUID, when time.Time) error {
	if err := errors.Join(a.Validate(), packageID.Validate()); err != nil {
		return err
	}

	if _, ok := a.packagesMoved[packageID]; !ok {
		a.countPackagesMoved++
	}
	a.packagesMoved[packageID] = when
	return nil
}
