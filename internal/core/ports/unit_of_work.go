package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// Commit maps storage-level serialization failures to errs.ErrConflict so
// handlers can retry the whole unit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// PackageRepository returns a PackageRepository bound to the current transaction.
	PackageRepository() PackageRepository

	// AccountRepository returns an AccountRepository bound to the current transaction.
	AccountRepository() AccountRepository

	// TransitRepository returns a TransitRepository bound to the current transaction.
	TransitRepository() TransitRepository

	// TopicRepository returns a TopicRepository bound to the current transaction.
	TopicRepository() TopicRepository

	// ActivityRepository returns an ActivityRepository bound to the current transaction.
	ActivityRepository() ActivityRepository
}
