// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
//
// Every handler reads all documents it needs, applies domain methods, and
// commits the resulting writes as one unit of work; a failure anywhere
// discards all of them. Commits that fail with errs.ErrConflict are retried
// a bounded number of times.
package commands

import (
	"context"

	"relay/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// TransitRepoFactory provides access to the transit repository within a transaction.
	TransitRepoFactory interface {
		TransitRepository() ports.TransitRepository
	}

	// TopicRepoFactory provides access to the topic repository within a transaction.
	TopicRepoFactory interface {
		TopicRepository() ports.TopicRepository
	}

	// ActivityRepoFactory provides access to the activity repository within a transaction.
	ActivityRepoFactory interface {
		ActivityRepository() ports.ActivityRepository
	}

	// FollowUoW manages transactions for follow and unfollow operations,
	// which touch the package, the user's account, and the feed.
	FollowUoW interface {
		TxManager
		PackageRepoFactory
		AccountRepoFactory
		ActivityRepoFactory
	}

	// FollowUoWFactory creates new follow unit of work instances.
	FollowUoWFactory interface {
		Create() FollowUoW
	}

	// TransitUoW manages transactions for pickup, dropoff and movement
	// tracking, which additionally touch transit records.
	TransitUoW interface {
		TxManager
		PackageRepoFactory
		AccountRepoFactory
		TransitRepoFactory
		ActivityRepoFactory
	}

	// TransitUoWFactory creates new transit unit of work instances.
	TransitUoWFactory interface {
		Create() TransitUoW
	}

	// CreationUoW manages transactions for package creation, which touches
	// every aggregate including topics and templates.
	CreationUoW interface {
		TxManager
		PackageRepoFactory
		AccountRepoFactory
		TransitRepoFactory
		TopicRepoFactory
		ActivityRepoFactory
	}

	// CreationUoWFactory creates new creation unit of work instances.
	CreationUoWFactory interface {
		Create() CreationUoW
	}

	// PackageUoW manages transactions for operations that only read or
	// modify package documents.
	PackageUoW interface {
		TxManager
		PackageRepoFactory
	}

	// PackageUoWFactory creates new package unit of work instances.
	PackageUoWFactory interface {
		Create() PackageUoW
	}
)
