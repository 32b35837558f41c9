// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. A unit of work spans one atomic lifecycle transition: every
// document read and written by a command handler (package, accounts, transit
// record, topic, ledger rows) commits or rolls back together.
//
// Transactions run at serializable isolation. When two units race on the
// same documents, Postgres aborts one with a serialization failure; Commit
// maps that to the domain conflict error so the handler can retry the whole
// read-compute-write unit.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.PackageRepository().Update(ctx, pkg); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"database/sql"

	"relay/internal/adapters/out/postgres/accountrepo"
	"relay/internal/adapters/out/postgres/activityrepo"
	"relay/internal/adapters/out/postgres/packrepo"
	"relay/internal/adapters/out/postgres/pgerr"
	"relay/internal/adapters/out/postgres/topicrepo"
	"relay/internal/adapters/out/postgres/transitrepo"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a shared GORM
// database connection. Each business operation gets a fresh instance with
// its own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for one atomic operation.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the relay
// repositories and tracks the aggregates modified within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a serializable transaction. Multiple calls on the same
// instance are safe and do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction.
// A serialization failure is returned as a domain conflict error.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Convert("commit", err)
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// PackageRepository returns a package repository bound to the current
// transaction, or to the main connection when no transaction is active.
func (uow *GormUnitOfWork) PackageRepository() ports.PackageRepository {
	return packrepo.NewGormPackageRepository(uow.conn(), uow)
}

// AccountRepository returns an account repository bound to the current
// transaction.
func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.conn(), uow)
}

// TransitRepository returns a transit record repository bound to the current
// transaction.
func (uow *GormUnitOfWork) TransitRepository() ports.TransitRepository {
	return transitrepo.NewGormTransitRepository(uow.conn(), uow)
}

// TopicRepository returns a topic repository bound to the current transaction.
func (uow *GormUnitOfWork) TopicRepository() ports.TopicRepository {
	return topicrepo.NewGormTopicRepository(uow.conn(), uow)
}

// ActivityRepository returns a ledger repository bound to the current
// transaction.
func (uow *GormUnitOfWork) ActivityRepository() ports.ActivityRepository {
	return activityrepo.NewGormActivityRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by the repositories on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn returns the active transaction, or the main connection outside one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
