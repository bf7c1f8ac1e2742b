// Package postgres implements the Unit of Work on GORM transactions.
//
// A unit of work opens one transaction per command. Repositories obtained from it while
// the transaction is open run inside that transaction and register every saved aggregate.
// After a successful commit the domain events of those aggregates are handed to the
// events.Dispatcher.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Save(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork must be used by a single goroutine.
package postgres

import (
	"context"

	"ordering/internal/adapters/out/events"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate kernel.AggregateRoot
}

// GormUnitOfWorkFactory creates UnitOfWork instances on a shared connection pool.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
}

// NewGormUnitOfWorkFactory returns a factory on db. dispatcher may be nil, in which case
// events are cleared on commit without being published.
func NewGormUnitOfWorkFactory(db *gorm.DB, dispatcher *events.Dispatcher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, dispatcher: dispatcher}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		dispatcher:        f.dispatcher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and the aggregates saved within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	dispatcher        *events.Dispatcher
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit commits the transaction and then dispatches the events of the tracked aggregates.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil

	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if err != nil {
		return err
	}

	aggregates := make([]kernel.AggregateRoot, 0, len(tracked))
	for _, t := range tracked {
		aggregates = append(aggregates, t.Aggregate)
	}
	uow.dispatcher.Dispatch(ctx, aggregates...)
	return nil
}

// Rollback discards the transaction and forgets the tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = make([]trackedAggregate, 0)
	return err
}

// OrderRepository runs inside the open transaction, or on the pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers an aggregate saved through this unit of work. Repeated saves
// of the same aggregate are tracked once.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate kernel.AggregateRoot) {
	for _, t := range uow.trackedAggregates {
		if t.ID.IsEqual(id) && t.Aggregate == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
