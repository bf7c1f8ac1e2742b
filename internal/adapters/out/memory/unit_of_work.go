package memory

import (
	"context"
	"errors"

	"ordering/internal/adapters/out/events"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate kernel.AggregateRoot
}

type UnitOfWorkFactory struct {
	store      *Store
	dispatcher *events.Dispatcher
}

// NewUnitOfWorkFactory creates units of work over store. dispatcher may be nil.
func NewUnitOfWorkFactory(store *Store, dispatcher *events.Dispatcher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, dispatcher: dispatcher}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:             f.store,
		dispatcher:        f.dispatcher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// UnitOfWork stages writes and applies them atomically on Commit. A commit fails with
// *errs.VersionIsInvalidError when another unit committed a conflicting change first.
type UnitOfWork struct {
	store             *Store
	dispatcher        *events.Dispatcher
	pending           *changeSet
	trackedAggregates []trackedAggregate
}

// Begin is idempotent while a transaction is open.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.pending == nil {
		uow.pending = newChangeSet()
	}
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.pending == nil {
		return ErrNoActiveTransaction
	}

	err := uow.pending.applyTo(uow.store)
	uow.pending = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	aggregates := make([]kernel.AggregateRoot, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		aggregates = append(aggregates, tracked.Aggregate)
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	uow.dispatcher.Dispatch(ctx, aggregates...)
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.pending == nil {
		return ErrNoActiveTransaction
	}

	uow.pending = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// OrderRepository is bound to the open transaction; outside one it writes through.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, pending: uow.pending, tracker: uow}
}

func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate kernel.AggregateRoot) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) && tracked.Aggregate == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{ID: id, Aggregate: aggregate})
}
