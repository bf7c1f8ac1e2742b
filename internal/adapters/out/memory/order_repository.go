package memory

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate kernel.AggregateRoot)
}

// OrderRepository reads committed orders from a Store. Bound to a unit of work it stages
// writes in the unit's changeset and sees its own uncommitted writes; unbound it writes
// straight through to the Store.
type OrderRepository struct {
	store   *Store
	pending *changeSet
	tracker aggregateTracker
}

// NewOrderRepository returns an unbound repository that applies every Save and Delete immediately.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Save(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	current, exists := r.current(aggregate.ID())
	base := -1
	switch {
	case aggregate.Version() == 0 && exists:
		return errs.NewVersionIsInvalidErrorWithCause("version", errs.NewValueIsInvalidError("order "+aggregate.ID().String()+" already exists"))
	case aggregate.Version() > 0 && !exists:
		return errs.NewObjectNotFoundError("orderID", aggregate.ID())
	case exists && current.version != aggregate.Version():
		return errs.NewVersionIsInvalidError("version of order " + aggregate.ID().String())
	case exists:
		base = current.version
	}

	snapshot := snapshotOf(aggregate)
	snapshot.version++

	if err := r.write(aggregate.ID(), change{snapshot: &snapshot, baseVersion: base}); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID().UUID(), aggregate)
	}
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	snapshot, exists := r.current(id)
	if !exists {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return snapshot.restore()
}

func (r *OrderRepository) GetByIDWithItems(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) Delete(_ context.Context, id kernel.OrderID) error {
	current, exists := r.current(id)
	if !exists {
		return errs.NewObjectNotFoundError("orderID", id)
	}
	return r.write(id, change{baseVersion: current.version})
}

func (r *OrderRepository) Exists(_ context.Context, id kernel.OrderID) (bool, error) {
	_, exists := r.current(id)
	return exists, nil
}

func (r *OrderRepository) GetOrdersByCustomer(_ context.Context, customerID kernel.CustomerID) ([]*order.Order, error) {
	return r.find(func(s orderSnapshot) bool {
		return s.customerID.IsEqual(customerID)
	})
}

func (r *OrderRepository) GetDraftsCreatedBefore(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	return r.find(func(s orderSnapshot) bool {
		return s.status == order.Draft && s.orderDate.Before(cutoff)
	})
}

// current resolves id against the staged changes first, then the store.
func (r *OrderRepository) current(id kernel.OrderID) (orderSnapshot, bool) {
	if r.pending != nil {
		if snapshot, found := r.pending.lookup(id); found {
			if snapshot == nil {
				return orderSnapshot{}, false
			}
			return *snapshot, true
		}
	}
	return r.store.get(id)
}

func (r *OrderRepository) write(id kernel.OrderID, ch change) error {
	if r.pending != nil {
		r.pending.stage(id, ch)
		return nil
	}

	direct := newChangeSet()
	direct.stage(id, ch)
	return direct.applyTo(r.store)
}

// find filters committed orders and overlays the staged changes of the bound unit of work.
func (r *OrderRepository) find(match func(orderSnapshot) bool) ([]*order.Order, error) {
	snapshots := r.store.filter(match)

	if r.pending != nil {
		merged := make([]orderSnapshot, 0, len(snapshots))
		seen := make(map[kernel.OrderID]bool, len(snapshots))
		for _, s := range snapshots {
			seen[s.id] = true
			if staged, found := r.pending.lookup(s.id); found {
				if staged == nil || !match(*staged) {
					continue
				}
				s = *staged
			}
			merged = append(merged, s)
		}
		for _, id := range r.pending.order {
			if staged, _ := r.pending.lookup(id); !seen[id] && staged != nil && match(*staged) {
				merged = append(merged, *staged)
			}
		}
		snapshots = merged
	}

	orders := make([]*order.Order, 0, len(snapshots))
	for _, s := range snapshots {
		o, err := s.restore()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
