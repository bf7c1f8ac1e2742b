// Package memory provides in-process adapters for the ordering ports: an order store with
// optimistic versioning and unit of work semantics, and mock inventory and shipping services.
// It is the default storage driver of the example application and of the application tests.
package memory

import (
	"slices"
	"sync"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// orderSnapshot is the stored form of an order. Items are OrderItem values, so a snapshot
// never shares state with a live aggregate.
type orderSnapshot struct {
	id         kernel.OrderID
	customerID kernel.CustomerID
	orderDate  time.Time
	status     order.Status
	items      []order.OrderItem
	version    int
}

func snapshotOf(o *order.Order) orderSnapshot {
	return orderSnapshot{
		id:         o.ID(),
		customerID: o.CustomerID(),
		orderDate:  o.OrderDate(),
		status:     o.Status(),
		items:      o.Items(),
		version:    o.Version(),
	}
}

func (s orderSnapshot) restore() (*order.Order, error) {
	return order.RestoreOrder(s.id, s.customerID, s.orderDate, s.status, slices.Clone(s.items), s.version)
}

// Store holds committed orders. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	orders map[kernel.OrderID]orderSnapshot
}

func NewStore() *Store {
	return &Store{orders: make(map[kernel.OrderID]orderSnapshot)}
}

func (s *Store) get(id kernel.OrderID) (orderSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.orders[id]
	return snapshot, ok
}

// filter returns matching snapshots ordered by order date, then ID.
func (s *Store) filter(match func(orderSnapshot) bool) []orderSnapshot {
	s.mu.RLock()
	result := make([]orderSnapshot, 0)
	for _, snapshot := range s.orders {
		if match(snapshot) {
			result = append(result, snapshot)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(result, func(a, b orderSnapshot) int {
		if c := a.orderDate.Compare(b.orderDate); c != 0 {
			return c
		}
		if a.id.String() < b.id.String() {
			return -1
		}
		return 1
	})
	return result
}
