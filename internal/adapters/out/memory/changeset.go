package memory

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// change is one staged write. A nil snapshot stages a delete.
type change struct {
	snapshot *orderSnapshot

	// baseVersion is the stored version the change was made against; -1 means "must not exist".
	baseVersion int
}

// changeSet collects the writes of one unit of work until commit.
type changeSet struct {
	order   []kernel.OrderID
	changes map[kernel.OrderID]change
}

func newChangeSet() *changeSet {
	return &changeSet{changes: make(map[kernel.OrderID]change)}
}

func (c *changeSet) stage(id kernel.OrderID, ch change) {
	if existing, ok := c.changes[id]; ok {
		ch.baseVersion = existing.baseVersion
	} else {
		c.order = append(c.order, id)
	}
	c.changes[id] = ch
}

// lookup returns the staged state of id: found reports whether the changeset knows the order,
// snapshot is nil when the order was deleted.
func (c *changeSet) lookup(id kernel.OrderID) (snapshot *orderSnapshot, found bool) {
	ch, ok := c.changes[id]
	if !ok {
		return nil, false
	}
	return ch.snapshot, true
}

// applyTo writes every change into s, or none of them when any base version is stale.
func (c *changeSet) applyTo(s *Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range c.order {
		ch := c.changes[id]
		stored, exists := s.orders[id]
		switch {
		case ch.baseVersion < 0 && exists:
			return errs.NewVersionIsInvalidErrorWithCause("version", errs.NewValueIsInvalidError("order "+id.String()+" already exists"))
		case ch.baseVersion >= 0 && (!exists || stored.version != ch.baseVersion):
			return errs.NewVersionIsInvalidError("version of order " + id.String())
		}
	}

	for _, id := range c.order {
		ch := c.changes[id]
		if ch.snapshot == nil {
			delete(s.orders, id)
			continue
		}
		s.orders[id] = *ch.snapshot
	}

	c.order = nil
	c.changes = make(map[kernel.OrderID]change)
	return nil
}
