package store

import "github.com/jjimmyk/planningp/internal/domain"

// Record is an entity a Collection can hold: addressable by Key and
// deep-copyable so callers never alias stored state.
type Record[T any] interface {
	Key() string
	Clone() T
}

// Collection is an insertion-ordered set of records addressed by id.
type Collection[T Record[T]] struct {
	entity string
	order  []string
	items  map[string]T
}

// NewCollection creates an empty collection. entity names the record kind
// in error messages.
func NewCollection[T Record[T]](entity string) *Collection[T] {
	return &Collection[T]{entity: entity, items: make(map[string]T)}
}

// Add appends v. It fails with a conflict if the id is already present.
func (c *Collection[T]) Add(v T) error {
	id := v.Key()
	if _, ok := c.items[id]; ok {
		return domain.NewConflictError(c.entity + " " + id + " already exists")
	}
	c.items[id] = v.Clone()
	c.order = append(c.order, id)
	return nil
}

func (c *Collection[T]) Get(id string) (T, bool) {
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return v.Clone(), true
}

// Update applies fn to a copy of the record and stores the copy only when fn
// succeeds, so a failed edit leaves the collection untouched.
func (c *Collection[T]) Update(id string, fn func(*T) error) error {
	v, ok := c.items[id]
	if !ok {
		return domain.NewNotFoundError(c.entity, id)
	}
	draft := v.Clone()
	if err := fn(&draft); err != nil {
		return err
	}
	c.items[id] = draft
	return nil
}

// Delete removes the record and reports whether it existed.
func (c *Collection[T]) Delete(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns copies of all records in insertion order.
func (c *Collection[T]) List() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id].Clone())
	}
	return out
}

func (c *Collection[T]) Len() int {
	return len(c.order)
}

// Reset replaces the contents with vs. Later duplicates of an id are dropped.
func (c *Collection[T]) Reset(vs []T) {
	c.order = c.order[:0]
	c.items = make(map[string]T, len(vs))
	for _, v := range vs {
		_ = c.Add(v)
	}
}
