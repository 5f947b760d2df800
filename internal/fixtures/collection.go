package fixtures

import (
	"strings"
	"sync"

	"github.com/bizdash/bizdash/internal/domain/shared"
)

// Matcher decides whether an item satisfies a list filter
type Matcher[E any] func(item E, f shared.Filter) bool

// Collection is a concurrency-safe slice of fixture records with the
// list/get/insert/update/delete surface the mock dispatcher needs.
// Insertion order is preserved; list results page over that order.
type Collection[E any] struct {
	mu    sync.RWMutex
	items []E
	idOf  func(E) string
	setID func(*E, string)
	match Matcher[E]
}

// NewCollection creates a collection with the given identity accessors and
// filter matcher. A nil matcher admits every item.
func NewCollection[E any](idOf func(E) string, setID func(*E, string), match Matcher[E]) *Collection[E] {
	if match == nil {
		match = func(E, shared.Filter) bool { return true }
	}
	return &Collection[E]{idOf: idOf, setID: setID, match: match}
}

// List returns the filtered, paginated view of the collection
func (c *Collection[E]) List(f shared.Filter) shared.Paginated[E] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := make([]E, 0, len(c.items))
	for _, item := range c.items {
		if c.match(item, f) {
			matched = append(matched, item)
		}
	}
	return shared.Slice(matched, f)
}

// Get returns the item with the given id
func (c *Collection[E]) Get(id string) (E, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, nil
		}
	}
	var zero E
	return zero, shared.ErrNotFound
}

// Insert appends the item, keeping any id it already carries
func (c *Collection[E]) Insert(item E) E {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, item)
	return item
}

// Update replaces the stored item, forcing the replacement to keep the
// addressed id
func (c *Collection[E]) Update(id string, item E) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.setID(&item, id)
			c.items[i] = item
			return item, nil
		}
	}
	var zero E
	return zero, shared.ErrNotFound
}

// Delete removes the item with the given id
func (c *Collection[E]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// All returns a copy of every item in insertion order
func (c *Collection[E]) All() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]E, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of stored items
func (c *Collection[E]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// containsFold reports whether s contains substr, case-insensitively
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
