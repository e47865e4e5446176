// Package collection provides an insertion-ordered keyed cache.
package collection

import (
	"sync"

	"golang.org/x/exp/slices"
)

// Collection maps keys to values and remembers the order in which keys were
// first inserted. Replacing the value of an existing key keeps its position.
// There is no eviction; holders prune with Delete.
type Collection[K comparable, V any] struct {
	mu    sync.RWMutex
	keys  []K
	items map[K]V
}

func New[K comparable, V any]() *Collection[K, V] {
	return &Collection[K, V]{items: make(map[K]V)}
}

func (c *Collection[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.items[key]
	return v, ok
}

func (c *Collection[K, V]) Has(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.items[key]
	return ok
}

// Set inserts or replaces the value of key.
func (c *Collection[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.items[key] = value
}

func (c *Collection[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return false
	}

	delete(c.items, key)
	if i := slices.Index(c.keys, key); i >= 0 {
		c.keys = slices.Delete(c.keys, i, i+1)
	}

	return true
}

func (c *Collection[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.keys)
}

func (c *Collection[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keys = nil
	c.items = make(map[K]V)
}

// Range calls fn for every entry in insertion order until fn returns false.
// Entries are read lazily: a value replaced during the iteration is seen with
// its new value, and a deleted key is skipped.
func (c *Collection[K, V]) Range(fn func(key K, value V) bool) {
	for _, key := range c.Keys() {
		value, ok := c.Get(key)
		if !ok {
			continue
		}

		if !fn(key, value) {
			return
		}
	}
}

func (c *Collection[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.keys)
}

// Values returns an ordered snapshot of the current values.
func (c *Collection[K, V]) Values() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	values := make([]V, 0, len(c.keys))
	for _, key := range c.keys {
		values = append(values, c.items[key])
	}

	return values
}

func (c *Collection[K, V]) First() (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.keys) == 0 {
		var zero V
		return zero, false
	}

	return c.items[c.keys[0]], true
}

func (c *Collection[K, V]) Find(fn func(value V) bool) (V, bool) {
	var result V
	found := false
	c.Range(func(_ K, value V) bool {
		if fn(value) {
			result, found = value, true
			return false
		}
		return true
	})

	return result, found
}

// Filter returns a new collection with the entries accepted by fn, in the
// same order.
func (c *Collection[K, V]) Filter(fn func(value V) bool) *Collection[K, V] {
	result := New[K, V]()
	c.Range(func(key K, value V) bool {
		if fn(value) {
			result.Set(key, value)
		}
		return true
	})

	return result
}

// Sorted returns the values ordered by less. Ties keep insertion order.
func (c *Collection[K, V]) Sorted(less func(a, b V) bool) []V {
	values := c.Values()
	slices.SortStableFunc(values, less)
	return values
}
