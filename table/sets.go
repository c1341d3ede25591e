package table

import "github.com/joshuapare/blockkit/rtti"

// TSet is the typed unordered set facade: a table whose value block has
// zero stride and no type.
type TSet[K comparable] struct {
	core *Core
}

// NewTSet returns an empty typed set.
func NewTSet[K comparable]() *TSet[K] {
	return &TSet[K]{core: New(Options{Key: rtti.Of[K](), ForSet: true})}
}

// Core exposes the underlying table for instrumentation.
func (s *TSet[K]) Core() *Core { return s.core }

// Len returns the number of keys.
func (s *TSet[K]) Len() int { return s.core.Len() }

// Add inserts a key; it reports whether the key was new.
func (s *TSet[K]) Add(key K) (bool, error) { return s.core.Add(key) }

// Has reports presence.
func (s *TSet[K]) Has(key K) bool {
	ok, err := s.core.Has(key)
	return err == nil && ok
}

// Remove deletes a key; it reports whether one existed.
func (s *TSet[K]) Remove(key K) bool {
	ok, err := s.core.Remove(key)
	return err == nil && ok
}

// Each visits every key; returning false stops the walk.
func (s *TSet[K]) Each(fn func(K) bool) {
	s.core.Each(func(k, _ any) bool { return fn(k.(K)) })
}

// Values returns the keys in iteration order.
func (s *TSet[K]) Values() []K {
	out := make([]K, 0, s.core.Len())
	s.core.Each(func(k, _ any) bool {
		out = append(out, k.(K))
		return true
	})
	return out
}

// Reserve pre-sizes for n keys.
func (s *TSet[K]) Reserve(n int) error { return s.core.Reserve(n) }

// Reset releases the table.
func (s *TSet[K]) Reset() { s.core.Reset() }

// TOrderedSet is the typed set that iterates in insertion order.
type TOrderedSet[K comparable] struct {
	TSet[K]
}

// NewTOrderedSet returns an empty typed ordered set.
func NewTOrderedSet[K comparable]() *TOrderedSet[K] {
	s := &TOrderedSet[K]{}
	s.core = New(Options{Key: rtti.Of[K](), ForSet: true, Ordered: true})
	return s
}

// Set is the erased unordered set facade. The key type pins at the
// first insertion.
type Set struct {
	core *Core
}

// NewSet returns an empty erased set.
func NewSet() *Set {
	return &Set{core: New(Options{ForSet: true})}
}

// Core exposes the underlying table for instrumentation.
func (s *Set) Core() *Core { return s.core }

// Len returns the number of keys.
func (s *Set) Len() int { return s.core.Len() }

// Add inserts a key; it reports whether the key was new.
func (s *Set) Add(key any) (bool, error) { return s.core.Add(key) }

// Has reports presence.
func (s *Set) Has(key any) (bool, error) { return s.core.Has(key) }

// Remove deletes a key.
func (s *Set) Remove(key any) (bool, error) { return s.core.Remove(key) }

// Each visits every key; returning false stops the walk.
func (s *Set) Each(fn func(key any) bool) {
	s.core.Each(func(k, _ any) bool { return fn(k) })
}

// Reserve pre-sizes for n keys.
func (s *Set) Reserve(n int) error { return s.core.Reserve(n) }

// Reset releases the table, keeping the pinned key type.
func (s *Set) Reset() { s.core.Reset() }

// OrderedSet is the erased set that iterates in insertion order.
type OrderedSet struct {
	Set
}

// NewOrderedSet returns an empty erased ordered set.
func NewOrderedSet() *OrderedSet {
	s := &OrderedSet{}
	s.core = New(Options{ForSet: true, Ordered: true})
	return s
}
