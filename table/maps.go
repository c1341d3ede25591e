package table

import "github.com/joshuapare/blockkit/rtti"

// TMap is the typed unordered map facade: one Core with both element
// types pinned at construction.
type TMap[K comparable, V comparable] struct {
	core *Core
}

// NewTMap returns an empty typed map.
func NewTMap[K comparable, V comparable]() *TMap[K, V] {
	return &TMap[K, V]{core: New(Options{Key: rtti.Of[K](), Value: rtti.Of[V]()})}
}

// Core exposes the underlying table for instrumentation.
func (m *TMap[K, V]) Core() *Core { return m.core }

// Len returns the number of entries.
func (m *TMap[K, V]) Len() int { return m.core.Len() }

// Token composes the map's type token from its element tokens.
func (m *TMap[K, V]) Token() string { return m.core.Token() }

// Set inserts or overwrites; it reports whether the key was new.
func (m *TMap[K, V]) Set(key K, value V) (bool, error) {
	return m.core.Set(key, value)
}

// Get returns the value stored under key.
func (m *TMap[K, V]) Get(key K) (V, bool) {
	var zero V
	v, ok, err := m.core.Get(key)
	if err != nil || !ok {
		return zero, false
	}
	return v.(V), true
}

// Has reports presence.
func (m *TMap[K, V]) Has(key K) bool {
	ok, err := m.core.Has(key)
	return err == nil && ok
}

// Remove deletes the entry for key; it reports whether one existed.
func (m *TMap[K, V]) Remove(key K) bool {
	ok, err := m.core.Remove(key)
	return err == nil && ok
}

// Each visits every entry; returning false stops the walk.
func (m *TMap[K, V]) Each(fn func(K, V) bool) {
	m.core.Each(func(k, v any) bool { return fn(k.(K), v.(V)) })
}

// Keys returns the keys in iteration order.
func (m *TMap[K, V]) Keys() []K {
	out := make([]K, 0, m.core.Len())
	m.core.Each(func(k, _ any) bool {
		out = append(out, k.(K))
		return true
	})
	return out
}

// Reserve pre-sizes for n entries.
func (m *TMap[K, V]) Reserve(n int) error { return m.core.Reserve(n) }

// Reset releases the table.
func (m *TMap[K, V]) Reset() { m.core.Reset() }

// TOrderedMap is the typed map that iterates in insertion order.
type TOrderedMap[K comparable, V comparable] struct {
	TMap[K, V]
}

// NewTOrderedMap returns an empty typed ordered map.
func NewTOrderedMap[K comparable, V comparable]() *TOrderedMap[K, V] {
	m := &TOrderedMap[K, V]{}
	m.core = New(Options{Key: rtti.Of[K](), Value: rtti.Of[V](), Ordered: true})
	return m
}

// Map is the erased unordered map facade. Element types pin at the
// first insertion; later conflicts fail with a type mismatch.
type Map struct {
	core *Core
}

// NewMap returns an empty erased map.
func NewMap() *Map {
	return &Map{core: New(Options{})}
}

// Core exposes the underlying table for instrumentation.
func (m *Map) Core() *Core { return m.core }

// Len returns the number of entries.
func (m *Map) Len() int { return m.core.Len() }

// Token composes the map's type token, empty until pinned.
func (m *Map) Token() string { return m.core.Token() }

// Set inserts or overwrites; it reports whether the key was new.
func (m *Map) Set(key, value any) (bool, error) { return m.core.Set(key, value) }

// Get returns the value stored under key.
func (m *Map) Get(key any) (any, bool, error) { return m.core.Get(key) }

// Has reports presence.
func (m *Map) Has(key any) (bool, error) { return m.core.Has(key) }

// Remove deletes the entry for key.
func (m *Map) Remove(key any) (bool, error) { return m.core.Remove(key) }

// Each visits every entry; returning false stops the walk.
func (m *Map) Each(fn func(key, value any) bool) { m.core.Each(fn) }

// Reserve pre-sizes for n entries.
func (m *Map) Reserve(n int) error { return m.core.Reserve(n) }

// Reset releases the table, keeping the pinned types.
func (m *Map) Reset() { m.core.Reset() }

// OrderedMap is the erased map that iterates in insertion order.
type OrderedMap struct {
	Map
}

// NewOrderedMap returns an empty erased ordered map.
func NewOrderedMap() *OrderedMap {
	m := &OrderedMap{}
	m.core = New(Options{Ordered: true})
	return m
}
