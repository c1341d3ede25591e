package block

import (
	"sort"
	"unsafe"

	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// TVec is a block whose element type is fixed at compile time. Every
// mutation delegates to the block with the compile-time descriptor
// stamped in; reads go straight through the typed slots.
type TVec[T any] struct {
	Block
}

// NewTVec returns a typed vector over a comparable element type,
// registering the type's default descriptor on first use.
func NewTVec[T comparable](vals ...T) *TVec[T] {
	v := &TVec[T]{}
	v.typ = rtti.Of[T]()
	v.state |= StateTyped | StateConstrained
	for _, x := range vals {
		if err := v.Block.Insert(Back, x); err != nil {
			panic(err)
		}
	}
	return v
}

// NewTVecOf returns a typed vector over an explicitly registered
// descriptor; use it for element types outside the comparable default
// path.
func NewTVecOf[T any](td *rtti.Type, vals ...T) (*TVec[T], error) {
	if td == nil {
		td = rtti.TypeFor[T]()
	}
	if td == nil {
		return nil, types.ErrTypeMismatch
	}
	v := &TVec[T]{}
	v.typ = td
	v.state |= StateTyped | StateConstrained
	if td.IsSparse() {
		v.state |= StateSparse
	}
	for _, x := range vals {
		if err := v.Block.Insert(Back, x); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// NewTVecFrom constructs a typed vector from an intended source after a
// runtime type check.
func NewTVecFrom[T comparable](in Intended) (*TVec[T], error) {
	td := rtti.Of[T]()
	src := in.Source()
	if src == nil {
		return nil, types.ErrMissingBound
	}
	if src.typ != nil && !src.typ.CastsTo(td) {
		return nil, types.ErrTypeMismatch
	}
	v := &TVec[T]{}
	if err := transfer(&v.Block, src, in.Intent(), true); err != nil {
		return nil, err
	}
	v.typ = td
	v.state |= StateTyped | StateConstrained
	return v, nil
}

// slice returns the live typed window.
func (v *TVec[T]) slice() []T {
	if v.data == nil {
		return nil
	}
	return v.data.([]T)[:v.count]
}

// Get returns the element at index i.
func (v *TVec[T]) Get(i int) T { return v.slice()[i] }

// First returns the first element.
func (v *TVec[T]) First() (T, bool) {
	if v.count == 0 {
		var zero T
		return zero, false
	}
	return v.slice()[0], true
}

// Last returns the last element.
func (v *TVec[T]) Last() (T, bool) {
	if v.count == 0 {
		var zero T
		return zero, false
	}
	return v.slice()[v.count-1], true
}

// Set overwrites the element at index i.
func (v *TVec[T]) Set(i int, x T) error { return v.SetBoxed(i, x) }

// Push appends; PushFront prepends.
func (v *TVec[T]) Push(vals ...T) error { return v.Insert(Back, vals...) }
func (v *TVec[T]) PushFront(x T) error  { return v.Insert(0, x) }

// Insert copy-constructs vals at position `at` (Back to append).
func (v *TVec[T]) Insert(at int, vals ...T) error {
	boxed := make([]any, len(vals))
	for i, x := range vals {
		boxed[i] = x
	}
	return v.Block.insertBoxed(at, IntentCopy, false, boxed)
}

// Pop removes and returns the last element.
func (v *TVec[T]) Pop() (T, error) {
	var zero T
	if v.count == 0 {
		return zero, types.ErrMissingBound
	}
	x := v.Get(v.count - 1)
	return x, v.Block.Pop()
}

// Find returns the index of the first element equal to x, or -1.
func (v *TVec[T]) Find(x T) int {
	eq := v.typ.Ops().Equal
	if eq == nil {
		return -1
	}
	probe := []T{x}
	for i := 0; i < v.count; i++ {
		if eq(v.data, i, probe, 0) {
			return i
		}
	}
	return -1
}

// Contains reports whether x occurs in the vector.
func (v *TVec[T]) Contains(x T) bool { return v.Find(x) >= 0 }

// Sort orders the elements through the descriptor's less operation.
func (v *TVec[T]) Sort(descending bool) error {
	if err := v.mutable(); err != nil {
		return err
	}
	less := v.typ.Ops().Less
	if less == nil {
		return types.ErrIntentUnsupported
	}
	if v.sharedRegion() {
		if err := v.TakeAuthority(); err != nil {
			return err
		}
	}
	sl := v.slice()
	sort.SliceStable(sl, func(i, j int) bool {
		if descending {
			return less(v.data, j, v.data, i)
		}
		return less(v.data, i, v.data, j)
	})
	return nil
}

// Reverse reverses the element order in place.
func (v *TVec[T]) Reverse() error {
	if err := v.mutable(); err != nil {
		return err
	}
	if v.sharedRegion() {
		if err := v.TakeAuthority(); err != nil {
			return err
		}
	}
	sl := v.slice()
	for i, j := 0, len(sl)-1; i < j; i, j = i+1, j-1 {
		sl[i], sl[j] = sl[j], sl[i]
	}
	return nil
}

// Fill overwrites every live element with x.
func (v *TVec[T]) Fill(x T) error {
	if err := v.mutable(); err != nil {
		return err
	}
	ops := v.typ.Ops()
	for i := 0; i < v.count; i++ {
		ops.Destroy(v.data, i, 1)
		ops.SetBoxed(v.data, i, x)
	}
	return nil
}

// Values returns a copy of the live elements.
func (v *TVec[T]) Values() []T {
	out := make([]T, v.count)
	copy(out, v.slice())
	return out
}

// Any reinterprets the typed vector as an erased one. No copy: both
// views share the same block header and region.
func (v *TVec[T]) Any() *Vec {
	return (*Vec)(unsafe.Pointer(v))
}

// AsTyped reinterprets an erased vector as a typed one after a runtime
// type check. No copy on success. The check requires slot-identical
// storage (descriptor identity), not mere similarity: an alias with a
// different Go type cannot share slots.
func AsTyped[T comparable](v *Vec) (*TVec[T], error) {
	td := rtti.Of[T]()
	if !v.typ.Exact(td) {
		return nil, types.ErrTypeMismatch
	}
	return (*TVec[T])(unsafe.Pointer(v)), nil
}
