package rtti

import (
	"reflect"

	"github.com/joshuapare/blockkit/mem"
)

// Ops is the operation table of a descriptor. Every function works on
// typed slot storage by index; nil entries mean the type does not export
// that operation.
type Ops struct {
	// Make allocates n slots of the element type.
	Make func(n int) mem.Slots

	// Default default-constructs n elements starting at slot `at`.
	Default func(s mem.Slots, at, n int)

	// Copy shallow-copies n elements from src[sat:] into dst[dat:].
	Copy func(dst mem.Slots, dat int, src mem.Slots, sat, n int)

	// Clone deep-copies n elements from src[sat:] into dst[dat:].
	Clone func(dst mem.Slots, dat int, src mem.Slots, sat, n int)

	// Move transfers n elements from src[sat:] into dst[dat:], leaving
	// the source slots trivially destructible.
	Move func(dst mem.Slots, dat int, src mem.Slots, sat, n int)

	// Destroy destructs n elements starting at slot `at`, resetting the
	// slots to their zero state.
	Destroy func(s mem.Slots, at, n int)

	// Hash hashes the element at slot `at`.
	Hash func(s mem.Slots, at int) uint64

	// Equal compares one element from each storage.
	Equal func(a mem.Slots, ai int, b mem.Slots, bi int) bool

	// Less orders one element from each storage. Optional; enables sort.
	Less func(a mem.Slots, ai int, b mem.Slots, bi int) bool

	// Resolve returns the exact descriptor of the element at slot `at`,
	// for resolvable (polymorphic) element types.
	Resolve func(s mem.Slots, at int) *Type

	// Box returns the element at slot `at` as an erased value.
	Box func(s mem.Slots, at int) any

	// SetBoxed copy-constructs the element at slot `at` from an erased
	// value of the element's Go type.
	SetBoxed func(s mem.Slots, at int, v any)

	// CloneBoxed deep-copies a single erased element value.
	CloneBoxed func(v any) any

	// Encode appends the wire form of n elements starting at `at`.
	Encode func(s mem.Slots, at, n int, dst []byte) ([]byte, error)

	// Decode reads n elements from src into slots starting at `at`,
	// returning the bytes consumed.
	Decode func(s mem.Slots, at, n int, src []byte) (int, error)
}

// Type is an immutable runtime type descriptor. Obtain one from the
// registry; compare by identity.
type Type struct {
	token  string
	size   int
	align  int
	flags  Flag
	bases  []*Type
	alias  []*Type // similarity set, excluding self
	dense  *Type   // for sparse descriptors, the pointee type
	sparse *Type   // cached pointer-of derivation
	goType reflect.Type
	ops    Ops
}

// Token returns the human-readable type token.
func (t *Type) Token() string { return t.token }

// Size returns the element stride in bytes.
func (t *Type) Size() int { return t.size }

// Align returns the element alignment in bytes.
func (t *Type) Align() int { return t.align }

// Flags returns the capability flag set.
func (t *Type) Flags() Flag { return t.flags }

// GoType returns the Go type the descriptor was built over.
func (t *Type) GoType() reflect.Type { return t.goType }

// Bases returns the registered base types.
func (t *Type) Bases() []*Type { return t.bases }

// Dense returns the pointee descriptor for sparse types, or t itself.
func (t *Type) Dense() *Type {
	if t.dense != nil {
		return t.dense
	}
	return t
}

func (t *Type) IsPOD() bool         { return t != nil && t.flags.Has(POD) }
func (t *Type) IsSparse() bool      { return t != nil && t.flags.Has(Sparse) }
func (t *Type) IsDeep() bool        { return t != nil && t.flags.Has(Deep) }
func (t *Type) IsNullifiable() bool { return t != nil && t.flags.Has(Nullifiable) }
func (t *Type) IsAbstract() bool    { return t != nil && t.flags.Has(Abstract) }
func (t *Type) IsResolvable() bool  { return t != nil && t.flags.Has(Resolvable) }
func (t *Type) IsConstrained() bool { return t != nil && t.flags.Has(Constrained) }
func (t *Type) IsDefaultable() bool { return t != nil && t.flags.Has(Defaultable) }

// Ops returns the operation table.
func (t *Type) Ops() *Ops { return &t.ops }

// Intent-support queries. An intent is supported iff the matching
// operation was registered; refer/move/disown/abandon transfer headers
// only and are always available.
func (t *Type) CanCopy() bool    { return t != nil && t.ops.Copy != nil }
func (t *Type) CanClone() bool   { return t != nil && t.ops.Clone != nil }
func (t *Type) CanDefault() bool { return t != nil && t.ops.Default != nil }
func (t *Type) CanHash() bool    { return t != nil && t.ops.Hash != nil }
func (t *Type) CanEqual() bool   { return t != nil && t.ops.Equal != nil }
func (t *Type) CanOrder() bool   { return t != nil && t.ops.Less != nil }
func (t *Type) CanEncode() bool  { return t != nil && t.ops.Encode != nil && t.ops.Decode != nil }

// -----------------------------------------------------------------------------
// Type relations
// -----------------------------------------------------------------------------

// Exact reports descriptor identity.
func (t *Type) Exact(o *Type) bool { return t == o }

// Similar reports identity or registered aliasing (e.g. the native word
// type against its fixed-width twin, or dense against sparse of the same
// base).
func (t *Type) Similar(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.Dense() == o.Dense() {
		return true
	}
	for _, a := range t.alias {
		if a == o || a.Dense() == o.Dense() {
			return true
		}
	}
	return false
}

// CastsTo reports whether t's elements can stand where o's are expected:
// identity, aliasing, or a walk up the base chain.
func (t *Type) CastsTo(o *Type) bool {
	if t.Similar(o) {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	for _, b := range t.bases {
		if b.CastsTo(o) {
			return true
		}
	}
	return false
}

// CommonBase returns the nearest base shared by both types, or nil.
func (t *Type) CommonBase(o *Type) *Type {
	if t == nil || o == nil {
		return nil
	}
	if t.Similar(o) {
		return t
	}
	for _, b := range t.bases {
		if o.CastsTo(b) {
			return b
		}
		if c := b.CommonBase(o); c != nil {
			return c
		}
	}
	for _, b := range o.bases {
		if t.CastsTo(b) {
			return b
		}
	}
	return nil
}

// String implements fmt.Stringer.
func (t *Type) String() string {
	if t == nil {
		return "<untyped>"
	}
	return t.token
}
