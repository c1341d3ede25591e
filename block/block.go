package block

import (
	"reflect"

	"github.com/joshuapare/blockkit/mem"
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// Block is the fixed-layout descriptor underlying every container: the
// element region, the live and reserved element counts, the element type
// descriptor, the allocation back-pointer, and the state flags.
//
// Invariants:
//   - reserved >= count
//   - type == nil implies count == 0
//   - a nil allocation with non-nil data means a static (borrowed) window
//   - a non-nil allocation has use count >= 1 and capacity >= reserved
//
// Counts measure elements, never bytes.
type Block struct {
	data     mem.Slots
	count    int
	reserved int
	typ      *rtti.Type
	alloc    *mem.Allocation
	state    State
}

// New returns a block constructed from a source under the given intent.
func New(in Intended) (*Block, error) {
	var b Block
	if err := b.init(in); err != nil {
		return nil, err
	}
	return &b, nil
}

// NewTyped returns an empty block constrained to the given element type.
func NewTyped(td *rtti.Type) *Block {
	b := &Block{}
	b.typ = td
	if td != nil {
		b.state |= StateTyped | StateConstrained
		if td.IsSparse() {
			b.state |= StateSparse
		}
	}
	return b
}

// -----------------------------------------------------------------------------
// Header queries
// -----------------------------------------------------------------------------

// Type returns the element type descriptor, nil when untyped.
func (b *Block) Type() *rtti.Type { return b.typ }

// Count returns the number of live elements.
func (b *Block) Count() int { return b.count }

// Reserved returns the element capacity currently reserved.
func (b *Block) Reserved() int { return b.reserved }

// State returns the packed state flags.
func (b *Block) State() State { return b.state }

// Allocation returns the allocation back-pointer, nil for static or
// unallocated blocks.
func (b *Block) Allocation() *mem.Allocation { return b.alloc }

// Uses returns the allocation use count, or 0 when the block owns nothing.
func (b *Block) Uses() int {
	if b.alloc == nil {
		return 0
	}
	return b.alloc.Uses()
}

// IsEmpty reports whether the block holds no elements.
func (b *Block) IsEmpty() bool { return b.count == 0 }

// IsTyped reports whether the block has acquired an element type.
func (b *Block) IsTyped() bool { return b.typ != nil }

// IsAllocated reports whether the block owns an allocation.
func (b *Block) IsAllocated() bool { return b.alloc != nil }

// IsStatic reports whether the block borrows its region.
func (b *Block) IsStatic() bool { return b.state.Has(StateStatic) }

// IsConstant reports whether the block is read-only.
func (b *Block) IsConstant() bool { return b.state.Has(StateConstant) }

// IsConstrained reports whether the element type is pinned.
func (b *Block) IsConstrained() bool { return b.state.Has(StateConstrained) }

// IsMissing reports whether the block is deferred.
func (b *Block) IsMissing() bool { return b.state.Has(StateMissing) }

// IsOr reports the alternative-semantics bit.
func (b *Block) IsOr() bool { return b.state.Has(StateOr) }

// IsDeep reports whether the elements are themselves blocks.
func (b *Block) IsDeep() bool { return b.typ.IsDeep() }

// IsSparse reports whether the elements are stored as pointers.
func (b *Block) IsSparse() bool { return b.typ.IsSparse() }

// MakeOr sets the alternative-semantics bit.
func (b *Block) MakeOr() { b.state |= StateOr }

// MakeConstant marks the block read-only.
func (b *Block) MakeConstant() { b.state |= StateConstant }

// MakeMissing marks the block deferred; mutation fails with a missing
// bound until the bit is cleared by assignment.
func (b *Block) MakeMissing() { b.state |= StateMissing }

// mutable returns nil when the block accepts structural mutation.
func (b *Block) mutable() error {
	if b.state.Has(StateConstant) || b.state.Has(StateStatic) {
		return types.ErrAccess
	}
	if b.state.Has(StateMissing) {
		return types.ErrMissingBound
	}
	return nil
}

// -----------------------------------------------------------------------------
// Element access
// -----------------------------------------------------------------------------

// GetBoxed returns the element at index i as an erased value.
func (b *Block) GetBoxed(i int) any {
	if i < 0 || i >= b.count || b.typ == nil {
		return nil
	}
	return b.typ.Ops().Box(b.data, i)
}

// SetBoxed overwrites the element at index i from an erased value of the
// element's Go type. The previous element is destroyed.
func (b *Block) SetBoxed(i int, v any) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if i < 0 || i >= b.count || b.typ == nil {
		return types.ErrMissingBound
	}
	td := rtti.OfValue(v)
	if td != nil && !td.CastsTo(b.typ.Dense()) && !td.CastsTo(b.typ) {
		return types.ErrTypeMismatch
	}
	if b.sharedRegion() {
		if err := b.TakeAuthority(); err != nil {
			return err
		}
	}
	ops := b.typ.Ops()
	ops.Destroy(b.data, i, 1)
	ops.SetBoxed(b.data, i, v)
	return nil
}

// Resolve returns the exact descriptor of the element at index i; for
// non-resolvable types this is the block's element type.
func (b *Block) Resolve(i int) *rtti.Type {
	if b.typ == nil || i < 0 || i >= b.count {
		return nil
	}
	if b.typ.Ops().Resolve != nil {
		return b.typ.Ops().Resolve(b.data, i)
	}
	return b.typ
}

// Crop returns a static window over elements [offset, offset+count).
// The window borrows the region: it holds no allocation and must not
// outlive the source. It inherits the source's type and reads as
// constant when the source is.
func (b *Block) Crop(offset, count int) (*Block, error) {
	if offset < 0 || count < 0 || offset+count > b.count {
		return nil, types.ErrMissingBound
	}
	w := &Block{
		typ:   b.typ,
		state: (b.state & transferMask) | StateStatic,
		count: count,
	}
	if count > 0 {
		w.data = sliceSlots(b.data, offset, offset+count)
		w.reserved = count
	}
	return w, nil
}

// sliceSlots reslices typed slot storage without knowing its type.
func sliceSlots(s mem.Slots, i, j int) mem.Slots {
	return reflect.ValueOf(s).Slice(i, j).Interface()
}

// init constructs the header from an intended source; used by New and by
// every container constructor.
func (b *Block) init(in Intended) error {
	if in.src == nil {
		return nil
	}
	return transfer(b, in.src, in.intent, false)
}

// Assign replaces the block's contents from an intended source. The
// operation is all-or-nothing: on error the block is unchanged.
// Re-binding a static view is allowed; assigning to a constant block is
// not.
func (b *Block) Assign(in Intended) error {
	if b.IsConstant() {
		return types.ErrAccess
	}
	if in.src == nil {
		return types.ErrMissingBound
	}
	wasConstrained, pinned := b.IsConstrained(), b.typ
	var tmp Block
	if err := transfer(&tmp, in.src, in.intent, wasConstrained); err != nil {
		return err
	}
	if wasConstrained && pinned != nil && tmp.typ != nil && !tmp.typ.CastsTo(pinned) {
		tmp.Reset()
		return types.ErrTypeMismatch
	}
	b.Reset()
	*b = tmp
	if wasConstrained {
		b.state |= StateConstrained
	}
	return nil
}
