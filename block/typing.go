package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// SetType pins the element type. An untyped block acquires td directly.
// A typed block accepts a compatible td. On mismatch an empty
// unconstrained block mutates to the common base (or to td when there is
// none); a populated or constrained block fails.
func (b *Block) SetType(td *rtti.Type) error {
	if td == nil {
		return types.ErrTypeMismatch
	}
	if b.typ == nil {
		b.typ = td
		b.state |= StateTyped
		if td.IsSparse() {
			b.state |= StateSparse
		}
		return nil
	}
	if b.typ.Similar(td) {
		return nil
	}
	if td.CastsTo(b.typ) {
		return nil
	}
	if b.IsConstrained() {
		return types.ErrTypeMismatch
	}
	if common := b.typ.CommonBase(td); common != nil {
		if b.count == 0 {
			b.release()
			b.typ = common
			return nil
		}
		return types.ErrTypeMismatch
	}
	if b.count == 0 {
		b.release()
		b.typ = td
		if td.IsSparse() {
			b.state |= StateSparse
		} else {
			b.state &^= StateSparse
		}
		return nil
	}
	return types.ErrTypeMismatch
}

// Constrain pins the current element type against further mutation.
func (b *Block) Constrain() { b.state |= StateConstrained }

// Is reports whether the block's type is similar to td: identity or a
// registered alias (dense/sparse of the same base included).
func (b *Block) Is(td *rtti.Type) bool { return b.typ.Similar(td) }

// IsSimilar is an alias of Is, kept for call sites that read better with
// the relation spelled out.
func (b *Block) IsSimilar(td *rtti.Type) bool { return b.typ.Similar(td) }

// IsExact reports descriptor identity.
func (b *Block) IsExact(td *rtti.Type) bool { return b.typ.Exact(td) }

// CastsTo reports whether the block's elements can stand where td's are
// expected.
func (b *Block) CastsTo(td *rtti.Type) bool {
	if b.typ == nil {
		return false
	}
	return b.typ.CastsTo(td)
}
