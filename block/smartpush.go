package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// Deepen wraps the current contents in a new inner block, so the block
// becomes a container of blocks holding its former self as the single
// child. An empty block just acquires the deep element type.
func (b *Block) Deepen() error {
	if err := b.mutable(); err != nil {
		return err
	}
	if b.IsConstrained() {
		return types.ErrTypeMismatch
	}
	if b.typ == nil || b.count == 0 {
		b.release()
		b.typ = manyType
		b.state |= StateTyped
		b.state &^= StateSparse
		return nil
	}

	var inner Block
	if err := transfer(&inner, b, IntentMove, false); err != nil {
		return err
	}
	b.typ = manyType
	b.state |= StateTyped
	b.state &^= StateSparse
	if err := b.Insert(Back, inner); err != nil {
		// Put the contents back; the wrap failed before any slot was
		// written.
		*b = inner
		return err
	}
	// The slot took its own reference; drop the staging one.
	inner.release()
	return nil
}

// SmartPush is the policy layer above insertion. Given a value and a
// position it may append directly (types match), concatenate (the value
// is itself a block of matching type and allowConcat is set), or deepen
// the block so both old and new contents become children (types differ
// and allowDeepen is set). It returns the number of elements inserted.
//
// Heterogeneous deep blocks are never merged: when both sides are deep
// with different element types, the push wraps instead of concatenating.
func (b *Block) SmartPush(v any, at int, allowConcat, allowDeepen bool) (int, error) {
	if err := b.mutable(); err != nil {
		return 0, err
	}

	// Block sources may concatenate.
	if sb := asBlock(v); sb != nil {
		if sb.count == 0 {
			return 0, nil
		}
		canConcat := allowConcat && (b.typ == nil || sb.typ.CastsTo(b.typ))
		if b.IsDeep() && sb.IsDeep() {
			// Two deep blocks merge only when their children are of one
			// similar element type; heterogeneous deep blocks always
			// wrap instead.
			bt, st := b.deepElementType(), sb.deepElementType()
			canConcat = allowConcat && bt != nil && st != nil && bt.Similar(st)
		}
		if canConcat {
			if err := b.InsertFrom(at, Copy(sb)); err == nil {
				return sb.count, nil
			}
		}
		if b.IsDeep() {
			if err := b.Insert(at, *sb); err != nil {
				return 0, err
			}
			return 1, nil
		}
		if !allowDeepen || b.IsConstrained() {
			return 0, types.ErrTypeMismatch
		}
		if err := b.Deepen(); err != nil {
			return 0, err
		}
		if err := b.Insert(at, *sb); err != nil {
			return 0, err
		}
		return 1, nil
	}

	td := rtti.OfValue(v)
	if td == nil {
		return 0, types.ErrTypeMismatch
	}
	if b.typ == nil || td.CastsTo(b.typ) || b.IsDeep() {
		if err := b.Insert(at, v); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if !allowDeepen || b.IsConstrained() {
		return 0, types.ErrTypeMismatch
	}
	if err := b.Deepen(); err != nil {
		return 0, err
	}
	if err := b.Insert(at, v); err != nil {
		return 0, err
	}
	return 1, nil
}

// deepElementType returns the element type shared by every child of a
// deep block, or nil when the children are mixed. An empty deep block
// has no element type.
func (b *Block) deepElementType() *rtti.Type {
	if !b.IsDeep() || b.count == 0 {
		return nil
	}
	var td *rtti.Type
	for i := 0; i < b.count; i++ {
		child, ok := b.childAt(i)
		if !ok || child.typ == nil {
			return nil
		}
		if td == nil {
			td = child.typ
			continue
		}
		if !td.Similar(child.typ) {
			return nil
		}
	}
	return td
}

// asBlock unwraps block-ish values.
func asBlock(v any) *Block {
	switch t := v.(type) {
	case *Block:
		return t
	case Block:
		return &t
	case *Vec:
		return &t.Block
	}
	return nil
}

