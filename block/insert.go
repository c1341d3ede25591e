package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// Back addresses the position after the last element.
const Back = -1

// clampAt normalizes an insertion position: Back means append.
func (b *Block) clampAt(at int) (int, error) {
	if at == Back {
		return b.count, nil
	}
	if at < 0 || at > b.count {
		return 0, types.ErrMissingBound
	}
	return at, nil
}

// Insert copy-constructs the given values at position `at` (Back to
// append). The operation is all-or-nothing; a type mismatch against a
// typed block fails without widening.
func (b *Block) Insert(at int, vals ...any) error {
	return b.insertBoxed(at, IntentCopy, false, vals)
}

// InsertWith is Insert under an explicit intent. Boxed values support
// copy and clone construction; the other intents have no element-level
// meaning and fail with ErrIntentUnsupported.
func (b *Block) InsertWith(at int, intent Intent, vals ...any) error {
	return b.insertBoxed(at, intent, false, vals)
}

// Push appends a value; PushFront prepends.
func (b *Block) Push(v any) error      { return b.Insert(Back, v) }
func (b *Block) PushFront(v any) error { return b.Insert(0, v) }

func (b *Block) insertBoxed(at int, intent Intent, allowMutate bool, vals []any) error {
	if len(vals) == 0 {
		return nil
	}
	if err := b.mutable(); err != nil {
		return err
	}
	if intent != IntentCopy && intent != IntentClone {
		return types.ErrIntentUnsupported
	}
	at, err := b.clampAt(at)
	if err != nil {
		return err
	}

	td := rtti.OfValue(vals[0])
	if td == nil {
		return types.ErrTypeMismatch
	}
	for _, v := range vals[1:] {
		if o := rtti.OfValue(v); o == nil || !o.Similar(td) {
			return types.ErrTypeMismatch
		}
	}

	if b.typ != nil && !td.CastsTo(b.typ) && !b.IsDeep() {
		if !allowMutate || b.IsConstrained() {
			return types.ErrTypeMismatch
		}
		if err := b.Deepen(); err != nil {
			return err
		}
	}
	if b.typ == nil {
		if err := b.SetType(td); err != nil {
			return err
		}
	}

	// A deep block absorbs foreign values by wrapping each in a block of
	// its own.
	if b.IsDeep() && !td.Similar(b.typ) && !td.CastsTo(b.typ) {
		wrapped := make([]any, len(vals))
		for i, v := range vals {
			w, err := wrapValue(v)
			if err != nil {
				return err
			}
			wrapped[i] = w
		}
		vals = wrapped
		td = b.typ
	}
	// Deepening collapses the live count; keep the position in range.
	if at > b.count {
		at = b.count
	}

	n := len(vals)
	if b.count+n > b.reserved {
		if err := b.allocateMore(b.count + n); err != nil {
			return err
		}
	} else if b.sharedRegion() {
		if err := b.TakeAuthority(); err != nil {
			return err
		}
		if b.count+n > b.reserved {
			if err := b.allocateMore(b.count + n); err != nil {
				return err
			}
		}
	}

	if at < b.count {
		b.shiftRight(at, n)
	}
	ops := b.typ.Ops()
	for i, v := range vals {
		if intent == IntentClone {
			v = cloneBoxed(b.typ, v)
		}
		ops.SetBoxed(b.data, at+i, v)
	}
	b.count += n
	return nil
}

// cloneBoxed deep-copies one erased element value through the exact
// descriptor when resolvable.
func cloneBoxed(td *rtti.Type, v any) any {
	if exact := rtti.OfValue(v); exact != nil && exact.Ops().CloneBoxed != nil {
		return exact.Ops().CloneBoxed(v)
	}
	return td.Ops().CloneBoxed(v)
}

// wrapValue boxes a value into a fresh single-element block.
func wrapValue(v any) (Block, error) {
	if inner, ok := v.(Block); ok {
		return inner, nil
	}
	if inner, ok := v.(*Block); ok {
		var out Block
		if err := transfer(&out, inner, IntentRefer, false); err != nil {
			return Block{}, err
		}
		return out, nil
	}
	var w Block
	if err := w.Insert(Back, v); err != nil {
		return Block{}, err
	}
	return w, nil
}

// InsertFrom inserts every element of the intended source block at
// position `at`. Copy and clone construct element-wise; move and abandon
// drain the source; refer and disown have no element-level meaning.
func (b *Block) InsertFrom(at int, in Intended) error {
	src := in.src
	if src == nil {
		return types.ErrMissingBound
	}
	if err := b.mutable(); err != nil {
		return err
	}
	at, err := b.clampAt(at)
	if err != nil {
		return err
	}
	if src.count == 0 {
		return nil
	}
	if b.typ == nil {
		if err := b.SetType(src.typ); err != nil {
			return err
		}
	} else if !src.typ.CastsTo(b.typ) {
		return types.ErrTypeMismatch
	}

	ops := b.typ.Ops()
	switch in.intent {
	case IntentCopy, IntentAbandon:
		if ops.Copy == nil {
			return types.ErrIntentUnsupported
		}
	case IntentClone:
		if ops.Clone == nil {
			return types.ErrIntentUnsupported
		}
	case IntentMove:
	default:
		return types.ErrIntentUnsupported
	}

	n := src.count
	if b.count+n > b.reserved {
		if err := b.allocateMore(b.count + n); err != nil {
			return err
		}
	}
	if at < b.count {
		b.shiftRight(at, n)
	}
	switch in.intent {
	case IntentCopy:
		ops.Copy(b.data, at, src.data, 0, n)
	case IntentClone:
		ops.Clone(b.data, at, src.data, 0, n)
	case IntentMove:
		ops.Move(b.data, at, src.data, 0, n)
		src.count = 0
	case IntentAbandon:
		ops.Copy(b.data, at, src.data, 0, n)
		src.count = 0
	}
	b.count += n
	return nil
}

// shiftRight moves elements [k, count) right by n slots through a
// staging buffer, leaving [k, k+n) trivially destructible.
func (b *Block) shiftRight(k, n int) {
	ops := b.typ.Ops()
	tail := b.count - k
	tmp := ops.Make(tail)
	ops.Move(tmp, 0, b.data, k, tail)
	ops.Move(b.data, k+n, tmp, 0, tail)
}

// Extend default-constructs n elements at the back.
func (b *Block) Extend(n int) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if b.typ == nil {
		return types.ErrTypeMismatch
	}
	if !b.typ.IsDefaultable() {
		return types.ErrIntentUnsupported
	}
	if b.count+n > b.reserved {
		if err := b.allocateMore(b.count + n); err != nil {
			return err
		}
	}
	b.typ.Ops().Default(b.data, b.count, n)
	b.count += n
	return nil
}

// Null default-constructs over every live element. Valid only for
// nullifiable element types.
func (b *Block) Null() error {
	if err := b.mutable(); err != nil {
		return err
	}
	if b.typ == nil || b.count == 0 {
		return nil
	}
	if !b.typ.IsNullifiable() {
		return types.ErrIntentUnsupported
	}
	ops := b.typ.Ops()
	ops.Destroy(b.data, 0, b.count)
	ops.Default(b.data, 0, b.count)
	return nil
}
