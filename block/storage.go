package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
)

// Slot-level storage access for structures that manage occupancy
// themselves (the hash table keeps sparse occupancy in its info bytes
// and treats its parallel blocks as raw slot regions). Slot operations
// bypass the live count entirely; the caller owns the occupancy
// bookkeeping and must destroy what it constructs.

// ReserveSlots sizes the block to exactly n reserved slots with a live
// count of zero, releasing any previous region.
func (b *Block) ReserveSlots(n int) error {
	if b.typ == nil {
		return types.ErrTypeMismatch
	}
	b.release()
	if n == 0 {
		return nil
	}
	return b.allocateFresh(n)
}

// SlotSet copy-constructs the element at slot i from a boxed value.
func (b *Block) SlotSet(i int, v any) {
	b.typ.Ops().SetBoxed(b.data, i, v)
}

// SlotGet returns the element at slot i as an erased value.
func (b *Block) SlotGet(i int) any {
	return b.typ.Ops().Box(b.data, i)
}

// SlotDestroy destructs the element at slot i.
func (b *Block) SlotDestroy(i int) {
	b.typ.Ops().Destroy(b.data, i, 1)
}

// SlotMove transfers the element from slot src to slot dst, leaving src
// trivially destructible.
func (b *Block) SlotMove(dst, src int) {
	b.typ.Ops().Move(b.data, dst, b.data, src, 1)
}

// SlotMoveFrom transfers one element from slot src of another block of
// the same type into slot dst.
func (b *Block) SlotMoveFrom(o *Block, dst, src int) {
	b.typ.Ops().Move(b.data, dst, o.data, src, 1)
}

// SlotHash hashes the element at slot i.
func (b *Block) SlotHash(i int) uint64 {
	return b.typ.Ops().Hash(b.data, i)
}

// SlotEqualBoxed compares the element at slot i against a boxed value.
func (b *Block) SlotEqualBoxed(i int, v any) bool {
	ops := b.typ.Ops()
	if ops.Equal == nil {
		return false
	}
	probe := ops.Make(1)
	ops.SetBoxed(probe, 0, v)
	eq := ops.Equal(b.data, i, probe, 0)
	ops.Destroy(probe, 0, 1)
	return eq
}
