package block

import "github.com/joshuapare/blockkit/pkg/types"

// Remove destroys count elements beginning at offset and closes the gap.
func (b *Block) Remove(offset, count int) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if offset < 0 || count < 0 || offset+count > b.count {
		return types.ErrMissingBound
	}
	if count == 0 {
		return nil
	}
	if b.sharedRegion() {
		if err := b.TakeAuthority(); err != nil {
			return err
		}
	}
	ops := b.typ.Ops()
	ops.Destroy(b.data, offset, count)
	tail := b.count - offset - count
	if tail > 0 {
		tmp := ops.Make(tail)
		ops.Move(tmp, 0, b.data, offset+count, tail)
		ops.Move(b.data, offset, tmp, 0, tail)
	}
	b.count -= count
	return nil
}

// Pop removes the last element.
func (b *Block) Pop() error {
	if b.count == 0 {
		return types.ErrMissingBound
	}
	return b.Remove(b.count-1, 1)
}

// RemoveIndexDeep removes the element at the given absolute deep index,
// counting leaves across nested deep children in traversal order.
func (b *Block) RemoveIndexDeep(index int) error {
	if err := b.mutable(); err != nil {
		return err
	}
	removed, _, err := b.removeDeep(index)
	if err != nil {
		return err
	}
	if !removed {
		return types.ErrMissingBound
	}
	return nil
}

// removeDeep walks leaves; returns (removed, leavesSeen, err).
func (b *Block) removeDeep(index int) (bool, int, error) {
	if !b.IsDeep() {
		if index < b.count {
			return true, b.count, b.Remove(index, 1)
		}
		return false, b.count, nil
	}
	seen := 0
	for i := 0; i < b.count; i++ {
		child, ok := b.childAt(i)
		if !ok {
			if index == seen {
				return true, seen + 1, b.Remove(i, 1)
			}
			seen++
			continue
		}
		removed, n, err := child.removeDeep(index - seen)
		if err != nil || removed {
			return removed, seen + n, err
		}
		seen += n
	}
	return false, seen, nil
}

// childAt returns a pointer to the nested block at index i, when deep.
func (b *Block) childAt(i int) (*Block, bool) {
	if !b.IsDeep() {
		return nil, false
	}
	if sl, ok := b.data.([]Block); ok {
		return &sl[i], true
	}
	return nil, false
}

// Clear destroys all elements but keeps the allocation. A shared region
// is detached instead, leaving the other holders untouched.
func (b *Block) Clear() error {
	if err := b.mutable(); err != nil {
		return err
	}
	if b.count == 0 {
		return nil
	}
	if b.sharedRegion() {
		b.release()
		return nil
	}
	b.typ.Ops().Destroy(b.data, 0, b.count)
	b.count = 0
	return nil
}

// Reset destroys all elements and releases the region, collapsing the
// block to unallocated-typed. Resetting an already-reset block is a
// no-op.
func (b *Block) Reset() {
	b.release()
}
