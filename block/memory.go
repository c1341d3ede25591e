package block

import (
	"github.com/joshuapare/blockkit/mem"
	"github.com/joshuapare/blockkit/pkg/types"
)

// allocator returns the allocator serving this block: the one that made
// its allocation, or the process default.
func (b *Block) allocator() mem.Allocator {
	if b.alloc != nil && b.alloc.Owner() != nil {
		return b.alloc.Owner()
	}
	return mem.Default()
}

// request sizes an allocation request for n elements of the block's type.
func (b *Block) request(n int) mem.Request {
	return mem.Request{Count: n, Stride: b.typ.Size(), Make: b.typ.Ops().Make}
}

// allocateFresh acquires a new allocation sized for n elements. The block
// must be typed and must not already own a region.
func (b *Block) allocateFresh(n int) error {
	if b.typ == nil {
		return types.ErrTypeMismatch
	}
	a, err := b.allocator().Allocate(b.request(n))
	if err != nil {
		return types.Wrap(types.ErrAllocFailed, "block: allocate", err)
	}
	b.alloc = a
	b.data = a.Slots()
	b.reserved = a.Reserved()
	return nil
}

// allocateMore grows the region to hold at least n elements, migrating
// existing content through the element type's move constructor. A shared
// region (use count > 1) or a static window is copied instead of moved,
// leaving the other holders untouched.
func (b *Block) allocateMore(n int) error {
	if n <= b.reserved && b.alloc != nil {
		return nil
	}
	if b.typ == nil {
		return types.ErrTypeMismatch
	}
	grown := mem.GrowReserve(b.reserved, n)
	alc := b.allocator()
	a, err := alc.Reallocate(b.alloc, b.request(grown))
	if err != nil {
		return types.Wrap(types.ErrAllocFailed, "block: grow", err)
	}
	ops := b.typ.Ops()
	if b.count > 0 {
		if b.sharedRegion() {
			ops.Copy(a.Slots(), 0, b.data, 0, b.count)
		} else {
			ops.Move(a.Slots(), 0, b.data, 0, b.count)
		}
	}
	b.releaseRegion()
	b.alloc = a
	b.data = a.Slots()
	b.reserved = a.Reserved()
	b.state &^= StateStatic
	return nil
}

// sharedRegion reports whether the element region is visible to other
// holders: a borrowed window or an allocation with more than one user.
func (b *Block) sharedRegion() bool {
	return b.IsStatic() || (b.alloc != nil && b.alloc.Uses() > 1)
}

// allocateLess shrinks the region to n elements, destroying the trailing
// elements first.
func (b *Block) allocateLess(n int) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if n >= b.reserved {
		return nil
	}
	ops := b.typ.Ops()
	if b.count > n {
		ops.Destroy(b.data, n, b.count-n)
		b.count = n
	}
	if n == 0 {
		b.releaseRegion()
		b.alloc = nil
		b.data = nil
		b.reserved = 0
		return nil
	}
	a, err := b.allocator().Reallocate(b.alloc, b.request(n))
	if err != nil {
		return types.Wrap(types.ErrAllocFailed, "block: shrink", err)
	}
	if b.sharedRegion() {
		ops.Copy(a.Slots(), 0, b.data, 0, b.count)
	} else {
		ops.Move(a.Slots(), 0, b.data, 0, b.count)
	}
	b.releaseRegion()
	b.alloc = a
	b.data = a.Slots()
	b.reserved = a.Reserved()
	return nil
}

// Trim shrinks the region to exactly n elements, destroying any
// trailing elements first.
func (b *Block) Trim(n int) error {
	if n < 0 {
		return types.ErrMissingBound
	}
	return b.allocateLess(n)
}

// Reserve grows the region to hold at least n elements without
// initializing the new slots.
func (b *Block) Reserve(n int) error {
	if b.IsConstant() {
		return types.ErrAccess
	}
	return b.allocateMore(n)
}

// TakeAuthority converts a borrowed or shared region into a uniquely
// owned one by allocating and copying. It is the one operation that
// turns shared into unique.
func (b *Block) TakeAuthority() error {
	if b.typ == nil || b.count == 0 {
		b.state &^= StateStatic
		return nil
	}
	unique := b.alloc != nil && b.alloc.Uses() == 1 && !b.IsStatic()
	if unique {
		return nil
	}
	a, err := b.allocator().Allocate(b.request(b.count))
	if err != nil {
		return types.Wrap(types.ErrAllocFailed, "block: take authority", err)
	}
	b.typ.Ops().Copy(a.Slots(), 0, b.data, 0, b.count)
	b.releaseRegion()
	b.alloc = a
	b.data = a.Slots()
	b.reserved = a.Reserved()
	b.state &^= StateStatic | StateConstant
	return nil
}

// releaseRegion drops the block's claim on its allocation, destroying
// elements only when this block is the last holder. Static windows
// simply detach.
func (b *Block) releaseRegion() {
	if b.alloc == nil {
		return
	}
	if b.alloc.Free() {
		if b.typ != nil && b.count > 0 {
			b.typ.Ops().Destroy(b.data, 0, b.count)
		}
		if owner := b.alloc.Owner(); owner != nil {
			owner.Deallocate(b.alloc)
		}
	}
	b.alloc = nil
}

// release collapses the block to unallocated-typed: elements destroyed,
// region released, type retained.
func (b *Block) release() {
	b.releaseRegion()
	b.data = nil
	b.count = 0
	b.reserved = 0
	b.state &^= StateStatic
}
