package table

import "github.com/joshuapare/blockkit/block"

// Slot accessors. The table keeps occupancy in the info bytes and drives
// the parallel blocks purely at slot level; the blocks never learn which
// slots are live.

// slotPair returns the out-of-line pair at an occupied slot.
func (t *Core) slotPair(i int) *block.Pair {
	return t.keys.SlotGet(i).(*block.Pair)
}

// slotKey returns the boxed key at an occupied slot.
func (t *Core) slotKey(i int) any {
	if t.flat {
		return t.keys.SlotGet(i)
	}
	return t.slotPair(i).Key.GetBoxed(0)
}

// slotValue returns the boxed value at an occupied slot.
func (t *Core) slotValue(i int) any {
	if t.isSet {
		return nil
	}
	if t.flat {
		return t.values.SlotGet(i)
	}
	return t.slotPair(i).Value.GetBoxed(0)
}

// slotKeyEqual compares an occupied slot's key against a boxed key.
func (t *Core) slotKeyEqual(i int, key any) bool {
	if t.flat {
		return t.keys.SlotEqualBoxed(i, key)
	}
	return t.keyType.EqualBoxed(t.slotPair(i).Key.GetBoxed(0), key)
}

// setSlot constructs a fresh entry at an empty slot.
func (t *Core) setSlot(i int, key, value any) error {
	if t.flat {
		t.keys.SlotSet(i, key)
		if !t.isSet {
			t.values.SlotSet(i, value)
		}
		return nil
	}
	p := t.pool.Get().(*block.Pair)
	if err := p.Key.Push(key); err != nil {
		t.pool.Put(p)
		return err
	}
	if !t.isSet {
		if err := p.Value.Push(value); err != nil {
			p.Reset()
			t.pool.Put(p)
			return err
		}
	}
	t.keys.SlotSet(i, p)
	return nil
}

// setSlotValue overwrites the value of an occupied slot.
func (t *Core) setSlotValue(i int, value any) error {
	if t.isSet {
		return nil
	}
	if t.flat {
		t.values.SlotDestroy(i)
		t.values.SlotSet(i, value)
		return nil
	}
	p := t.slotPair(i)
	p.Value.Reset()
	return p.Value.Push(value)
}

// destroySlot destructs an occupied slot's entry; out-of-line pairs
// return to the pool.
func (t *Core) destroySlot(i int) {
	if t.flat {
		t.keys.SlotDestroy(i)
		if !t.isSet {
			t.values.SlotDestroy(i)
		}
		return
	}
	p := t.slotPair(i)
	p.Reset()
	t.keys.SlotDestroy(i)
	t.pool.Put(p)
}

// moveSlot transfers an entry between slots of this table, patching the
// insertion-order links. Out-of-line entries move by pointer only.
func (t *Core) moveSlot(dst, src int) {
	t.keys.SlotMove(dst, src)
	if t.flat && !t.isSet {
		t.values.SlotMove(dst, src)
	}
	if t.order != nil {
		t.order.move(src, dst)
	}
}

// moveSlotFrom pulls an entry out of the previous layout during rehash.
func (t *Core) moveSlotFrom(dst int, oldKeys, oldValues *block.Block, src int) {
	t.keys.SlotMoveFrom(oldKeys, dst, src)
	if t.flat && !t.isSet {
		t.values.SlotMoveFrom(oldValues, dst, src)
	}
}
