package table

import "github.com/joshuapare/blockkit/block"

// rehash lays out fresh slot and info arrays at the new capacity and
// migrates every entry by moving it through the core insertion walk,
// skipping the load-factor check (the content is known to fit). The
// hash multiplier is bumped by an even constant, which keeps it odd and
// changes the mixing step to break probe-sequence degeneracy from the
// previous layout. Ordered tables migrate along the insertion-order
// list, so iteration order survives.
func (t *Core) rehash(newCapacity int) error {
	oldKeys := t.keys
	oldValues := t.values
	oldInfo := t.info
	oldOrder := t.order
	oldCapacity := t.Capacity()

	t.multiplier += hashMultiplierStep
	if t.order != nil {
		t.order = &orderList{head: -1, tail: -1}
	}
	if err := t.initSlots(newCapacity); err != nil {
		t.keys = oldKeys
		t.values = oldValues
		t.info = oldInfo
		t.order = oldOrder
		t.multiplier -= hashMultiplierStep
		return err
	}

	if oldOrder != nil {
		for i := oldOrder.head; i >= 0 && int(i) < oldCapacity; i = oldOrder.next[i] {
			t.placeFrom(&oldKeys, &oldValues, int(i))
		}
	} else {
		for i := 0; i < oldCapacity; i++ {
			if oldInfo[i] != 0 {
				t.placeFrom(&oldKeys, &oldValues, i)
			}
		}
	}

	oldKeys.Reset()
	oldValues.Reset()
	return nil
}

// placeFrom migrates one entry from the previous layout into the
// current one. Keys are unique, so the probe walk never matches.
func (t *Core) placeFrom(oldKeys, oldValues *block.Block, src int) {
	key := oldSlotKey(t, oldKeys, src)
	idx, info := t.keyToIdx(key)
	for info <= uint32(t.info[idx]) {
		idx, info = t.next(idx, info)
	}
	// As in insertion, widen the info range before a placement that
	// could overflow the info byte.
	if (t.maxAllowed == 0 || info+t.infoInc > 0xFF) && t.tryIncreaseInfo() {
		t.maxAllowed = t.calcMaxAllowed(t.Capacity())
		idx, info = t.keyToIdx(key)
		for info <= uint32(t.info[idx]) {
			idx, info = t.next(idx, info)
		}
	}
	t.shiftUp(idx)
	t.info[idx] = byte(info)
	t.moveSlotFrom(idx, oldKeys, oldValues, src)
	if t.order != nil {
		t.order.append(idx)
	}
	t.count++
}

// oldSlotKey reads the boxed key of an occupied slot in a previous
// layout, which shares the current storage mode.
func oldSlotKey(t *Core, oldKeys *block.Block, i int) any {
	if t.flat {
		return oldKeys.SlotGet(i)
	}
	return oldKeys.SlotGet(i).(*block.Pair).Key.GetBoxed(0)
}

// Reserve pre-sizes the table for at least n entries, rehashing once
// instead of repeatedly during a bulk load.
func (t *Core) Reserve(n int) error {
	if n <= 0 || t.keyType == nil {
		return nil
	}
	need := minCapacity
	for need*t.loadPct/100 < n {
		need <<= 1
	}
	if t.info == nil {
		return t.initSlots(need)
	}
	if need <= t.Capacity() {
		return nil
	}
	return t.rehash(need)
}
