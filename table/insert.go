package table

import "github.com/joshuapare/blockkit/pkg/types"

// Set inserts or overwrites the entry for key. It reports whether a new
// entry was created.
func (t *Core) Set(key, value any) (bool, error) {
	if err := t.checkKey(key, true); err != nil {
		return false, err
	}
	if err := t.checkValue(value, true); err != nil {
		return false, err
	}
	if t.info == nil {
		if err := t.initSlots(minCapacity); err != nil {
			return false, err
		}
	}

	for {
		idx, info, found := t.findIdx(key)
		if found {
			return false, t.setSlotValue(idx, value)
		}
		if t.count >= t.maxAllowed || info+t.infoInc > 0xFF {
			if err := t.grow(); err != nil {
				return false, err
			}
			continue
		}
		t.shiftUp(idx)
		t.info[idx] = byte(info)
		if err := t.setSlot(idx, key, value); err != nil {
			// Undo the shift by draining the slot back down.
			t.info[idx] = 0
			t.shiftDown(idx)
			return false, err
		}
		if t.order != nil {
			t.order.append(idx)
		}
		t.count++
		return true, nil
	}
}

// Add inserts a key into a set. It reports whether the key was new.
func (t *Core) Add(key any) (bool, error) {
	if !t.isSet {
		return false, types.ErrTypeMismatch
	}
	return t.Set(key, nil)
}

// shiftUp vacates the insertion slot by moving the chain [idx, first
// empty) one slot right, bumping each displaced entry's info by one
// increment. When a bumped entry nears the info byte ceiling, the entry
// budget is zeroed so the next insertion calls grow first.
func (t *Core) shiftUp(idx int) {
	e := idx
	for t.info[e] != 0 {
		e, _ = t.next(e, 0)
	}
	for e != idx {
		p := int(uint64(e-1) & t.mask)
		ni := uint32(t.info[p]) + t.infoInc
		if ni+t.infoInc > 0xFF {
			t.maxAllowed = 0
		}
		t.moveSlot(e, p)
		t.info[e] = byte(ni)
		e = p
	}
	t.info[idx] = 0
}

// grow makes room: when the table is lightly loaded but the info byte
// range is exhausted, halve the distance increment in place; otherwise
// rehash at double capacity.
func (t *Core) grow() error {
	capacity := t.Capacity()
	if capacity == 0 {
		return t.initSlots(minCapacity)
	}
	budget := t.calcMaxAllowed(capacity)
	if t.count < budget && t.tryIncreaseInfo() {
		t.maxAllowed = budget
		return nil
	}
	if capacity*2 > maxCapacity {
		return types.ErrOverflow
	}
	return t.rehash(capacity * 2)
}

// tryIncreaseInfo halves the distance increment and shifts every info
// byte right by one bit, doubling the representable probe distance
// without moving a single entry. Fails once the increment bottoms out.
func (t *Core) tryIncreaseInfo() bool {
	if t.infoInc <= 2 {
		return false
	}
	t.infoInc >>= 1
	t.infoHashShift++
	capacity := t.Capacity()
	for i := 0; i < capacity; i++ {
		t.info[i] >>= 1
	}
	t.info[capacity] = 1
	return true
}
