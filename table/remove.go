package table

// Remove deletes the entry for key. It reports whether an entry was
// removed.
func (t *Core) Remove(key any) (bool, error) {
	if t.count == 0 {
		return false, nil
	}
	if err := t.checkKey(key, false); err != nil {
		return false, err
	}
	idx, _, found := t.findIdx(key)
	if !found {
		return false, nil
	}
	if t.order != nil {
		t.order.remove(idx)
	}
	t.destroySlot(idx)
	t.info[idx] = 0
	t.shiftDown(idx)
	t.count--
	return true, nil
}

// shiftDown backfills a vacated slot: every subsequent entry that is
// displaced from its home (stored info of at least two increments) moves
// one slot left with its info decremented, until the chain ends at an
// empty or home-positioned slot.
func (t *Core) shiftDown(idx int) {
	nxt := int(uint64(idx+1) & t.mask)
	for uint32(t.info[nxt]) >= 2*t.infoInc {
		t.info[idx] = byte(uint32(t.info[nxt]) - t.infoInc)
		t.moveSlot(idx, nxt)
		idx = nxt
		nxt = int(uint64(idx+1) & t.mask)
	}
	t.info[idx] = 0
}
