package table

// keyToIdx derives the home bucket and initial info byte for a key:
// descriptor hash, multiplier stage, xor-fold, then a split where the
// low bits overflow into the info byte.
func (t *Core) keyToIdx(key any) (int, uint32) {
	h := t.keyType.HashBoxed(key)
	h *= t.multiplier
	h ^= h >> 33
	info := t.infoInc + uint32((h&infoMask)>>t.infoHashShift)
	idx := int((h >> initialInfoNumBits) & t.mask)
	return idx, info
}

// next advances one probe step.
func (t *Core) next(idx int, info uint32) (int, uint32) {
	return int(uint64(idx+1) & t.mask), info + t.infoInc
}

// findIdx walks the probe sequence for a key. It returns the slot index
// and whether the key was found; when not found, the returned index is
// the Robin-Hood insertion point (the first slot whose stored info falls
// below the search info) and the returned info is the insertion info.
func (t *Core) findIdx(key any) (int, uint32, bool) {
	idx, info := t.keyToIdx(key)
	for info < uint32(t.info[idx]) {
		idx, info = t.next(idx, info)
	}
	for info == uint32(t.info[idx]) {
		if t.slotKeyEqual(idx, key) {
			return idx, info, true
		}
		idx, info = t.next(idx, info)
	}
	return idx, info, false
}

// Get returns the value stored under key. Sets return a nil value with
// the found flag.
func (t *Core) Get(key any) (any, bool, error) {
	if t.keyType != nil {
		if err := t.checkKey(key, false); err != nil {
			return nil, false, err
		}
	}
	if t.count == 0 {
		return nil, false, nil
	}
	idx, _, found := t.findIdx(key)
	if !found {
		return nil, false, nil
	}
	return t.slotValue(idx), true, nil
}

// Has reports whether key is present.
func (t *Core) Has(key any) (bool, error) {
	if t.count == 0 {
		return false, nil
	}
	if err := t.checkKey(key, false); err != nil {
		return false, err
	}
	_, _, found := t.findIdx(key)
	return found, nil
}

// ProbeLength returns how many slots a lookup for key inspects, for
// instrumentation. Zero means the key is absent.
func (t *Core) ProbeLength(key any) (int, error) {
	if t.count == 0 {
		return 0, nil
	}
	if err := t.checkKey(key, false); err != nil {
		return 0, err
	}
	idx, info := t.keyToIdx(key)
	probes := 1
	for info < uint32(t.info[idx]) {
		idx, info = t.next(idx, info)
		probes++
	}
	for info == uint32(t.info[idx]) {
		if t.slotKeyEqual(idx, key) {
			return probes, nil
		}
		idx, info = t.next(idx, info)
		probes++
	}
	return 0, nil
}

// Each visits every entry. Ordered tables follow insertion order;
// unordered tables follow slot order, terminated by the info sentinel.
// Returning false stops the walk.
func (t *Core) Each(fn func(key, value any) bool) {
	if t.count == 0 || t.info == nil {
		return
	}
	if t.order != nil {
		capacity := t.Capacity()
		for i := t.order.head; i >= 0 && int(i) < capacity; i = t.order.next[i] {
			if !fn(t.slotKey(int(i)), t.slotValue(int(i))) {
				return
			}
		}
		return
	}
	capacity := t.Capacity()
	for i := 0; ; i++ {
		if t.info[i] == 0 {
			continue
		}
		if i == capacity {
			return
		}
		if !fn(t.slotKey(i), t.slotValue(i)) {
			return
		}
	}
}

// Keys returns the boxed keys in iteration order.
func (t *Core) Keys() []any {
	out := make([]any, 0, t.count)
	t.Each(func(k, _ any) bool {
		out = append(out, k)
		return true
	})
	return out
}
