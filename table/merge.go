package table

import "github.com/joshuapare/blockkit/rtti"

// Clone returns an independent table with every entry deep-copied
// through the element descriptors. Layout parameters (capacity,
// multiplier, ordering, storage) are rebuilt, not copied: the clone
// re-derives its own layout as the entries arrive.
func (t *Core) Clone() (*Core, error) {
	out := New(Options{
		Key:     t.keyType,
		Value:   t.valueType,
		ForSet:  t.isSet,
		Ordered: t.order != nil,
		LoadPct: t.loadPct,
		Storage: t.storage,
	})
	if err := out.Reserve(t.count); err != nil {
		return nil, err
	}
	var firstErr error
	t.Each(func(k, v any) bool {
		k = cloneElement(t.keyType, k)
		if !t.isSet {
			v = cloneElement(t.valueType, v)
		}
		if _, err := out.Set(k, v); err != nil {
			firstErr = err
			return false
		}
		return true
	})
	if firstErr != nil {
		out.Reset()
		return nil, firstErr
	}
	return out, nil
}

// Merge inserts every entry of other that is not already present.
// Existing keys keep their values. Returns the number of entries added.
func (t *Core) Merge(other *Core) (int, error) {
	added := 0
	var firstErr error
	other.Each(func(k, v any) bool {
		has, err := t.Has(k)
		if err != nil {
			firstErr = err
			return false
		}
		if has {
			return true
		}
		if _, err := t.Set(k, v); err != nil {
			firstErr = err
			return false
		}
		added++
		return true
	})
	return added, firstErr
}

// cloneElement deep-copies one boxed element through its exact
// descriptor when one is known.
func cloneElement(td *rtti.Type, v any) any {
	if v == nil {
		return v
	}
	if exact := rtti.OfValue(v); exact != nil && exact.Ops().CloneBoxed != nil {
		return exact.Ops().CloneBoxed(v)
	}
	if td != nil && td.Ops().CloneBoxed != nil {
		return td.Ops().CloneBoxed(v)
	}
	return v
}
