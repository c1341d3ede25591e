package rtti

import (
	"reflect"

	"github.com/joshuapare/blockkit/mem"
	"github.com/joshuapare/blockkit/pkg/types"
)

// Indirect is one slot of a sparse (pointer-of) element region: the
// pointer itself plus the allocation it points into, for refcount
// accounting of the pointee. Origin is nil for unmanaged pointees.
type Indirect struct {
	Ptr    any
	Origin *mem.Allocation
}

// PointerTo derives (and caches) the sparse descriptor of base. Sparse
// slots share the base's semantics but store pointers; copying shares the
// pointee and bumps its origin refcount, cloning duplicates the pointee
// through its exact resolved descriptor.
func PointerTo(base *Type) *Type {
	if base == nil {
		return nil
	}
	regMu.Lock()
	if base.sparse != nil {
		s := base.sparse
		regMu.Unlock()
		return s
	}
	regMu.Unlock()

	ptrType := reflect.PointerTo(base.goType)
	t := &Type{
		token:  base.token + "*",
		size:   int(ptrType.Size()),
		align:  ptrType.Align(),
		flags:  Sparse | Resolvable | Nullifiable | Defaultable | (base.flags & Deep),
		bases:  base.bases,
		dense:  base,
		goType: ptrType,
		ops:    sparseOps(base),
	}

	regMu.Lock()
	if base.sparse == nil {
		if _, taken := byToken[t.token]; !taken {
			byToken[t.token] = t
			byGoType[t.goType] = t
		}
		base.sparse = t
	}
	s := base.sparse
	regMu.Unlock()
	return s
}

// resolveIndirect returns the exact descriptor of a sparse slot's
// pointee, preferring the dynamic type over the declared base.
func resolveIndirect(base *Type, e Indirect) *Type {
	if e.Ptr == nil {
		return base
	}
	rt := reflect.TypeOf(e.Ptr)
	if rt.Kind() == reflect.Pointer {
		if t := OfGoType(rt.Elem()); t != nil {
			return t
		}
	}
	return base
}

// deref returns the boxed pointee value of a sparse slot.
func deref(e Indirect) any {
	if e.Ptr == nil {
		return nil
	}
	return reflect.ValueOf(e.Ptr).Elem().Interface()
}

func sparseOps(base *Type) Ops {
	var ops Ops

	ops.Make = func(n int) mem.Slots { return make([]Indirect, n) }

	ops.Default = func(s mem.Slots, at, n int) {
		sl := s.([]Indirect)
		for i := at; i < at+n; i++ {
			sl[i] = Indirect{}
		}
	}

	// Copy shares the pointee and keeps its origin alive.
	ops.Copy = func(dst mem.Slots, dat int, src mem.Slots, sat, n int) {
		d, s := dst.([]Indirect), src.([]Indirect)
		for i := range n {
			e := s[sat+i]
			if e.Origin != nil {
				e.Origin.Keep()
			}
			d[dat+i] = e
		}
	}

	// Clone duplicates the pointee through its exact descriptor. The
	// duplicate is GC-owned: no origin, no refcount participation.
	ops.Clone = func(dst mem.Slots, dat int, src mem.Slots, sat, n int) {
		d, s := dst.([]Indirect), src.([]Indirect)
		for i := range n {
			e := s[sat+i]
			if e.Ptr == nil {
				d[dat+i] = Indirect{}
				continue
			}
			exact := resolveIndirect(base, e)
			cloned := exact.ops.CloneBoxed(deref(e))
			np := reflect.New(reflect.TypeOf(cloned))
			np.Elem().Set(reflect.ValueOf(cloned))
			d[dat+i] = Indirect{Ptr: np.Interface()}
		}
	}

	ops.Move = func(dst mem.Slots, dat int, src mem.Slots, sat, n int) {
		d, s := dst.([]Indirect), src.([]Indirect)
		copy(d[dat:dat+n], s[sat:sat+n])
		for i := sat; i < sat+n; i++ {
			s[i] = Indirect{}
		}
	}

	ops.Destroy = func(s mem.Slots, at, n int) {
		sl := s.([]Indirect)
		for i := at; i < at+n; i++ {
			if sl[i].Origin != nil {
				sl[i].Origin.Release()
			}
			sl[i] = Indirect{}
		}
	}

	if base.ops.Hash != nil {
		ops.Hash = func(s mem.Slots, at int) uint64 {
			e := s.([]Indirect)[at]
			if e.Ptr == nil {
				return 0
			}
			exact := resolveIndirect(base, e)
			return exact.HashBoxed(deref(e))
		}
	}
	if base.ops.Equal != nil {
		ops.Equal = func(a mem.Slots, ai int, b mem.Slots, bi int) bool {
			ea, eb := a.([]Indirect)[ai], b.([]Indirect)[bi]
			if ea.Ptr == nil || eb.Ptr == nil {
				return ea.Ptr == nil && eb.Ptr == nil
			}
			ta := resolveIndirect(base, ea)
			tb := resolveIndirect(base, eb)
			if !ta.Exact(tb) {
				return false
			}
			return ta.EqualBoxed(deref(ea), deref(eb))
		}
	}

	ops.Resolve = func(s mem.Slots, at int) *Type {
		return resolveIndirect(base, s.([]Indirect)[at])
	}

	ops.Box = func(s mem.Slots, at int) any { return s.([]Indirect)[at].Ptr }
	ops.SetBoxed = func(s mem.Slots, at int, v any) {
		if e, ok := v.(Indirect); ok {
			if e.Origin != nil {
				e.Origin.Keep()
			}
			s.([]Indirect)[at] = e
			return
		}
		s.([]Indirect)[at] = Indirect{Ptr: v}
	}
	ops.CloneBoxed = func(v any) any {
		if v == nil {
			return nil
		}
		rv := reflect.ValueOf(v)
		cloned := base.ops.CloneBoxed(rv.Elem().Interface())
		np := reflect.New(reflect.TypeOf(cloned))
		np.Elem().Set(reflect.ValueOf(cloned))
		return np.Interface()
	}

	// Wire form: sparse elements encode through the pointee descriptor;
	// a leading presence byte distinguishes nil.
	if base.ops.Encode != nil && base.ops.Decode != nil {
		ops.Encode = func(s mem.Slots, at, n int, dst []byte) ([]byte, error) {
			sl := s.([]Indirect)
			var err error
			for i := at; i < at+n; i++ {
				e := sl[i]
				if e.Ptr == nil {
					dst = append(dst, 0)
					continue
				}
				dst = append(dst, 1)
				dst, err = base.EncodeBoxed(dst, deref(e))
				if err != nil {
					return dst, err
				}
			}
			return dst, nil
		}
		ops.Decode = func(s mem.Slots, at, n int, src []byte) (int, error) {
			sl := s.([]Indirect)
			used := 0
			for i := at; i < at+n; i++ {
				if used >= len(src) {
					return used, &types.Error{Kind: types.ErrKindOverflow, Msg: "rtti: truncated sparse payload"}
				}
				present := src[used] != 0
				used++
				if !present {
					sl[i] = Indirect{}
					continue
				}
				v, n2, err := base.DecodeBoxed(src[used:])
				if err != nil {
					return used, err
				}
				np := reflect.New(reflect.TypeOf(v))
				np.Elem().Set(reflect.ValueOf(v))
				sl[i] = Indirect{Ptr: np.Interface()}
				used += n2
			}
			return used, nil
		}
	}

	return ops
}

// HashBoxed hashes a single boxed element value through the typed closure.
func (t *Type) HashBoxed(v any) uint64 {
	if t.ops.Hash == nil {
		return 0
	}
	s := t.ops.Make(1)
	t.ops.SetBoxed(s, 0, v)
	return t.ops.Hash(s, 0)
}

// EqualBoxed compares two boxed element values through the typed closure.
func (t *Type) EqualBoxed(a, b any) bool {
	if t.ops.Equal == nil {
		return false
	}
	sa := t.ops.Make(1)
	sb := t.ops.Make(1)
	t.ops.SetBoxed(sa, 0, a)
	t.ops.SetBoxed(sb, 0, b)
	return t.ops.Equal(sa, 0, sb, 0)
}

// EncodeBoxed appends the wire form of one boxed element value.
func (t *Type) EncodeBoxed(dst []byte, v any) ([]byte, error) {
	s := t.ops.Make(1)
	t.ops.SetBoxed(s, 0, v)
	return t.ops.Encode(s, 0, 1, dst)
}

// DecodeBoxed reads one element value from src.
func (t *Type) DecodeBoxed(src []byte) (any, int, error) {
	s := t.ops.Make(1)
	n, err := t.ops.Decode(s, 0, 1, src)
	if err != nil {
		return nil, n, err
	}
	return t.ops.Box(s, 0), n, nil
}
