package block

import "reflect"

// matcher is one prepared callable for ForEach dispatch.
type matcher struct {
	fn          reflect.Value
	in          reflect.Type
	returnsBool bool
}

func prepare(fns []any) []matcher {
	out := make([]matcher, 0, len(fns))
	for _, f := range fns {
		v := reflect.ValueOf(f)
		t := v.Type()
		if t.Kind() != reflect.Func || t.NumIn() != 1 {
			continue
		}
		m := matcher{fn: v, in: t.In(0)}
		if t.NumOut() == 1 && t.Out(0).Kind() == reflect.Bool {
			m.returnsBool = true
		}
		out = append(out, m)
	}
	return out
}

// call invokes the matcher; returns false to stop iteration.
func (m matcher) call(v any) bool {
	res := m.fn.Call([]reflect.Value{reflect.ValueOf(v)})
	if m.returnsBool {
		return res[0].Bool()
	}
	return true
}

// matches reports whether the matcher accepts a value of rt.
func (m matcher) matches(rt reflect.Type) bool {
	return rt != nil && rt.AssignableTo(m.in)
}

// ForEach visits each element, dispatching to the first callable whose
// parameter type matches the element. Callables are func(X) or
// func(X) bool; returning false stops the traversal. When the block is
// deep and no callable matches the child block itself, the iteration
// recurses into the child. Returns the number of invocations.
func (b *Block) ForEach(fns ...any) int {
	return b.forEach(prepare(fns), false, false, false)
}

// ForEachRev is ForEach in reverse element order.
func (b *Block) ForEachRev(fns ...any) int {
	return b.forEach(prepare(fns), true, false, false)
}

// ForEachDeep always recurses into deep children. With skip set,
// intermediate containers do not see the callables; only leaves do.
func (b *Block) ForEachDeep(skip bool, fns ...any) int {
	return b.forEach(prepare(fns), false, true, skip)
}

// ForEachDeepRev is ForEachDeep in reverse element order.
func (b *Block) ForEachDeepRev(skip bool, fns ...any) int {
	return b.forEach(prepare(fns), true, true, skip)
}

func (b *Block) forEach(ms []matcher, reverse, deep, skip bool) int {
	visits := 0
	b.iterate(ms, reverse, deep, skip, &visits)
	return visits
}

// iterate returns false when a callable stopped the traversal.
func (b *Block) iterate(ms []matcher, reverse, deep, skip bool, visits *int) bool {
	for n := 0; n < b.count; n++ {
		i := n
		if reverse {
			i = b.count - 1 - n
		}
		v := b.GetBoxed(i)
		if v == nil {
			continue
		}
		rt := reflect.TypeOf(v)
		matched := false
		isChild := false
		var child *Block
		if c, ok := b.childAt(i); ok {
			isChild = true
			child = c
		}
		if !(deep && skip && isChild) {
			for _, m := range ms {
				if m.matches(rt) {
					matched = true
					*visits++
					if !m.call(v) {
						return false
					}
					break
				}
			}
		}
		if isChild && (deep || !matched) {
			if !child.iterate(ms, reverse, deep, skip, visits) {
				return false
			}
		}
	}
	return true
}
