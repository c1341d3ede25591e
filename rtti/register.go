package rtti

import (
	"reflect"

	"github.com/joshuapare/blockkit/mem"
	"golang.org/x/text/unicode/norm"
)

// Config customizes a registration. Zero fields fall back to defaults:
// shallow copy for Clone, zero value for Default, slot zeroing for
// Destroy. Hash and Equal default from comparability in Register; for
// RegisterAny they must be supplied or the type cannot key a table.
type Config[T any] struct {
	Flags   Flag
	Bases   []*Type
	Aliases []*Type

	Default func() T
	Copy    func(T) T
	Clone   func(T) T
	Destroy func(*T)
	Hash    func(T) uint64
	Equal   func(a, b T) bool
	Less    func(a, b T) bool
	Encode  func(dst []byte, v T) ([]byte, error)
	Decode  func(src []byte) (T, int, error)
}

// Register builds and publishes a descriptor for a comparable type.
// Hashing and equality default to the language definitions.
func Register[T comparable](token string, cfg Config[T]) *Type {
	if cfg.Equal == nil {
		cfg.Equal = func(a, b T) bool { return a == b }
	}
	if cfg.Hash == nil {
		cfg.Hash = hashComparable[T]
	}
	return RegisterAny[T](token, cfg)
}

// RegisterAny builds and publishes a descriptor for any type. Types
// without Hash/Equal cannot key tables; types without Encode/Decode
// cannot serialize.
func RegisterAny[T any](token string, cfg Config[T]) *Type {
	rt := reflect.TypeFor[T]()
	t := &Type{
		token:  norm.NFC.String(token),
		size:   int(rt.Size()),
		align:  rt.Align(),
		flags:  cfg.Flags | Defaultable,
		bases:  cfg.Bases,
		goType: rt,
		ops:    buildOps(cfg),
	}
	installed := install(t)
	if installed == t {
		for _, a := range cfg.Aliases {
			linkAliases(t, a)
		}
	}
	return installed
}

// buildOps monomorphizes the operation table for T.
func buildOps[T any](cfg Config[T]) Ops {
	var ops Ops

	ops.Make = func(n int) mem.Slots { return make([]T, n) }

	ops.Default = func(s mem.Slots, at, n int) {
		sl := s.([]T)
		if cfg.Default != nil {
			for i := at; i < at+n; i++ {
				sl[i] = cfg.Default()
			}
			return
		}
		var zero T
		for i := at; i < at+n; i++ {
			sl[i] = zero
		}
	}

	if cfg.Copy != nil {
		cp := cfg.Copy
		ops.Copy = func(dst mem.Slots, dat int, src mem.Slots, sat, n int) {
			d, s := dst.([]T), src.([]T)
			for i := range n {
				d[dat+i] = cp(s[sat+i])
			}
		}
	} else {
		ops.Copy = func(dst mem.Slots, dat int, src mem.Slots, sat, n int) {
			copy(dst.([]T)[dat:dat+n], src.([]T)[sat:sat+n])
		}
	}

	if cfg.Clone != nil {
		clone := cfg.Clone
		ops.Clone = func(dst mem.Slots, dat int, src mem.Slots, sat, n int) {
			d, s := dst.([]T), src.([]T)
			for i := range n {
				d[dat+i] = clone(s[sat+i])
			}
		}
		ops.CloneBoxed = func(v any) any { return clone(v.(T)) }
	} else {
		ops.Clone = ops.Copy
		ops.CloneBoxed = func(v any) any { return v.(T) }
	}

	ops.Move = func(dst mem.Slots, dat int, src mem.Slots, sat, n int) {
		d, s := dst.([]T), src.([]T)
		copy(d[dat:dat+n], s[sat:sat+n])
		var zero T
		for i := sat; i < sat+n; i++ {
			s[i] = zero
		}
	}

	if cfg.Destroy != nil {
		destroy := cfg.Destroy
		ops.Destroy = func(s mem.Slots, at, n int) {
			sl := s.([]T)
			var zero T
			for i := at; i < at+n; i++ {
				destroy(&sl[i])
				sl[i] = zero
			}
		}
	} else {
		ops.Destroy = func(s mem.Slots, at, n int) {
			sl := s.([]T)
			var zero T
			for i := at; i < at+n; i++ {
				sl[i] = zero
			}
		}
	}

	if cfg.Hash != nil {
		hash := cfg.Hash
		ops.Hash = func(s mem.Slots, at int) uint64 { return hash(s.([]T)[at]) }
	}
	if cfg.Equal != nil {
		eq := cfg.Equal
		ops.Equal = func(a mem.Slots, ai int, b mem.Slots, bi int) bool {
			return eq(a.([]T)[ai], b.([]T)[bi])
		}
	}
	if cfg.Less != nil {
		less := cfg.Less
		ops.Less = func(a mem.Slots, ai int, b mem.Slots, bi int) bool {
			return less(a.([]T)[ai], b.([]T)[bi])
		}
	}

	ops.Box = func(s mem.Slots, at int) any { return s.([]T)[at] }
	if cfg.Copy != nil {
		cp := cfg.Copy
		ops.SetBoxed = func(s mem.Slots, at int, v any) { s.([]T)[at] = cp(v.(T)) }
	} else {
		ops.SetBoxed = func(s mem.Slots, at int, v any) { s.([]T)[at] = v.(T) }
	}

	if cfg.Encode != nil {
		enc := cfg.Encode
		ops.Encode = func(s mem.Slots, at, n int, dst []byte) ([]byte, error) {
			sl := s.([]T)
			var err error
			for i := at; i < at+n; i++ {
				dst, err = enc(dst, sl[i])
				if err != nil {
					return dst, err
				}
			}
			return dst, nil
		}
	}
	if cfg.Decode != nil {
		dec := cfg.Decode
		ops.Decode = func(s mem.Slots, at, n int, src []byte) (int, error) {
			sl := s.([]T)
			used := 0
			for i := at; i < at+n; i++ {
				v, adv, err := dec(src[used:])
				if err != nil {
					return used, err
				}
				sl[i] = v
				used += adv
			}
			return used, nil
		}
	}

	return ops
}
