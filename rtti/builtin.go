package rtti

import (
	"math"

	"github.com/joshuapare/blockkit/internal/format"
	"github.com/joshuapare/blockkit/pkg/types"
)

// Builtin descriptors, published on first registry use. Integer hashers
// are identity: the table's multiplier stage does the mixing, and keeping
// the descriptor stage trivial keeps probe behavior reproducible.
var (
	I8    *Type
	I16   *Type
	I32   *Type
	I64   *Type
	U8    *Type
	U16   *Type
	U32   *Type
	U64   *Type
	F32   *Type
	F64   *Type
	Bool  *Type
	Text  *Type
	Bytes *Type

	// Int and Uint describe the native word types, similarity-linked to
	// their fixed-width twins.
	Int  *Type
	Uint *Type
)

func decodeErr(need, have int) error {
	if have < need {
		return &types.Error{Kind: types.ErrKindOverflow, Msg: "rtti: truncated element payload"}
	}
	return nil
}

func intCfg[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | int | uint](width int) Config[T] {
	cfg := Config[T]{
		Flags: POD | Nullifiable,
		Hash:  func(v T) uint64 { return uint64(v) },
		Equal: func(a, b T) bool { return a == b },
		Less:  func(a, b T) bool { return a < b },
	}
	switch width {
	case 1:
		cfg.Encode = func(dst []byte, v T) ([]byte, error) { return format.AppendU8(dst, uint8(v)), nil }
		cfg.Decode = func(src []byte) (T, int, error) {
			if err := decodeErr(1, len(src)); err != nil {
				return 0, 0, err
			}
			return T(src[0]), 1, nil
		}
	case 2:
		cfg.Encode = func(dst []byte, v T) ([]byte, error) { return format.AppendU16(dst, uint16(v)), nil }
		cfg.Decode = func(src []byte) (T, int, error) {
			if err := decodeErr(2, len(src)); err != nil {
				return 0, 0, err
			}
			return T(format.ReadU16(src, 0)), 2, nil
		}
	case 4:
		cfg.Encode = func(dst []byte, v T) ([]byte, error) { return format.AppendU32(dst, uint32(v)), nil }
		cfg.Decode = func(src []byte) (T, int, error) {
			if err := decodeErr(4, len(src)); err != nil {
				return 0, 0, err
			}
			return T(format.ReadU32(src, 0)), 4, nil
		}
	default:
		cfg.Encode = func(dst []byte, v T) ([]byte, error) { return format.AppendU64(dst, uint64(v)), nil }
		cfg.Decode = func(src []byte) (T, int, error) {
			if err := decodeErr(8, len(src)); err != nil {
				return 0, 0, err
			}
			return T(format.ReadU64(src, 0)), 8, nil
		}
	}
	return cfg
}

func appendStr(dst []byte, b []byte) ([]byte, error) {
	if len(b) > format.MaxStrLen {
		return dst, &types.Error{Kind: types.ErrKindOverflow, Msg: "rtti: string exceeds representable length"}
	}
	dst = format.AppendU32(dst, uint32(len(b)))
	return append(dst, b...), nil
}

func readStr(src []byte) ([]byte, int, error) {
	if err := decodeErr(format.StrLenSize, len(src)); err != nil {
		return nil, 0, err
	}
	n := int(format.ReadU32(src, 0))
	if err := decodeErr(format.StrLenSize+n, len(src)); err != nil {
		return nil, 0, err
	}
	return src[format.StrLenSize : format.StrLenSize+n], format.StrLenSize + n, nil
}

func registerBuiltins() {
	I8 = Register[int8]("i8", intCfg[int8](1))
	I16 = Register[int16]("i16", intCfg[int16](2))
	I32 = Register[int32]("i32", intCfg[int32](4))
	I64 = Register[int64]("i64", intCfg[int64](8))
	U8 = Register[uint8]("u8", intCfg[uint8](1))
	U16 = Register[uint16]("u16", intCfg[uint16](2))
	U32 = Register[uint32]("u32", intCfg[uint32](4))
	U64 = Register[uint64]("u64", intCfg[uint64](8))

	intc := intCfg[int](8)
	intc.Aliases = []*Type{I64}
	Int = Register[int]("int", intc)

	uintc := intCfg[uint](8)
	uintc.Aliases = []*Type{U64}
	Uint = Register[uint]("uint", uintc)

	F32 = Register[float32]("f32", Config[float32]{
		Flags: POD | Nullifiable,
		Hash:  func(v float32) uint64 { return uint64(math.Float32bits(v)) },
		Less:  func(a, b float32) bool { return a < b },
		Encode: func(dst []byte, v float32) ([]byte, error) {
			return format.AppendU32(dst, math.Float32bits(v)), nil
		},
		Decode: func(src []byte) (float32, int, error) {
			if err := decodeErr(4, len(src)); err != nil {
				return 0, 0, err
			}
			return math.Float32frombits(format.ReadU32(src, 0)), 4, nil
		},
	})
	F64 = Register[float64]("f64", Config[float64]{
		Flags: POD | Nullifiable,
		Hash:  func(v float64) uint64 { return math.Float64bits(v) },
		Less:  func(a, b float64) bool { return a < b },
		Encode: func(dst []byte, v float64) ([]byte, error) {
			return format.AppendU64(dst, math.Float64bits(v)), nil
		},
		Decode: func(src []byte) (float64, int, error) {
			if err := decodeErr(8, len(src)); err != nil {
				return 0, 0, err
			}
			return math.Float64frombits(format.ReadU64(src, 0)), 8, nil
		},
	})

	Bool = Register[bool]("bool", Config[bool]{
		Flags: POD | Nullifiable,
		Hash: func(v bool) uint64 {
			if v {
				return 1
			}
			return 0
		},
		Less: func(a, b bool) bool { return !a && b },
		Encode: func(dst []byte, v bool) ([]byte, error) {
			if v {
				return format.AppendU8(dst, 1), nil
			}
			return format.AppendU8(dst, 0), nil
		},
		Decode: func(src []byte) (bool, int, error) {
			if err := decodeErr(1, len(src)); err != nil {
				return false, 0, err
			}
			return src[0] != 0, 1, nil
		},
	})

	Text = Register[string]("Text", Config[string]{
		Flags: Nullifiable,
		Hash:  func(v string) uint64 { return HashBytes([]byte(v)) },
		Less:  func(a, b string) bool { return a < b },
		Encode: func(dst []byte, v string) ([]byte, error) {
			return appendStr(dst, []byte(v))
		},
		Decode: func(src []byte) (string, int, error) {
			b, n, err := readStr(src)
			return string(b), n, err
		},
	})

	Bytes = RegisterAny[[]byte]("Bytes", Config[[]byte]{
		Flags: Nullifiable,
		Clone: func(v []byte) []byte {
			out := make([]byte, len(v))
			copy(out, v)
			return out
		},
		Hash: HashBytes,
		Equal: func(a, b []byte) bool {
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		Less: func(a, b []byte) bool { return string(a) < string(b) },
		Encode: func(dst []byte, v []byte) ([]byte, error) {
			return appendStr(dst, v)
		},
		Decode: func(src []byte) ([]byte, int, error) {
			b, n, err := readStr(src)
			if err != nil {
				return nil, 0, err
			}
			out := make([]byte, len(b))
			copy(out, b)
			return out, n, nil
		},
	})
}
