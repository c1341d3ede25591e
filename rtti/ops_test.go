package rtti

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockkit/mem"
)

// TestOps_CopyMoveDestroy tests the slot lifecycle for a builtin.
func TestOps_CopyMoveDestroy(t *testing.T) {
	ensure() // builtins are published on first registry use
	ops := I32.Ops()
	src := ops.Make(4).([]int32)
	copy(src, []int32{1, 2, 3, 4})
	dst := ops.Make(4)

	ops.Copy(dst, 0, src, 0, 4)
	assert.Equal(t, []int32{1, 2, 3, 4}, dst.([]int32))

	ops.Move(dst, 0, src, 0, 2)
	assert.Equal(t, []int32{0, 0, 3, 4}, src, "move drains the source slots")

	ops.Destroy(dst, 0, 4)
	assert.Equal(t, []int32{0, 0, 0, 0}, dst.([]int32))
}

// TestOps_HashEqual tests the identity hashers and default equality.
func TestOps_HashEqual(t *testing.T) {
	s := I64.Ops().Make(2).([]int64)
	s[0], s[1] = 42, 42
	assert.Equal(t, uint64(42), I64.Ops().Hash(s, 0), "builtin integer hash is identity")
	assert.True(t, I64.Ops().Equal(s, 0, s, 1))

	str := Text.Ops().Make(2).([]string)
	str[0], str[1] = "abc", "abd"
	assert.NotEqual(t, Text.Ops().Hash(str, 0), Text.Ops().Hash(str, 1))
	assert.False(t, Text.Ops().Equal(str, 0, str, 1))
}

// TestOps_Boxed tests the erased bridge.
func TestOps_Boxed(t *testing.T) {
	s := I32.Ops().Make(1)
	I32.Ops().SetBoxed(s, 0, int32(9))
	assert.Equal(t, int32(9), I32.Ops().Box(s, 0))
	assert.Equal(t, uint64(9), I32.HashBoxed(int32(9)))
	assert.True(t, I32.EqualBoxed(int32(3), int32(3)))
	assert.False(t, I32.EqualBoxed(int32(3), int32(4)))
}

// TestOps_EncodeDecode tests wire round trips per builtin.
func TestOps_EncodeDecode(t *testing.T) {
	cases := []struct {
		td  *Type
		val any
	}{
		{I8, int8(-5)},
		{I16, int16(-300)},
		{I32, int32(123456)},
		{I64, int64(-1 << 40)},
		{U8, uint8(200)},
		{U32, uint32(0xDEADBEEF)},
		{U64, uint64(1) << 60},
		{F32, float32(3.5)},
		{F64, 2.25},
		{Bool, true},
		{Text, "hello"},
	}
	for _, tc := range cases {
		dst, err := tc.td.EncodeBoxed(nil, tc.val)
		require.NoError(t, err, "encode %s", tc.td.Token())
		got, n, err := tc.td.DecodeBoxed(dst)
		require.NoError(t, err, "decode %s", tc.td.Token())
		assert.Equal(t, len(dst), n)
		assert.Equal(t, tc.val, got, "round trip %s", tc.td.Token())
	}
}

// TestOps_DecodeTruncated tests payload bounds checking.
func TestOps_DecodeTruncated(t *testing.T) {
	_, _, err := I32.DecodeBoxed([]byte{1, 2})
	require.Error(t, err)
	_, _, err = Text.DecodeBoxed([]byte{5, 0, 0, 0, 'a'})
	require.Error(t, err, "declared length exceeds payload")
}

// TestOps_CustomClone tests per-element clone registration.
func TestOps_CustomClone(t *testing.T) {
	type wrap struct{ V []byte }
	td := RegisterAny[wrap]("test.wrap", Config[wrap]{
		Clone: func(w wrap) wrap {
			out := make([]byte, len(w.V))
			copy(out, w.V)
			return wrap{V: out}
		},
	})
	src := td.Ops().Make(1).([]wrap)
	src[0] = wrap{V: []byte{1, 2}}
	dst := td.Ops().Make(1)
	td.Ops().Clone(dst, 0, src, 0, 1)
	src[0].V[0] = 9
	assert.Equal(t, byte(1), dst.([]wrap)[0].V[0], "clone is independent")
}

// TestSparse_CopySharesAndKeeps tests refcount accounting through
// sparse copy.
func TestSparse_CopySharesAndKeeps(t *testing.T) {
	sp := PointerTo(I32)
	alloc, err := mem.Default().Allocate(mem.Request{
		Count: 1, Stride: 4,
		Make: func(n int) mem.Slots { return make([]int32, n) },
	})
	require.NoError(t, err)

	v := int32(7)
	src := sp.Ops().Make(2).([]Indirect)
	src[0] = Indirect{Ptr: &v, Origin: alloc}

	dst := sp.Ops().Make(2)
	sp.Ops().Copy(dst, 0, src, 0, 1)
	assert.Equal(t, 2, alloc.Uses(), "copy keeps the pointee's origin")
	assert.Same(t, src[0].Ptr, dst.([]Indirect)[0].Ptr, "copy shares the pointee")

	sp.Ops().Destroy(dst, 0, 1)
	assert.Equal(t, 1, alloc.Uses(), "destroy releases the origin")
}

// TestSparse_CloneIsDeep tests pointee duplication.
func TestSparse_CloneIsDeep(t *testing.T) {
	sp := PointerTo(I32)
	v := int32(7)
	src := sp.Ops().Make(1).([]Indirect)
	src[0] = Indirect{Ptr: &v}

	dst := sp.Ops().Make(1)
	sp.Ops().Clone(dst, 0, src, 0, 1)
	cloned := dst.([]Indirect)[0].Ptr.(*int32)
	require.NotSame(t, &v, cloned)
	assert.Equal(t, int32(7), *cloned)

	v = 8
	assert.Equal(t, int32(7), *cloned, "clone is independent of the source")
}

// TestSparse_Resolve tests exact-type resolution of pointees.
func TestSparse_Resolve(t *testing.T) {
	sp := PointerTo(I32)
	v := int32(1)
	s := sp.Ops().Make(1).([]Indirect)
	s[0] = Indirect{Ptr: &v}
	assert.Same(t, I32, sp.Ops().Resolve(s, 0))
}

// TestSparse_HashEqualThroughPointee tests that sparse slots hash and
// compare by pointee value.
func TestSparse_HashEqualThroughPointee(t *testing.T) {
	sp := PointerTo(I64)
	a, b := int64(42), int64(42)
	sa := sp.Ops().Make(2).([]Indirect)
	sa[0] = Indirect{Ptr: &a}
	sa[1] = Indirect{Ptr: &b}
	assert.Equal(t, uint64(42), sp.Ops().Hash(sa, 0))
	assert.True(t, sp.Ops().Equal(sa, 0, sa, 1), "distinct pointers, equal pointees")
}

// TestMix64 tests the finalizer's basic properties.
func TestMix64(t *testing.T) {
	assert.NotEqual(t, Mix64(1), Mix64(2))
	assert.Equal(t, Mix64(7), Mix64(7))
}

// TestHashBytes tests stability and dispersion.
func TestHashBytes(t *testing.T) {
	assert.Equal(t, HashBytes([]byte("abc")), HashBytes([]byte("abc")))
	assert.NotEqual(t, HashBytes([]byte("abc")), HashBytes([]byte("abd")))
	assert.NotEqual(t, HashBytes(nil), HashBytes([]byte{0}))
}
