package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// TestBlock_DefaultState tests the unallocated-untyped state.
func TestBlock_DefaultState(t *testing.T) {
	var b Block
	assert.Nil(t, b.Type())
	assert.Zero(t, b.Count())
	assert.Zero(t, b.Reserved())
	assert.Nil(t, b.Allocation())
	assert.Equal(t, State(0), b.State())
	assert.True(t, b.IsEmpty())
	assert.False(t, b.IsTyped())
}

// TestBlock_TypeAcquisition tests untyped -> typed via first insertion.
func TestBlock_TypeAcquisition(t *testing.T) {
	var b Block
	require.NoError(t, b.Push(int32(1)))
	assert.Same(t, rtti.I32, b.Type())
	assert.Equal(t, 1, b.Count())
	assert.GreaterOrEqual(t, b.Reserved(), b.Count())
	assert.Equal(t, 1, b.Uses())
	b.Reset()
}

// TestBlock_SetType tests the typing rules.
func TestBlock_SetType(t *testing.T) {
	var b Block
	require.NoError(t, b.SetType(rtti.I32))
	assert.True(t, b.IsTyped())

	// Similar type is accepted quietly.
	require.NoError(t, b.SetType(rtti.I32))

	// An empty unconstrained block may mutate to an unrelated type.
	require.NoError(t, b.SetType(rtti.Text))
	assert.Same(t, rtti.Text, b.Type())

	// A constrained block may not.
	b.Constrain()
	err := b.SetType(rtti.I32)
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
}

// TestBlock_SetTypeSparseAlias tests dense/sparse similarity in typing.
func TestBlock_SetTypeSparseAlias(t *testing.T) {
	var b Block
	require.NoError(t, b.SetType(rtti.PointerTo(rtti.I32)))
	assert.True(t, b.IsSparse())
	require.NoError(t, b.SetType(rtti.I32), "dense of the same base is similar")
}

// TestBlock_ConstantRejectsMutation tests the read-only state.
func TestBlock_ConstantRejectsMutation(t *testing.T) {
	var b Block
	require.NoError(t, b.Push(int32(1)))
	b.MakeConstant()

	assert.ErrorIs(t, b.Push(int32(2)), types.ErrAccess)
	assert.ErrorIs(t, b.Remove(0, 1), types.ErrAccess)
	assert.ErrorIs(t, b.Clear(), types.ErrAccess)
	assert.Equal(t, 1, b.Count(), "failed mutation leaves the block unchanged")
}

// TestBlock_Crop tests borrowed windows.
func TestBlock_Crop(t *testing.T) {
	v := NewTVec[int32](1, 2, 3, 4, 5)
	w, err := v.Crop(1, 3)
	require.NoError(t, err)
	assert.True(t, w.IsStatic())
	assert.Nil(t, w.Allocation())
	assert.Equal(t, 3, w.Count())
	assert.Equal(t, int32(2), w.GetBoxed(0))
	assert.Equal(t, int32(4), w.GetBoxed(2))

	// Static windows reject structural mutation.
	assert.ErrorIs(t, w.Push(int32(9)), types.ErrAccess)

	_, err = v.Crop(4, 3)
	assert.ErrorIs(t, err, types.ErrMissingBound)
	v.Reset()
}

// TestBlock_TakeAuthority tests static -> owned conversion.
func TestBlock_TakeAuthority(t *testing.T) {
	v := NewTVec[int32](1, 2, 3)
	w, err := v.Crop(0, 3)
	require.NoError(t, err)

	require.NoError(t, w.TakeAuthority())
	assert.False(t, w.IsStatic())
	assert.NotNil(t, w.Allocation())
	assert.Equal(t, 1, w.Uses())
	require.NoError(t, w.Push(int32(4)), "owned window accepts mutation")
	assert.Equal(t, 3, v.Count(), "source unaffected")
	w.Reset()
	v.Reset()
}

// TestBlock_ClearKeepsAllocation tests clear vs reset.
func TestBlock_ClearKeepsAllocation(t *testing.T) {
	v := NewTVec[int32](1, 2, 3)
	reserved := v.Reserved()
	require.NoError(t, v.Clear())
	assert.Zero(t, v.Count())
	assert.Equal(t, reserved, v.Reserved(), "clear keeps the allocation")
	assert.NotNil(t, v.Allocation())

	v.Reset()
	assert.Zero(t, v.Reserved())
	assert.Nil(t, v.Allocation())
	assert.True(t, v.IsTyped(), "reset keeps the type")
}

// TestBlock_Idempotence tests repeated clear/reset.
func TestBlock_Idempotence(t *testing.T) {
	v := NewTVec[int32](1)
	v.Reset()
	v.Reset()
	assert.Zero(t, v.Count())

	require.NoError(t, v.Push(1))
	require.NoError(t, v.Clear())
	require.NoError(t, v.Clear())
	assert.Zero(t, v.Count())
	v.Reset()
}

// TestBlock_Invariants tests the header invariants across a lifecycle.
func TestBlock_Invariants(t *testing.T) {
	check := func(b *Block) {
		t.Helper()
		assert.GreaterOrEqual(t, b.Reserved(), b.Count())
		if b.Type() == nil {
			assert.Zero(t, b.Count())
		}
		if b.Allocation() == nil && !b.IsStatic() {
			assert.Zero(t, b.Reserved())
		}
		if b.IsStatic() {
			assert.Nil(t, b.Allocation())
		}
	}

	var b Block
	check(&b)
	require.NoError(t, b.SetType(rtti.I64))
	check(&b)
	require.NoError(t, b.Push(int64(1)))
	check(&b)
	require.NoError(t, b.Extend(10))
	check(&b)
	require.NoError(t, b.Clear())
	check(&b)
	b.Reset()
	check(&b)
}

// TestBlock_Trim tests shrinking with trailing destruction.
func TestBlock_Trim(t *testing.T) {
	v := NewTVec[int32](1, 2, 3, 4, 5)
	require.NoError(t, v.Trim(2))
	assert.Equal(t, []int32{1, 2}, v.Values())
	assert.Equal(t, 2, v.Reserved())

	require.NoError(t, v.Trim(0))
	assert.Zero(t, v.Count())
	assert.Zero(t, v.Reserved())
	assert.Nil(t, v.Allocation())
	v.Reset()
}

// TestBlock_Null tests default-construction over live elements.
func TestBlock_Null(t *testing.T) {
	v := NewTVec[int32](7, 8, 9)
	require.NoError(t, v.Null())
	assert.Equal(t, []int32{0, 0, 0}, v.Values())
	v.Reset()
}

// TestBlock_SetBoxed tests in-place overwrite with type checking.
func TestBlock_SetBoxed(t *testing.T) {
	v := NewTVec[int32](1, 2)
	require.NoError(t, v.SetBoxed(1, int32(9)))
	assert.Equal(t, int32(9), v.Get(1))

	assert.ErrorIs(t, v.SetBoxed(0, "nope"), types.ErrTypeMismatch)
	assert.ErrorIs(t, v.SetBoxed(5, int32(1)), types.ErrMissingBound)
	v.Reset()
}
