package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockkit/pkg/types"
)

// TestInsert_AtOffset tests mid-sequence insertion with tail shifting.
func TestInsert_AtOffset(t *testing.T) {
	v := NewTVec[int32](1, 2, 3, 4, 5)
	require.NoError(t, v.Insert(3, 6))
	assert.Equal(t, []int32{1, 2, 3, 6, 4, 5}, v.Values())

	require.NoError(t, v.Remove(1, 2))
	assert.Equal(t, []int32{1, 6, 4, 5}, v.Values())
	assert.Equal(t, 4, v.Count())
	assert.GreaterOrEqual(t, v.Reserved(), 4)
	assert.Equal(t, 1, v.Uses())
	v.Reset()
}

// TestInsert_FrontBack tests the position forms.
func TestInsert_FrontBack(t *testing.T) {
	v := NewTVec[int32](2)
	require.NoError(t, v.PushFront(1))
	require.NoError(t, v.Push(3))
	assert.Equal(t, []int32{1, 2, 3}, v.Values())

	assert.ErrorIs(t, v.Insert(7, 9), types.ErrMissingBound)
	v.Reset()
}

// TestInsert_StraddlesReallocation tests element identity across growth.
func TestInsert_StraddlesReallocation(t *testing.T) {
	v := NewTVec[int32]()
	for i := int32(0); i < 8; i++ {
		require.NoError(t, v.Push(i))
	}
	require.Equal(t, 8, v.Reserved(), "first growth step reserves 8")

	// This insertion must reallocate and still land mid-sequence.
	require.NoError(t, v.Insert(4, 100))
	assert.Equal(t, []int32{0, 1, 2, 3, 100, 4, 5, 6, 7}, v.Values())
	assert.GreaterOrEqual(t, v.Reserved(), 9)
	v.Reset()
}

// TestInsert_MultipleValues tests bulk insertion.
func TestInsert_MultipleValues(t *testing.T) {
	v := NewTVec[int32](1, 5)
	require.NoError(t, v.Insert(1, 2, 3, 4))
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, v.Values())
	v.Reset()
}

// TestInsert_TypeMismatch tests the typed rejection path.
func TestInsert_TypeMismatch(t *testing.T) {
	v := NewTVec[int32](1)
	err := v.Block.Insert(Back, "text")
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
	assert.Equal(t, 1, v.Count(), "failed insertion is all-or-nothing")
	v.Reset()
}

// TestInsert_IntentClone tests per-element deep construction.
func TestInsert_IntentClone(t *testing.T) {
	var b Block
	payload := []byte{1, 2, 3}
	require.NoError(t, b.InsertWith(Back, IntentClone, payload))
	payload[0] = 9
	got := b.GetBoxed(0).([]byte)
	assert.Equal(t, byte(1), got[0], "clone is independent of the source")
	b.Reset()
}

// TestInsert_UnsupportedIntent tests element-level intent limits.
func TestInsert_UnsupportedIntent(t *testing.T) {
	var b Block
	err := b.InsertWith(Back, IntentRefer, int32(1))
	assert.ErrorIs(t, err, types.ErrIntentUnsupported)
}

// TestInsertFrom_CopiesElements tests block-to-block insertion.
func TestInsertFrom_CopiesElements(t *testing.T) {
	src := NewTVec[int32](3, 4)
	dst := NewTVec[int32](1, 2)

	require.NoError(t, dst.Block.InsertFrom(Back, Copy(&src.Block)))
	assert.Equal(t, []int32{1, 2, 3, 4}, dst.Values())
	assert.Equal(t, 2, src.Count(), "copy leaves the source intact")
	src.Reset()
	dst.Reset()
}

// TestInsertFrom_MoveDrainsSource tests the draining intents.
func TestInsertFrom_MoveDrainsSource(t *testing.T) {
	src := NewTVec[int32](3, 4)
	dst := NewTVec[int32](1)

	require.NoError(t, dst.Block.InsertFrom(Back, Move(&src.Block)))
	assert.Equal(t, []int32{1, 3, 4}, dst.Values())
	assert.Zero(t, src.Count())
	src.Reset()
	dst.Reset()
}

// TestInsert_SharedTakesAuthority tests copy-on-write insertion.
func TestInsert_SharedTakesAuthority(t *testing.T) {
	a := NewTVec[int32](1, 2)
	b, err := New(Refer(&a.Block))
	require.NoError(t, err)
	require.Equal(t, 2, a.Uses())

	require.NoError(t, b.Push(int32(3)))
	assert.Equal(t, 2, a.Count(), "source unaffected by the shared writer")
	assert.Equal(t, 3, b.Count())
	assert.Equal(t, 1, a.Uses(), "writer detached")
	assert.Equal(t, 1, b.Uses())
	b.Reset()
	a.Reset()
}

// TestInsertRemove_RoundTrip tests that insert-then-remove at the same
// offset restores the sequence and the refcount.
func TestInsertRemove_RoundTrip(t *testing.T) {
	v := NewTVec[int32](1, 2, 3)
	before := v.Values()
	uses := v.Uses()

	require.NoError(t, v.Insert(1, 99))
	require.NoError(t, v.Remove(1, 1))
	assert.Equal(t, before, v.Values())
	assert.Equal(t, uses, v.Uses())
	v.Reset()
}

// TestExtend tests default-constructed tails.
func TestExtend(t *testing.T) {
	v := NewTVec[int32](1)
	require.NoError(t, v.Extend(3))
	assert.Equal(t, []int32{1, 0, 0, 0}, v.Values())
	v.Reset()
}

// TestRemoveIndexDeep tests leaf removal across nesting.
func TestRemoveIndexDeep(t *testing.T) {
	va := NewTVec[int32](1, 2)
	vb := NewTVec[int32](3, 4)
	outer, err := NewVec(va.Block, vb.Block)
	require.NoError(t, err)
	require.True(t, outer.IsDeep())

	// Leaves in traversal order: 1, 2, 3, 4. Remove index 2 (the 3).
	require.NoError(t, outer.RemoveIndexDeep(2))
	child, ok := outer.GetBoxed(1).(Block)
	require.True(t, ok)
	assert.Equal(t, 1, child.Count())
	assert.Equal(t, int32(4), child.GetBoxed(0))

	assert.ErrorIs(t, outer.RemoveIndexDeep(9), types.ErrMissingBound)
	outer.Reset()
	vb.Reset()
	va.Reset()
}
