package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForEach_TypedDispatch tests overload selection.
func TestForEach_TypedDispatch(t *testing.T) {
	v := NewTVec[int32](1, 2, 3)
	var sum int32
	n := v.ForEach(func(x int32) { sum += x })
	assert.Equal(t, 3, n)
	assert.Equal(t, int32(6), sum)

	// A non-matching callable never fires.
	n = v.ForEach(func(s string) {})
	assert.Zero(t, n)
	v.Reset()
}

// TestForEach_FirstMatchWins tests multi-callable priority.
func TestForEach_FirstMatchWins(t *testing.T) {
	v := NewTVec[int32](1, 2)
	var first, second int
	n := v.ForEach(
		func(x int32) { first++ },
		func(x any) { second++ },
	)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, first)
	assert.Zero(t, second, "later callables only see what earlier ones did not match")
	v.Reset()
}

// TestForEach_EarlyStop tests the boolean form.
func TestForEach_EarlyStop(t *testing.T) {
	v := NewTVec[int32](1, 2, 3, 4)
	var seen []int32
	v.ForEach(func(x int32) bool {
		seen = append(seen, x)
		return x < 2
	})
	assert.Equal(t, []int32{1, 2}, seen)
	v.Reset()
}

// TestForEach_Reverse tests direction control.
func TestForEach_Reverse(t *testing.T) {
	v := NewTVec[int32](1, 2, 3)
	var seen []int32
	v.ForEachRev(func(x int32) { seen = append(seen, x) })
	assert.Equal(t, []int32{3, 2, 1}, seen)
	v.Reset()
}

// TestForEach_RecursesWhenUnmatched tests implicit deep descent.
func TestForEach_RecursesWhenUnmatched(t *testing.T) {
	a := NewTVec[int32](1, 2)
	b := NewTVec[int32](3)
	outer, err := NewVec(a.Block, b.Block)
	require.NoError(t, err)

	var sum int32
	n := outer.ForEach(func(x int32) { sum += x })
	assert.Equal(t, 3, n, "leaves visited through recursion")
	assert.Equal(t, int32(6), sum)
	outer.Reset()
	b.Reset()
	a.Reset()
}

// TestForEachDeep_SkipIntermediate tests the skip control.
func TestForEachDeep_SkipIntermediate(t *testing.T) {
	a := NewTVec[int32](1)
	outer, err := NewVec(a.Block)
	require.NoError(t, err)

	var blocks, leaves int
	outer.ForEachDeep(false,
		func(b Block) { blocks++ },
		func(x int32) { leaves++ },
	)
	assert.Equal(t, 1, blocks, "intermediate containers visible without skip")
	assert.Equal(t, 1, leaves)

	blocks, leaves = 0, 0
	outer.ForEachDeep(true,
		func(b Block) { blocks++ },
		func(x int32) { leaves++ },
	)
	assert.Zero(t, blocks, "skip hides intermediate containers")
	assert.Equal(t, 1, leaves)

	outer.Reset()
	a.Reset()
}
