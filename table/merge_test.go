package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockkit/rtti"
)

// TestCore_Clone tests independent duplication.
func TestCore_Clone(t *testing.T) {
	c := New(Options{Key: rtti.I32, Value: rtti.Text})
	for i := int32(0); i < 20; i++ {
		_, err := c.Set(i, "v")
		require.NoError(t, err)
	}

	d, err := c.Clone()
	require.NoError(t, err)
	assert.Equal(t, c.Len(), d.Len())

	// Mutations do not cross.
	_, err = d.Set(int32(100), "new")
	require.NoError(t, err)
	ok, err := c.Has(int32(100))
	require.NoError(t, err)
	assert.False(t, ok)

	d.Reset()
	c.Reset()
}

// TestCore_CloneOrdered tests that a clone preserves iteration order.
func TestCore_CloneOrdered(t *testing.T) {
	c := New(Options{Key: rtti.Text, Value: rtti.I64, Ordered: true})
	keys := []string{"q", "a", "z", "m"}
	for i, k := range keys {
		_, err := c.Set(k, int64(i))
		require.NoError(t, err)
	}

	d, err := c.Clone()
	require.NoError(t, err)
	var got []string
	d.Each(func(k, _ any) bool {
		got = append(got, k.(string))
		return true
	})
	assert.Equal(t, keys, got)
	d.Reset()
	c.Reset()
}

// TestCore_Merge tests keep-existing union.
func TestCore_Merge(t *testing.T) {
	a := New(Options{Key: rtti.I32, Value: rtti.Text})
	_, err := a.Set(int32(1), "a-one")
	require.NoError(t, err)
	_, err = a.Set(int32(2), "a-two")
	require.NoError(t, err)

	b := New(Options{Key: rtti.I32, Value: rtti.Text})
	_, err = b.Set(int32(2), "b-two")
	require.NoError(t, err)
	_, err = b.Set(int32(3), "b-three")
	require.NoError(t, err)

	added, err := a.Merge(b)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 3, a.Len())

	v, ok, err := a.Get(int32(2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a-two", v, "existing keys keep their values")

	b.Reset()
	a.Reset()
}
