package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct{ v int }

// TestPool_ChunkGrowth tests the geometric carve schedule.
func TestPool_ChunkGrowth(t *testing.T) {
	p := NewPool(func() any { return new(node) })

	// First Get carves 4 nodes.
	_ = p.Get()
	st := p.Stats()
	assert.Equal(t, 1, st.ChunksCarved)
	assert.Equal(t, 4, st.NodesCarved)

	// Drain the first chunk and force a second carve of 8.
	for range 4 {
		_ = p.Get()
	}
	st = p.Stats()
	assert.Equal(t, 2, st.ChunksCarved)
	assert.Equal(t, 12, st.NodesCarved, "4 + 8")
}

// TestPool_Recycle tests the free list.
func TestPool_Recycle(t *testing.T) {
	p := NewPool(func() any { return new(node) })
	a := p.Get().(*node)
	p.Put(a)
	b := p.Get().(*node)
	assert.Same(t, a, b, "returned node should be recycled")
	assert.Equal(t, 1, p.Stats().Recycled)
}

// TestPool_PointerStability tests that handed-out nodes keep identity.
func TestPool_PointerStability(t *testing.T) {
	p := NewPool(func() any { return new(node) })
	n1 := p.Get().(*node)
	n1.v = 42
	// Further carving must not disturb live nodes.
	for range 64 {
		_ = p.Get()
	}
	require.Equal(t, 42, n1.v)
}

// TestPool_CollectGarbage tests the sweep and schedule reset.
func TestPool_CollectGarbage(t *testing.T) {
	p := NewPool(func() any { return new(node) })
	p.Put(p.Get())
	p.CollectGarbage()
	_ = p.Get()
	st := p.Stats()
	assert.Equal(t, 2, st.ChunksCarved)
	assert.Equal(t, 8, st.NodesCarved, "schedule restarts at 4 after a sweep")
}
