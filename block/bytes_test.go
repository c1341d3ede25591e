package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockkit/pkg/types"
)

// TestByteVec_DepositExtract tests primitive round trips.
func TestByteVec_DepositExtract(t *testing.T) {
	v := NewByteVec()
	require.NoError(t, v.DepositU32(0xDEADBEEF))
	require.NoError(t, v.DepositText("payload"))
	require.NoError(t, v.DepositU64(42))

	e := v.Extract()
	u, err := e.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u)
	s, err := e.Text()
	require.NoError(t, err)
	assert.Equal(t, "payload", s)
	u64, err := e.U64()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), u64)
	assert.Zero(t, e.Remaining())

	_, err = e.U32()
	assert.ErrorIs(t, err, types.ErrOverflow, "reading past the end fails")
	v.Reset()
}

// TestByteVec_IsBlock tests that the byte container is a regular block.
func TestByteVec_IsBlock(t *testing.T) {
	v := NewByteVec(1, 2, 3)
	assert.Equal(t, 3, v.Count())
	assert.Equal(t, "u8", v.Type().Token())
	assert.Equal(t, []byte{1, 2, 3}, v.Bytes())

	// The generic block surface works on it too.
	require.NoError(t, v.Block.Push(uint8(4)))
	assert.Equal(t, []byte{1, 2, 3, 4}, v.Bytes())

	wire, err := v.AppendBinary(nil)
	require.NoError(t, err)
	var back Block
	_, err = back.DecodeBinary(wire)
	require.NoError(t, err)
	assert.True(t, v.Block.Equals(&back))
	back.Reset()
	v.Reset()
}
