package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncoding_RoundTrip tests put/read pairs at offsets.
func TestEncoding_RoundTrip(t *testing.T) {
	b := make([]byte, 32)

	PutU16(b, 0, 0xBEEF)
	assert.Equal(t, uint16(0xBEEF), ReadU16(b, 0))

	PutU32(b, 4, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), ReadU32(b, 4))

	PutU64(b, 8, 0x0123456789ABCDEF)
	assert.Equal(t, uint64(0x0123456789ABCDEF), ReadU64(b, 8))
}

// TestEncoding_LittleEndian tests the byte order explicitly.
func TestEncoding_LittleEndian(t *testing.T) {
	b := make([]byte, 4)
	PutU32(b, 0, 0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
}

// TestEncoding_Append tests the append variants against the put variants.
func TestEncoding_Append(t *testing.T) {
	var dst []byte
	dst = AppendU8(dst, 7)
	dst = AppendU16(dst, 0x1234)
	dst = AppendU32(dst, 0x89ABCDEF)
	dst = AppendU64(dst, 42)
	require.Len(t, dst, 15)
	assert.Equal(t, uint8(7), dst[0])
	assert.Equal(t, uint16(0x1234), ReadU16(dst, 1))
	assert.Equal(t, uint32(0x89ABCDEF), ReadU32(dst, 3))
	assert.Equal(t, uint64(42), ReadU64(dst, 7))
}

// TestAlignUp tests power-of-two alignment.
func TestAlignUp(t *testing.T) {
	assert.Equal(t, 8, AlignUp(1, 8))
	assert.Equal(t, 8, AlignUp(8, 8))
	assert.Equal(t, 16, AlignUp(9, 8))
	assert.Equal(t, 0, AlignUp(0, 8))
}

// TestNextPow2 tests the power-of-two ceiling.
func TestNextPow2(t *testing.T) {
	assert.Equal(t, 1, NextPow2(0))
	assert.Equal(t, 1, NextPow2(1))
	assert.Equal(t, 8, NextPow2(5))
	assert.Equal(t, 8, NextPow2(8))
	assert.Equal(t, 16, NextPow2(9))
}
