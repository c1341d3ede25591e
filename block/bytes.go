package block

import (
	"github.com/joshuapare/blockkit/internal/format"
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// ByteVec is a typed byte container with primitive deposit/extract
// helpers for building and reading raw payloads. It is a TVec[byte]
// underneath and shares the block layout like every other container.
type ByteVec struct {
	TVec[uint8]
}

// NewByteVec returns a byte container holding the given bytes.
func NewByteVec(data ...byte) *ByteVec {
	v := &ByteVec{}
	v.typ = rtti.U8
	v.state |= StateTyped | StateConstrained
	if len(data) > 0 {
		if err := v.DepositBytes(data); err != nil {
			panic(err)
		}
	}
	return v
}

// Bytes returns the live contents as a copy.
func (v *ByteVec) Bytes() []byte {
	out := make([]byte, v.count)
	if v.count > 0 {
		copy(out, v.data.([]uint8)[:v.count])
	}
	return out
}

// DepositBytes appends raw bytes.
func (v *ByteVec) DepositBytes(p []byte) error {
	if err := v.mutable(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	if v.count+len(p) > v.reserved {
		if err := v.allocateMore(v.count + len(p)); err != nil {
			return err
		}
	}
	copy(v.data.([]uint8)[v.count:], p)
	v.count += len(p)
	return nil
}

// DepositU32 appends a little-endian 32-bit value.
func (v *ByteVec) DepositU32(x uint32) error {
	var buf [4]byte
	format.PutU32(buf[:], 0, x)
	return v.DepositBytes(buf[:])
}

// DepositU64 appends a little-endian 64-bit value.
func (v *ByteVec) DepositU64(x uint64) error {
	var buf [8]byte
	format.PutU64(buf[:], 0, x)
	return v.DepositBytes(buf[:])
}

// DepositText appends a length-prefixed string.
func (v *ByteVec) DepositText(s string) error {
	if len(s) > format.MaxStrLen {
		return types.ErrOverflow
	}
	if err := v.DepositU32(uint32(len(s))); err != nil {
		return err
	}
	return v.DepositBytes([]byte(s))
}

// Extractor reads primitives back out of a byte container front to
// back. It borrows the contents; the container must outlive it.
type Extractor struct {
	data []byte
	off  int
}

// Extract returns a reader positioned at the front.
func (v *ByteVec) Extract() *Extractor {
	var data []byte
	if v.count > 0 {
		data = v.data.([]uint8)[:v.count]
	}
	return &Extractor{data: data}
}

// Remaining returns the unread byte count.
func (e *Extractor) Remaining() int { return len(e.data) - e.off }

// Bytes reads n raw bytes.
func (e *Extractor) Bytes(n int) ([]byte, error) {
	if e.Remaining() < n {
		return nil, types.ErrOverflow
	}
	out := e.data[e.off : e.off+n]
	e.off += n
	return out, nil
}

// U32 reads a little-endian 32-bit value.
func (e *Extractor) U32() (uint32, error) {
	b, err := e.Bytes(4)
	if err != nil {
		return 0, err
	}
	return format.ReadU32(b, 0), nil
}

// U64 reads a little-endian 64-bit value.
func (e *Extractor) U64() (uint64, error) {
	b, err := e.Bytes(8)
	if err != nil {
		return 0, err
	}
	return format.ReadU64(b, 0), nil
}

// Text reads a length-prefixed string.
func (e *Extractor) Text() (string, error) {
	n, err := e.U32()
	if err != nil {
		return "", err
	}
	b, err := e.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
