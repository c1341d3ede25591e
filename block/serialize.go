package block

import (
	"github.com/joshuapare/blockkit/internal/format"
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// persistMask keeps the state bits that survive serialization. Static
// and constant are properties of the in-memory holder, not the payload.
const persistMask = ^(StateStatic | StateConstant)

// AppendBinary appends the block's wire form: length-prefixed type
// token, state flags, element count, and the per-type element payload.
// Reserialization of a decoded POD-typed block yields identical bytes.
func (b *Block) AppendBinary(dst []byte) ([]byte, error) {
	token := ""
	if b.typ != nil {
		token = b.typ.Token()
	}
	if len(token) > format.MaxTokenLen {
		return dst, types.ErrOverflow
	}
	dst = format.AppendU16(dst, uint16(len(token)))
	dst = append(dst, token...)
	dst = format.AppendU32(dst, uint32(b.state&persistMask))
	dst = format.AppendU64(dst, uint64(b.count))
	if b.count == 0 {
		return dst, nil
	}
	enc := b.typ.Ops().Encode
	if enc == nil {
		return dst, &types.Error{
			Kind: types.ErrKindIntent,
			Msg:  "block: element type " + b.typ.Token() + " has no wire form",
		}
	}
	return enc(b.data, 0, b.count, dst)
}

// DecodeBinary replaces the block's contents from a wire form produced
// by AppendBinary, returning the bytes consumed.
func (b *Block) DecodeBinary(src []byte) (int, error) {
	if len(src) < format.HeaderMinSize {
		return 0, types.ErrOverflow
	}
	tl := int(format.ReadU16(src, 0))
	off := format.TokenLenSize
	if len(src) < off+tl+format.StateSize+format.CountSize {
		return 0, types.ErrOverflow
	}
	token := string(src[off : off+tl])
	off += tl
	state := State(format.ReadU32(src, off))
	off += format.StateSize
	count := int(format.ReadU64(src, off))
	off += format.CountSize

	if tl == 0 {
		if count != 0 {
			return off, types.ErrTypeMismatch
		}
		b.Reset()
		b.typ = nil
		b.state = state & persistMask
		return off, nil
	}

	td := rtti.ByToken(token)
	if td == nil {
		return off, &types.Error{
			Kind: types.ErrKindType,
			Msg:  "block: unknown type token " + token,
		}
	}
	dec := td.Ops().Decode
	if count > 0 && dec == nil {
		return off, &types.Error{
			Kind: types.ErrKindIntent,
			Msg:  "block: element type " + token + " has no wire form",
		}
	}

	var tmp Block
	tmp.typ = td
	tmp.state = (state & persistMask) | StateTyped
	if td.IsSparse() {
		tmp.state |= StateSparse
	}
	if count > 0 {
		if err := tmp.allocateFresh(count); err != nil {
			return off, err
		}
		used, err := dec(tmp.data, 0, count, src[off:])
		if err != nil {
			tmp.Reset()
			return off + used, err
		}
		tmp.count = count
		off += used
	}
	b.Reset()
	*b = tmp
	return off, nil
}
