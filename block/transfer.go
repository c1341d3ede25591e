package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
)

// transfer is the single entry point every container constructor and
// assigner delegates to: copy the header under the intent's keep/reset
// rules, apply the intent's refcount effect, and zero the source where
// move semantics dictate.
//
// typedCtor marks construction through a typed container, the only path
// that inherits the Constrained bit.
func transfer(dst, src *Block, intent Intent, typedCtor bool) error {
	state := src.state & transferMask
	if typedCtor {
		state |= src.state & StateConstrained
	}

	switch intent {
	case IntentRefer:
		dst.data = src.data
		dst.count = src.count
		dst.reserved = src.reserved
		dst.typ = src.typ
		dst.alloc = src.alloc
		dst.state = state
		if src.alloc != nil {
			src.alloc.Keep()
		}
		return nil

	case IntentMove:
		dst.data = src.data
		dst.count = src.count
		dst.reserved = src.reserved
		dst.typ = src.typ
		dst.alloc = src.alloc
		dst.state = state
		src.data = nil
		src.alloc = nil
		src.count = 0
		src.reserved = 0
		src.state &= StateTyped | StateConstrained | StateSparse
		return nil

	case IntentAbandon:
		dst.data = src.data
		dst.count = src.count
		dst.reserved = src.reserved
		dst.typ = src.typ
		dst.alloc = src.alloc
		dst.state = state
		// The source is marked empty but its slots are not destroyed.
		src.data = nil
		src.alloc = nil
		src.count = 0
		src.reserved = 0
		return nil

	case IntentDisown:
		dst.data = src.data
		dst.count = src.count
		dst.reserved = src.reserved
		dst.typ = src.typ
		dst.alloc = nil
		dst.state = state | StateStatic
		return nil

	case IntentCopy, IntentClone:
		dst.typ = src.typ
		dst.state = state &^ (StateStatic | StateConstant)
		if src.count == 0 {
			return nil
		}
		ops := src.typ.Ops()
		if intent == IntentCopy && ops.Copy == nil {
			return types.ErrIntentUnsupported
		}
		if intent == IntentClone && ops.Clone == nil {
			return types.ErrIntentUnsupported
		}
		if err := dst.allocateFresh(src.count); err != nil {
			return err
		}
		if intent == IntentCopy {
			ops.Copy(dst.data, 0, src.data, 0, src.count)
		} else {
			ops.Clone(dst.data, 0, src.data, 0, src.count)
		}
		dst.count = src.count
		return nil
	}
	return types.ErrIntentUnsupported
}
