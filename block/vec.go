package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// Vec is a block whose element type is determined at runtime. An
// unconstrained Vec absorbs values of any registered type, widening to a
// deep container when mixed types arrive; a constrained Vec pins its
// first type and rejects the rest.
type Vec struct {
	Block
}

// NewVec returns an erased vector, absorbing the given values in order.
func NewVec(vals ...any) (*Vec, error) {
	v := &Vec{}
	for _, x := range vals {
		if err := v.Push(x); err != nil {
			v.Reset()
			return nil, err
		}
	}
	return v, nil
}

// NewVecFrom constructs an erased vector from an intended source.
func NewVecFrom(in Intended) (*Vec, error) {
	v := &Vec{}
	if err := v.Block.init(in); err != nil {
		return nil, err
	}
	return v, nil
}

// NewVecOf returns an empty erased vector pinned to the given type.
func NewVecOf(td *rtti.Type) (*Vec, error) {
	if td == nil {
		return nil, types.ErrTypeMismatch
	}
	v := &Vec{}
	v.typ = td
	v.state |= StateTyped | StateConstrained
	if td.IsSparse() {
		v.state |= StateSparse
	}
	return v, nil
}

// Push appends a value, acquiring the type from the first insertion and
// widening to a deep container when an incompatible type arrives.
func (v *Vec) Push(x any) error {
	return v.insertBoxed(Back, IntentCopy, !v.IsConstrained(), []any{x})
}

// PushClone appends a deep copy of the value.
func (v *Vec) PushClone(x any) error {
	return v.insertBoxed(Back, IntentClone, !v.IsConstrained(), []any{x})
}

// Get returns the element at index i as an erased value.
func (v *Vec) Get(i int) any { return v.GetBoxed(i) }
