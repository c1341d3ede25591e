package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

// Pair is a two-block record: the key/value unit. The blocks are
// independent; a populated pair holds exactly one element in each, an
// empty pair holds none in either.
type Pair struct {
	Key   Block
	Value Block
}

// NewPair copy-constructs a pair from boxed key and value.
func NewPair(key, value any) (*Pair, error) {
	var p Pair
	if err := p.Key.Insert(Back, key); err != nil {
		return nil, err
	}
	if err := p.Value.Insert(Back, value); err != nil {
		p.Key.Reset()
		return nil, err
	}
	return &p, nil
}

// NewPairFrom constructs a pair from another pair under an intent.
func NewPairFrom(src *Pair, intent Intent) (*Pair, error) {
	if src == nil {
		return nil, types.ErrMissingBound
	}
	var p Pair
	if err := transfer(&p.Key, &src.Key, intent, false); err != nil {
		return nil, err
	}
	if err := transfer(&p.Value, &src.Value, intent, false); err != nil {
		p.Key.Reset()
		return nil, err
	}
	return &p, nil
}

// IsEmpty reports whether both blocks are empty.
func (p *Pair) IsEmpty() bool { return p.Key.IsEmpty() && p.Value.IsEmpty() }

// Swap exchanges contents with another pair. Headers only; element
// regions are untouched.
func (p *Pair) Swap(o *Pair) { *p, *o = *o, *p }

// Reset releases both blocks.
func (p *Pair) Reset() {
	p.Key.Reset()
	p.Value.Reset()
}

// Equals compares both sides.
func (p *Pair) Equals(o *Pair) bool {
	return p.Key.Equals(&o.Key) && p.Value.Equals(&o.Value)
}

// pairType is the descriptor for pair elements, used by out-of-line
// table storage.
var pairType = rtti.RegisterAny[Pair]("Pair", rtti.Config[Pair]{
	Copy: func(src Pair) Pair {
		var d Pair
		_ = transfer(&d.Key, &src.Key, IntentRefer, false)
		_ = transfer(&d.Value, &src.Value, IntentRefer, false)
		return d
	},
	Clone: func(src Pair) Pair {
		var d Pair
		_ = transfer(&d.Key, &src.Key, IntentClone, false)
		_ = transfer(&d.Value, &src.Value, IntentClone, false)
		return d
	},
	Destroy: func(p *Pair) { p.Reset() },
	Hash: func(p Pair) uint64 {
		return hashCombine(p.Key.Hash(), p.Value.Hash())
	},
	Equal: func(a, b Pair) bool { return a.Equals(&b) },
	Encode: func(dst []byte, v Pair) ([]byte, error) {
		dst, err := v.Key.AppendBinary(dst)
		if err != nil {
			return dst, err
		}
		return v.Value.AppendBinary(dst)
	},
	Decode: func(src []byte) (Pair, int, error) {
		var p Pair
		n, err := p.Key.DecodeBinary(src)
		if err != nil {
			return p, n, err
		}
		n2, err := p.Value.DecodeBinary(src[n:])
		return p, n + n2, err
	},
})

// PairType returns the pair element descriptor.
func PairType() *rtti.Type { return pairType }

// TPair is a typed pair: the key/value unit with the element types known
// at compile time.
type TPair[K comparable, V any] struct {
	Pair
}

// NewTPair copy-constructs a typed pair.
func NewTPair[K comparable, V any](key K, value V) (*TPair[K, V], error) {
	p, err := NewPair(key, value)
	if err != nil {
		return nil, err
	}
	return &TPair[K, V]{Pair: *p}, nil
}

// KeyValue returns the typed contents of a populated pair.
func (p *TPair[K, V]) KeyValue() (K, V, bool) {
	var k K
	var v V
	if p.IsEmpty() {
		return k, v, false
	}
	k, _ = p.Key.GetBoxed(0).(K)
	v, _ = p.Value.GetBoxed(0).(V)
	return k, v, true
}
