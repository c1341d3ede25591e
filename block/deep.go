package block

import "github.com/joshuapare/blockkit/rtti"

// manyType is the descriptor of a block-of-blocks element: the deep
// container type. Shallow copy of a child block shares its region and
// keeps the allocation alive; clone recurses.
var manyType = rtti.RegisterAny[Block]("Many", rtti.Config[Block]{
	Flags: rtti.Deep,
	Copy: func(src Block) Block {
		var d Block
		_ = transfer(&d, &src, IntentRefer, false)
		return d
	},
	Clone: func(src Block) Block {
		var d Block
		_ = transfer(&d, &src, IntentClone, false)
		return d
	},
	Destroy: func(p *Block) { p.Reset() },
	Hash:    func(b Block) uint64 { return b.Hash() },
	Equal:   func(a, b Block) bool { return a.Equals(&b) },
	Encode: func(dst []byte, v Block) ([]byte, error) {
		return v.AppendBinary(dst)
	},
	Decode: func(src []byte) (Block, int, error) {
		var b Block
		n, err := b.DecodeBinary(src)
		return b, n, err
	},
})

// ManyType returns the deep element descriptor.
func ManyType() *rtti.Type { return manyType }
