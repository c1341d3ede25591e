package block

// Intent selects how a value crosses an ownership boundary.
type Intent uint8

const (
	// IntentRefer shares ownership: the source allocation's use count is
	// bumped and both blocks see the same region.
	IntentRefer Intent = iota + 1

	// IntentMove transfers ownership; the source becomes empty-typed.
	IntentMove

	// IntentCopy produces an independent shallow copy: per-element copy
	// construction, captured pointers keep their pointees alive.
	IntentCopy

	// IntentClone produces an independent deep copy, recursing into deep
	// children.
	IntentClone

	// IntentDisown shares without participating in the refcount; the
	// result is static and must not outlive the source.
	IntentDisown

	// IntentAbandon transfers ownership without source cleanup: the
	// source is marked empty but its slots are not destroyed.
	IntentAbandon
)

// String names the intent for diagnostics.
func (i Intent) String() string {
	switch i {
	case IntentRefer:
		return "refer"
	case IntentMove:
		return "move"
	case IntentCopy:
		return "copy"
	case IntentClone:
		return "clone"
	case IntentDisown:
		return "disown"
	case IntentAbandon:
		return "abandon"
	}
	return "none"
}

// Intended wraps a source block together with a transfer intent. Pass one
// to a container constructor or assigner.
type Intended struct {
	intent Intent
	src    *Block
}

// Intent returns the wrapped transfer mode.
func (in Intended) Intent() Intent { return in.intent }

// Source returns the wrapped source block.
func (in Intended) Source() *Block { return in.src }

// Refer wraps src for shared-ownership transfer.
func Refer(src *Block) Intended { return Intended{IntentRefer, src} }

// Move wraps src for ownership transfer; src is left empty-typed.
func Move(src *Block) Intended { return Intended{IntentMove, src} }

// Copy wraps src for independent shallow copy.
func Copy(src *Block) Intended { return Intended{IntentCopy, src} }

// Clone wraps src for independent deep copy.
func Clone(src *Block) Intended { return Intended{IntentClone, src} }

// Disown wraps src for an untracked view; the result must not outlive src.
func Disown(src *Block) Intended { return Intended{IntentDisown, src} }

// Abandon wraps src for transfer without source cleanup.
func Abandon(src *Block) Intended { return Intended{IntentAbandon, src} }
