package table

import (
	"github.com/joshuapare/blockkit/block"
	"github.com/joshuapare/blockkit/mem"
	"github.com/joshuapare/blockkit/pkg/types"
	"github.com/joshuapare/blockkit/rtti"
)

const (
	// initialInfoNumBits is how many low hash bits overflow into the
	// info byte at a fresh layout.
	initialInfoNumBits = 5

	// initialInfoInc is the distance increment at a fresh layout.
	initialInfoInc = 1 << initialInfoNumBits

	// infoMask selects the hash bits that seed the info byte.
	infoMask = initialInfoInc - 1

	// minCapacity is the smallest slot count; capacity is always a
	// power of two.
	minCapacity = 8

	// maxCapacity bounds growth; beyond it insertion overflows.
	maxCapacity = 1 << 30

	// defaultLoadPct is the default maximum load factor, in percent.
	defaultLoadPct = 80

	// hashMultiplierInit seeds the multiplier stage of index derivation.
	hashMultiplierInit = 0xc4ceb9fe1a85ec53

	// hashMultiplierStep is added on every rehash. It is even, so the
	// multiplier stays odd and the mixing step stays bijective.
	hashMultiplierStep = 0xc4ceb9fe1a85ec54

	// onSlotLimit is the byte size up to which a pair stores directly in
	// the slot; larger pairs go out-of-line through the pool.
	onSlotLimit = 48
)

// StorageMode selects where pairs live.
type StorageMode int

const (
	// StorageAuto picks by the pair-size heuristic.
	StorageAuto StorageMode = iota
	// StorageOnSlot forces in-slot pairs.
	StorageOnSlot
	// StorageOutOfLine forces pooled pairs behind a pointer.
	StorageOutOfLine
)

// Options configures a Core.
type Options struct {
	Key     *rtti.Type // nil for erased tables: pinned at first insertion
	Value   *rtti.Type // nil for sets and for erased maps before pinning
	ForSet  bool       // set semantics: the value block stays typeless with zero stride
	Ordered bool
	LoadPct int // default 80; must stay in (10, 100)
	Storage StorageMode
}

// Core is the Robin-Hood table. Two parallel blocks of equal reserved
// capacity plus an info-byte region one sentinel byte longer.
type Core struct {
	keys   block.Block
	values block.Block
	info   []byte
	order  *orderList

	count         int
	mask          uint64
	maxAllowed    int
	multiplier    uint64
	infoInc       uint32
	infoHashShift uint32
	loadPct       int

	keyType   *rtti.Type
	valueType *rtti.Type
	isSet     bool
	flat      bool
	storage   StorageMode
	pool      *mem.Pool
}

// New returns an empty table. Slot arrays are acquired on first
// insertion.
func New(opts Options) *Core {
	load := opts.LoadPct
	if load <= 10 || load >= 100 {
		load = defaultLoadPct
	}
	t := &Core{
		multiplier: hashMultiplierInit,
		infoInc:    initialInfoInc,
		loadPct:    load,
		keyType:    opts.Key,
		valueType:  opts.Value,
		isSet:      opts.ForSet,
		flat:       true,
		storage:    opts.Storage,
	}
	if opts.Ordered {
		t.order = &orderList{head: -1, tail: -1}
	}
	t.chooseStorage(opts.Storage)
	return t
}

// chooseStorage applies the on-slot heuristic once both element types
// are known; erased tables re-run it at pinning time.
func (t *Core) chooseStorage(mode StorageMode) {
	switch mode {
	case StorageOnSlot:
		t.flat = true
		return
	case StorageOutOfLine:
		t.flat = false
	case StorageAuto:
		if t.keyType == nil {
			return
		}
		size := t.keyType.Size()
		if t.valueType != nil {
			size += t.valueType.Size()
		}
		t.flat = size <= onSlotLimit
	}
	if !t.flat && t.pool == nil {
		t.pool = mem.NewPool(func() any { return new(block.Pair) })
	}
}

// Len returns the number of entries.
func (t *Core) Len() int { return t.count }

// Capacity returns the current slot count.
func (t *Core) Capacity() int {
	if t.info == nil {
		return 0
	}
	return int(t.mask + 1)
}

// KeyType returns the pinned key descriptor, nil before the first
// insertion of an erased table.
func (t *Core) KeyType() *rtti.Type { return t.keyType }

// ValueType returns the pinned value descriptor, nil for sets.
func (t *Core) ValueType() *rtti.Type { return t.valueType }

// IsOrdered reports whether iteration follows insertion order.
func (t *Core) IsOrdered() bool { return t.order != nil }

// Token composes the table's type token from its element tokens.
func (t *Core) Token() string {
	if t.isSet {
		if t.keyType == nil {
			return ""
		}
		return t.keyType.Token()
	}
	return rtti.MapToken(t.keyType, t.valueType)
}

// Stats is a snapshot of the table internals, for instrumentation and
// invariant checks.
type Stats struct {
	Count      int
	Capacity   int
	MaxAllowed int
	InfoInc    uint32
	Multiplier uint64
	OnSlot     bool
	Ordered    bool
}

// Stats returns a snapshot of the table internals.
func (t *Core) Stats() Stats {
	return Stats{
		Count:      t.count,
		Capacity:   t.Capacity(),
		MaxAllowed: t.maxAllowed,
		InfoInc:    t.infoInc,
		Multiplier: t.multiplier,
		OnSlot:     t.flat,
		Ordered:    t.order != nil,
	}
}

// calcMaxAllowed returns the entry budget for a capacity.
func (t *Core) calcMaxAllowed(capacity int) int {
	return capacity * t.loadPct / 100
}

// checkKey validates and, for erased tables, pins the key type.
func (t *Core) checkKey(key any, pin bool) error {
	kd := rtti.OfValue(key)
	if kd == nil {
		return types.ErrTypeMismatch
	}
	if t.keyType == nil {
		if !pin {
			return types.ErrTypeMismatch
		}
		if !kd.CanHash() || !kd.CanEqual() {
			return types.ErrTypeMismatch
		}
		t.keyType = kd
		t.chooseStorage(t.storage)
		return nil
	}
	if !kd.CastsTo(t.keyType) {
		return types.ErrTypeMismatch
	}
	return nil
}

// checkValue validates and, for erased maps, pins the value type.
func (t *Core) checkValue(value any, pin bool) error {
	if t.isSet {
		return nil
	}
	vd := rtti.OfValue(value)
	if vd == nil {
		return types.ErrTypeMismatch
	}
	if t.valueType == nil {
		if !pin {
			return types.ErrTypeMismatch
		}
		t.valueType = vd
		t.chooseStorage(t.storage)
		return nil
	}
	if !vd.CastsTo(t.valueType) {
		return types.ErrTypeMismatch
	}
	return nil
}

// initSlots lays out fresh slot arrays at the given capacity.
func (t *Core) initSlots(capacity int) error {
	if t.flat {
		t.keys = *block.NewTyped(t.keyType)
		if err := t.keys.ReserveSlots(capacity); err != nil {
			return err
		}
		if !t.isSet {
			t.values = *block.NewTyped(t.valueType)
			if err := t.values.ReserveSlots(capacity); err != nil {
				return err
			}
		} else {
			t.values = block.Block{}
		}
	} else {
		t.keys = *block.NewTyped(rtti.PointerTo(block.PairType()))
		if err := t.keys.ReserveSlots(capacity); err != nil {
			return err
		}
		t.values = block.Block{}
	}
	t.info = make([]byte, capacity+1)
	t.info[capacity] = 1
	t.mask = uint64(capacity - 1)
	t.maxAllowed = t.calcMaxAllowed(capacity)
	t.infoInc = initialInfoInc
	t.infoHashShift = 0
	t.count = 0
	if t.order != nil {
		t.order.init(capacity)
	}
	return nil
}

// Reset releases the slot arrays and entry pool; the table returns to
// its freshly constructed state with types still pinned.
func (t *Core) Reset() {
	if t.info == nil {
		return
	}
	for i := 0; i < t.Capacity(); i++ {
		if t.info[i] != 0 {
			t.destroySlot(i)
		}
	}
	t.keys.Reset()
	t.values.Reset()
	t.info = nil
	t.mask = 0
	t.count = 0
	t.maxAllowed = 0
	t.infoInc = initialInfoInc
	t.infoHashShift = 0
	t.multiplier = hashMultiplierInit
	if t.order != nil {
		t.order = &orderList{head: -1, tail: -1}
	}
	if t.pool != nil {
		t.pool.CollectGarbage()
	}
}
