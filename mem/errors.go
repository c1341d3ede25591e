package mem

import "errors"

var (
	// ErrBadRequest indicates an allocation request without a slot factory
	// or with a negative count.
	ErrBadRequest = errors.New("mem: bad allocation request")

	// ErrExhausted indicates the allocator refused to grow further.
	ErrExhausted = errors.New("mem: allocator exhausted")

	// ErrNotOwned indicates an attempt to release an allocation through an
	// allocator that did not produce it.
	ErrNotOwned = errors.New("mem: allocation not owned by this allocator")
)
