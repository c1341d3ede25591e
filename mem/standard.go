package mem

import (
	"fmt"
	"os"
	"sync"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugAlloc = false

// Runtime debug flag for allocation logging - controlled by BLOCKKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("BLOCKKIT_LOG_ALLOC") != ""

// Stats holds internal allocator statistics.
type Stats struct {
	AllocCalls     int   // Total Allocate() calls
	ReallocCalls   int   // Total Reallocate() calls
	FreeCalls      int   // Total Deallocate() calls
	BytesAllocated int64 // Total bytes handed out
	BytesFreed     int64 // Total bytes returned
	Live           int   // Allocations currently outstanding
}

// Standard is the process allocator. Regions are GC-managed slot slices;
// Deallocate drops the reference and lets the runtime reclaim it.
type Standard struct {
	mu      sync.Mutex
	atomic  bool
	managed bool
	index   map[uintptr]*Allocation // ident -> allocation, managed mode only
	stats   Stats

	// Test hook: called with the requested byte size before each
	// allocation (nil in production).
	onAllocate func(int)
}

// Option configures a Standard allocator.
type Option func(*Standard)

// WithAtomicRefs makes use counts atomic, for allocations shared across
// threads. Off by default; single-threaded refcounts stay plain.
func WithAtomicRefs() Option {
	return func(s *Standard) { s.atomic = true }
}

// WithManaged maintains an ownership index so Find can answer pointer
// ownership queries.
func WithManaged() Option {
	return func(s *Standard) {
		s.managed = true
		s.index = make(map[uintptr]*Allocation)
	}
}

// WithAllocateHook installs a test hook invoked before each allocation.
func WithAllocateHook(fn func(bytes int)) Option {
	return func(s *Standard) { s.onAllocate = fn }
}

// NewStandard returns a Standard allocator with the given options.
func NewStandard(opts ...Option) *Standard {
	s := &Standard{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// defaultAllocator is the process-wide allocator used by containers that
// were not given one explicitly. Initialized before any container and
// never torn down.
var defaultAllocator = NewStandard()

// Default returns the process-wide allocator.
func Default() *Standard { return defaultAllocator }

// Allocate satisfies a fresh request.
func (s *Standard) Allocate(req Request) (*Allocation, error) {
	if req.Make == nil || req.Count < 0 {
		return nil, ErrBadRequest
	}
	if s.onAllocate != nil {
		s.onAllocate(req.Bytes())
	}

	slots := req.Make(req.Count)
	a := &Allocation{
		slots:  slots,
		count:  req.Count,
		bytes:  req.Bytes(),
		uses:   1,
		atomic: s.atomic,
		owner:  s,
		ident:  slotsIdent(slots),
	}

	s.mu.Lock()
	s.stats.AllocCalls++
	s.stats.BytesAllocated += int64(a.bytes)
	s.stats.Live++
	if s.managed && a.ident != 0 {
		s.index[a.ident] = a
	}
	s.mu.Unlock()

	if debugAlloc || logAlloc {
		fmt.Fprintf(os.Stderr, "[mem] allocate %d elems (%d bytes)\n", req.Count, a.bytes)
	}
	return a, nil
}

// Reallocate satisfies a resize with a fresh region. The old allocation
// stays live; the caller migrates elements and deallocates it.
func (s *Standard) Reallocate(old *Allocation, req Request) (*Allocation, error) {
	if old == nil {
		return s.Allocate(req)
	}
	a, err := s.Allocate(req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.stats.ReallocCalls++
	s.stats.AllocCalls-- // counted above; a realloc is not a fresh alloc
	s.mu.Unlock()
	return a, nil
}

// Deallocate returns the region. The slot slice is dropped for the GC.
func (s *Standard) Deallocate(a *Allocation) {
	if a == nil {
		return
	}
	s.mu.Lock()
	s.stats.FreeCalls++
	s.stats.BytesFreed += int64(a.bytes)
	s.stats.Live--
	if s.managed && a.ident != 0 {
		delete(s.index, a.ident)
	}
	s.mu.Unlock()

	if debugAlloc || logAlloc {
		fmt.Fprintf(os.Stderr, "[mem] deallocate %d bytes\n", a.bytes)
	}
	a.slots = nil
	a.ident = 0
	a.count = 0
	a.bytes = 0
}

// Find returns the allocation owning the given slot storage. Returns nil
// unless the allocator was built WithManaged.
func (s *Standard) Find(slots Slots) *Allocation {
	if !s.managed {
		return nil
	}
	id := slotsIdent(slots)
	if id == 0 {
		return nil
	}
	s.mu.Lock()
	a := s.index[id]
	s.mu.Unlock()
	return a
}

// CollectGarbage is a no-op for the standard allocator; the runtime
// reclaims dropped regions.
func (s *Standard) CollectGarbage() {}

// Stats returns a snapshot of the allocator statistics.
func (s *Standard) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
