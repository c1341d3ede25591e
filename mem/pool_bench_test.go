package mem

import "testing"

// BenchmarkPool_GetPut measures the recycle fast path.
func BenchmarkPool_GetPut(b *testing.B) {
	p := NewPool(func() any { return new(node) })
	b.ReportAllocs()
	for b.Loop() {
		n := p.Get()
		p.Put(n)
	}
}

// BenchmarkStandard_Allocate measures fresh allocation throughput.
func BenchmarkStandard_Allocate(b *testing.B) {
	s := NewStandard()
	req := intRequest(64)
	b.ReportAllocs()
	for b.Loop() {
		a, err := s.Allocate(req)
		if err != nil {
			b.Fatal(err)
		}
		s.Deallocate(a)
	}
}
