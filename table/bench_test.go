package table

import (
	"testing"

	"github.com/joshuapare/blockkit/rtti"
)

// BenchmarkCore_Insert measures typed insertion with growth.
func BenchmarkCore_Insert(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		c := New(Options{Key: rtti.I64, Value: rtti.I64})
		for i := int64(0); i < 1024; i++ {
			if _, err := c.Set(i, i); err != nil {
				b.Fatal(err)
			}
		}
		c.Reset()
	}
}

// BenchmarkCore_Lookup measures hit lookups at steady state.
func BenchmarkCore_Lookup(b *testing.B) {
	c := New(Options{Key: rtti.I64, Value: rtti.I64})
	for i := int64(0); i < 1024; i++ {
		if _, err := c.Set(i, i); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	var k int64
	for b.Loop() {
		if _, ok, _ := c.Get(k & 1023); !ok {
			b.Fatal("missing key")
		}
		k++
	}
	c.Reset()
}

// BenchmarkCore_OutOfLine measures the pooled storage path.
func BenchmarkCore_OutOfLine(b *testing.B) {
	c := New(Options{Key: rtti.I64, Value: rtti.I64, Storage: StorageOutOfLine})
	for i := int64(0); i < 1024; i++ {
		if _, err := c.Set(i, i); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	var k int64
	for b.Loop() {
		if _, ok, _ := c.Get(k & 1023); !ok {
			b.Fatal("missing key")
		}
		k++
	}
	c.Reset()
}
