package segalloc

import (
	"math"
	"testing"
	"unsafe"

	"github.com/cznic/mathutil"
)

// TestFuzz runs a randomized allocate/verify/free loop against the
// allocator: log-uniform sizes in [1, 4096], content verified
// byte-for-byte after a full allocation pass, then every block freed
// in shuffled order.
const fuzzQuota = 4 << 20 // total payload bytes requested per run

func TestFuzz(t *testing.T) {
	// Generous headroom over fuzzQuota: per-block header/footer/
	// alignment overhead and transient fragmentation both inflate heap
	// usage well past the raw payload total.
	a := NewAllocator(WithReservation(32 << 20))
	if a.Init() != 0 {
		t.Fatal("Init failed")
	}
	defer a.Close()

	rng, err := mathutil.NewFC32(0, math.MaxInt32, true)
	if err != nil {
		t.Fatal(err)
	}
	rng.Seed(42)
	pos := rng.Pos()

	type live struct {
		p    unsafe.Pointer
		size int
	}
	var items []live

	rem := fuzzQuota
	for rem > 0 {
		// Uniform in [1, 1<<e] with e uniform in [0, 12]: log-uniform
		// over [1, 4096].
		size := 1 + rng.Next()%(1<<uint(rng.Next()%13))
		rem -= size

		p := a.Malloc(size)
		if p == nil {
			t.Fatalf("Malloc(%d) failed with %d bytes still requested", size, rem+size)
		}
		b := unsafe.Slice((*byte)(p), size)
		for i := range b {
			b[i] = byte(rng.Next())
		}
		items = append(items, live{p: p, size: size})

		a.debugCheck()
	}

	rng.Seek(pos)
	for _, it := range items {
		wantSize := 1 + rng.Next()%(1<<uint(rng.Next()%13))
		if it.size != wantSize {
			t.Fatalf("size mismatch: got %d, want %d", it.size, wantSize)
		}
		b := unsafe.Slice((*byte)(it.p), it.size)
		for i, got := range b {
			if want := byte(rng.Next()); got != want {
				t.Fatalf("byte %d of block sized %d: got %#02x, want %#02x", i, it.size, got, want)
			}
		}
	}

	// Shuffle the free order so coalescing exercises every adjacency,
	// not just strict reverse-allocation order.
	for i := range items {
		j := rng.Next() % len(items)
		items[i], items[j] = items[j], items[i]
	}

	for _, it := range items {
		a.Free(it.p)
	}

	if a.allocs != 0 {
		t.Fatalf("allocs = %d, want 0 after freeing everything", a.allocs)
	}
	if a.bytes != 0 {
		t.Fatalf("bytes = %d, want 0 after freeing everything", a.bytes)
	}

	a.CheckHeap(false)
}
