package segalloc

import "testing"

// These exercise the four boundary-tag merge cases directly, by
// controlling the order blocks are freed in rather than going through
// Malloc's first-fit search (which alloc_test.go already covers end to
// end).
func TestCoalesceFourCases(t *testing.T) {
	a := newTestAllocator(t)

	a1 := a.Malloc(100)
	b1 := a.Malloc(100)
	c1 := a.Malloc(100)
	require := func(cond bool, msg string) {
		if !cond {
			t.Fatal(msg)
		}
	}
	require(a1 != nil && b1 != nil && c1 != nil, "setup allocations failed")

	sizeA := blockSize(a1)
	sizeB := blockSize(b1)

	// Case 1: neither neighbour of a1 (the prologue and b1) is free.
	a.Free(a1)
	if blockSize(a1) != sizeA {
		t.Fatalf("case 1: size changed from %d to %d with no free neighbours", sizeA, blockSize(a1))
	}
	if !blockAllocated(b1) || !blockAllocated(c1) {
		t.Fatalf("case 1: b1 and c1 should remain allocated")
	}

	// Case 3: freeing b1 merges it into its free predecessor a1, while
	// its successor c1 is still allocated.
	a.Free(b1)
	if blockAllocated(a1) {
		t.Fatalf("case 3: a1 should be free after merge")
	}
	merged := blockSize(a1)
	if merged != sizeA+sizeB {
		t.Fatalf("case 3: merged size = %d, want %d", merged, sizeA+sizeB)
	}
	if nextBlock(a1) != c1 {
		t.Fatalf("case 3: merged block should be immediately followed by c1")
	}

	// Case 4: freeing c1 now merges it with both the a1/b1 block (prev)
	// and the trailing leftover free chunk from extend (next).
	cSize := blockSize(c1)
	tailSize := blockSize(nextBlock(c1))
	a.Free(c1)
	if got, want := blockSize(a1), merged+cSize+tailSize; got != want {
		t.Fatalf("case 4: merged size = %d, want %d", got, want)
	}
	if blockAllocated(a1) {
		t.Fatalf("case 4: a1 should be free after the final merge")
	}
}

func TestCoalesceNextFreeOnly(t *testing.T) {
	a := newTestAllocator(t)

	p := a.Malloc(100)
	tail := nextBlock(p)
	if blockAllocated(tail) {
		t.Fatal("expected a free leftover chunk after the first allocation")
	}
	tailSize := blockSize(tail)
	pSize := blockSize(p)

	a.Free(p)
	if blockAllocated(p) {
		t.Fatalf("p should be free")
	}
	if got, want := blockSize(p), pSize+tailSize; got != want {
		t.Fatalf("case 2 merge size = %d, want %d", got, want)
	}
}
