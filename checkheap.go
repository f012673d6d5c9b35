package segalloc

import (
	"fmt"
	"os"
	"unsafe"
)

// debugCheckHeap gates the internal self-check CheckHeap runs after
// every public entry point. CheckHeap itself is always callable;
// flipping this on is only meant for debugging builds.
const debugCheckHeap = false

func (a *Allocator) debugCheck() {
	if debugCheckHeap {
		a.CheckHeap(false)
	}
}

// CheckHeap walks the heap from prologue to epilogue and then walks
// every free list, reporting every invariant violation to standard
// output. It returns nothing; diagnostics are printed, not structured.
func (a *Allocator) CheckHeap(verbose bool) {
	if a.heap == nil {
		return
	}

	violations := 0
	report := func(format string, args ...interface{}) {
		violations++
		fmt.Fprintf(os.Stdout, "checkheap: "+format+"\n", args...)
	}

	bp := unsafe.Add(a.heap.low(), 2*headerWordSize)
	if blockSize(bp) != 8 || !blockAllocated(bp) {
		report("prologue at %p is malformed", bp)
	}

	var freeBlocks []unsafe.Pointer
	prevWasFree := false
	for {
		size := blockSize(bp)
		allocated := blockAllocated(bp)

		if verbose {
			fmt.Fprintf(os.Stdout, "checkheap: block %p size=%d alloc=%v\n", bp, size, allocated)
		}

		if uintptr(bp)%alignment != 0 {
			report("block %p is not %d-aligned", bp, alignment)
		}

		if size != 0 {
			hdr := readWord(headerAddr(bp))
			ftr := readWord(footerAddr(bp, size))
			if hdr != ftr {
				report("block %p header (%#x) != footer (%#x)", bp, hdr, ftr)
			}
		}

		if !allocated && prevWasFree {
			report("adjacent free blocks ending at %p", bp)
		}
		prevWasFree = !allocated

		if size == 0 {
			if !allocated {
				report("epilogue at %p is not marked allocated", bp)
			}
			break
		}
		if !allocated {
			freeBlocks = append(freeBlocks, bp)
		}
		bp = nextBlock(bp)
	}

	seen := map[unsafe.Pointer]int{}
	for c := 0; c < numClasses; c++ {
		for p := a.roots[c]; p != nil; p = getNext(p) {
			if blockAllocated(p) {
				report("allocated block %p found on free list %d", p, c)
			}
			if got := classify(blockSize(p)); got != c {
				report("block %p (size %d) lives in class %d, wants class %d", p, blockSize(p), c, got)
			}
			if prior, ok := seen[p]; ok {
				report("block %p appears on both class %d and class %d", p, prior, c)
			}
			seen[p] = c

			if n := getNext(p); n != nil && getPrev(n) != p {
				report("broken doubly-linked list around %p", p)
			}
		}
	}

	for _, p := range freeBlocks {
		if _, ok := seen[p]; !ok {
			report("free block %p is not linked into any free list", p)
		}
	}

	if verbose && violations == 0 {
		fmt.Fprintln(os.Stdout, "checkheap: OK")
	}
}
