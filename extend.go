package segalloc

import "unsafe"

// extend grows the heap by at least nbytes. It rounds up to an even
// word count to preserve 8-byte alignment, asks the region for the
// bytes, seeds a new free block over them, installs a fresh epilogue
// one word past the new footer, and finally coalesces the new block
// with its predecessor if that predecessor was free. Returns nil,
// without mutating the heap, if the region has no more room to give.
func (a *Allocator) extend(nbytes int) unsafe.Pointer {
	if nbytes <= 0 {
		return nil
	}

	words := (nbytes + 3) / 4
	if words%2 != 0 {
		words++
	}
	size := words * 4
	if size < minBlockSize {
		size = minBlockSize
	}

	// The old epilogue word becomes the new block's header and the fresh
	// epilogue takes the last word of the grown range, so exactly size
	// bytes are needed.
	newBP, err := a.heap.grow(size)
	if err != nil {
		return nil
	}

	setTags(newBP, size, false)

	epilogueBP := a.heap.high()
	writeWord(headerAddr(epilogueBP), packWord(0, true))

	return a.coalesce(newBP)
}
