package segalloc

import "unsafe"

// place carves a free block bp (of size csize) for an asize-byte
// allocation. If the remainder would be at least minBlockSize, bp is
// split: the head becomes the allocated block and the tail is linked
// back in under its own class. Otherwise the whole block is handed to
// the caller. bp is always unlinked from its current class first.
func (a *Allocator) place(bp unsafe.Pointer, asize int) unsafe.Pointer {
	csize := blockSize(bp)
	a.unlink(bp)

	if csize-asize >= minBlockSize {
		setTags(bp, asize, true)
		rem := nextBlock(bp)
		setTags(rem, csize-asize, false)
		a.link(rem)
		return bp
	}

	setTags(bp, csize, true)
	return bp
}
