package segalloc

import "unsafe"

// Block layout:
//
//	offset 0        : 4-byte header  (size | alloc-bit)
//	offset 4        : payload begin  (the "block pointer" bp)
//	...
//	offset size-4    : 4-byte footer (size | alloc-bit)
//
// bp always refers to the first payload byte. headerAddr(bp) == bp-4.
// footerAddr(bp, size) == bp+size-8 (the footer sits size-4 bytes from
// the block's own start, i.e. from bp-4).
const (
	headerWordSize = 4
	footerWordSize = 4

	// linkSize is the width of a free-list pointer stored in a free
	// block's payload. The design targets 64-bit pointer width; a port
	// to a narrower architecture would need to shrink this, and
	// minBlockSize with it.
	linkSize = 8

	// minBlockSize = header(4) + forward link(8) + backward link(8) + footer(4).
	minBlockSize = headerWordSize + linkSize + linkSize + footerWordSize

	allocBit  = uint32(1)
	alignment = 8
)

func headerAddr(bp unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(bp, -headerWordSize)
}

func footerAddr(bp unsafe.Pointer, size int) unsafe.Pointer {
	return unsafe.Add(bp, size-headerWordSize-footerWordSize)
}

func prevFooterAddr(bp unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(bp, -headerWordSize-footerWordSize)
}

func readWord(addr unsafe.Pointer) uint32  { return *(*uint32)(addr) }
func writeWord(addr unsafe.Pointer, w uint32) { *(*uint32)(addr) = w }

func packWord(size int, allocated bool) uint32 {
	w := uint32(size)
	if allocated {
		w |= allocBit
	}
	return w
}

func unpackSize(w uint32) int   { return int(w &^ 0x7) }
func unpackAlloc(w uint32) bool { return w&allocBit != 0 }

// blockSize reads the whole block size (header+payload+footer) from
// the block's header.
func blockSize(bp unsafe.Pointer) int {
	return unpackSize(readWord(headerAddr(bp)))
}

// blockAllocated reports the allocated bit from the block's header.
func blockAllocated(bp unsafe.Pointer) bool {
	return unpackAlloc(readWord(headerAddr(bp)))
}

// setTags writes matching header and footer words for bp, so the block
// can be read and navigated from either end.
func setTags(bp unsafe.Pointer, size int, allocated bool) {
	w := packWord(size, allocated)
	writeWord(headerAddr(bp), w)
	writeWord(footerAddr(bp, size), w)
}

// nextBlock returns the bp of the block immediately following bp in
// address order (its header sits right after bp's footer).
func nextBlock(bp unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(bp, blockSize(bp))
}

func prevBlockSize(bp unsafe.Pointer) int {
	return unpackSize(readWord(prevFooterAddr(bp)))
}

func prevBlockAllocated(bp unsafe.Pointer) bool {
	return unpackAlloc(readWord(prevFooterAddr(bp)))
}

// prevBlock returns the bp of the block immediately preceding bp in
// address order, read via the predecessor's footer.
func prevBlock(bp unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(bp, -prevBlockSize(bp))
}

func roundup8(n int) int { return (n + alignment - 1) &^ (alignment - 1) }

func copyBytes(dst, src unsafe.Pointer, n int) {
	if n <= 0 {
		return
	}
	d := unsafe.Slice((*byte)(dst), n)
	s := unsafe.Slice((*byte)(src), n)
	copy(d, s)
}

func zeroBytes(bp unsafe.Pointer, n int) {
	if n <= 0 {
		return
	}
	b := unsafe.Slice((*byte)(bp), n)
	for i := range b {
		b[i] = 0
	}
}
