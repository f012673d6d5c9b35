package segalloc

import "unsafe"

// findFit performs a first-fit search across the segregated free
// lists, starting at asize's own class and scanning upward through the
// remaining classes. Returns nil if no class yields a block big enough.
func (a *Allocator) findFit(asize int) unsafe.Pointer {
	for c := classify(asize); c < numClasses; c++ {
		for bp := a.roots[c]; bp != nil; bp = getNext(bp) {
			if blockSize(bp) >= asize {
				return bp
			}
		}
	}
	return nil
}
