package segalloc

import "unsafe"

// defaultAllocator backs the package-level functions below, giving
// callers a single global allocator without requiring them to
// construct an *Allocator themselves. Using an *Allocator directly
// remains available for callers who want independent heaps (handy in
// tests).
var defaultAllocator = NewAllocator()

// Init prepares the package-default allocator's heap. See
// (*Allocator).Init.
func Init() int { return defaultAllocator.Init() }

// Malloc allocates size bytes from the package-default allocator. See
// (*Allocator).Malloc.
func Malloc(size int) unsafe.Pointer { return defaultAllocator.Malloc(size) }

// Free releases p back to the package-default allocator. See
// (*Allocator).Free.
func Free(p unsafe.Pointer) { defaultAllocator.Free(p) }

// Realloc resizes p using the package-default allocator. See
// (*Allocator).Realloc.
func Realloc(p unsafe.Pointer, size int) unsafe.Pointer {
	return defaultAllocator.Realloc(p, size)
}

// Calloc allocates and zeroes nmemb*size bytes from the
// package-default allocator. See (*Allocator).Calloc.
func Calloc(nmemb, size int) unsafe.Pointer { return defaultAllocator.Calloc(nmemb, size) }

// CheckHeap walks the package-default allocator's heap. See
// (*Allocator).CheckHeap.
func CheckHeap(verbose bool) { defaultAllocator.CheckHeap(verbose) }
