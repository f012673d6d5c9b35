// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package segalloc implements a dynamic memory allocator over a single
// contiguous, monotonically growable heap region.
//
// The allocator services the standard quadruple: Malloc, Free, Realloc
// and Calloc. Free space is tracked with inline boundary-tag blocks
// (header/footer words) and eight segregated, explicit doubly-linked
// free lists keyed by size class. Allocation is first-fit within and
// above a request's size class; freeing a block runs a four-case
// boundary-tag coalescer; growing the heap seeds one new free block at
// the old end of the heap and coalesces it with its predecessor.
//
// The heap itself is obtained from a single reserve-then-commit mmap
// region (see heap.go) that stands in for a classic sbrk: one
// reservation is made up front and a break cursor advances into it as
// the allocator asks for more space, so block addresses never move
// once handed out.
//
// Changelog
//
// Split from a page-slab allocator into a boundary-tag, segregated
// free-list allocator operating over one contiguous heap.
//
// Thread safety: none. Allocator is meant for a single-threaded
// client; concurrent calls are undefined behavior, matching the
// scope of the design this package implements.
package segalloc
