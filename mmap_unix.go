// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.
// Further modifications: ported from raw syscall to golang.org/x/sys/unix
// and repurposed as a single growable-heap reservation.

//go:build darwin || dragonfly || freebsd || linux || openbsd || solaris || netbsd

package segalloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapReserve reserves size bytes of anonymous, zero-filled virtual
// memory. The mapping is private (not shared), matching ordinary heap
// semantics; pages are not actually charged against physical memory
// until touched, so a generous reservation is cheap.
func mmapReserve(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}

	if uintptr(unsafe.Pointer(&b[0]))&uintptr(osPageMask) != 0 {
		panic("segalloc: mmap returned a misaligned region")
	}

	return b, nil
}

func munmap(addr unsafe.Pointer, size int) error {
	b := unsafe.Slice((*byte)(addr), size)
	return unix.Munmap(b)
}
