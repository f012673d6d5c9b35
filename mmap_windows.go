// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.
// Further modifications: ported from raw syscall to golang.org/x/sys/windows
// and repurposed as a single growable-heap reservation.

package segalloc

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mmap on Windows is a two-step process: CreateFileMapping gets a
// handle backed by the system paging file, then MapViewOfFile maps a
// view of it into our address space.

// handleMap lets munmap recover the original handle from the mapped
// address so it can be closed alongside the view.
var handleMap = map[uintptr]windows.Handle{}

func mmapReserve(size int) ([]byte, error) {
	maxSizeHigh := uint32(int64(size) >> 32)
	maxSizeLow := uint32(int64(size) & 0xFFFFFFFF)

	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, maxSizeHigh, maxSizeLow, nil)
	if err != nil {
		return nil, os.NewSyscallError("CreateFileMapping", err)
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		return nil, os.NewSyscallError("MapViewOfFile", err)
	}

	if addr&uintptr(osPageMask) != 0 {
		panic("segalloc: mmap returned a misaligned region")
	}

	handleMap[addr] = h

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func munmap(addr unsafe.Pointer, size int) error {
	a := uintptr(addr)
	if err := windows.UnmapViewOfFile(a); err != nil {
		return err
	}

	h, ok := handleMap[a]
	if !ok {
		return os.NewSyscallError("UnmapViewOfFile", windows.ERROR_INVALID_ADDRESS)
	}
	delete(handleMap, a)

	return os.NewSyscallError("CloseHandle", windows.CloseHandle(h))
}
