package segalloc

import (
	"os"
	"unsafe"
)

var (
	osPageSize = os.Getpagesize()
	osPageMask = osPageSize - 1
)

// region is a sbrk-style heap-extension primitive. Go has no access to
// a real sbrk, so it reserves one large anonymous mmap range up front
// (virtual address space only; no physical page is touched until
// written) and advances a break cursor inside it. Because the
// reservation is a single OS mapping that is never moved or remapped,
// every address handed out from it stays valid for the lifetime of
// the Allocator.
type region struct {
	mem  []byte
	used int
	base unsafe.Pointer
}

func newRegion(size int) (*region, error) {
	b, err := mmapReserve(size)
	if err != nil {
		return nil, err
	}
	return &region{mem: b, base: unsafe.Pointer(&b[0])}, nil
}

// low returns the current low address of the committed heap (the
// first byte of the reservation; it never changes once the region
// exists).
func (r *region) low() unsafe.Pointer { return r.base }

// high returns the current high address of the committed heap: the
// byte just past the last byte handed out by grow.
func (r *region) high() unsafe.Pointer { return unsafe.Add(r.base, r.used) }

// grow advances the break by n bytes and returns the address of the
// old break (the start of the newly available range), or
// ErrHeapExhausted if the reservation has no room left. It never
// mutates state on failure.
func (r *region) grow(n int) (unsafe.Pointer, error) {
	if n < 0 || r.used+n > len(r.mem) {
		return nil, ErrHeapExhausted
	}
	old := unsafe.Add(r.base, r.used)
	r.used += n
	return old, nil
}

func (r *region) close() error {
	if r.mem == nil {
		return nil
	}
	err := munmap(r.base, len(r.mem))
	r.mem = nil
	r.base = nil
	r.used = 0
	return err
}
