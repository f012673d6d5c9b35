// Command segalloc-fuzz drives the allocator through a randomized
// allocate/reallocate/free loop outside of `go test`, for longer soak
// runs. A run is not exactly reproducible from its -seed: which live
// block a reallocate or free step picks follows Go's randomized map
// iteration order.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"
	"unsafe"

	"github.com/cznic/mathutil"
	"github.com/segalloc/segalloc"
)

func uintptrOf(p unsafe.Pointer) uintptr { return uintptr(p) }

// pointerFrom reverses uintptrOf. Safe here because segalloc hands out
// addresses from a single mmap reservation it owns directly, not
// Go-GC-tracked memory, so the address never moves or gets reclaimed
// out from under this round trip.
func pointerFrom(addr uintptr) unsafe.Pointer { return unsafe.Pointer(addr) }

// pickOne returns an arbitrary live (address, size) pair, picked by
// walking the map in Go's randomized iteration order for seed-offset
// variety rather than tracking an ordered index.
func pickOne(live map[uintptr]int, rng *mathutil.FC32) (uintptr, int) {
	n := rng.Next() % len(live)
	i := 0
	for addr, size := range live {
		if i == n {
			return addr, size
		}
		i++
	}
	return 0, 0
}

func main() {
	var (
		duration    time.Duration
		seed        int64
		maxSize     int
		reservation int
		verbose     bool
	)

	flag.DurationVar(&duration, "duration", 5*time.Second, "how long to run")
	flag.Int64Var(&seed, "seed", 0, "PRNG seed (0 picks the current time)")
	flag.IntVar(&maxSize, "max", 4096, "maximum payload size requested")
	flag.IntVar(&reservation, "reservation", 64<<20, "heap reservation, in bytes")
	flag.BoolVar(&verbose, "v", false, "print a block-by-block CheckHeap report at the end")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fmt.Printf("segalloc-fuzz: seed=%d duration=%s max=%d reservation=%d\n", seed, duration, maxSize, reservation)

	a := segalloc.NewAllocator(segalloc.WithReservation(reservation))
	if a.Init() != 0 {
		fmt.Fprintln(os.Stderr, "segalloc-fuzz: Init failed")
		os.Exit(1)
	}
	defer a.Close()

	rng, err := mathutil.NewFC32(0, math.MaxInt32, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, "segalloc-fuzz:", err)
		os.Exit(1)
	}
	rng.Seed(seed)

	live := make(map[uintptr]int)

	deadline := time.Now().Add(duration)
	var mallocs, frees, reallocs int64

	for time.Now().Before(deadline) {
		if len(live) == 0 {
			size := rng.Next()%maxSize + 1
			if p := a.Malloc(size); p != nil {
				live[uintptrOf(p)] = size
				mallocs++
			}
			continue
		}

		op := rng.Next() % 10
		switch {
		case op < 6:
			size := rng.Next()%maxSize + 1
			p := a.Malloc(size)
			if p == nil {
				continue
			}
			live[uintptrOf(p)] = size
			mallocs++

		case op < 8:
			addr, _ := pickOne(live, rng)
			if addr == 0 {
				continue
			}
			newSize := rng.Next()%maxSize + 1
			q := a.Realloc(pointerFrom(addr), newSize)
			delete(live, addr)
			if q != nil {
				live[uintptrOf(q)] = newSize
			}
			reallocs++

		default:
			addr, _ := pickOne(live, rng)
			if addr == 0 {
				continue
			}
			a.Free(pointerFrom(addr))
			delete(live, addr)
			frees++
		}
	}

	fmt.Printf("segalloc-fuzz: mallocs=%d reallocs=%d frees=%d live=%d\n", mallocs, reallocs, frees, len(live))
	a.CheckHeap(verbose)
}
