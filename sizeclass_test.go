package segalloc

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		asize int
		class int
	}{
		{24, 0}, {32, 0},
		{33, 1}, {64, 1},
		{65, 2}, {128, 2},
		{129, 3}, {256, 3},
		{257, 4}, {512, 4},
		{513, 5}, {1024, 5},
		{1025, 6}, {2048, 6},
		{2049, 7}, {1 << 20, 7},
	}
	for _, c := range cases {
		if got := classify(c.asize); got != c.class {
			t.Errorf("classify(%d) = %d, want %d", c.asize, got, c.class)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := classify(minBlockSize)
	for asize := minBlockSize + 8; asize <= 1<<16; asize += 8 {
		c := classify(asize)
		if c < prev {
			t.Fatalf("classify regressed at %d: %d -> %d", asize, prev, c)
		}
		prev = c
	}
}
