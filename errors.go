package segalloc

import "errors"

// ErrHeapExhausted is returned internally by region.grow when the
// heap's virtual reservation has no room left for the request. It
// never escapes to the public entry points (Malloc, Realloc, Calloc):
// out-of-memory is signalled to callers as a nil result, not a Go
// error.
var ErrHeapExhausted = errors.New("segalloc: heap reservation exhausted")
