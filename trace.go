package segalloc

import (
	"fmt"
	"os"
)

// trace gates a plain stderr print at the top of each public entry
// point, for quick ad hoc tracing without a logging dependency.
const trace = false

func tracef(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}
