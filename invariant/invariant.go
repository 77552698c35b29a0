// Package invariant provides a single hard-failure primitive for
// conditions that indicate programmer bugs rather than
// recoverable runtime errors (an ill-typed unit from a handler, or a
// policy asked to remove an entry it doesn't hold).
package invariant

import "fmt"

// Check panics with a formatted message if ok is false. Callers use this
// for conditions that can only be violated by a bug in this module,
// never by stream contents.
func Check(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("memsketch: invariant violated: "+format, args...))
	}
}
