// Package assert holds fail-fast checks for invariants that, when broken, mean
// the caller has a bug rather than bad input.
package assert

import "fmt"

// IsTrue panics with the formatted message when ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(fmt.Errorf("assertion failed: "+message, args...))
	}
}
