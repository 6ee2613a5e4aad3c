// Package invariant reports conditions that can only fail because of a bug in the parser. These
// are panics, never errors: callers are not expected to recover from them.
package invariant

import "fmt"

// Violation is the value passed to panic when an invariant does not hold.
type Violation struct {
	msg string
}

func (v *Violation) Error() string {
	return "internal error: " + v.msg
}

// Invariant panics with a [*Violation] if cond is false.
func Invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(&Violation{msg: fmt.Sprintf(format, args...)})
	}
}

// ExpectNoError panics with a [*Violation] wrapping err if err is not nil.
func ExpectNoError(err error, context string) {
	if err != nil {
		panic(&Violation{msg: fmt.Sprintf("%s: %v", context, err)})
	}
}

// Failf panics with a [*Violation] unconditionally.
func Failf(format string, args ...any) {
	panic(&Violation{msg: fmt.Sprintf(format, args...)})
}
