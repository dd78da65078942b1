package errors

import (
	"errors"
	"fmt"
	"strings"
)

// stackTracer is implemented by errors carrying a go-errors stack.
type stackTracer interface {
	ErrorStack() string
}

// ErrorStack returns the stack traces of err and of every error it wraps, joined by newlines.
// Returns an empty string if none of them carries a stack.
func ErrorStack(err error) string {
	var stacks []string

	for _, err := range UnwrapMultiErrors(err) {
		for ; err != nil; err = errors.Unwrap(err) {
			if err, ok := err.(stackTracer); ok {
				stacks = append(stacks, err.ErrorStack())
			}
		}
	}

	return strings.Join(stacks, "\n")
}

// ContainsStackTrace returns true if the given error contain the stack trace.
// Useful to avoid creating a nested stack trace.
func ContainsStackTrace(err error) bool {
	for _, err := range UnwrapMultiErrors(err) {
		for ; err != nil; err = errors.Unwrap(err) {
			if _, ok := err.(stackTracer); ok {
				return true
			}
		}
	}

	return false
}

// Recover tries to recover from panics, and if it succeeds, calls the given onPanic function with an error that
// explains the cause of the panic. This function should only be called from a defer statement.
func Recover(onPanic func(cause error)) {
	if rec := recover(); rec != nil {
		err, isError := rec.(error)
		if !isError {
			err = fmt.Errorf("%v", rec) //nolint:err113
		}

		onPanic(New(err))
	}
}

// UnwrapMultiErrors flattens err into the list of errors it joins.
// An error that joins nothing is returned as a single-element slice.
func UnwrapMultiErrors(err error) []error {
	if err == nil {
		return nil
	}

	var out []error

	queue := []error{err}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		joined := false

		for e := current; e != nil; e = errors.Unwrap(e) {
			if multi, ok := e.(interface{ Unwrap() []error }); ok {
				queue = append(queue, multi.Unwrap()...)
				joined = true

				break
			}
		}

		if !joined {
			out = append(out, current)
		}
	}

	return out
}
