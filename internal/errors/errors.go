// Package errors contains helper functions for wrapping errors with stack traces, stack output, and panic recovery.
package errors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New creates a new instance of Error.
// If the given value does not contain an stack trace, it will be created.
func New(val any) error {
	if val == nil {
		return nil
	}

	return newWithSkip(2, val)
}

// Errorf creates a new error with the given format and values.
// It can be used as a drop-in replacement for fmt.Errorf() to provide descriptive errors in return values.
// If the wrapped error does not contain an stack trace, it will be created.
func Errorf(format string, vals ...any) error {
	return errorfWithSkip(2, format, vals...)
}

func newWithSkip(skip int, val any) error {
	switch val := val.(type) {
	case error:
		if ContainsStackTrace(val) {
			return val
		}

		return goerrors.Wrap(val, skip)
	case string:
		return goerrors.Wrap(goerrors.New(val), skip)
	}

	return goerrors.Wrap(fmt.Errorf("%v", val), skip) //nolint:err113
}

func errorfWithSkip(skip int, format string, vals ...any) error {
	err := fmt.Errorf(format, vals...) //nolint:err113

	for _, val := range vals {
		if val, ok := val.(error); ok && val != nil && ContainsStackTrace(val) {
			return err
		}
	}

	return goerrors.Wrap(err, skip)
}

// ErrorWithExitCode is a custom error that is used to specify the app exit code.
type ErrorWithExitCode struct {
	Err      error
	ExitCode int
}

func (err ErrorWithExitCode) Error() string {
	return err.Err.Error()
}

func (err ErrorWithExitCode) Unwrap() error {
	return err.Err
}
