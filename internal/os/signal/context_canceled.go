package signal

import (
	"context"
	"os"
)

// ContextCanceledError is the cause of a context cancelled because the process received a signal.
type ContextCanceledError struct {
	Signal os.Signal
}

// NewContextCanceledError returns a new `ContextCanceledError` instance.
func NewContextCanceledError(sig os.Signal) *ContextCanceledError {
	return &ContextCanceledError{Signal: sig}
}

// Error implements the `Error` method.
func (err *ContextCanceledError) Error() string {
	if err.Signal == nil {
		return context.Canceled.Error()
	}

	return context.Canceled.Error() + " by " + err.Signal.String() + " signal"
}

// Unwrap implements the `Unwrap` method.
func (*ContextCanceledError) Unwrap() error {
	return context.Canceled
}
