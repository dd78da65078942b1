//go:build !windows

package signal

import (
	"os"
	"syscall"
)

// InterruptSignal is an interrupt signal.
var InterruptSignal os.Signal = syscall.SIGINT

// TerminateSignal asks a process to shut down.
var TerminateSignal os.Signal = syscall.SIGTERM

// InterruptSignals contains a list of signals that are treated as interrupts.
var InterruptSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT}
