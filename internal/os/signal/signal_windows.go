//go:build windows

package signal

import (
	"os"
)

// InterruptSignal is an interrupt signal.
var InterruptSignal os.Signal = os.Interrupt

// TerminateSignal asks a process to shut down. Windows has no SIGTERM, processes are killed instead.
var TerminateSignal os.Signal = os.Kill

// InterruptSignals contains a list of signals that are treated as interrupts.
var InterruptSignals = []os.Signal{os.Interrupt}
