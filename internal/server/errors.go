package server

import (
	"fmt"
	"time"
)

// StartError is returned when the server process cannot be started.
type StartError struct {
	Err error
}

func (err StartError) Error() string {
	return fmt.Sprintf("server start error: %v", err.Err)
}

func (err StartError) Unwrap() error {
	return err.Err
}

// TimeoutError is returned when the server did not answer before the wait timeout.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (err TimeoutError) Error() string {
	return fmt.Sprintf("server at %s not reachable after %s", err.URL, err.Timeout)
}

// ProcessExitedError is returned when the server process exits while waiting for it.
type ProcessExitedError struct {
	Err error
	PID int
}

func (err ProcessExitedError) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("server process %d exited before it became reachable", err.PID)
	}

	return fmt.Sprintf("server process %d exited before it became reachable: %v", err.PID, err.Err)
}

func (err ProcessExitedError) Unwrap() error {
	return err.Err
}

// AlreadyRunningError is returned when the PID file points to a live process.
type AlreadyRunningError struct {
	PIDFile string
	PID     int
}

func (err AlreadyRunningError) Error() string {
	return fmt.Sprintf("server already running with pid %d, remove %s if it is stale", err.PID, err.PIDFile)
}

// InvalidCommandError is returned when the server command is empty or cannot be split into words.
type InvalidCommandError struct {
	Err     error
	Command string
}

func (err InvalidCommandError) Error() string {
	if err.Err == nil {
		return "no server command configured"
	}

	return fmt.Sprintf("invalid server command %q: %v", err.Command, err.Err)
}

func (err InvalidCommandError) Unwrap() error {
	return err.Err
}
