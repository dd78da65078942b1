package server

import (
	"io"
	"sync"

	"github.com/gruntwork-io/testgrunt/internal/os/exec"
)

// Process is a started server.
type Process struct {
	cmd     *exec.Cmd
	exited  chan struct{}
	output  io.Closer
	err     error
	stop    func()
	URL     string
	LogFile string
	PIDFile string
	ID      string
	PID     int
	Spawned bool
	mu      sync.Mutex
}

func newProcess(cmd *exec.Cmd) *Process {
	return &Process{
		cmd:    cmd,
		PID:    cmd.Pid(),
		exited: make(chan struct{}),
	}
}

// watch waits for the process in the background and records how it ended.
func (p *Process) watch() {
	go func() {
		err := p.cmd.Wait()

		p.mu.Lock()
		p.err = err

		if p.stop != nil {
			p.stop()
		}

		if p.output != nil {
			p.output.Close() //nolint:errcheck
		}
		p.mu.Unlock()

		close(p.exited)
	}()
}

// Exited is closed once the process has exited.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// Err returns the exit error of the process, once it has exited.
func (p *Process) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

// Wait blocks until the process exits and returns its exit error.
func (p *Process) Wait() error {
	<-p.exited
	return p.Err()
}

// Release removes the PID file if it still names this process.
func (p *Process) Release() error {
	pid, err := ReadPIDFile(p.PIDFile)
	if err != nil || pid != p.PID {
		return err
	}

	return removePIDFile(p.PIDFile)
}

// Terminate sends the interrupt signal to the process. It does not wait for it to exit.
func (p *Process) Terminate() {
	select {
	case <-p.exited:
	default:
		p.cmd.SendSignal(p.cmd.InterruptSignal())
	}
}
