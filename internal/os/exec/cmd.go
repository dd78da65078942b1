// Package exec runs external commands. It wraps exec.Cmd with logging, environment handling,
// process groups and graceful signal forwarding.
package exec

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/os/signal"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Cmd is a command type.
type Cmd struct {
	*exec.Cmd

	logger          log.Logger
	interruptSignal os.Signal

	filename string

	forwardSignalDelay time.Duration
	processGroup       bool
}

// Command returns the `Cmd` struct to execute the named program with
// the given arguments.
func Command(name string, args ...string) *Cmd {
	cmd := &Cmd{
		Cmd:             exec.Command(name, args...),
		logger:          log.Default(),
		filename:        filepath.Base(name),
		interruptSignal: signal.InterruptSignal,
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd
}

// Option configures a Cmd.
type Option func(*Cmd)

// WithLogger sets the logger used to report signal forwarding.
func WithLogger(logger log.Logger) Option {
	return func(cmd *Cmd) {
		cmd.logger = logger
	}
}

// WithDir sets the working directory of the command.
func WithDir(dir string) Option {
	return func(cmd *Cmd) {
		cmd.Dir = dir
	}
}

// WithEnv adds variables to the current process environment; the given values win.
func WithEnv(env map[string]string) Option {
	return func(cmd *Cmd) {
		cmd.Env = os.Environ()

		keys := make([]string, 0, len(env))
		for key := range env {
			keys = append(keys, key)
		}

		slices.Sort(keys)

		for _, key := range keys {
			cmd.Env = append(cmd.Env, key+"="+env[key])
		}
	}
}

// WithStdin sets the command's stdin. A nil reader connects it to the null device.
func WithStdin(stdin io.Reader) Option {
	return func(cmd *Cmd) {
		cmd.Stdin = stdin
	}
}

// WithOutput sends stdout and stderr to the given writers.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(cmd *Cmd) {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
	}
}

// WithForwardSignalDelay delays the forwarding of signals received by this process to the command.
func WithForwardSignalDelay(delay time.Duration) Option {
	return func(cmd *Cmd) {
		cmd.forwardSignalDelay = delay
	}
}

// WithProcessGroup starts the command in its own process group, so it outlives this process and
// does not receive the terminal's interrupts.
func WithProcessGroup() Option {
	return func(cmd *Cmd) {
		cmd.processGroup = true
	}
}

// Configure sets options to the `Cmd`.
func (cmd *Cmd) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(cmd)
	}
}

// Start starts the specified command but does not wait for it to complete.
func (cmd *Cmd) Start() error {
	if cmd.processGroup {
		setProcessGroup(cmd.Cmd)
	}

	cmd.logger.Debugf("Starting %s", cmd.String())

	if err := cmd.Cmd.Start(); err != nil {
		return errors.New(err)
	}

	return nil
}

// Wait waits for the command to exit.
func (cmd *Cmd) Wait() error {
	if err := cmd.Cmd.Wait(); err != nil {
		return errors.New(err)
	}

	return nil
}

// InterruptSignal returns the signal sent to the command when it must stop.
func (cmd *Cmd) InterruptSignal() os.Signal {
	return cmd.interruptSignal
}

// Pid returns the process ID of a started command, or 0.
func (cmd *Cmd) Pid() int {
	if cmd.Process == nil {
		return 0
	}

	return cmd.Process.Pid
}

// RegisterGracefullyShutdown registers a graceful shutdown for the command in two ways:
//  1. If the context cancel contains a cause with a signal, this means that we received the signal from the OS,
//     since our executed command may also receive the same signal, we need to give the command time to gracefully shutting down,
//     to avoid the command receiving this signal twice.
//     Thus we will send the signal to the executed command with a delay or immediately if we receive this same signal again.
//  2. If the context does not contain any causes, this means that there was some failure and we need to terminate all executed commands,
//     in this situation we are sure that commands did not receive any signal, so we send them an interrupt signal immediately.
func (cmd *Cmd) RegisterGracefullyShutdown(ctx context.Context) func() {
	ctxShutdown, cancelShutdown := context.WithCancel(context.Background())

	go func() {
		select {
		case <-ctxShutdown.Done():
		case <-ctx.Done():
			if cause := new(signal.ContextCanceledError); errors.As(context.Cause(ctx), &cause) && cause.Signal != nil {
				cmd.ForwardSignal(ctxShutdown, cause.Signal)

				return
			}

			cmd.SendSignal(cmd.interruptSignal)
		}
	}()

	return cancelShutdown
}

// ForwardSignal forwards a given `sig` with a delay if cmd.forwardSignalDelay is greater than 0,
// and if the same signal is received again, it is forwarded immediately.
func (cmd *Cmd) ForwardSignal(ctx context.Context, sig os.Signal) {
	ctxDelay, cancelDelay := context.WithCancel(ctx)
	defer cancelDelay()

	signal.NotifierWithContext(ctx, func(_ os.Signal) {
		cancelDelay()
	}, sig)

	if cmd.forwardSignalDelay > 0 {
		cmd.logger.Debugf("%s signal will be forwarded to %s with delay %s",
			cases.Title(language.English).String(sig.String()),
			cmd.filename,
			cmd.forwardSignalDelay,
		)
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(cmd.forwardSignalDelay):
	case <-ctxDelay.Done():
	}

	cmd.SendSignal(sig)
}

// SendSignal sends the given `sig` to the executed command, or to its whole process group if it has one.
func (cmd *Cmd) SendSignal(sig os.Signal) {
	if cmd.Process == nil || sig == nil {
		return
	}

	cmd.logger.Debugf("%s signal is forwarded to %s", cases.Title(language.English).String(sig.String()), cmd.filename)

	var err error

	if cmd.processGroup {
		err = SignalProcessGroup(cmd.Process.Pid, sig)
	} else {
		err = cmd.Process.Signal(sig)
	}

	if err != nil {
		cmd.logger.Errorf("Failed to forward signal %s to %s: %v", sig, cmd.filename, err)
	}
}

// GetExitCode returns the exit code of a command that ran to completion.
func GetExitCode(err error) (int, error) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return 0, err
}
