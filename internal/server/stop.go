package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/os/exec"
	"github.com/gruntwork-io/testgrunt/internal/os/signal"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/gruntwork-io/testgrunt/util"
)

const (
	stopRetryInterval = 250 * time.Millisecond
	stopMaxRetries    = 40
)

// Stop terminates the server whose pid is recorded in appDir and removes the PID file.
// It is not an error if no server is running.
func Stop(ctx context.Context, l log.Logger, appDir string) error {
	pidFile := PIDFilePath(appDir)

	lock := util.NewLockfile(pidFile + lockFileSuffix)
	if err := lock.Lock(ctx); err != nil {
		return err
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			l.Warnf("Failed to unlock %s: %v", lock.Path(), err)
		}
	}()

	pid, err := ReadPIDFile(pidFile)
	if err != nil {
		return err
	}

	if pid == 0 {
		l.Infof("No %s file, server is not running", pidFile)
		return nil
	}

	if !exec.IsProcessAlive(pid) {
		l.Infof("Server process %d is not running, removing stale %s", pid, pidFile)
		return removePIDFile(pidFile)
	}

	l.Infof("Stopping server process %d", pid)

	if err := exec.SignalProcessGroup(pid, signal.TerminateSignal); err != nil {
		l.Debugf("Process %d does not lead a process group, signaling it alone: %v", pid, err)

		if err := exec.SignalProcess(pid, signal.TerminateSignal); err != nil {
			return err
		}
	}

	err = util.DoWithRetry(ctx, fmt.Sprintf("Wait for server process %d to exit", pid), stopMaxRetries, stopRetryInterval, l, log.TraceLevel, func(_ context.Context) error {
		if exec.IsProcessAlive(pid) {
			return errors.Errorf("server process %d is still running", pid)
		}

		return nil
	})
	if err != nil {
		return err
	}

	l.Infof("Server stopped")

	return removePIDFile(pidFile)
}
