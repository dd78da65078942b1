//go:build !windows

package exec

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"golang.org/x/sys/unix"
)

func setProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.Setpgid = true
}

// SignalProcessGroup sends sig to every process in the group led by pid.
func SignalProcessGroup(pid int, sig os.Signal) error {
	unixSig, ok := sig.(syscall.Signal)
	if !ok {
		return errors.Errorf("unsupported signal %s", sig)
	}

	if err := unix.Kill(-pid, unixSig); err != nil {
		return errors.New(err)
	}

	return nil
}

// IsProcessAlive reports whether a process with the given pid exists.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	err := unix.Kill(pid, 0)

	return err == nil || errors.Is(err, unix.EPERM)
}

// SignalProcess sends sig to a single process.
func SignalProcess(pid int, sig os.Signal) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return errors.New(err)
	}

	return errors.New(process.Signal(sig))
}
