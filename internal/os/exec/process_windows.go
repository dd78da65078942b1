//go:build windows

package exec

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"golang.org/x/sys/windows"
)

func setProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_PROCESS_GROUP
}

// SignalProcessGroup kills the process. Windows cannot deliver signals to a process group.
func SignalProcessGroup(pid int, sig os.Signal) error {
	return SignalProcess(pid, sig)
}

// IsProcessAlive reports whether a process with the given pid exists.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}

	defer windows.CloseHandle(handle) //nolint:errcheck

	var code uint32
	if err := windows.GetExitCodeProcess(handle, &code); err != nil {
		return false
	}

	return code == stillActive
}

const stillActive = 259

// SignalProcess kills a single process. Windows only supports os.Kill.
func SignalProcess(pid int, _ os.Signal) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return errors.New(err)
	}

	return errors.New(process.Kill())
}
