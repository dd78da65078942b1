package server

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/os/exec"
)

const (
	// PIDFileName is the file, in the application directory, that holds the pid of a started server.
	PIDFileName = "server.pid"

	lockFileSuffix = ".lock"
)

// PIDFilePath returns the PID file of the server started from appDir.
func PIDFilePath(appDir string) string {
	return filepath.Join(appDir, PIDFileName)
}

// ReadPIDFile returns the pid stored in path. A missing file yields 0 and no error.
func ReadPIDFile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}

		return 0, errors.New(err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, errors.Errorf("invalid pid in %s: %w", path, err)
	}

	return pid, nil
}

func writePIDFile(path string, pid int) error {
	return errors.New(os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0644))
}

func removePIDFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.New(err)
	}

	return nil
}

// checkNotRunning fails with AlreadyRunningError if path names a live process, and removes it if it is stale.
func checkNotRunning(path string) error {
	pid, err := ReadPIDFile(path)
	if err != nil || pid == 0 {
		return err
	}

	if exec.IsProcessAlive(pid) {
		return errors.New(AlreadyRunningError{PID: pid, PIDFile: path})
	}

	return removePIDFile(path)
}
