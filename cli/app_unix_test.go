//go:build linux || darwin

package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/os/exec"
	"github.com/gruntwork-io/testgrunt/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndStop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFiles(t, dir, map[string]string{
		"app/conf/application.conf": "http.port=9100\n",
		"app/conf/routes":           "GET / controllers.Application.index()\n",
		"testgrunt.hcl": `
server {
  app_dir = "app"
  command = "sh"
}
`,
	})

	appDir := filepath.Join(dir, "app")

	_, _, err := runApp(t, dir, "start", "--env", "GREETING=hello", "--", "-c", `echo "$GREETING from $TESTGRUNT_APP_DIR"; exec sleep 30`)
	require.NoError(t, err)

	pid, err := server.ReadPIDFile(server.PIDFilePath(appDir))
	require.NoError(t, err)
	require.NotZero(t, pid)
	assert.True(t, exec.IsProcessAlive(pid))

	require.Eventually(t, func() bool {
		content, err := os.ReadFile(filepath.Join(appDir, "logs", "system.out"))
		return err == nil && strings.Contains(string(content), "hello from "+appDir)
	}, 5*time.Second, 20*time.Millisecond)

	_, _, err = runApp(t, dir, "start")

	var running server.AlreadyRunningError
	require.ErrorAs(t, err, &running)

	_, _, err = runApp(t, dir, "stop")
	require.NoError(t, err)

	assert.NoFileExists(t, server.PIDFilePath(appDir))
	assert.Eventually(t, func() bool {
		return !exec.IsProcessAlive(pid)
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStartAttachedServerFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFiles(t, dir, map[string]string{
		"conf/application.conf": "application.log.system.out=off\n",
		"conf/routes":           "GET / controllers.Application.index()\n",
	})

	_, _, err := runApp(t, dir, "start", "--spawn=false", "--server-command", "sh", "--", "-c", "exit 5")
	require.Error(t, err)

	var exited server.ProcessExitedError
	require.ErrorAs(t, err, &exited)
	assert.NoFileExists(t, server.PIDFilePath(dir))
}
