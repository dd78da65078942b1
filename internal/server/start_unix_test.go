//go:build linux || darwin

package server_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/server"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newApp creates an application directory with the given configuration and routes.
func newApp(t *testing.T, conf, routes string) string {
	t.Helper()

	appDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(appDir, "conf"), 0755))

	if conf != "" {
		require.NoError(t, os.WriteFile(filepath.Join(appDir, "conf", "application.conf"), []byte(conf), 0644))
	}

	if routes != "-" {
		require.NoError(t, os.WriteFile(filepath.Join(appDir, "conf", "routes"), []byte(routes), 0644))
	}

	return appDir
}

const routes = "GET / controllers.Application.index()\n"

func TestStartSkipped(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		conf    string
		routes  string
		message string
		skip    bool
	}{
		{name: "skip flag", conf: "application.name=shop\n", routes: routes, skip: true, message: "Skipping server start"},
		{name: "missing conf", conf: "", routes: routes, message: "conf/application.conf"},
		{name: "missing routes", conf: "application.name=shop\n", routes: "-", message: "No "},
		{name: "empty routes", conf: "application.name=shop\n", routes: "", message: "conf/routes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			opts := server.NewOptions(newApp(t, tc.conf, tc.routes))
			opts.Command = "sleep"
			opts.Args = []string{"30"}
			opts.Skip = tc.skip

			proc, err := server.Start(t.Context(), log.New(log.WithOutput(&buf)), opts)
			require.NoError(t, err)
			assert.Nil(t, proc)
			assert.Contains(t, buf.String(), tc.message)
			assert.Contains(t, strings.ToLower(buf.String()), "skipping server start")
			assert.NoFileExists(t, server.PIDFilePath(opts.AppDir))
		})
	}
}

func TestStartWaitAndStop(t *testing.T) {
	t.Parallel()

	ready := httptest.NewServer(http.NotFoundHandler())
	defer ready.Close()

	readyURL, err := url.Parse(ready.URL)
	require.NoError(t, err)

	appDir := newApp(t, "http.port=1\n%test.http.port="+readyURL.Port()+"\n", routes)

	opts := server.NewOptions(appDir)
	opts.Command = "sh"
	opts.Args = []string{"-c", `echo "started $TESTGRUNT_APP_ID on $TESTGRUNT_HTTP_PORT"; exec sleep 30`}
	opts.WithTests = true
	opts.Wait = true
	opts.WaitInterval = 20 * time.Millisecond
	opts.WaitTimeout = 10 * time.Second

	l := discardLogger()

	proc, err := server.Start(t.Context(), l, opts)
	require.NoError(t, err)
	require.NotNil(t, proc)

	assert.Equal(t, "test", proc.ID)
	assert.Equal(t, "http://localhost:"+readyURL.Port()+"/", proc.URL)
	assert.Equal(t, filepath.Join(appDir, "logs", "system.out"), proc.LogFile)

	pid, err := server.ReadPIDFile(server.PIDFilePath(appDir))
	require.NoError(t, err)
	assert.Equal(t, proc.PID, pid)

	require.Eventually(t, func() bool {
		content, err := os.ReadFile(proc.LogFile)
		return err == nil && bytes.Contains(content, []byte("started test on "+readyURL.Port()))
	}, 5*time.Second, 20*time.Millisecond)

	_, err = server.Start(t.Context(), l, opts)

	var running server.AlreadyRunningError
	require.True(t, errors.As(err, &running), "%v", err)
	assert.Equal(t, proc.PID, running.PID)

	require.NoError(t, server.Stop(t.Context(), l, appDir))

	select {
	case <-proc.Exited():
	case <-time.After(10 * time.Second):
		t.Fatal("server process did not exit")
	}

	assert.NoFileExists(t, server.PIDFilePath(appDir))

	require.NoError(t, server.Stop(t.Context(), l, appDir))
}

func TestStartProcessExitsBeforeReachable(t *testing.T) {
	t.Parallel()

	appDir := newApp(t, "application.log.system.out=off\nhttp.port=1\n", routes)

	var stdout bytes.Buffer

	opts := server.NewOptions(appDir)
	opts.Command = "sh"
	opts.Args = []string{"-c", "echo crashing; exit 3"}
	opts.Spawn = false
	opts.Wait = true
	opts.WaitInterval = 20 * time.Millisecond
	opts.WaitTimeout = 10 * time.Second
	opts.Stdout = &stdout

	proc, err := server.Start(t.Context(), discardLogger(), opts)
	require.Error(t, err)

	var exited server.ProcessExitedError
	require.True(t, errors.As(err, &exited), "%v", err)
	assert.Equal(t, proc.PID, exited.PID)
	assert.Empty(t, proc.LogFile)
	assert.NoDirExists(t, filepath.Join(appDir, "logs"))

	require.Error(t, proc.Wait())
}

func TestStartInterrupted(t *testing.T) {
	t.Parallel()

	appDir := newApp(t, "application.name=shop\n", routes)

	opts := server.NewOptions(appDir)
	opts.Command = "sleep"
	opts.Args = []string{"30"}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	proc, err := server.Start(ctx, discardLogger(), opts)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, proc)
	assert.NoFileExists(t, server.PIDFilePath(appDir))
}

func TestStartCommandNotFound(t *testing.T) {
	t.Parallel()

	appDir := newApp(t, "application.name=shop\n", routes)

	opts := server.NewOptions(appDir)
	opts.Command = filepath.Join(appDir, "no-such-server")

	_, err := server.Start(t.Context(), discardLogger(), opts)

	var startErr server.StartError
	require.True(t, errors.As(err, &startErr), "%v", err)
	assert.NoFileExists(t, server.PIDFilePath(appDir))
}
