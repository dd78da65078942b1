package server_test

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/server"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() log.Logger {
	return log.New(log.WithOutput(io.Discard))
}

// unusedURL returns a URL nobody listens on.
func unusedURL(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	return "http://" + addr + "/"
}

func TestWaitUntilReachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := server.WaitUntilReachable(t.Context(), discardLogger(), srv.URL, &server.WaitOptions{
		Interval: 10 * time.Millisecond,
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
}

func TestWaitUntilReachableBecomesReady(t *testing.T) {
	t.Parallel()

	url := unusedURL(t)

	srv := &http.Server{Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	t.Cleanup(func() { srv.Close() })

	go func() {
		time.Sleep(100 * time.Millisecond)

		listener, err := net.Listen("tcp", strings.TrimSuffix(strings.TrimPrefix(url, "http://"), "/"))
		if err != nil {
			return
		}

		srv.Serve(listener) //nolint:errcheck
	}()

	err := server.WaitUntilReachable(t.Context(), discardLogger(), url, &server.WaitOptions{
		Interval: 20 * time.Millisecond,
		Timeout:  10 * time.Second,
	})
	require.NoError(t, err)
}

func TestWaitUntilReachableTimeout(t *testing.T) {
	t.Parallel()

	url := unusedURL(t)

	start := time.Now()

	err := server.WaitUntilReachable(t.Context(), discardLogger(), url, &server.WaitOptions{
		Interval: 20 * time.Millisecond,
		Timeout:  200 * time.Millisecond,
	})

	var timeoutErr server.TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "%v", err)
	assert.Equal(t, url, timeoutErr.URL)
	assert.Less(t, time.Since(start), 5*time.Second)
}
