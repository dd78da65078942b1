//go:build !windows

package signal_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/os/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextCanceledError(t *testing.T) {
	t.Parallel()

	err := signal.NewContextCanceledError(syscall.SIGTERM)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "context canceled by terminated signal", err.Error())
}

//nolint:paralleltest
func TestNotifyContext(t *testing.T) {
	ctx, cancel := signal.NotifyContext(t.Context())
	defer cancel()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by SIGTERM")
	}

	cause := new(signal.ContextCanceledError)
	require.True(t, errors.As(context.Cause(ctx), &cause))
	assert.Equal(t, syscall.SIGTERM, cause.Signal)
}
