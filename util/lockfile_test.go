package util_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gruntwork-io/testgrunt/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.pid.lock")

	first := util.NewLockfile(path)
	require.NoError(t, first.Lock(t.Context()))
	assert.True(t, first.Locked())

	second := util.NewLockfile(path)

	ctx, cancel := context.WithTimeout(t.Context(), 250*time.Millisecond)
	defer cancel()

	require.Error(t, second.Lock(ctx))

	require.NoError(t, first.Unlock())
	require.NoError(t, first.Unlock())
	require.NoError(t, second.Lock(t.Context()))
	require.NoError(t, second.Unlock())
}
