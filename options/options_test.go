package options_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/testgrunt/config"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOptions(t *testing.T) (*options.TestgruntOptions, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	opts := options.NewTestgruntOptionsWithWriters(&stdout, &stderr)
	opts.WorkingDir = t.TempDir()
	opts.Env = map[string]string{}

	return opts, &stderr
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults without file", func(t *testing.T) {
		t.Parallel()

		opts, _ := newTestOptions(t)

		require.NoError(t, opts.LoadConfig(false))
		require.NotNil(t, opts.Config)
		assert.Equal(t, filepath.Join(opts.WorkingDir, config.DefaultConfigFile), opts.ConfigPath)
		assert.Equal(t, opts.WorkingDir, opts.Config.Discovery.Root)
	})

	t.Run("explicit missing file", func(t *testing.T) {
		t.Parallel()

		opts, _ := newTestOptions(t)
		opts.ConfigPath = "custom.hcl"

		err := opts.LoadConfig(true)

		var notFound options.ConfigNotFoundError
		require.True(t, errors.As(err, &notFound), "%v", err)
		assert.Equal(t, filepath.Join(opts.WorkingDir, "custom.hcl"), notFound.Path)
	})

	t.Run("env and version", func(t *testing.T) {
		t.Parallel()

		opts, _ := newTestOptions(t)
		opts.Env["CLASSES"] = "out/classes"
		opts.Version = "0.4.0"

		require.NoError(t, os.WriteFile(filepath.Join(opts.WorkingDir, config.DefaultConfigFile), []byte(`
required_version = ">= 0.3"

discovery {
  root = get_env("CLASSES")
}
`), 0644))

		require.NoError(t, opts.LoadConfig(false))
		assert.Equal(t, filepath.Join(opts.WorkingDir, "out", "classes"), opts.Config.Discovery.Root)

		opts.Version = "0.2.0"

		var versionErr config.VersionConstraintError
		require.True(t, errors.As(opts.LoadConfig(false), &versionErr))
	})
}

func TestConfigureLogger(t *testing.T) {
	t.Parallel()

	opts, stderr := newTestOptions(t)
	opts.LogLevel = log.DebugLevel
	opts.LogFormat = log.FormatJSON

	require.NoError(t, opts.ConfigureLogger())

	opts.Logger.Debugf("hello")
	assert.Contains(t, stderr.String(), `"msg":"hello"`)

	opts.LogFormat = "xml"
	require.Error(t, opts.ConfigureLogger())
}

func TestShouldColor(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)
	assert.False(t, opts.ShouldColor())
}

func TestRelPath(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	assert.Equal(t, filepath.Join("a", "b"), opts.RelPath(filepath.Join(opts.WorkingDir, "a", "b")))
	assert.Equal(t, filepath.Dir(opts.WorkingDir), opts.RelPath(filepath.Dir(opts.WorkingDir)))
}
