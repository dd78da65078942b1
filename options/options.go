// Package options provides the settings that configure a testgrunt run.
package options

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gruntwork-io/testgrunt/config"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/os/stdout"
	"github.com/gruntwork-io/testgrunt/internal/telemetry"
	"github.com/gruntwork-io/testgrunt/pkg/env"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/gruntwork-io/testgrunt/util"
)

const defaultLogLevel = log.InfoLevel

// TestgruntOptions represents options that configure the behavior of testgrunt.
type TestgruntOptions struct {
	// If you want stdout to go somewhere other than os.Stdout
	Writer io.Writer
	// If you want stderr to go somewhere other than os.Stderr
	ErrWriter io.Writer

	Logger log.Logger

	// Config is the resolved `testgrunt.hcl`, set by LoadConfig.
	Config *config.TestgruntConfig

	// Environment variables at runtime
	Env map[string]string

	Telemetry *telemetry.Options

	// ConfigPath is the config file, relative to WorkingDir unless absolute.
	ConfigPath string

	WorkingDir string

	LogFormat string

	// Version of testgrunt
	Version string

	LogLevel log.Level

	// DisableColors turns off ANSI colors in command output.
	DisableColors bool
}

// NewTestgruntOptions returns options writing to the process stdout and stderr.
func NewTestgruntOptions() *TestgruntOptions {
	return NewTestgruntOptionsWithWriters(os.Stdout, os.Stderr)
}

// NewTestgruntOptionsWithWriters returns options with default settings and the given writers.
func NewTestgruntOptionsWithWriters(stdout, stderr io.Writer) *TestgruntOptions {
	workingDir, _ := os.Getwd()

	return &TestgruntOptions{
		Writer:     stdout,
		ErrWriter:  stderr,
		Logger:     log.New(log.WithOutput(stderr), log.WithLevel(defaultLogLevel)),
		Env:        env.Parse(os.Environ()),
		Telemetry:  &telemetry.Options{},
		ConfigPath: config.DefaultConfigFile,
		WorkingDir: workingDir,
		LogFormat:  log.FormatText,
		LogLevel:   defaultLogLevel,
	}
}

// ConfigureLogger applies LogLevel and LogFormat to the logger.
func (opts *TestgruntOptions) ConfigureLogger() error {
	formatter, err := log.ParseFormat(opts.LogFormat)
	if err != nil {
		return errors.New(err)
	}

	opts.Logger.SetOptions(log.WithLevel(opts.LogLevel), log.WithFormatter(formatter))

	return nil
}

// LoadConfig reads the config file into Config and checks its `required_version`.
// A missing file is only an error when explicit is true.
func (opts *TestgruntOptions) LoadConfig(explicit bool) error {
	path, err := util.CanonicalPath(opts.ConfigPath, opts.WorkingDir)
	if err != nil {
		return err
	}

	if explicit && !util.FileExists(path) {
		return errors.New(ConfigNotFoundError{Path: path})
	}

	cfg, err := config.LoadConfig(opts.Logger, path, opts.Env)
	if err != nil {
		return err
	}

	if opts.Version != "" {
		if err := cfg.CheckRequiredVersion(opts.Version); err != nil {
			return err
		}
	}

	opts.ConfigPath = path
	opts.Config = cfg

	return nil
}

// ShouldColor reports whether output written to Writer should carry ANSI colors.
func (opts *TestgruntOptions) ShouldColor() bool {
	return !opts.DisableColors && stdout.IsTerminal(opts.Writer)
}

// RelPath returns path relative to the working dir, or path itself when it is outside of it.
func (opts *TestgruntOptions) RelPath(path string) string {
	rel, err := filepath.Rel(opts.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	return rel
}
