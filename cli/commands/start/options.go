package start

import (
	"strings"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/server"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/gruntwork-io/testgrunt/util"
)

// Options are the settings of the start command. Flags that were not set leave the config values in place.
type Options struct {
	*options.TestgruntOptions

	WithTests *bool
	Skip      *bool
	Spawn     *bool
	Wait      *bool

	AppDir  string
	Command string
	ID      string
	TestID  string

	Args []string
	Env  []string

	WaitInterval time.Duration
	WaitTimeout  time.Duration
}

func NewOptions(opts *options.TestgruntOptions) *Options {
	return &Options{
		TestgruntOptions: opts,
	}
}

// ServerOptions merges the config with the flags into the options of server.Start.
func (o *Options) ServerOptions() (*server.Options, error) {
	cfg := o.Config.Server

	appDir := cfg.AppDir

	if o.AppDir != "" {
		var err error
		if appDir, err = util.CanonicalPath(o.AppDir, o.WorkingDir); err != nil {
			return nil, err
		}
	}

	serverOpts := server.NewOptions(appDir)
	serverOpts.Stdout = o.Writer
	serverOpts.Stderr = o.ErrWriter
	serverOpts.Command = firstNonEmpty(o.Command, cfg.Command)
	serverOpts.ID = firstNonEmpty(o.ID, cfg.ID)
	serverOpts.TestID = firstNonEmpty(o.TestID, cfg.TestID, server.DefaultTestID)
	serverOpts.Args = cfg.Args
	serverOpts.Env = make(map[string]string, len(cfg.Env)+len(o.Env))

	if len(o.Args) > 0 {
		serverOpts.Args = o.Args
	}

	for key, val := range cfg.Env {
		serverOpts.Env[key] = val
	}

	for _, pair := range o.Env {
		key, val, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.New(InvalidEnvError{Value: pair})
		}

		serverOpts.Env[key] = val
	}

	serverOpts.WithTests = boolValue(o.WithTests, cfg.WithTests, false)
	serverOpts.Skip = boolValue(o.Skip, cfg.Skip, false)
	serverOpts.Spawn = boolValue(o.Spawn, cfg.Spawn, true)
	serverOpts.Wait = boolValue(o.Wait, cfg.Wait, false)

	if serverOpts.WaitInterval = o.WaitInterval; serverOpts.WaitInterval <= 0 {
		serverOpts.WaitInterval = cfg.WaitIntervalDuration()
	}

	if serverOpts.WaitTimeout = o.WaitTimeout; serverOpts.WaitTimeout <= 0 {
		serverOpts.WaitTimeout = cfg.WaitTimeoutDuration()
	}

	return serverOpts, nil
}

func firstNonEmpty(vals ...string) string {
	for _, val := range vals {
		if val != "" {
			return val
		}
	}

	return ""
}

func boolValue(flag, cfg *bool, fallback bool) bool {
	switch {
	case flag != nil:
		return *flag
	case cfg != nil:
		return *cfg
	default:
		return fallback
	}
}
