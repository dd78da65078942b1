package server

import (
	"io"
	"time"

	"github.com/google/shlex"
	"github.com/gruntwork-io/testgrunt/internal/errors"
)

const (
	// DefaultTestID is the framework id used when the server is started with tests.
	DefaultTestID = "test"

	confDir             = "conf"
	applicationConfFile = "application.conf"
	routesFile          = "routes"
	logsDir             = "logs"
	systemOutFile       = "system.out"
)

// Options configure Start.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    map[string]string
	// AppDir holds `conf/application.conf` and `conf/routes`, and receives `server.pid` and `logs/system.out`.
	AppDir string
	// Command and Args launch the server. Command is split shell-style, its words precede Args. The framework id, application dir and HTTP port are passed as
	// TESTGRUNT_APP_ID, TESTGRUNT_APP_DIR and TESTGRUNT_HTTP_PORT.
	Command string
	ID      string
	TestID  string
	Args    []string
	// WaitInterval and WaitTimeout tune the readiness poll when Wait is set.
	WaitInterval time.Duration
	WaitTimeout  time.Duration
	// WithTests selects TestID instead of ID.
	WithTests bool
	Skip      bool
	// Spawn detaches the server into its own process group so it outlives this process.
	Spawn bool
	// Wait blocks until the server answers HTTP requests.
	Wait bool
}

// NewOptions returns the default options for the application in appDir.
func NewOptions(appDir string) *Options {
	return &Options{
		AppDir:       appDir,
		TestID:       DefaultTestID,
		Spawn:        true,
		WaitInterval: DefaultWaitInterval,
		WaitTimeout:  DefaultWaitTimeout,
	}
}

// FrameworkID returns the id the application configuration is read with.
func (opts *Options) FrameworkID() string {
	if opts.WithTests {
		return opts.TestID
	}

	return opts.ID
}

// CommandLine returns the executable and the arguments the server is launched with.
func (opts *Options) CommandLine() (string, []string, error) {
	words, err := shlex.Split(opts.Command)
	if err != nil {
		return "", nil, errors.New(InvalidCommandError{Command: opts.Command, Err: err})
	}

	if len(words) == 0 {
		return "", nil, errors.New(InvalidCommandError{Command: opts.Command})
	}

	return words[0], append(words[1:], opts.Args...), nil
}
