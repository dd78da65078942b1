package server

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/os/exec"
	"github.com/gruntwork-io/testgrunt/internal/telemetry"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/gruntwork-io/testgrunt/util"
	"golang.org/x/sync/errgroup"
)

// Start launches the server described by opts.
//
// It returns a nil process, and no error, when the start is skipped: Skip is set, `conf/application.conf` is
// missing or empty, or `conf/routes` is missing or empty. With Wait set it only returns once the server answers.
func Start(ctx context.Context, l log.Logger, opts *Options) (*Process, error) {
	if opts.Skip {
		l.Infof("Skipping server start")
		return nil, nil
	}

	confPath := filepath.Join(opts.AppDir, confDir, applicationConfFile)

	if empty, err := util.IsFileEmpty(confPath); err != nil {
		return nil, err
	} else if empty {
		l.Infof("Empty %q file, skipping server start", filepath.ToSlash(filepath.Join(confDir, applicationConfFile)))
		return nil, nil
	}

	routesPath := filepath.Join(opts.AppDir, confDir, routesFile)

	if !util.IsFile(routesPath) {
		l.Infof("No %q file, skipping server start", filepath.ToSlash(filepath.Join(confDir, routesFile)))
		return nil, nil
	}

	if empty, err := util.IsFileEmpty(routesPath); err != nil {
		return nil, err
	} else if empty {
		l.Infof("Empty %q file, skipping server start", filepath.ToSlash(filepath.Join(confDir, routesFile)))
		return nil, nil
	}

	if opts.Command == "" {
		return nil, errors.New(StartError{Err: errors.New("no server command configured")})
	}

	var proc *Process

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, "server_start", map[string]any{
		"app_dir": opts.AppDir,
		"spawn":   opts.Spawn,
	}, func(ctx context.Context) error {
		var err error

		proc, err = start(ctx, l, opts, confPath)

		return err
	})
	if err != nil {
		return proc, err
	}

	if opts.Wait {
		if err := WaitUntilReachable(ctx, l, proc.URL, &WaitOptions{
			Process:  proc,
			Interval: opts.WaitInterval,
			Timeout:  opts.WaitTimeout,
		}); err != nil {
			return proc, err
		}
	}

	l.Infof("Server started with pid %d", proc.PID)

	return proc, nil
}

func start(ctx context.Context, l log.Logger, opts *Options, confPath string) (*Process, error) {
	id := opts.FrameworkID()

	appConf, err := LoadAppConfig(confPath, id)
	if err != nil {
		return nil, err
	}

	url, err := appConf.RootURL()
	if err != nil {
		return nil, err
	}

	port, err := appConf.HTTPPort()
	if err != nil {
		return nil, err
	}

	name, args, err := opts.CommandLine()
	if err != nil {
		return nil, err
	}

	pidFile := PIDFilePath(opts.AppDir)

	lock := util.NewLockfile(pidFile + lockFileSuffix)
	if err := lock.Lock(ctx); err != nil {
		return nil, err
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			l.Warnf("Failed to unlock %s: %v", lock.Path(), err)
		}
	}()

	if err := checkNotRunning(pidFile); err != nil {
		return nil, err
	}

	env := map[string]string{
		"TESTGRUNT_APP_ID":    id,
		"TESTGRUNT_APP_DIR":   opts.AppDir,
		"TESTGRUNT_HTTP_PORT": strconv.Itoa(port),
	}

	if traceParent := telemetry.TraceParentFromContext(ctx); traceParent != "" {
		env["TRACEPARENT"] = traceParent
	}

	for key, val := range opts.Env {
		env[key] = val
	}

	cmd := exec.Command(name, args...)
	cmd.Configure(
		exec.WithLogger(l),
		exec.WithDir(opts.AppDir),
		exec.WithEnv(env),
		exec.WithStdin(nil),
	)

	if opts.Spawn {
		cmd.Configure(exec.WithProcessGroup())
	}

	var (
		logFile string
		output  *os.File
	)

	if appConf.RedirectSystemOut() {
		logFile = filepath.Join(opts.AppDir, logsDir, systemOutFile)

		if err := util.EnsureDirectory(filepath.Dir(logFile)); err != nil {
			return nil, err
		}

		if output, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, errors.New(err)
		}

		cmd.Configure(exec.WithOutput(output, output))

		l.Infof("Starting server, output is redirected to %s", logFile)
	} else {
		stdout, stderr := opts.Stdout, opts.Stderr
		if stdout == nil {
			stdout = os.Stdout
		}

		if stderr == nil {
			stderr = os.Stderr
		}

		cmd.Configure(exec.WithOutput(stdout, stderr))

		l.Infof("Starting server")
	}

	if err := runStart(ctx, cmd); err != nil {
		if output != nil {
			output.Close() //nolint:errcheck
		}

		return nil, err
	}

	proc := newProcess(cmd)
	proc.URL = url
	proc.LogFile = logFile
	proc.PIDFile = pidFile
	proc.ID = id
	proc.Spawned = opts.Spawn

	if output != nil {
		proc.output = output
	}

	if !opts.Spawn {
		proc.stop = cmd.RegisterGracefullyShutdown(ctx)
	}

	proc.watch()

	if err := writePIDFile(pidFile, proc.PID); err != nil {
		cmd.SendSignal(cmd.InterruptSignal())
		return nil, err
	}

	l.Debugf("Server process %d started, pid written to %s", proc.PID, pidFile)

	return proc, nil
}

// runStart starts the command on a runner goroutine and joins it. Cancelling ctx during the join is a failure.
func runStart(ctx context.Context, cmd *exec.Cmd) error {
	if err := ctx.Err(); err != nil {
		return errors.New(StartError{Err: errors.Errorf("interrupted: %w", context.Cause(ctx))})
	}

	var runner errgroup.Group

	runner.Go(cmd.Start)

	joined := make(chan error, 1)

	go func() {
		joined <- runner.Wait()
	}()

	select {
	case err := <-joined:
		if err != nil {
			return errors.New(StartError{Err: err})
		}

		return nil
	case <-ctx.Done():
		go func() {
			if err := <-joined; err == nil {
				cmd.SendSignal(cmd.InterruptSignal())
				cmd.Wait() //nolint:errcheck
			}
		}()

		return errors.New(StartError{Err: errors.Errorf("interrupted: %w", context.Cause(ctx))})
	}
}
