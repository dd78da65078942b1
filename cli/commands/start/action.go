package start

import (
	"context"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/os/exec"
	"github.com/gruntwork-io/testgrunt/internal/server"
)

// Run starts the server. A spawned server keeps running after Run returns; an attached one is waited for and
// stopped when ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	l := opts.Logger

	serverOpts, err := opts.ServerOptions()
	if err != nil {
		return err
	}

	proc, err := server.Start(ctx, l, serverOpts)
	if err != nil {
		if proc != nil && !proc.Spawned {
			proc.Terminate()
			<-proc.Exited()

			if releaseErr := proc.Release(); releaseErr != nil {
				l.Warnf("Failed to remove %s: %v", proc.PIDFile, releaseErr)
			}
		}

		return err
	}

	if proc == nil || proc.Spawned {
		return nil
	}

	l.Infof("Server is attached, press Ctrl+C to stop it")

	waitErr := proc.Wait()

	if err := proc.Release(); err != nil {
		return err
	}

	if ctx.Err() != nil {
		l.Infof("Server stopped")
		return nil
	}

	if waitErr != nil {
		code, codeErr := exec.GetExitCode(waitErr)
		if codeErr != nil {
			return errors.New(server.ProcessExitedError{PID: proc.PID, Err: waitErr})
		}

		return errors.New(errors.ErrorWithExitCode{Err: server.ProcessExitedError{PID: proc.PID, Err: waitErr}, ExitCode: code})
	}

	return nil
}
