package main

import (
	"context"
	"os"

	"github.com/gruntwork-io/testgrunt/cli"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/os/exec"
	"github.com/gruntwork-io/testgrunt/internal/os/signal"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/gruntwork-io/testgrunt/pkg/log"
)

// version is set at build time with `-ldflags "-X main.version=..."`.
var version = "dev"

// The main entrypoint for testgrunt
func main() {
	opts := options.NewTestgruntOptions()
	opts.Version = version

	defer errors.Recover(checkForErrorsAndExit(opts.Logger))

	ctx, cancel := signal.NotifyContext(context.Background())
	defer cancel()

	app := cli.NewApp(opts)
	err := app.RunContext(ctx, os.Args)

	checkForErrorsAndExit(opts.Logger)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(logger log.Logger) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Trace(errStack)
		}

		os.Exit(exitCode(err))
	}
}

// exitCode returns the code requested by an ErrorWithExitCode, else the exit code of a failed subprocess, else 1.
func exitCode(err error) int {
	var withCode errors.ErrorWithExitCode
	if errors.As(err, &withCode) && withCode.ExitCode > 0 {
		return withCode.ExitCode
	}

	if code, codeErr := exec.GetExitCode(err); codeErr == nil && code > 0 {
		return code
	}

	return 1
}
