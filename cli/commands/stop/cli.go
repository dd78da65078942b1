// Package stop provides the `testgrunt stop` command, which terminates a server started by `testgrunt start`.
package stop

import (
	"context"

	"github.com/gruntwork-io/testgrunt/cli/flags"
	"github.com/gruntwork-io/testgrunt/internal/server"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/gruntwork-io/testgrunt/util"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "stop"

	AppDirFlagName = "app-dir"
)

func NewCommand(opts *options.TestgruntOptions) *cli.Command {
	var appDir string

	return &cli.Command{
		Name:      CommandName,
		Usage:     "Stop the application server started by `testgrunt start`.",
		UsageText: "testgrunt stop [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        AppDirFlagName,
				EnvVars:     flags.Prefix{flags.TestgruntPrefix}.EnvVars(AppDirFlagName),
				Destination: &appDir,
				Usage:       "Application directory holding server.pid.",
			},
		},
		Action: func(ctx *cli.Context) error {
			return Run(ctx.Context, opts, appDir)
		},
	}
}

// Run stops the server of appDir, or of the configured app dir when appDir is empty.
func Run(ctx context.Context, opts *options.TestgruntOptions, appDir string) error {
	dir := opts.Config.Server.AppDir

	if appDir != "" {
		var err error
		if dir, err = util.CanonicalPath(appDir, opts.WorkingDir); err != nil {
			return err
		}
	}

	return server.Stop(ctx, opts.Logger, dir)
}
