// Package start provides the `testgrunt start` command, which launches the application server and optionally waits
// until it answers HTTP requests.
package start

import (
	"github.com/gruntwork-io/testgrunt/cli/flags"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "start"

	AppDirFlagName       = "app-dir"
	CommandFlagName      = "server-command"
	ArgFlagName          = "server-arg"
	IDFlagName           = "id"
	TestIDFlagName       = "test-id"
	WithTestsFlagName    = "with-tests"
	SkipFlagName         = "skip"
	SpawnFlagName        = "spawn"
	WaitFlagName         = "wait"
	WaitIntervalFlagName = "wait-interval"
	WaitTimeoutFlagName  = "wait-timeout"
	EnvFlagName          = "env"
)

func NewFlags(opts *Options, prefix flags.Prefix) []cli.Flag {
	tgPrefix := prefix.Prepend(flags.TestgruntPrefix)

	return []cli.Flag{
		&cli.StringFlag{
			Name:        AppDirFlagName,
			EnvVars:     tgPrefix.EnvVars(AppDirFlagName),
			Destination: &opts.AppDir,
			Usage:       "Application directory holding conf/application.conf and conf/routes.",
		},
		&cli.StringFlag{
			Name:        CommandFlagName,
			EnvVars:     tgPrefix.EnvVars(CommandFlagName),
			Destination: &opts.Command,
			Usage:       "Executable that runs the server.",
		},
		&cli.StringSliceFlag{
			Name:    ArgFlagName,
			EnvVars: tgPrefix.EnvVars(ArgFlagName),
			Usage:   "Argument passed to the server command. Can be specified multiple times.",
		},
		&cli.StringFlag{
			Name:        IDFlagName,
			EnvVars:     tgPrefix.EnvVars(IDFlagName),
			Destination: &opts.ID,
			Usage:       "Framework id selecting %id.key overrides in application.conf.",
		},
		&cli.StringFlag{
			Name:        TestIDFlagName,
			EnvVars:     tgPrefix.EnvVars(TestIDFlagName),
			Destination: &opts.TestID,
			Usage:       "Framework id used with --with-tests.",
			DefaultText: "test",
		},
		&cli.BoolFlag{
			Name:    WithTestsFlagName,
			EnvVars: tgPrefix.EnvVars(WithTestsFlagName),
			Usage:   "Start the server with the test framework id.",
		},
		&cli.BoolFlag{
			Name:    SkipFlagName,
			EnvVars: tgPrefix.EnvVars("server-skip"),
			Usage:   "Do not start the server.",
		},
		&cli.BoolFlag{
			Name:        SpawnFlagName,
			EnvVars:     tgPrefix.EnvVars(SpawnFlagName),
			Usage:       "Detach the server so it outlives testgrunt. Use --spawn=false to keep it attached.",
			DefaultText: "true",
		},
		&cli.BoolFlag{
			Name:    WaitFlagName,
			EnvVars: tgPrefix.EnvVars(WaitFlagName),
			Usage:   "Wait until the server answers HTTP requests.",
		},
		&cli.DurationFlag{
			Name:        WaitIntervalFlagName,
			EnvVars:     tgPrefix.EnvVars(WaitIntervalFlagName),
			Destination: &opts.WaitInterval,
			Usage:       "Delay between two readiness requests.",
			DefaultText: "1s",
		},
		&cli.DurationFlag{
			Name:        WaitTimeoutFlagName,
			EnvVars:     tgPrefix.EnvVars(WaitTimeoutFlagName),
			Destination: &opts.WaitTimeout,
			Usage:       "How long to wait for the server to answer.",
			DefaultText: "60s",
		},
		&cli.StringSliceFlag{
			Name:    EnvFlagName,
			EnvVars: tgPrefix.EnvVars("server-env"),
			Usage:   "Environment variable passed to the server, as KEY=VALUE. Can be specified multiple times.",
		},
	}
}

func NewCommand(opts *options.TestgruntOptions) *cli.Command {
	cmdOpts := NewOptions(opts)

	return &cli.Command{
		Name:      CommandName,
		Usage:     "Start the application server.",
		UsageText: "testgrunt start [options] [-- server args]",
		Flags:     NewFlags(cmdOpts, nil),
		Before: func(ctx *cli.Context) error {
			for name, dst := range map[string]**bool{
				WithTestsFlagName: &cmdOpts.WithTests,
				SkipFlagName:      &cmdOpts.Skip,
				SpawnFlagName:     &cmdOpts.Spawn,
				WaitFlagName:      &cmdOpts.Wait,
			} {
				if ctx.IsSet(name) {
					val := ctx.Bool(name)
					*dst = &val
				}
			}

			cmdOpts.Args = append(ctx.StringSlice(ArgFlagName), ctx.Args().Slice()...)
			cmdOpts.Env = ctx.StringSlice(EnvFlagName)

			return nil
		},
		Action: func(ctx *cli.Context) error {
			return Run(ctx.Context, cmdOpts)
		},
	}
}
