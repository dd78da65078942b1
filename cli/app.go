// Package cli wires the testgrunt commands into a CLI app.
package cli

import (
	"context"

	"github.com/gruntwork-io/testgrunt/cli/commands"
	"github.com/gruntwork-io/testgrunt/cli/flags/global"
	"github.com/gruntwork-io/testgrunt/internal/telemetry"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/urfave/cli/v2"
)

const AppName = "testgrunt"

// App is the testgrunt CLI app.
type App struct {
	*cli.App
	opts      *options.TestgruntOptions
	telemeter *telemetry.Telemeter
}

// NewApp creates the testgrunt CLI app.
func NewApp(opts *options.TestgruntOptions) *App {
	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Discovers and orders compiled test units, and starts the application server they run against."
	app.UsageText = "testgrunt <command> [global options]"
	app.Version = opts.Version
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Flags = global.NewFlags(opts)
	app.Commands = commands.NewCommands(opts)
	app.Suggest = true
	// errors are printed and turned into an exit code by the caller
	app.ExitErrHandler = func(*cli.Context, error) {}

	tgApp := &App{App: app, opts: opts}
	app.Before = tgApp.before
	app.After = tgApp.after

	return tgApp
}

// RunContext runs the app with the given arguments, args[0] being the program name.
func (app *App) RunContext(ctx context.Context, args []string) error {
	ctx = log.ContextWithLogger(ctx, app.opts.Logger)

	return app.App.RunContext(ctx, args)
}

func (app *App) before(ctx *cli.Context) error {
	opts := app.opts

	if err := global.Apply(ctx, opts); err != nil {
		return err
	}

	if err := opts.ConfigureLogger(); err != nil {
		return err
	}

	opts.Logger.Debugf("testgrunt version: %s", opts.Version)

	if err := opts.LoadConfig(ctx.IsSet(global.ConfigFlagName)); err != nil {
		return err
	}

	telemeter, err := telemetry.NewTelemeter(ctx.Context, AppName, opts.Version, opts.ErrWriter, opts.Telemetry)
	if err != nil {
		return err
	}

	app.telemeter = telemeter
	ctx.Context = telemetry.ContextWithTelemeter(ctx.Context, telemeter)

	return nil
}

func (app *App) after(ctx *cli.Context) error {
	if app.telemeter == nil {
		return nil
	}

	return app.telemeter.Shutdown(context.WithoutCancel(ctx.Context))
}
