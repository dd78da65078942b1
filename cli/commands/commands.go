// Package commands assembles the testgrunt commands.
package commands

import (
	"github.com/gruntwork-io/testgrunt/cli/commands/discover"
	"github.com/gruntwork-io/testgrunt/cli/commands/start"
	"github.com/gruntwork-io/testgrunt/cli/commands/stop"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/urfave/cli/v2"
)

// NewCommands returns every testgrunt command.
func NewCommands(opts *options.TestgruntOptions) []*cli.Command {
	return []*cli.Command{
		discover.NewCommand(opts),
		start.NewCommand(opts),
		stop.NewCommand(opts),
	}
}
