// Package discover provides the `testgrunt discover` command, which finds, filters and orders the test units
// below a directory.
package discover

import (
	"strings"

	"github.com/gruntwork-io/testgrunt/cli/flags"
	"github.com/gruntwork-io/testgrunt/internal/queue"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName  = "discover"
	CommandAlias = "find"

	RootFlagName            = "root"
	IncludeFlagName         = "include"
	ExcludeFlagName         = "exclude"
	RunOrderFlagName        = "run-order"
	SeedFlagName            = "seed"
	ClasspathFlagName       = "classpath"
	SystemClasspathFlagName = "system-classpath"
	ExtensionFlagName       = "extension"
	SkipNameFlagName        = "skip-name"
	RequireMarkerFlagName   = "require-marker"
	FormatFlagName          = "format"
	JSONFlagName            = "json"
	ReportFileFlagName      = "report-file"
	ReportSchemaFlagName    = "report-schema"
)

func NewFlags(opts *Options, prefix flags.Prefix) []cli.Flag {
	tgPrefix := prefix.Prepend(flags.TestgruntPrefix)

	return []cli.Flag{
		&cli.StringFlag{
			Name:        RootFlagName,
			EnvVars:     tgPrefix.EnvVars(RootFlagName),
			Destination: &opts.Root,
			Usage:       "Directory scanned for test units.",
		},
		&cli.StringSliceFlag{
			Name:    IncludeFlagName,
			EnvVars: tgPrefix.EnvVars(IncludeFlagName),
			Usage:   "Glob of the files to include, relative to the root. Can be specified multiple times. --include='' includes everything.",
		},
		&cli.StringSliceFlag{
			Name:    ExcludeFlagName,
			EnvVars: tgPrefix.EnvVars(ExcludeFlagName),
			Usage:   "Glob of the files to exclude, relative to the root. Can be specified multiple times. --exclude='' excludes nothing.",
		},
		&cli.StringFlag{
			Name:        RunOrderFlagName,
			EnvVars:     tgPrefix.EnvVars(RunOrderFlagName),
			Destination: &opts.RunOrder,
			Usage:       "Order of the accepted units: " + strings.Join(queue.RunOrderNames, ", ") + ". Anything else keeps the discovery order.",
		},
		&cli.Int64Flag{
			Name:    SeedFlagName,
			EnvVars: tgPrefix.EnvVars(SeedFlagName),
			Usage:   "Seed of the random run order.",
		},
		&cli.StringSliceFlag{
			Name:    ClasspathFlagName,
			EnvVars: tgPrefix.EnvVars(ClasspathFlagName),
			Usage:   "Directories searched for test units after the root. Globs are expanded.",
		},
		&cli.StringSliceFlag{
			Name:    SystemClasspathFlagName,
			EnvVars: tgPrefix.EnvVars(SystemClasspathFlagName),
			Usage:   "Directories searched before the root; units found there are reported as loaded by the system resolver.",
		},
		&cli.StringSliceFlag{
			Name:    ExtensionFlagName,
			EnvVars: tgPrefix.EnvVars(ExtensionFlagName),
			Usage:   "Artifact extension the resolver looks for.",
		},
		&cli.StringSliceFlag{
			Name:    SkipNameFlagName,
			EnvVars: tgPrefix.EnvVars(SkipNameFlagName),
			Usage:   "Glob of dotted unit names to skip, e.g. **.Abstract*.",
		},
		&cli.StringFlag{
			Name:        RequireMarkerFlagName,
			EnvVars:     tgPrefix.EnvVars(RequireMarkerFlagName),
			Destination: &opts.RequireMarker,
			Usage:       "Only accept units whose artifact contains this string.",
		},
		&cli.StringFlag{
			Name:        FormatFlagName,
			EnvVars:     tgPrefix.EnvVars(FormatFlagName),
			Destination: &opts.Format,
			Value:       opts.Format,
			Usage:       "Output format: text or json.",
		},
		&cli.BoolFlag{
			Name:        JSONFlagName,
			EnvVars:     tgPrefix.EnvVars(JSONFlagName),
			Destination: &opts.JSON,
			Usage:       "Output in JSON format (equivalent to --format=json).",
		},
		&cli.StringFlag{
			Name:        ReportFileFlagName,
			EnvVars:     tgPrefix.EnvVars(ReportFileFlagName),
			Destination: &opts.ReportFile,
			Usage:       "Write the report to this file, as JSON if it ends with .json, CSV otherwise.",
		},
		&cli.StringFlag{
			Name:        ReportSchemaFlagName,
			EnvVars:     tgPrefix.EnvVars(ReportSchemaFlagName),
			Destination: &opts.ReportSchema,
			Usage:       "Write the JSON schema of the report to this file.",
		},
	}
}

func NewCommand(opts *options.TestgruntOptions) *cli.Command {
	cmdOpts := NewOptions(opts)

	return &cli.Command{
		Name:      CommandName,
		Aliases:   []string{CommandAlias},
		Usage:     "Discover, filter and order the test units below a directory.",
		UsageText: "testgrunt discover [options]",
		Flags:     NewFlags(cmdOpts, nil),
		Before: func(ctx *cli.Context) error {
			if ctx.IsSet(SeedFlagName) {
				seed := ctx.Int64(SeedFlagName)
				cmdOpts.Seed = &seed
			}

			cmdOpts.Includes = listFlag(ctx, IncludeFlagName)
			cmdOpts.Excludes = listFlag(ctx, ExcludeFlagName)
			cmdOpts.Classpath = listFlag(ctx, ClasspathFlagName)
			cmdOpts.SystemClasspath = listFlag(ctx, SystemClasspathFlagName)
			cmdOpts.Extensions = listFlag(ctx, ExtensionFlagName)
			cmdOpts.SkipNames = listFlag(ctx, SkipNameFlagName)

			if cmdOpts.JSON {
				cmdOpts.Format = FormatJSON
			}

			if err := cmdOpts.Validate(); err != nil {
				return err
			}

			return nil
		},
		Action: func(ctx *cli.Context) error {
			return Run(ctx.Context, cmdOpts)
		},
	}
}

// listFlag returns the values of a list flag without blank entries, or nil when the flag was not set.
// A flag set only to blank values yields an empty list, which clears the configured list.
func listFlag(ctx *cli.Context, name string) []string {
	if !ctx.IsSet(name) {
		return nil
	}

	vals := []string{}

	for _, val := range ctx.StringSlice(name) {
		if strings.TrimSpace(val) != "" {
			vals = append(vals, val)
		}
	}

	return vals
}
