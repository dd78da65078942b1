// Package global defines the flags shared by every testgrunt command.
package global

import (
	"github.com/gruntwork-io/testgrunt/cli/flags"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/gruntwork-io/testgrunt/util"
	"github.com/urfave/cli/v2"
)

const (
	ConfigFlagName     = "config"
	WorkingDirFlagName = "working-dir"
	LogLevelFlagName   = "log-level"
	LogFormatFlagName  = "log-format"
	NoColorFlagName    = "no-color"

	TelemetryTraceExporterFlagName                 = "telemetry-trace-exporter"
	TelemetryTraceExporterHTTPEndpointFlagName     = "telemetry-trace-exporter-http-endpoint"
	TelemetryTraceExporterInsecureEndpointFlagName = "telemetry-trace-exporter-insecure-endpoint"
	TelemetryMetricExporterFlagName                = "telemetry-metric-exporter"
	TelemetryMetricExporterInsecureFlagName        = "telemetry-metric-exporter-insecure-endpoint"
	TraceParentFlagName                            = "traceparent"

	telemetryCategory = "Telemetry"
)

// NewFlags returns the global flags bound to opts.
func NewFlags(opts *options.TestgruntOptions) []cli.Flag {
	prefix := flags.Prefix{flags.TestgruntPrefix}

	return []cli.Flag{
		&cli.StringFlag{
			Name:        ConfigFlagName,
			EnvVars:     prefix.EnvVars(ConfigFlagName),
			Destination: &opts.ConfigPath,
			Value:       opts.ConfigPath,
			Usage:       "Path to the testgrunt config file.",
		},
		&cli.StringFlag{
			Name:        WorkingDirFlagName,
			EnvVars:     prefix.EnvVars(WorkingDirFlagName),
			Destination: &opts.WorkingDir,
			Value:       opts.WorkingDir,
			DefaultText: "current directory",
			Usage:       "The directory relative paths are resolved against.",
		},
		&cli.StringFlag{
			Name:    LogLevelFlagName,
			EnvVars: prefix.EnvVars(LogLevelFlagName),
			Value:   opts.LogLevel.String(),
			Usage:   "Sets the logging level. Supported levels: " + log.AllLevels.String() + ".",
		},
		&cli.StringFlag{
			Name:        LogFormatFlagName,
			EnvVars:     prefix.EnvVars(LogFormatFlagName),
			Destination: &opts.LogFormat,
			Value:       opts.LogFormat,
			Usage:       "Sets the log format: text or json.",
		},
		&cli.BoolFlag{
			Name:        NoColorFlagName,
			EnvVars:     append(prefix.EnvVars(NoColorFlagName), "NO_COLOR"),
			Destination: &opts.DisableColors,
			Usage:       "Disables colored output.",
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterFlagName,
			EnvVars:     prefix.EnvVars(TelemetryTraceExporterFlagName),
			Destination: &opts.Telemetry.TraceExporter,
			Category:    telemetryCategory,
			Usage:       "Traces exporter: none, console, otlpHttp, otlpGrpc or http.",
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterHTTPEndpointFlagName,
			EnvVars:     prefix.EnvVars(TelemetryTraceExporterHTTPEndpointFlagName),
			Destination: &opts.Telemetry.TraceExporterHTTPEndpoint,
			Category:    telemetryCategory,
			Usage:       "Endpoint of the http traces exporter.",
		},
		&cli.BoolFlag{
			Name:        TelemetryTraceExporterInsecureEndpointFlagName,
			EnvVars:     prefix.EnvVars(TelemetryTraceExporterInsecureEndpointFlagName),
			Destination: &opts.Telemetry.TraceExporterInsecureEndpoint,
			Category:    telemetryCategory,
			Usage:       "Send traces without TLS.",
		},
		&cli.StringFlag{
			Name:        TelemetryMetricExporterFlagName,
			EnvVars:     prefix.EnvVars(TelemetryMetricExporterFlagName),
			Destination: &opts.Telemetry.MetricExporter,
			Category:    telemetryCategory,
			Usage:       "Metrics exporter: none, console, otlpHttp or otlpGrpc.",
		},
		&cli.BoolFlag{
			Name:        TelemetryMetricExporterInsecureFlagName,
			EnvVars:     prefix.EnvVars(TelemetryMetricExporterInsecureFlagName),
			Destination: &opts.Telemetry.MetricExporterInsecureEndpoint,
			Category:    telemetryCategory,
			Usage:       "Send metrics without TLS.",
		},
		&cli.StringFlag{
			Name:        TraceParentFlagName,
			EnvVars:     []string{"TRACEPARENT"},
			Destination: &opts.Telemetry.TraceParent,
			Category:    telemetryCategory,
			Usage:       "W3C traceparent the spans of this run are attached to.",
		},
	}
}

// Apply copies the flag values that need parsing into opts.
func Apply(ctx *cli.Context, opts *options.TestgruntOptions) error {
	level, err := log.ParseLevel(ctx.String(LogLevelFlagName))
	if err != nil {
		return errors.New(err)
	}

	opts.LogLevel = level

	if opts.WorkingDir, err = util.CanonicalPath(opts.WorkingDir, ""); err != nil {
		return err
	}

	return nil
}
