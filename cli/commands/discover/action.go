package discover

import (
	"context"

	"github.com/google/uuid"
	"github.com/gruntwork-io/testgrunt/internal/classpath"
	"github.com/gruntwork-io/testgrunt/internal/discovery"
	"github.com/gruntwork-io/testgrunt/internal/queue"
	"github.com/gruntwork-io/testgrunt/internal/report"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/gruntwork-io/testgrunt/util"
)

const (
	// AppResolverID identifies the resolver searching the root and the classpath.
	AppResolverID = "app"
	// SystemResolverID identifies the parent resolver searching the system classpath.
	SystemResolverID = "system"
)

// Run discovers the test units and writes the report.
func Run(ctx context.Context, opts *Options) error {
	l := opts.Logger

	if err := opts.apply(); err != nil {
		return err
	}

	cfg := opts.Config.Discovery

	runOrder, ok := queue.LookupRunOrder(cfg.RunOrder)
	if !ok {
		l.Warnf("Unknown run order %q, keeping the discovery order. Valid run orders: %v", cfg.RunOrder, queue.RunOrderNames)
	}

	resolver, err := newResolver(opts)
	if err != nil {
		return err
	}

	validator, err := newValidator(opts)
	if err != nil {
		return err
	}

	d := discovery.NewDiscovery(cfg.Root).
		WithIncludes(cfg.Includes...).
		WithExcludes(cfg.Excludes...).
		WithRunOrder(runOrder).
		WithValidator(validator)

	if cfg.Seed != nil {
		d = d.WithQueueOptions(queue.WithSeed(*cfg.Seed))
	}

	result, err := d.Discover(ctx, l, resolver)
	if err != nil {
		return err
	}

	if result.IsEmpty() {
		l.Infof("No test units found in %s", opts.RelPath(cfg.Root))
	}

	rep := report.FromResult(result).
		WithRunID(uuid.NewString()).
		WithRoot(cfg.Root)

	return writeReport(l, opts, rep)
}

func writeReport(l log.Logger, opts *Options, rep *report.Report) error {
	if opts.ReportFile != "" {
		path, err := util.CanonicalPath(opts.ReportFile, opts.WorkingDir)
		if err != nil {
			return err
		}

		if err := rep.WriteToFile(path); err != nil {
			return err
		}

		l.Debugf("Report written to %s", path)
	}

	if opts.ReportSchema != "" {
		path, err := util.CanonicalPath(opts.ReportSchema, opts.WorkingDir)
		if err != nil {
			return err
		}

		if err := report.WriteSchemaToFile(path); err != nil {
			return err
		}

		l.Debugf("Report schema written to %s", path)
	}

	if opts.Format == FormatJSON {
		return rep.WriteJSON(opts.Writer)
	}

	colorizer := report.NewColorizer(opts.ShouldColor())

	if err := rep.WriteText(opts.Writer, colorizer); err != nil {
		return err
	}

	return rep.WriteSummary(opts.Writer, colorizer)
}

// newResolver returns the app resolver searching the root then the classpath, delegating to a system resolver
// first when a system classpath is configured.
func newResolver(opts *Options) (*classpath.Loader, error) {
	cfg := opts.Config.Discovery

	appRoots, err := classpath.ExpandRoots(opts.Config.Dir(), cfg.Classpath...)
	if err != nil {
		return nil, err
	}

	loaderOpts := []classpath.Option{classpath.WithExtensions(cfg.Extensions...)}

	if len(cfg.SystemClasspath) > 0 {
		systemRoots, err := classpath.ExpandRoots(opts.Config.Dir(), cfg.SystemClasspath...)
		if err != nil {
			return nil, err
		}

		system := classpath.NewLoader(SystemResolverID, systemRoots, classpath.WithExtensions(cfg.Extensions...))
		loaderOpts = append(loaderOpts, classpath.WithParent(system))
	}

	return classpath.NewLoader(AppResolverID, append([]string{cfg.Root}, appRoots...), loaderOpts...), nil
}

func newValidator(opts *Options) (discovery.Validator, error) {
	cfg := opts.Config.Discovery

	var validators []discovery.Validator

	if len(cfg.SkipNames) > 0 {
		validator, err := discovery.NameExcludeValidator(cfg.SkipNames...)
		if err != nil {
			return nil, err
		}

		validators = append(validators, validator)
	}

	if cfg.RequireMarker != "" {
		validators = append(validators, discovery.MarkerValidator(cfg.RequireMarker))
	}

	return discovery.AllValidators(validators...), nil
}
