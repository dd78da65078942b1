package discover

import (
	"github.com/gruntwork-io/testgrunt/internal/classpath"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/gruntwork-io/testgrunt/util"
)

const (
	// FormatText prints the units one per line, followed by a summary.
	FormatText = "text"

	// FormatJSON prints the report as a JSON array.
	FormatJSON = "json"
)

// Options are the settings of the discover command. Unset flags leave the config values in place.
type Options struct {
	*options.TestgruntOptions

	Seed *int64

	Root          string
	RunOrder      string
	RequireMarker string

	// Format determines the format of the output.
	Format string

	// ReportFile receives the report as CSV, or as JSON when it ends with `.json`.
	ReportFile string

	// ReportSchema receives the JSON schema of the report.
	ReportSchema string

	Includes        []string
	Excludes        []string
	Classpath       []string
	SystemClasspath []string
	Extensions      []string
	SkipNames       []string

	// JSON is an alias for --format=json.
	JSON bool
}

func NewOptions(opts *options.TestgruntOptions) *Options {
	return &Options{
		TestgruntOptions: opts,
		Format:           FormatText,
	}
}

// Validate checks the command specific settings.
func (o *Options) Validate() error {
	switch o.Format {
	case FormatText, FormatJSON:
		return nil
	default:
		return errors.New(InvalidFormatError{Format: o.Format})
	}
}

// apply overrides the config values with the flags that were set. A list flag set to an empty list clears
// the configured list.
// Paths given as flags are relative to the working dir, paths in the config to the config dir.
func (o *Options) apply() error {
	cfg := o.Config.Discovery

	if o.Root != "" {
		root, err := util.CanonicalPath(o.Root, o.WorkingDir)
		if err != nil {
			return err
		}

		cfg.Root = root
	}

	if o.RunOrder != "" {
		cfg.RunOrder = o.RunOrder
	}

	if o.RequireMarker != "" {
		cfg.RequireMarker = o.RequireMarker
	}

	if o.Seed != nil {
		cfg.Seed = o.Seed
	}

	for _, paths := range []struct {
		dst *[]string
		src []string
	}{
		{dst: &cfg.Classpath, src: o.Classpath},
		{dst: &cfg.SystemClasspath, src: o.SystemClasspath},
	} {
		if paths.src == nil {
			continue
		}

		roots, err := classpath.ExpandRoots(o.WorkingDir, paths.src...)
		if err != nil {
			return err
		}

		*paths.dst = roots
	}

	for _, list := range []struct {
		dst *[]string
		src []string
	}{
		{dst: &cfg.Includes, src: o.Includes},
		{dst: &cfg.Excludes, src: o.Excludes},
		{dst: &cfg.Extensions, src: o.Extensions},
		{dst: &cfg.SkipNames, src: o.SkipNames},
	} {
		if list.src != nil {
			*list.dst = list.src
		}
	}

	return nil
}
