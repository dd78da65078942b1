// Package config reads the `testgrunt.hcl` configuration file.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"time"

	"dario.cat/mergo"
	"github.com/gruntwork-io/testgrunt/internal/discovery"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/pattern"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/gruntwork-io/testgrunt/util"
	"github.com/hashicorp/go-version"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

const (
	// DefaultConfigFile is the config file looked up in the working directory.
	DefaultConfigFile = "testgrunt.hcl"

	DefaultTestID       = "test"
	DefaultWaitInterval = "1s"
	DefaultWaitTimeout  = "60s"
)

var (
	// DefaultIncludes select compiled test classes following the usual naming conventions.
	DefaultIncludes = []string{"**/Test*.class", "**/*Test.class", "**/*Tests.class", "**/*TestCase.class"}
	// DefaultExcludes skip nested classes.
	DefaultExcludes = []string{"**/*$*"}
	// DefaultExtensions are the artifact extensions the classpath resolver looks for.
	DefaultExtensions = []string{".class"}
)

// TestgruntConfig is the decoded form of `testgrunt.hcl`.
type TestgruntConfig struct {
	Discovery       *DiscoveryConfig `hcl:"discovery,block"`
	Server          *ServerConfig    `hcl:"server,block"`
	RequiredVersion string           `hcl:"required_version,optional"`
	dir             string
}

// Dir returns the directory relative paths in the config are resolved against.
func (cfg *TestgruntConfig) Dir() string {
	return cfg.dir
}

// DiscoveryConfig configures test unit discovery.
type DiscoveryConfig struct {
	Seed            *int64   `hcl:"seed,optional"`
	Root            string   `hcl:"root,optional"`
	RunOrder        string   `hcl:"run_order,optional"`
	RequireMarker   string   `hcl:"require_marker,optional"`
	Includes        []string `hcl:"includes,optional"`
	Excludes        []string `hcl:"excludes,optional"`
	Classpath       []string `hcl:"classpath,optional"`
	SystemClasspath []string `hcl:"system_classpath,optional"`
	Extensions      []string `hcl:"extensions,optional"`
	SkipNames       []string `hcl:"skip_names,optional"`
}

// ServerConfig configures the application server started by `testgrunt start`.
type ServerConfig struct {
	Env          map[string]string `hcl:"env,optional"`
	WithTests    *bool             `hcl:"with_tests,optional"`
	Skip         *bool             `hcl:"skip,optional"`
	Spawn        *bool             `hcl:"spawn,optional"`
	Wait         *bool             `hcl:"wait,optional"`
	AppDir       string            `hcl:"app_dir,optional"`
	Command      string            `hcl:"command,optional"`
	ID           string            `hcl:"id,optional"`
	TestID       string            `hcl:"test_id,optional"`
	WaitInterval string            `hcl:"wait_interval,optional"`
	WaitTimeout  string            `hcl:"wait_timeout,optional"`
	Args         []string          `hcl:"args,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *TestgruntConfig {
	return &TestgruntConfig{
		Discovery: &DiscoveryConfig{
			Root:       ".",
			Includes:   slices.Clone(DefaultIncludes),
			Excludes:   slices.Clone(DefaultExcludes),
			Extensions: slices.Clone(DefaultExtensions),
		},
		Server: &ServerConfig{
			AppDir:       ".",
			TestID:       DefaultTestID,
			WithTests:    boolPtr(false),
			Skip:         boolPtr(false),
			Spawn:        boolPtr(true),
			Wait:         boolPtr(false),
			WaitInterval: DefaultWaitInterval,
			WaitTimeout:  DefaultWaitTimeout,
		},
	}
}

// LoadConfig reads the config file at path, falling back to the defaults when the file does not exist.
func LoadConfig(l log.Logger, path string, env map[string]string) (*TestgruntConfig, error) {
	if !util.FileExists(path) {
		l.Debugf("Config file %s not found, using defaults", path)

		cfg := DefaultConfig()

		return cfg, cfg.resolvePaths(filepath.Dir(path))
	}

	return ParseConfigFile(l, path, env)
}

// ParseConfigFile decodes the config file at path, fills in defaults and validates the result.
func ParseConfigFile(l log.Logger, path string, env map[string]string) (*TestgruntConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err)
	}

	l.Debugf("Reading config file %s", path)

	return ParseConfig(path, content, env)
}

// ParseConfig decodes content, named filename for diagnostics, and returns the validated configuration.
// Relative paths are resolved against the directory of filename.
func ParseConfig(filename string, content []byte, env map[string]string) (cfg *TestgruntConfig, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.New(PanicWhileParsingConfigError{RecoveredValue: recovered, ConfigFile: filename})
		}
	}()

	cfg = &TestgruntConfig{}

	if err := hclsimple.Decode(filename, content, NewEvalContext(env), cfg); err != nil {
		return nil, errors.New(err)
	}

	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.resolvePaths(filepath.Dir(filename)); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *TestgruntConfig) fillDefaults() error {
	defaults := DefaultConfig()

	if cfg.Discovery == nil {
		cfg.Discovery = &DiscoveryConfig{}
	}

	if cfg.Server == nil {
		cfg.Server = &ServerConfig{}
	}

	mergeOpts := []func(*mergo.Config){mergo.WithoutDereference, mergo.WithTransformers(listTransformer{})}

	if err := mergo.Merge(cfg.Discovery, defaults.Discovery, mergeOpts...); err != nil {
		return errors.New(err)
	}

	if err := mergo.Merge(cfg.Server, defaults.Server, mergeOpts...); err != nil {
		return errors.New(err)
	}

	return nil
}

// listTransformer keeps a list attribute that is present in the file, even an empty one, so `excludes = []`
// clears the default excludes. mergo only consults it for non-nil lists; absent attributes decode to nil and
// receive the defaults.
type listTransformer struct{}

func (listTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != reflect.TypeOf([]string(nil)) {
		return nil
	}

	return func(_, _ reflect.Value) error {
		return nil
	}
}

func (cfg *TestgruntConfig) resolvePaths(baseDir string) error {
	var err error

	if cfg.dir, err = util.CanonicalPath(baseDir, ""); err != nil {
		return err
	}

	if cfg.Discovery.Root, err = util.CanonicalPath(cfg.Discovery.Root, baseDir); err != nil {
		return err
	}

	if cfg.Server.AppDir, err = util.CanonicalPath(cfg.Server.AppDir, baseDir); err != nil {
		return err
	}

	return nil
}

// Validate collects every problem in the configuration.
func (cfg *TestgruntConfig) Validate() error {
	errs := &errors.MultiError{}

	if cfg.RequiredVersion != "" {
		if _, err := version.NewConstraint(cfg.RequiredVersion); err != nil {
			errs = errs.Append(InvalidConfigValueError{Name: "required_version", Value: cfg.RequiredVersion, Err: err})
		}
	}

	if cfg.Discovery != nil {
		if _, err := pattern.Compile(cfg.Discovery.Includes, cfg.Discovery.Excludes); err != nil {
			errs = errs.Append(err)
		}

		if _, err := discovery.NameExcludeValidator(cfg.Discovery.SkipNames...); err != nil {
			errs = errs.Append(err)
		}
	}

	if cfg.Server != nil {
		if _, err := parseDuration("wait_interval", cfg.Server.WaitInterval); err != nil {
			errs = errs.Append(err)
		}

		if _, err := parseDuration("wait_timeout", cfg.Server.WaitTimeout); err != nil {
			errs = errs.Append(err)
		}
	}

	return errs.ErrorOrNil()
}

// CheckRequiredVersion returns VersionConstraintError when current does not satisfy `required_version`.
func (cfg *TestgruntConfig) CheckRequiredVersion(current string) error {
	if cfg.RequiredVersion == "" {
		return nil
	}

	constraint, err := version.NewConstraint(cfg.RequiredVersion)
	if err != nil {
		return errors.New(InvalidConfigValueError{Name: "required_version", Value: cfg.RequiredVersion, Err: err})
	}

	currentVersion, err := version.NewVersion(current)
	if err != nil {
		// Malformed testgrunt version, e.g. a development build; treat it as 0.0
		if currentVersion, err = version.NewVersion("0.0"); err != nil {
			return errors.New(err)
		}
	}

	if !constraint.Check(currentVersion) {
		return errors.New(VersionConstraintError{CurrentVersion: currentVersion, VersionConstraints: constraint})
	}

	return nil
}

// WaitIntervalDuration returns the parsed `wait_interval`.
func (cfg *ServerConfig) WaitIntervalDuration() time.Duration {
	d, _ := parseDuration("wait_interval", cfg.WaitInterval)
	return d
}

// WaitTimeoutDuration returns the parsed `wait_timeout`.
func (cfg *ServerConfig) WaitTimeoutDuration() time.Duration {
	d, _ := parseDuration("wait_timeout", cfg.WaitTimeout)
	return d
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, InvalidConfigValueError{Name: name, Value: value, Err: err}
	}

	return d, nil
}

func boolPtr(val bool) *bool {
	return &val
}
