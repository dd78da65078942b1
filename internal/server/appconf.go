package server

import (
	"strconv"
	"strings"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"gopkg.in/ini.v1"
)

const (
	DefaultHTTPPort = 9000

	keyHTTPPort        = "http.port"
	keyHTTPPath        = "http.path"
	keyLogSystemOut    = "application.log.system.out"
	frameworkKeyPrefix = "%"
)

// AppConfig is the application configuration, `conf/application.conf`, seen through a framework id.
// A `%<id>.<key>` entry overrides `<key>`.
type AppConfig struct {
	section *ini.Section
	id      string
}

// LoadAppConfig parses the configuration file for the given framework id.
func LoadAppConfig(path, id string) (*AppConfig, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, errors.New(err)
	}

	return &AppConfig{section: file.Section(ini.DefaultSection), id: id}, nil
}

// ID returns the framework id the configuration is read for.
func (cfg *AppConfig) ID() string {
	return cfg.id
}

// Property returns the value of key, preferring the framework id override.
func (cfg *AppConfig) Property(key string) string {
	if cfg.id != "" {
		if override := frameworkKeyPrefix + cfg.id + "." + key; cfg.section.HasKey(override) {
			return strings.TrimSpace(cfg.section.Key(override).String())
		}
	}

	if cfg.section.HasKey(key) {
		return strings.TrimSpace(cfg.section.Key(key).String())
	}

	return ""
}

// HTTPPort returns the configured port, or DefaultHTTPPort.
func (cfg *AppConfig) HTTPPort() (int, error) {
	value := cfg.Property(keyHTTPPort)
	if value == "" {
		return DefaultHTTPPort, nil
	}

	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Errorf("invalid %s %q: %w", keyHTTPPort, value, err)
	}

	return port, nil
}

// RootURL returns the URL the running server answers on, `http://localhost:<port><path>`.
func (cfg *AppConfig) RootURL() (string, error) {
	port, err := cfg.HTTPPort()
	if err != nil {
		return "", err
	}

	path := cfg.Property(keyHTTPPath)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return "http://localhost:" + strconv.Itoa(port) + path, nil
}

// RedirectSystemOut reports whether server output goes to `logs/system.out`. Only `false` and `off` disable it.
func (cfg *AppConfig) RedirectSystemOut() bool {
	value := cfg.Property(keyLogSystemOut)

	return value != "false" && value != "off"
}
