package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a logger.
type Option func(logger *logger)

// WithLevel sets the minimum level of emitted entries.
func WithLevel(level Level) Option {
	return func(logger *logger) {
		logger.Logger.SetLevel(level.ToLogrusLevel())
	}
}

// WithOutput sets the destination of log entries.
func WithOutput(output io.Writer) Option {
	return func(logger *logger) {
		logger.Logger.SetOutput(output)
	}
}

// WithFormatter replaces the entry formatter.
func WithFormatter(formatter logrus.Formatter) Option {
	return func(logger *logger) {
		logger.Logger.SetFormatter(formatter)
	}
}

// WithHooks registers logrus hooks.
func WithHooks(hooks ...logrus.Hook) Option {
	return func(logger *logger) {
		for _, hook := range hooks {
			logger.Logger.AddHook(hook)
		}
	}
}
