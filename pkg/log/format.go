package log

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	// FormatText renders human readable lines.
	FormatText = "text"
	// FormatJSON renders one JSON object per entry.
	FormatJSON = "json"
)

// NewTextFormatter returns the default human readable formatter.
func NewTextFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	}
}

// NewJSONFormatter returns a formatter emitting one JSON object per entry.
func NewJSONFormatter() logrus.Formatter {
	return &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "msg",
		},
	}
}

// ParseFormat returns the formatter registered under name.
func ParseFormat(name string) (logrus.Formatter, error) {
	switch name {
	case "", FormatText:
		return NewTextFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("invalid log format %q, supported formats: %s, %s", name, FormatText, FormatJSON)
	}
}
