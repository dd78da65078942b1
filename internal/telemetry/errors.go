package telemetry

import (
	"fmt"
	"strings"
)

// MissingEnvVariableError is returned when an exporter needs a setting that was not provided.
type MissingEnvVariableError struct {
	Vars []string
}

func (err *MissingEnvVariableError) Error() string {
	return "missing environment variable: " + strings.Join(err.Vars, ", ")
}

// InvalidTraceParentError is returned when TRACEPARENT cannot be parsed.
type InvalidTraceParentError struct {
	Value string
}

func (err InvalidTraceParentError) Error() string {
	return fmt.Sprintf("invalid TRACEPARENT value %s", err.Value)
}
