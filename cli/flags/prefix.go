// Package flags holds the helpers shared by command flags.
package flags

import (
	"strings"
)

// TestgruntPrefix is prepended to every flag env var.
const TestgruntPrefix = "TESTGRUNT"

// Prefix is a list of words joined into env var and flag names.
type Prefix []string

func (prefix Prefix) Prepend(val string) Prefix {
	return append([]string{val}, prefix...)
}

func (prefix Prefix) Append(val string) Prefix {
	return append(prefix, val)
}

func (prefix Prefix) EnvVar(name string) string {
	name = strings.Join(append(prefix, name), "_")

	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func (prefix Prefix) EnvVars(names ...string) []string {
	var envVars = make([]string, len(names))

	for i := range names {
		envVars[i] = prefix.EnvVar(names[i])
	}

	return envVars
}

func (prefix Prefix) FlagName(name string) string {
	name = strings.Join(append(prefix, name), "-")

	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}
