package config

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// VersionConstraintError is returned when the running version does not satisfy `required_version`.
type VersionConstraintError struct {
	CurrentVersion     *version.Version
	VersionConstraints version.Constraints
}

func (err VersionConstraintError) Error() string {
	return fmt.Sprintf("The currently running version of testgrunt (%s) is not compatible with the version the config requires (%s).", err.CurrentVersion.String(), err.VersionConstraints.String())
}

// InvalidConfigValueError is returned when an attribute value cannot be used.
type InvalidConfigValueError struct {
	Err   error
	Name  string
	Value string
}

func (err InvalidConfigValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", err.Value, err.Name, err.Err)
}

func (err InvalidConfigValueError) Unwrap() error {
	return err.Err
}

// PanicWhileParsingConfigError is returned when the HCL decoder panics.
type PanicWhileParsingConfigError struct {
	RecoveredValue any
	ConfigFile     string
}

func (err PanicWhileParsingConfigError) Error() string {
	return fmt.Sprintf("Recovering panic while parsing '%s'. Got error of type '%v': %v", err.ConfigFile, fmt.Sprintf("%T", err.RecoveredValue), err.RecoveredValue)
}
