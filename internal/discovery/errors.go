package discovery

import (
	"fmt"
)

// UnresolvableUnitError is returned when an identifier collected from disk cannot be loaded by the resolver.
// It indicates that the compiled output and the resolver roots are out of sync.
type UnresolvableUnitError struct {
	Err        error
	Identifier string
}

func (err UnresolvableUnitError) Error() string {
	return fmt.Sprintf("unable to load test unit '%s': %v", err.Identifier, err.Err)
}

func (err UnresolvableUnitError) Unwrap() error {
	return err.Err
}

// RootNotDirectoryError is returned when the discovery root exists but is not a directory.
type RootNotDirectoryError struct {
	Root string
}

func (err RootNotDirectoryError) Error() string {
	return fmt.Sprintf("discovery root %s is not a directory", err.Root)
}
