package options

import "fmt"

// ConfigNotFoundError is returned when an explicitly requested config file does not exist.
type ConfigNotFoundError struct {
	Path string
}

func (err ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file %s does not exist", err.Path)
}
