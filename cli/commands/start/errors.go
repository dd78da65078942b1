package start

import "fmt"

// InvalidEnvError is returned for an --env value that is not of the form KEY=VALUE.
type InvalidEnvError struct {
	Value string
}

func (err InvalidEnvError) Error() string {
	return fmt.Sprintf("invalid env %q, expected KEY=VALUE", err.Value)
}
