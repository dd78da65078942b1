package discover

import "fmt"

// InvalidFormatError is returned for an unsupported --format value.
type InvalidFormatError struct {
	Format string
}

func (err InvalidFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q, valid formats: %s, %s", err.Format, FormatText, FormatJSON)
}
