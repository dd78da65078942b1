// Package stdout provides utilities for working with stdout.
package stdout

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsRedirected returns true if the stdout is redirected.
func IsRedirected() bool {
	return !IsTerminal(os.Stdout)
}

// IsTerminal returns true if w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
