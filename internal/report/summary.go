package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gruntwork-io/testgrunt/internal/errors"
)

// WriteSummary writes the summary to a writer.
func (r *Report) WriteSummary(w io.Writer, colorizer *Colorizer) error {
	return r.Summarize().Write(w, colorizer)
}

// Write writes the summary to a writer.
func (s *Summary) Write(w io.Writer, colorizer *Colorizer) error {
	if colorizer == nil {
		colorizer = NewColorizer(false)
	}

	lines := []string{
		colorizer.Heading("❯❯ Discovery Summary"),
		fmt.Sprintf("Total Units: %d", s.Total),
		"Run Order: " + s.RunOrder.String(),
	}

	if s.Accepted > 0 {
		lines = append(lines, colorizer.Accepted(fmt.Sprintf("Accepted: %d", s.Accepted)))
	}

	if s.Skipped > 0 {
		lines = append(lines, colorizer.Skipped(fmt.Sprintf("Skipped: %d", s.Skipped)))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.New(err)
		}
	}

	return nil
}

// WriteText writes one line per unit: accepted units with their run position, then skipped units with the reason.
func (r *Report) WriteText(w io.Writer, colorizer *Colorizer) error {
	if colorizer == nil {
		colorizer = NewColorizer(false)
	}

	width := len(strconv.Itoa(len(r.entries)))

	for _, entry := range r.entries {
		var line string

		switch entry.Result {
		case ResultAccepted:
			line = fmt.Sprintf("%s %s %s",
				colorizer.Position(fmt.Sprintf("%*d", width, entry.Position)),
				colorizer.Accepted(entry.Name),
				colorizer.Muted(entry.Path))
		case ResultSkipped:
			reason := ""
			if entry.Reason != nil {
				reason = string(*entry.Reason)
			}

			line = fmt.Sprintf("%*s %s %s",
				width, "-",
				colorizer.Skipped(entry.Name),
				colorizer.Muted("(skipped: "+reason+")"))
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.New(err)
		}
	}

	return nil
}
