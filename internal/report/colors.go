package report

import (
	"github.com/mgutz/ansi"
)

// Colorizer colors the parts of human readable output.
type Colorizer struct {
	heading  func(string) string
	accepted func(string) string
	skipped  func(string) string
	position func(string) string
	muted    func(string) string
}

// NewColorizer creates a new Colorizer. Without color every function returns its input.
func NewColorizer(shouldColor bool) *Colorizer {
	if !shouldColor {
		plain := func(s string) string { return s }

		return &Colorizer{
			heading:  plain,
			accepted: plain,
			skipped:  plain,
			position: plain,
			muted:    plain,
		}
	}

	return &Colorizer{
		heading:  ansi.ColorFunc("yellow+bh"),
		accepted: ansi.ColorFunc("green+bh"),
		skipped:  ansi.ColorFunc("blue+bh"),
		position: ansi.ColorFunc("cyan+h"),
		muted:    ansi.ColorFunc("gray"),
	}
}

// Heading colors a section title.
func (c *Colorizer) Heading(s string) string { return c.heading(s) }

// Accepted colors a unit that will run.
func (c *Colorizer) Accepted(s string) string { return c.accepted(s) }

// Skipped colors a unit that will not run.
func (c *Colorizer) Skipped(s string) string { return c.skipped(s) }

// Position colors a run position.
func (c *Colorizer) Position(s string) string { return c.position(s) }

// Muted colors secondary details such as paths.
func (c *Colorizer) Muted(s string) string { return c.muted(s) }
