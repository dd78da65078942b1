// Package report turns the outcome of a discovery pass into a per-unit report that can be written as CSV or JSON,
// and summarized for humans.
package report

import (
	"github.com/gruntwork-io/testgrunt/internal/discovery"
	"github.com/gruntwork-io/testgrunt/internal/queue"
)

// Result captures whether a unit will run.
type Result string

// Reason captures why a unit will not run.
type Reason string

const (
	ResultAccepted Result = "accepted"
	ResultSkipped  Result = "skipped"
)

const (
	ReasonValidation Reason = "validation"
)

// Entry is the report line for a single unit.
type Entry struct {
	Reason   *Reason
	Name     string
	Path     string
	Origin   string
	Result   Result
	Position int
}

// Report captures the units of one discovery pass.
type Report struct {
	RunID    string
	Root     string
	RunOrder queue.RunOrder
	entries  []*Entry
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		entries: make([]*Entry, 0),
	}
}

// WithRunID tags the report with the ID of the run that produced it.
func (r *Report) WithRunID(id string) *Report {
	r.RunID = id
	return r
}

// WithRoot records the directory that was scanned.
func (r *Report) WithRoot(root string) *Report {
	r.Root = root
	return r
}

// FromResult builds a report from a discovery result: accepted units first, in run order, numbered from 1,
// then the units skipped by validation in load order.
func FromResult(result *discovery.Result) *Report {
	r := NewReport()
	r.RunOrder = result.RunOrder

	for i, u := range result.Accepted {
		r.entries = append(r.entries, &Entry{
			Name:     u.Name,
			Path:     u.Path,
			Origin:   u.Origin,
			Result:   ResultAccepted,
			Position: i + 1,
		})
	}

	reason := ReasonValidation

	for _, u := range result.SkippedByValidation {
		r.entries = append(r.entries, &Entry{
			Name:   u.Name,
			Path:   u.Path,
			Origin: u.Origin,
			Result: ResultSkipped,
			Reason: &reason,
		})
	}

	return r
}

// Entries returns the report lines in report order.
func (r *Report) Entries() []*Entry {
	return r.entries
}

// Summary holds the totals of a report.
type Summary struct {
	RunOrder queue.RunOrder
	Total    int
	Accepted int
	Skipped  int
}

// Summarize returns a summary of the report.
func (r *Report) Summarize() *Summary {
	summary := &Summary{
		Total:    len(r.entries),
		RunOrder: r.RunOrder,
	}

	for _, entry := range r.entries {
		switch entry.Result {
		case ResultAccepted:
			summary.Accepted++
		case ResultSkipped:
			summary.Skipped++
		}
	}

	return summary
}
