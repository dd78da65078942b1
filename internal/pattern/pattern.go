// Package pattern matches slash-separated relative paths against Ant-style include and exclude globs.
//
// Patterns follow the rules of the Ant/plexus directory scanner:
//   - `\` and `/` are both path separators,
//   - a pattern ending with a separator matches everything below that directory (`dir/` is `dir/**`),
//   - `**` matches zero or more directories, so `**/*Test.class` also matches `FooTest.class`,
//   - matching is case-sensitive.
package pattern

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gruntwork-io/testgrunt/internal/errors"
)

// MalformedPatternError is returned when a glob cannot be compiled.
type MalformedPatternError struct {
	Pattern string
}

func (err MalformedPatternError) Error() string {
	return fmt.Sprintf("malformed glob pattern %q", err.Pattern)
}

// Normalize rewrites a user supplied pattern into the slash-separated form the matcher works with.
func Normalize(pattern string) string {
	pattern = strings.ReplaceAll(pattern, `\`, "/")
	pattern = strings.TrimPrefix(pattern, "./")

	if strings.HasSuffix(pattern, "/") {
		pattern += "**"
	}

	return pattern
}

// Set is a compiled pair of include and exclude pattern lists.
type Set struct {
	includes []string
	excludes []string
}

// Compile normalizes and validates the given patterns.
// An empty includes list matches every path; an empty excludes list excludes nothing.
func Compile(includes, excludes []string) (*Set, error) {
	set := &Set{}

	var err error

	if set.includes, err = compileAll(includes); err != nil {
		return nil, err
	}

	if set.excludes, err = compileAll(excludes); err != nil {
		return nil, err
	}

	return set, nil
}

func compileAll(patterns []string) ([]string, error) {
	compiled := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		normalized := Normalize(pattern)
		if normalized == "" || !doublestar.ValidatePattern(normalized) {
			return nil, errors.New(MalformedPatternError{Pattern: pattern})
		}

		compiled = append(compiled, normalized)
	}

	return compiled, nil
}

// Match reports whether the relative path is selected: it matches at least one include
// (or there are none) and no exclude.
func (set *Set) Match(relPath string) bool {
	relPath = strings.ReplaceAll(relPath, `\`, "/")

	return set.IsIncluded(relPath) && !set.IsExcluded(relPath)
}

// IsIncluded reports whether the path matches an include pattern, or whether there are no include patterns.
func (set *Set) IsIncluded(relPath string) bool {
	if len(set.includes) == 0 {
		return true
	}

	return matchAny(set.includes, relPath)
}

// IsExcluded reports whether the path matches an exclude pattern.
func (set *Set) IsExcluded(relPath string) bool {
	return matchAny(set.excludes, relPath)
}

// Includes returns the normalized include patterns.
func (set *Set) Includes() []string {
	return set.includes
}

// Excludes returns the normalized exclude patterns.
func (set *Set) Excludes() []string {
	return set.excludes
}

func matchAny(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		// patterns were validated by Compile, so MatchUnvalidated cannot fail
		if doublestar.MatchUnvalidated(pattern, relPath) {
			return true
		}
	}

	return false
}
