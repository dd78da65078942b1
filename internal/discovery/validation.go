package discovery

import (
	"bytes"
	"os"

	"github.com/gobwas/glob"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/pattern"
	"github.com/gruntwork-io/testgrunt/internal/unit"
)

// JUnit4Marker is the type descriptor of `@org.junit.Test` as it appears in the constant pool of an annotated class file.
const JUnit4Marker = "Lorg/junit/Test;"

// Partition splits units into those accepted by the validator and those it rejects.
// Relative order is preserved in both lists. A nil validator accepts everything.
func Partition(units unit.Units, validator Validator) (accepted, skipped unit.Units) {
	accepted = make(unit.Units, 0, len(units))
	skipped = unit.Units{}

	for _, u := range units {
		if validator == nil || validator.Accept(u) {
			accepted = append(accepted, u)
			continue
		}

		skipped = append(skipped, u)
	}

	return accepted, skipped
}

// NameExcludeValidator rejects units whose dotted name matches one of the globs.
// `*` stays within a name segment and `**` crosses segments, e.g. `**.Abstract*`.
func NameExcludeValidator(globs ...string) (Validator, error) {
	compiled := make([]glob.Glob, 0, len(globs))

	for _, g := range globs {
		c, err := glob.Compile(g, '.')
		if err != nil {
			return nil, errors.New(pattern.MalformedPatternError{Pattern: g})
		}

		compiled = append(compiled, c)
	}

	return ValidatorFunc(func(u *unit.Unit) bool {
		for _, c := range compiled {
			if c.Match(u.Name) {
				return false
			}
		}

		return true
	}), nil
}

// MarkerValidator accepts units whose artifact contains the marker bytes.
// Units whose artifact cannot be read are rejected.
func MarkerValidator(marker string) Validator {
	needle := []byte(marker)

	return ValidatorFunc(func(u *unit.Unit) bool {
		content, err := os.ReadFile(u.Path)
		if err != nil {
			return false
		}

		return bytes.Contains(content, needle)
	})
}

// AllValidators accepts a unit only if every validator does. Nil validators are ignored.
// Returns nil if no validator is left, which accepts everything.
func AllValidators(validators ...Validator) Validator {
	var chain []Validator

	for _, v := range validators {
		if v != nil {
			chain = append(chain, v)
		}
	}

	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	}

	return ValidatorFunc(func(u *unit.Unit) bool {
		for _, v := range chain {
			if !v.Accept(u) {
				return false
			}
		}

		return true
	})
}
