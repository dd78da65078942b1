package discovery

import (
	"context"
	stderrors "errors"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/unit"
	"github.com/gruntwork-io/testgrunt/pkg/log"
)

var (
	// ErrNoUnit is the cause reported when a resolver returns neither a unit nor an error.
	ErrNoUnit = stderrors.New("resolver returned no unit")
	// ErrNoResolver is returned by Discover when it is called without a resolver.
	ErrNoResolver = stderrors.New("no resolver given")
)

// LoadUnit resolves a single identifier.
//
// A unit produced by a resolver other than the given one is still returned, but a warning is logged.
func LoadUnit(l log.Logger, resolver Resolver, identifier string) (*unit.Unit, error) {
	u, err := resolver.Resolve(identifier)
	if err == nil && u == nil {
		err = ErrNoUnit
	}

	if err != nil {
		return nil, errors.New(UnresolvableUnitError{Identifier: identifier, Err: err})
	}

	if expected := resolver.ID(); u.Origin != expected {
		l.Warnf("Test unit %s not loaded by resolver %s (loaded by %s). This may cause unexpected problems.", u.Name, expected, u.Origin)
	}

	return u, nil
}

// LoadUnits resolves every identifier, in order, stopping at the first failure.
func LoadUnits(ctx context.Context, l log.Logger, resolver Resolver, identifiers []string) (unit.Units, error) {
	units := make(unit.Units, 0, len(identifiers))

	for _, identifier := range identifiers {
		if err := ctx.Err(); err != nil {
			return nil, errors.New(err)
		}

		u, err := LoadUnit(l, resolver, identifier)
		if err != nil {
			return nil, err
		}

		units = append(units, u)
	}

	return units, nil
}
