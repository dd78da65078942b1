package discovery

import (
	"github.com/gruntwork-io/testgrunt/internal/queue"
	"github.com/gruntwork-io/testgrunt/internal/unit"
)

//go:generate mockgen -source=types.go -destination=mocks/resolver.go -package=mocks Resolver

// Resolver turns an identifier into a loaded unit.
type Resolver interface {
	// Resolve returns the unit for the given identifier, or an error if it cannot be loaded.
	Resolve(name string) (*unit.Unit, error)
	// ID identifies the resolver. Units carry the ID of the resolver that produced them in [unit.Unit.Origin].
	ID() string
}

// Validator decides whether a loaded unit is runnable.
type Validator interface {
	Accept(u *unit.Unit) bool
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(u *unit.Unit) bool

// Accept implements Validator. A nil function accepts everything.
func (fn ValidatorFunc) Accept(u *unit.Unit) bool {
	if fn == nil {
		return true
	}

	return fn(u)
}

// Result is the outcome of one discovery pass.
type Result struct {
	// Accepted holds the units to run, in run order.
	Accepted unit.Units
	// SkippedByValidation holds the units rejected by the validator, in load order.
	SkippedByValidation unit.Units
	// RunOrder is the order that was applied, with `hourly` already resolved.
	RunOrder queue.RunOrder
}

// IsEmpty returns true if the pass found nothing at all.
func (result *Result) IsEmpty() bool {
	return len(result.Accepted) == 0 && len(result.SkippedByValidation) == 0
}
