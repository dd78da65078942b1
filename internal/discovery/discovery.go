package discovery

import (
	"context"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/pattern"
	"github.com/gruntwork-io/testgrunt/internal/queue"
	"github.com/gruntwork-io/testgrunt/internal/telemetry"
	"github.com/gruntwork-io/testgrunt/internal/unit"
	"github.com/gruntwork-io/testgrunt/pkg/log"
)

// Discovery is the configuration of a discovery pass.
type Discovery struct {
	validator Validator
	root      string
	includes  []string
	excludes  []string
	queueOpts []queue.Option
	runOrder  queue.RunOrder
}

// NewDiscovery creates a new Discovery rooted at the given directory.
func NewDiscovery(root string) *Discovery {
	return &Discovery{
		root: root,
	}
}

// Root returns the directory the pass scans.
func (d *Discovery) Root() string {
	return d.root
}

// Discover runs collect, load, validate and order, in that order.
//
// Every identifier is loaded before anything is validated, and the first identifier that cannot be
// loaded aborts the pass without a partial result. A nil resolver fails with ErrNoResolver before the root is read.
func (d *Discovery) Discover(ctx context.Context, l log.Logger, resolver Resolver) (*Result, error) {
	if resolver == nil {
		return nil, errors.New(ErrNoResolver)
	}

	patterns, err := pattern.Compile(d.includes, d.excludes)
	if err != nil {
		return nil, err
	}

	tlm := telemetry.TelemeterFromContext(ctx)

	var (
		identifiers       []string
		loaded            unit.Units
		accepted, skipped unit.Units
		result            = &Result{}
	)

	err = tlm.Collect(ctx, "discover_collect", map[string]any{
		"root":     d.root,
		"includes": len(d.includes),
		"excludes": len(d.excludes),
	}, func(ctx context.Context) error {
		identifiers, err = CollectCandidates(ctx, l, d.root, patterns)
		return err
	})
	if err != nil {
		return nil, err
	}

	l.Debugf("Collected %d test unit candidates under %s", len(identifiers), d.root)

	err = tlm.Collect(ctx, "discover_load", map[string]any{
		"resolver":   resolver.ID(),
		"candidates": len(identifiers),
	}, func(ctx context.Context) error {
		loaded, err = LoadUnits(ctx, l, resolver, identifiers)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = tlm.Collect(ctx, "discover_validate", map[string]any{
		"units": len(loaded),
	}, func(_ context.Context) error {
		accepted, skipped = Partition(loaded, d.validator)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(skipped) > 0 {
		l.Debugf("Validation skipped %d of %d test units", len(skipped), len(loaded))
	}

	err = tlm.Collect(ctx, "discover_order", map[string]any{
		"run_order": d.runOrder.String(),
		"units":     len(accepted),
	}, func(_ context.Context) error {
		result.Accepted, result.RunOrder = queue.Order(accepted, d.runOrder, d.queueOpts...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.SkippedByValidation = skipped

	l.Debugf("Discovered %d test units in %s order", len(result.Accepted), result.RunOrder)

	return result, nil
}
