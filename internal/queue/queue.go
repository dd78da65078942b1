// Package queue decides the order in which accepted test units run.
//
// The run order is one of a closed set of policies:
//   - natural: keep the order units were discovered in,
//   - alphabetical: stable sort by fully-qualified name, byte-wise ascending,
//   - reversealphabetical: the same comparator inverted,
//   - hourly: alphabetical on even local hours, reversealphabetical on odd ones, decided once per call,
//   - random: a uniform shuffle, unseeded unless WithSeed is given.
package queue

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/unit"
)

// RunOrder is a run order policy.
type RunOrder int

const (
	// Natural keeps the discovery order.
	Natural RunOrder = iota
	// Alphabetical sorts by name, ascending.
	Alphabetical
	// ReverseAlphabetical sorts by name, descending.
	ReverseAlphabetical
	// Hourly picks Alphabetical or ReverseAlphabetical from the parity of the current hour.
	Hourly
	// Random shuffles the units.
	Random
)

var runOrderNames = map[RunOrder]string{
	Natural:             "",
	Alphabetical:        "alphabetical",
	ReverseAlphabetical: "reversealphabetical",
	Hourly:              "hourly",
	Random:              "random",
}

// RunOrderNames lists the recognized run order literals.
var RunOrderNames = []string{
	runOrderNames[Alphabetical],
	runOrderNames[ReverseAlphabetical],
	runOrderNames[Hourly],
	runOrderNames[Random],
}

// ParseRunOrder maps a literal onto a RunOrder. The match is exact and case-sensitive;
// any other value, including the empty string, is Natural.
func ParseRunOrder(name string) RunOrder {
	order, _ := LookupRunOrder(name)
	return order
}

// LookupRunOrder is like ParseRunOrder but also reports whether the literal was recognized.
// The empty string is recognized as Natural.
func LookupRunOrder(name string) (RunOrder, bool) {
	for order, orderName := range runOrderNames {
		if orderName == name {
			return order, true
		}
	}

	return Natural, false
}

// String implements fmt.Stringer. Natural renders as "natural".
func (order RunOrder) String() string {
	if order == Natural {
		return "natural"
	}

	return runOrderNames[order]
}

// Resolve returns the concrete order to apply at the given time. Only Hourly depends on the time.
func (order RunOrder) Resolve(now time.Time) RunOrder {
	if order != Hourly {
		return order
	}

	if now.Hour()%2 == 0 {
		return Alphabetical
	}

	return ReverseAlphabetical
}

// Option configures Order.
type Option func(*config)

type config struct {
	clock func() time.Time
	rand  *rand.Rand
}

// WithClock replaces the clock used to resolve Hourly.
func WithClock(clock func() time.Time) Option {
	return func(cfg *config) {
		cfg.clock = clock
	}
}

// WithSeed makes Random reproducible.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.rand = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
}

// Order returns the units arranged by the given policy, and the policy that was actually applied.
// The input slice is never modified.
func Order(units unit.Units, order RunOrder, opts ...Option) (unit.Units, RunOrder) {
	cfg := &config{clock: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	ordered := units.Clone()
	order = order.Resolve(cfg.clock())

	switch order {
	case Alphabetical:
		slices.SortStableFunc(ordered, compareNames)
	case ReverseAlphabetical:
		slices.SortStableFunc(ordered, func(a, b *unit.Unit) int {
			return compareNames(b, a)
		})
	case Random:
		shuffle := rand.Shuffle
		if cfg.rand != nil {
			shuffle = cfg.rand.Shuffle
		}

		shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	case Natural, Hourly:
	}

	return ordered, order
}

func compareNames(a, b *unit.Unit) int {
	return strings.Compare(a.Name, b.Name)
}
