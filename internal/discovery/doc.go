// Package discovery finds the compiled test units under a root directory and decides which of them run, and in what order.
//
// # Overview
//
// A discovery pass is a strict pipeline:
//
//  1. Collect: walk the root directory and turn every file matched by the include/exclude patterns
//     into a unit identifier (see [Identifier]).
//  2. Load: resolve every identifier into a [unit.Unit] through the caller's [Resolver].
//     The first identifier that cannot be resolved aborts the pass with an [UnresolvableUnitError].
//  3. Validate: partition the loaded units with the optional [Validator] into accepted units and
//     units skipped by validation.
//  4. Order: arrange the accepted units according to the [queue.RunOrder].
//
// The skipped units are reported in load order and are never reordered.
//
// # Identifiers
//
// An identifier is the path relative to the root with the file's base name cut at its first dot and
// every path separator replaced by [unit.Separator], so `a/b/FooTest.class` becomes `a.b.FooTest`.
// Because the cut happens at the first dot, `a/Foo.Bar.class` and `a/Foo.class` both become `a.Foo`.
// Both are kept as separate candidates and a warning is logged; they are resolved independently.
//
// The walk follows symlinked directories and names their files by the path through the link. A link
// pointing back into a directory being walked is not followed.
//
// # Concurrency
//
// A pass is synchronous and single-threaded. Resolvers are shared, mutable collaborators: do not run
// concurrent passes against the same resolver unless the resolver is safe for concurrent use.
package discovery
