// Package classpath resolves unit identifiers against an ordered list of root directories,
// delegating to a parent resolver first the way class loaders do.
package classpath

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/unit"
	"github.com/gruntwork-io/testgrunt/util"
	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultExtension is the artifact extension looked up when none is configured.
const DefaultExtension = ".class"

// UnitNotFoundError is returned when no root holds an artifact for the identifier.
type UnitNotFoundError struct {
	Name  string
	Roots []string
}

func (err UnitNotFoundError) Error() string {
	return fmt.Sprintf("test unit %s not found in %s", err.Name, strings.Join(err.Roots, string(filepath.ListSeparator)))
}

// Option configures a Loader.
type Option func(*Loader)

// WithParent makes the loader ask parent before searching its own roots.
func WithParent(parent *Loader) Option {
	return func(loader *Loader) {
		loader.parent = parent
	}
}

// WithExtensions sets the artifact extensions tried for every root, in order. No extensions keeps the default.
func WithExtensions(extensions ...string) Option {
	return func(loader *Loader) {
		if len(extensions) == 0 {
			return
		}

		loader.extensions = make([]string, 0, len(extensions))

		for _, ext := range extensions {
			if ext != "" && !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}

			loader.extensions = append(loader.extensions, ext)
		}
	}
}

// Loader resolves identifiers to artifacts under its roots. It is safe for concurrent use.
type Loader struct {
	parent     *Loader
	cache      *xsync.MapOf[string, *unit.Unit]
	id         string
	roots      []string
	extensions []string
}

// NewLoader creates a loader searching the given roots in order.
func NewLoader(id string, roots []string, opts ...Option) *Loader {
	loader := &Loader{
		id:         id,
		roots:      roots,
		extensions: []string{DefaultExtension},
		cache:      xsync.NewMapOf[string, *unit.Unit](),
	}

	for _, opt := range opts {
		opt(loader)
	}

	return loader
}

// ID implements discovery.Resolver.
func (loader *Loader) ID() string {
	return loader.id
}

// Roots returns the directories searched by this loader, without its parent's.
func (loader *Loader) Roots() []string {
	return loader.roots
}

// Resolve implements discovery.Resolver. Units found by the parent keep the parent's ID as their origin.
func (loader *Loader) Resolve(name string) (*unit.Unit, error) {
	if u, ok := loader.cache.Load(name); ok {
		return u, nil
	}

	if loader.parent != nil {
		if u, err := loader.parent.Resolve(name); err == nil {
			loader.cache.Store(name, u)
			return u, nil
		}
	}

	u, ok := loader.find(name)
	if !ok {
		return nil, errors.New(UnitNotFoundError{Name: name, Roots: loader.allRoots()})
	}

	actual, _ := loader.cache.LoadOrStore(name, u)

	return actual, nil
}

func (loader *Loader) find(name string) (*unit.Unit, bool) {
	if name == "" {
		return nil, false
	}

	rel := filepath.FromSlash(strings.ReplaceAll(name, unit.Separator, "/"))

	for _, root := range loader.roots {
		for _, ext := range loader.extensions {
			path := filepath.Join(root, rel+ext)

			if util.IsFile(path) {
				return &unit.Unit{Name: name, Path: path, Origin: loader.id}, true
			}
		}
	}

	return nil, false
}

func (loader *Loader) allRoots() []string {
	if loader.parent == nil {
		return loader.roots
	}

	return slices.Concat(loader.parent.allRoots(), loader.roots)
}

// ExpandRoots turns classpath entries into absolute directories. Entries are relative to workingDir, may start with `~`
// and may be globs; `**` matches any number of directories.
func ExpandRoots(workingDir string, entries ...string) ([]string, error) {
	roots := make([]string, 0, len(entries))

	for _, entry := range entries {
		for _, part := range filepath.SplitList(entry) {
			if part == "" {
				continue
			}

			paths, err := util.GlobCanonicalPath(workingDir, part)
			if err != nil {
				return nil, err
			}

			roots = append(roots, paths...)
		}
	}

	return roots, nil
}
