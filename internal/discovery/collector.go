package discovery

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/pattern"
	"github.com/gruntwork-io/testgrunt/internal/unit"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/gruntwork-io/testgrunt/util"
)

// Identifier converts a path relative to the discovery root into a unit identifier.
//
// The base name is cut at its first dot, not its last, so `Foo.Bar.class` yields `Foo`.
// A base name without a dot is used whole.
func Identifier(relPath string) string {
	dir, base := path.Split(filepath.ToSlash(relPath))

	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}

	return strings.ReplaceAll(dir+base, "/", unit.Separator)
}

// CollectCandidates walks root and returns the identifiers of all files selected by the pattern set, in walk order.
// A root that does not exist yields no candidates and no error. Symlinked directories are followed and their
// files are matched by their path through the link.
func CollectCandidates(ctx context.Context, l log.Logger, root string, patterns *pattern.Set) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			l.Debugf("Discovery root %s does not exist, no test units to collect", root)
			return []string{}, nil
		}

		return nil, errors.New(err)
	}

	if !info.IsDir() {
		return nil, errors.New(RootNotDirectoryError{Root: root})
	}

	var (
		candidates = []string{}
		seen       = make(map[string]string)
	)

	err = util.WalkDirWithSymlinks(root, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() || !isFileEntry(walkPath, d) {
			return nil
		}

		relPath, err := filepath.Rel(root, walkPath)
		if err != nil {
			return err
		}

		relPath = filepath.ToSlash(relPath)

		if !patterns.Match(relPath) {
			return nil
		}

		identifier := Identifier(relPath)

		if previous, ok := seen[identifier]; ok {
			l.Warnf("Test units %s and %s both map to identifier %s, each will be loaded separately", previous, relPath, identifier)
		} else {
			seen[identifier] = relPath
		}

		l.Tracef("Collected test unit candidate %s from %s", identifier, relPath)

		candidates = append(candidates, identifier)

		return nil
	})
	if err != nil {
		return nil, errors.New(err)
	}

	return candidates, nil
}

// isFileEntry reports whether the entry is a file, following symlinks.
func isFileEntry(walkPath string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}

	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(walkPath)

	return err == nil && info.Mode().IsRegular()
}
