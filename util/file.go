// Package util holds small filesystem, retry and locking helpers shared by the commands.
package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/mattn/go-zglob"
	homedir "github.com/mitchellh/go-homedir"
)

// FileExists returns true if the given file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir returns true if the path points to a directory.
func IsDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.IsDir()
}

// IsFile returns true if the path points to a file.
func IsFile(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.Mode().IsRegular()
}

// IsFileEmpty returns true if the file does not exist or has no content.
func IsFileEmpty(path string) (bool, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}

		return false, errors.New(err)
	}

	return fileInfo.Size() == 0, nil
}

// ReadFileAsString returns the contents of the file at the given path as a string.
func ReadFileAsString(path string) (string, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("error reading file at path %s: %w", path, err)
	}

	return string(bytes), nil
}

// EnsureDirectory creates a directory at this path if it does not exist, or error if the path exists and is a file.
func EnsureDirectory(path string) error {
	if FileExists(path) && !IsDir(path) {
		return errors.New(PathIsNotDirectoryError{path: path})
	} else if !FileExists(path) {
		return errors.New(os.MkdirAll(path, os.ModePerm))
	}

	return nil
}

// ExpandHome replaces a leading `~` with the current user's home directory.
func ExpandHome(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.New(err)
	}

	return expanded, nil
}

// CanonicalPath returns the canonical version of the given path, relative to the given base path. That is, if the given path is a
// relative path, assume it is relative to the given base path. A canonical path is an absolute path with all relative
// components (e.g. "../") fully resolved, which makes it safe to compare paths as strings.
func CanonicalPath(path string, basePath string) (string, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(basePath, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errors.New(err)
	}

	return filepath.Clean(absPath), nil
}

// GlobCanonicalPath returns the canonical versions of the given glob paths, relative to the given base path.
// Paths without glob characters are returned as is, whether they exist or not. `**` matches any number of directories.
func GlobCanonicalPath(basePath string, globPaths ...string) ([]string, error) {
	paths := []string{}

	for _, globPath := range globPaths {
		globPath, err := CanonicalPath(globPath, basePath)
		if err != nil {
			return nil, err
		}

		if !HasGlobChars(globPath) {
			paths = append(paths, globPath)
			continue
		}

		// filepath.Glob does not treat ** as zero or more directories, so use a third-party library.
		matches, err := zglob.Glob(globPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, errors.New(err)
		}

		// zglob walks concurrently
		slices.Sort(matches)

		for _, match := range matches {
			paths = append(paths, filepath.Clean(match))
		}
	}

	return paths, nil
}

// HasGlobChars reports whether the path contains glob meta characters.
func HasGlobChars(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// JoinPath joins the elements and forces `/` as the path separator.
func JoinPath(elem ...string) string {
	return filepath.ToSlash(filepath.Join(elem...))
}

// PathIsNotDirectoryError is returned when a directory was expected.
type PathIsNotDirectoryError struct {
	path string
}

func (err PathIsNotDirectoryError) Error() string {
	return err.path + " is not a directory"
}

// WalkDirWithSymlinks walks the file tree rooted at root like filepath.WalkDir, and also descends into
// symlinked directories. Entries below a link are reported under the link's path, not the target's.
// A link whose target contains the link itself or a directory already being walked is reported but not
// followed, which breaks symlink loops.
func WalkDirWithSymlinks(root string, fn fs.WalkDirFunc) error {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		realRoot = root
	}

	return walkDirWithSymlinks(root, root, fn, []string{realRoot}, false)
}

func walkDirWithSymlinks(dir, logicalDir string, fn fs.WalkDirFunc, walking []string, nested bool) error {
	return filepath.WalkDir(dir, func(walkPath string, d fs.DirEntry, err error) error {
		logicalPath := logicalDir

		if walkPath != dir {
			rel, relErr := filepath.Rel(dir, walkPath)
			if relErr != nil {
				return errors.New(relErr)
			}

			logicalPath = filepath.Join(logicalDir, rel)
		} else if nested && err == nil {
			// reported by the parent walk as the link itself
			return nil
		}

		if err != nil || d.Type()&fs.ModeSymlink == 0 {
			return fn(logicalPath, d, err)
		}

		target, evalErr := filepath.EvalSymlinks(walkPath)
		if evalErr != nil {
			return fn(logicalPath, d, nil)
		}

		info, statErr := os.Stat(target)
		if statErr != nil || !info.IsDir() {
			return fn(logicalPath, d, nil)
		}

		if err := fn(logicalPath, fs.FileInfoToDirEntry(info), nil); err != nil {
			if errors.Is(err, filepath.SkipDir) {
				return nil
			}

			return err
		}

		parent, evalErr := filepath.EvalSymlinks(filepath.Dir(walkPath))
		if evalErr != nil {
			parent = filepath.Dir(walkPath)
		}

		for _, active := range append([]string{parent}, walking...) {
			if isWithinDir(active, target) {
				return nil
			}
		}

		return walkDirWithSymlinks(target, logicalPath, fn, append(slices.Clone(walking), target), true)
	})
}

// isWithinDir reports whether path is dir or lies below it.
func isWithinDir(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
