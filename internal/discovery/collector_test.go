package discovery_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/testgrunt/internal/discovery"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		relPath  string
		expected string
	}{
		{"FooTest.class", "FooTest"},
		{"a/FooTest.class", "a.FooTest"},
		{"a/b/c/FooTest.class", "a.b.c.FooTest"},
		{"a/Foo.Bar.class", "a.Foo"},
		{"a/Foo$Inner.class", "a.Foo$Inner"},
		{"a/Makefile", "a.Makefile"},
		{"a.b/FooTest.class", "a.b.FooTest"},
	}

	for _, tc := range testCases {
		t.Run(tc.relPath, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, discovery.Identifier(tc.relPath))
		})
	}
}

func TestCollectCandidates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/FooTest.class":   "",
		"a/BarTest.class":   "",
		"a/Helper.class":    "",
		"b/BazTest.class":   "",
		"b/README.txt":      "",
		"RootTest.class":    "",
		"c/d/DeepTest.java": "",
	})

	patterns, err := pattern.Compile([]string{"**/*Test.class"}, []string{"**/Root*"})
	require.NoError(t, err)

	l, _ := newBufferLogger()

	candidates, err := discovery.CollectCandidates(t.Context(), l, root, patterns)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.BarTest", "a.FooTest", "b.BazTest"}, candidates)
}

func TestCollectCandidatesPatternEquivalence(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/FooTest.class": "",
		"a/Helper.class":  "",
		"b/BazTest.class": "",
		"b/notes.txt":     "",
	})

	l, _ := newBufferLogger()

	byInclude, err := pattern.Compile([]string{"**/*Test.class"}, nil)
	require.NoError(t, err)

	byExclude, err := pattern.Compile(nil, []string{"**/Helper.class", "**/*.txt"})
	require.NoError(t, err)

	included, err := discovery.CollectCandidates(t.Context(), l, root, byInclude)
	require.NoError(t, err)

	excluded, err := discovery.CollectCandidates(t.Context(), l, root, byExclude)
	require.NoError(t, err)

	assert.ElementsMatch(t, included, excluded)
	assert.Len(t, included, 2)
}

func TestCollectCandidatesMissingRoot(t *testing.T) {
	t.Parallel()

	patterns, err := pattern.Compile(nil, nil)
	require.NoError(t, err)

	l, _ := newBufferLogger()

	candidates, err := discovery.CollectCandidates(t.Context(), l, filepath.Join(t.TempDir(), "missing"), patterns)
	require.NoError(t, err)
	assert.NotNil(t, candidates)
	assert.Empty(t, candidates)
}

func TestCollectCandidatesRootIsFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"FooTest.class": ""})

	patterns, err := pattern.Compile(nil, nil)
	require.NoError(t, err)

	l, _ := newBufferLogger()

	_, err = discovery.CollectCandidates(t.Context(), l, filepath.Join(root, "FooTest.class"), patterns)

	var rootErr discovery.RootNotDirectoryError
	require.True(t, errors.As(err, &rootErr))
	assert.Equal(t, filepath.Join(root, "FooTest.class"), rootErr.Root)
}

func TestCollectCandidatesDuplicateIdentifiers(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/Foo.class":     "",
		"a/Foo.Bar.class": "",
	})

	patterns, err := pattern.Compile([]string{"**/*.class"}, nil)
	require.NoError(t, err)

	l, buf := newBufferLogger()

	candidates, err := discovery.CollectCandidates(t.Context(), l, root, patterns)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.Foo", "a.Foo"}, candidates)
	assert.Contains(t, buf.String(), "both map to identifier a.Foo")
}

func TestCollectCandidatesCancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/FooTest.class": ""})

	patterns, err := pattern.Compile(nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	l, _ := newBufferLogger()

	_, err = discovery.CollectCandidates(ctx, l, root, patterns)
	require.ErrorIs(t, err, context.Canceled)
}
