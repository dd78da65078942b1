package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gruntwork-io/testgrunt/cli"
	"github.com/gruntwork-io/testgrunt/cli/commands/discover"
	"github.com/gruntwork-io/testgrunt/internal/discovery"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/report"
	"github.com/gruntwork-io/testgrunt/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// newProject creates a working dir with compiled test classes under `classes`.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	writeFiles(t, dir, map[string]string{
		"classes/a/FooTest.class":       "Lorg/junit/Test;",
		"classes/a/FooTest$Inner.class": "",
		"classes/a/BarTest.class":       "Lorg/junit/Test;",
		"classes/a/Helper.class":        "",
		"classes/b/BazTest.class":       "",
	})

	return dir
}

func runApp(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	opts := options.NewTestgruntOptionsWithWriters(&stdout, &stderr)
	opts.Env = map[string]string{}
	opts.Version = "0.1.0"

	app := cli.NewApp(opts)
	err := app.RunContext(t.Context(), append([]string{"testgrunt", "--working-dir", dir}, args...))

	return stdout.String(), stderr.String(), err
}

func TestDiscoverText(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	classes := filepath.Join(dir, "classes")

	stdout, _, err := runApp(t, dir, "discover", "--root", "classes", "--run-order", "alphabetical")
	require.NoError(t, err)

	expected := strings.Join([]string{
		"1 a.BarTest " + filepath.Join(classes, "a", "BarTest.class"),
		"2 a.FooTest " + filepath.Join(classes, "a", "FooTest.class"),
		"3 b.BazTest " + filepath.Join(classes, "b", "BazTest.class"),
		"❯❯ Discovery Summary",
		"Total Units: 3",
		"Run Order: alphabetical",
		"Accepted: 3",
		"",
	}, "\n")

	assert.Equal(t, expected, stdout)
}

func TestDiscoverEmptyExcludes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		config string
		args   []string
	}{
		{
			name: "flag",
			args: []string{"--include", "**/*.class", "--exclude="},
		},
		{
			name:   "config",
			config: "discovery {\n  includes = [\"**/*.class\"]\n  excludes = []\n}\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)

			if tc.config != "" {
				writeFiles(t, dir, map[string]string{"testgrunt.hcl": tc.config})
			}

			args := append([]string{"discover", "--root", "classes", "--run-order", "alphabetical"}, tc.args...)

			stdout, _, err := runApp(t, dir, args...)
			require.NoError(t, err)

			assert.Contains(t, stdout, "a.FooTest$Inner ")
			assert.Contains(t, stdout, "a.Helper ")
			assert.Contains(t, stdout, "Total Units: 5")
		})
	}

	dir := newProject(t)

	stdout, _, err := runApp(t, dir, "discover", "--root", "classes", "--include", "**/*.class")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "a.FooTest$Inner")
}

func TestDiscoverFindAlias(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	stdout, _, err := runApp(t, dir, "find", "--root", "classes", "--run-order", "reversealphabetical")
	require.NoError(t, err)

	lines := strings.Split(stdout, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "b.BazTest")
	assert.Contains(t, lines[1], "a.FooTest")
	assert.Contains(t, lines[2], "a.BarTest")
}

func TestDiscoverJSON(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	stdout, _, err := runApp(t, dir, "discover", "--root", "classes", "--json", "--skip-name", "**.Baz*")
	require.NoError(t, err)

	require.NoError(t, report.ValidateJSON([]byte(stdout)))

	var entries []report.JSONEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 3)

	assert.Equal(t, "a.BarTest", entries[0].Name)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "app", entries[0].Origin)
	assert.Equal(t, "a.FooTest", entries[1].Name)
	assert.Equal(t, 2, entries[1].Position)
	assert.Equal(t, "b.BazTest", entries[2].Name)
	assert.Equal(t, string(report.ResultSkipped), entries[2].Result)
	require.NotNil(t, entries[2].Reason)
	assert.Equal(t, string(report.ReasonValidation), *entries[2].Reason)
}

func TestDiscoverRequireMarker(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	stdout, _, err := runApp(t, dir, "discover", "--root", "classes", "--require-marker", "Lorg/junit/Test;")
	require.NoError(t, err)

	assert.Contains(t, stdout, "- b.BazTest (skipped: validation)")
	assert.Contains(t, stdout, "Accepted: 2")
	assert.Contains(t, stdout, "Skipped: 1")
}

func TestDiscoverReportFiles(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	_, _, err := runApp(t, dir, "discover", "--root", "classes", "--report-file", "report.csv", "--report-schema", "schema.json")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "report.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name,Path,Origin,Result,Reason,Position", lines[0])

	schema, err := os.ReadFile(filepath.Join(dir, "schema.json"))
	require.NoError(t, err)
	assert.Contains(t, string(schema), `"type": "array"`)
}

func TestDiscoverConfigFile(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	writeFiles(t, dir, map[string]string{
		"testgrunt.hcl": `
discovery {
  root      = "classes"
  run_order = "reversealphabetical"
  excludes  = ["**/*$*", "b/**"]
}
`,
	})

	stdout, _, err := runApp(t, dir, "discover")
	require.NoError(t, err)

	lines := strings.Split(stdout, "\n")
	assert.Contains(t, lines[0], "1 a.FooTest")
	assert.Contains(t, lines[1], "2 a.BarTest")
	assert.Contains(t, stdout, "Total Units: 2")

	stdout, _, err = runApp(t, dir, "discover", "--run-order", "alphabetical")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(stdout, "\n")[0], "1 a.BarTest")
}

func TestDiscoverUnknownRunOrder(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	stdout, stderr, err := runApp(t, dir, "discover", "--root", "classes", "--run-order", "Alphabetical")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Unknown run order")
	assert.Contains(t, stdout, "Run Order: natural")
}

func TestDiscoverSystemClasspath(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	writeFiles(t, dir, map[string]string{
		"system/a/FooTest.class": "",
	})

	stdout, stderr, err := runApp(t, dir, "discover", "--root", "classes", "--system-classpath", "system", "--json")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Test unit a.FooTest not loaded by resolver app (loaded by system)")
	assert.Contains(t, stdout, filepath.ToSlash(filepath.Join("system", "a", "FooTest.class")))
}

func TestDiscoverUnresolvable(t *testing.T) {
	t.Parallel()

	dir := newProject(t)

	writeFiles(t, dir, map[string]string{
		"classes/c/Outer.InnerTest.class": "",
	})

	stdout, _, err := runApp(t, dir, "discover", "--root", "classes", "--include", "**/*Test.class")
	require.Error(t, err)

	var unresolvable discovery.UnresolvableUnitError
	require.True(t, errors.As(err, &unresolvable), "%v", err)
	assert.Equal(t, "c.Outer", unresolvable.Identifier)
	assert.Empty(t, stdout)
}

func TestDiscoverEmptyRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdout, stderr, err := runApp(t, dir, "discover", "--root", "missing")
	require.NoError(t, err)

	assert.Contains(t, stderr, "No test units found in missing")
	assert.Contains(t, stdout, "Total Units: 0")
}

func TestDiscoverInvalidSettings(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		check func(t *testing.T, err error)
		name  string
		args  []string
	}{
		{
			name: "format",
			args: []string{"discover", "--format", "xml"},
			check: func(t *testing.T, err error) {
				t.Helper()

				var formatErr discover.InvalidFormatError
				assert.True(t, errors.As(err, &formatErr), "%v", err)
			},
		},
		{
			name: "missing config",
			args: []string{"--config", "nope.hcl", "discover"},
			check: func(t *testing.T, err error) {
				t.Helper()

				var notFound options.ConfigNotFoundError
				assert.True(t, errors.As(err, &notFound), "%v", err)
			},
		},
		{
			name: "log level",
			args: []string{"--log-level", "loud", "discover"},
			check: func(t *testing.T, err error) {
				t.Helper()

				assert.Contains(t, err.Error(), "loud")
			},
		},
		{
			name: "malformed include",
			args: []string{"discover", "--include", "**/[Test.class"},
			check: func(t *testing.T, err error) {
				t.Helper()

				assert.Contains(t, err.Error(), "[Test.class")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runApp(t, newProject(t), tc.args...)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestStopWithoutServer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := runApp(t, dir, "stop", "--app-dir", ".")
	require.NoError(t, err)
}

func TestStartSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, stderr, err := runApp(t, dir, "start", "--skip")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Skipping server start")
}
