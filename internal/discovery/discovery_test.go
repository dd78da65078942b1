package discovery_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/discovery"
	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/internal/pattern"
	"github.com/gruntwork-io/testgrunt/internal/queue"
	"github.com/gruntwork-io/testgrunt/internal/telemetry"
	"github.com/gruntwork-io/testgrunt/internal/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/FooTest.class": "",
		"a/BarTest.class": "",
		"b/BazTest.class": "",
		"b/Helper.class":  "",
	})

	return root
}

func TestDiscoverEndToEnd(t *testing.T) {
	t.Parallel()

	root := testTree(t)
	resolver := newMapResolver("app", "a.FooTest", "a.BarTest", "b.BazTest", "b.Helper")

	l, _ := newBufferLogger()

	result, err := discovery.NewDiscovery(root).
		WithIncludes("**/*Test.class").
		WithRunOrder(queue.Alphabetical).
		Discover(t.Context(), l, resolver)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.BarTest", "a.FooTest", "b.BazTest"}, result.Accepted.Names())
	assert.Empty(t, result.SkippedByValidation)
	assert.Equal(t, queue.Alphabetical, result.RunOrder)
	assert.False(t, result.IsEmpty())
	assert.NotContains(t, resolver.calls, "b.Helper")
}

func TestDiscoverEmptyRoot(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		root func(t *testing.T) string
	}{
		{
			name: "missing",
			root: func(t *testing.T) string { return filepath.Join(t.TempDir(), "does-not-exist") },
		},
		{
			name: "empty",
			root: func(t *testing.T) string { return t.TempDir() },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, _ := newBufferLogger()

			result, err := discovery.NewDiscovery(tc.root(t)).
				WithIncludes("**/*Test.class").
				Discover(t.Context(), l, newMapResolver("app"))
			require.NoError(t, err)

			assert.True(t, result.IsEmpty())
			assert.NotNil(t, result.Accepted)
			assert.NotNil(t, result.SkippedByValidation)
		})
	}
}

func TestDiscoverUnresolvableUnitAborts(t *testing.T) {
	t.Parallel()

	root := testTree(t)
	resolver := newMapResolver("app", "a.FooTest", "a.BarTest")

	l, _ := newBufferLogger()

	result, err := discovery.NewDiscovery(root).
		WithIncludes("**/*Test.class").
		WithRunOrder(queue.Alphabetical).
		Discover(t.Context(), l, resolver)
	require.Error(t, err)
	assert.Nil(t, result)

	var unresolvable discovery.UnresolvableUnitError
	require.True(t, errors.As(err, &unresolvable))
	assert.Equal(t, "b.BazTest", unresolvable.Identifier)
	assert.Contains(t, err.Error(), "b.BazTest")
}

func TestDiscoverValidationPartition(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/OneTest.class":      "",
		"a/SkipTwoTest.class":  "",
		"b/ThreeTest.class":    "",
		"b/SkipFourTest.class": "",
		"c/FiveTest.class":     "",
	})

	resolver := newMapResolver("app", "a.OneTest", "a.SkipTwoTest", "b.ThreeTest", "b.SkipFourTest", "c.FiveTest")

	l, _ := newBufferLogger()

	result, err := discovery.NewDiscovery(root).
		WithRunOrder(queue.ReverseAlphabetical).
		WithValidator(discovery.ValidatorFunc(func(u *unit.Unit) bool {
			return !strings.Contains(u.Name, "Skip")
		})).
		Discover(t.Context(), l, resolver)
	require.NoError(t, err)

	assert.Equal(t, []string{"c.FiveTest", "b.ThreeTest", "a.OneTest"}, result.Accepted.Names())
	// skipped units keep the load order whatever the run order is
	assert.Equal(t, []string{"a.SkipTwoTest", "b.SkipFourTest"}, result.SkippedByValidation.Names())
}

func TestDiscoverWithoutResolver(t *testing.T) {
	t.Parallel()

	l, _ := newBufferLogger()

	for _, root := range []string{testTree(t), filepath.Join(t.TempDir(), "does-not-exist")} {
		result, err := discovery.NewDiscovery(root).Discover(t.Context(), l, nil)
		require.ErrorIs(t, err, discovery.ErrNoResolver)
		assert.Nil(t, result)
	}
}

func TestDiscoverNilValidatorFunc(t *testing.T) {
	t.Parallel()

	root := testTree(t)
	resolver := newMapResolver("app", "a.FooTest", "a.BarTest", "b.BazTest")

	l, _ := newBufferLogger()

	result, err := discovery.NewDiscovery(root).
		WithIncludes("**/*Test.class").
		WithRunOrder(queue.Alphabetical).
		WithValidator(discovery.ValidatorFunc(nil)).
		Discover(t.Context(), l, resolver)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.BarTest", "a.FooTest", "b.BazTest"}, result.Accepted.Names())
	assert.Empty(t, result.SkippedByValidation)
}

func TestDiscoverHourlyIsResolved(t *testing.T) {
	t.Parallel()

	root := testTree(t)
	resolver := newMapResolver("app", "a.FooTest", "a.BarTest", "b.BazTest")

	l, _ := newBufferLogger()

	result, err := discovery.NewDiscovery(root).
		WithIncludes("**/*Test.class").
		WithRunOrder(queue.Hourly).
		WithQueueOptions(queue.WithClock(func() time.Time {
			return time.Date(2024, time.March, 1, 15, 0, 0, 0, time.Local)
		})).
		Discover(t.Context(), l, resolver)
	require.NoError(t, err)

	assert.Equal(t, queue.ReverseAlphabetical, result.RunOrder)
	assert.Equal(t, []string{"b.BazTest", "a.FooTest", "a.BarTest"}, result.Accepted.Names())
}

func TestDiscoverIsIdempotent(t *testing.T) {
	t.Parallel()

	root := testTree(t)
	resolver := newMapResolver("app", "a.FooTest", "a.BarTest", "b.BazTest", "b.Helper")

	l, _ := newBufferLogger()

	d := discovery.NewDiscovery(root).WithExcludes("**/Helper.class")

	first, err := d.Discover(t.Context(), l, resolver)
	require.NoError(t, err)

	second, err := d.Discover(t.Context(), l, resolver)
	require.NoError(t, err)

	assert.Equal(t, first.Accepted.Names(), second.Accepted.Names())
	assert.NotSame(t, &first.Accepted[0], &second.Accepted[0])
}

func TestDiscoverMalformedPattern(t *testing.T) {
	t.Parallel()

	l, _ := newBufferLogger()

	_, err := discovery.NewDiscovery(t.TempDir()).
		WithIncludes("**/[Test.class").
		Discover(t.Context(), l, newMapResolver("app"))

	var malformed pattern.MalformedPatternError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "**/[Test.class", malformed.Pattern)
}

func TestDiscoverCollectsTelemetry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	tlm, err := telemetry.NewTelemeter(t.Context(), "testgrunt", "test", &buf, &telemetry.Options{TraceExporter: "console"})
	require.NoError(t, err)

	ctx := telemetry.ContextWithTelemeter(context.Background(), tlm)

	l, _ := newBufferLogger()

	_, err = discovery.NewDiscovery(testTree(t)).
		Discover(ctx, l, newMapResolver("app", "a.FooTest", "a.BarTest", "b.BazTest", "b.Helper"))
	require.NoError(t, err)
	require.NoError(t, tlm.Shutdown(t.Context()))

	for _, span := range []string{"discover_collect", "discover_load", "discover_validate", "discover_order"} {
		assert.Contains(t, buf.String(), span)
	}
}
