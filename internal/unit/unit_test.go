package unit_test

import (
	"testing"

	"github.com/gruntwork-io/testgrunt/internal/unit"
	"github.com/stretchr/testify/assert"
)

func TestUnitNameParts(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		wantPkg    string
		wantSimple string
	}{
		{name: "a.b.FooTest", wantPkg: "a.b", wantSimple: "FooTest"},
		{name: "FooTest", wantPkg: "", wantSimple: "FooTest"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			u := &unit.Unit{Name: tc.name}
			assert.Equal(t, tc.wantPkg, u.Package())
			assert.Equal(t, tc.wantSimple, u.SimpleName())
		})
	}
}

func TestUnitsCloneDoesNotAlias(t *testing.T) {
	t.Parallel()

	units := unit.Units{{Name: "b"}, {Name: "a"}}
	clone := units.Clone()
	clone[0] = &unit.Unit{Name: "z"}

	assert.Equal(t, []string{"b", "a"}, units.Names())
	assert.Equal(t, []string{"z", "a"}, clone.Names())
	assert.NotNil(t, unit.Units(nil).Clone())
}
