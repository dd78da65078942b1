// Package unit defines the test unit handle shared by the discovery engine, resolvers and reporters.
package unit

import "strings"

// Separator joins the segments of a unit identifier.
const Separator = "."

// Unit is a resolved, loadable test unit.
type Unit struct {
	// Name is the fully-qualified dotted identifier, e.g. `a.FooTest`.
	Name string
	// Path is the artifact the resolver found for Name.
	Path string
	// Origin is the ID of the resolver that produced the unit.
	Origin string
}

// String implements fmt.Stringer.
func (u *Unit) String() string {
	return u.Name
}

// Package returns everything before the last separator of the name, or an empty string for top-level units.
func (u *Unit) Package() string {
	if i := strings.LastIndex(u.Name, Separator); i >= 0 {
		return u.Name[:i]
	}

	return ""
}

// SimpleName returns the last segment of the name.
func (u *Unit) SimpleName() string {
	return u.Name[strings.LastIndex(u.Name, Separator)+1:]
}

// Units is a list of units.
type Units []*Unit

// Names returns the names of the units, in order.
func (units Units) Names() []string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}

	return names
}

// Clone returns a shallow copy of the list; the units themselves are shared.
func (units Units) Clone() Units {
	if units == nil {
		return Units{}
	}

	return append(make(Units, 0, len(units)), units...)
}
