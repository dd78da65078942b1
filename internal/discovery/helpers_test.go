package discovery_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gruntwork-io/testgrunt/internal/unit"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/stretchr/testify/require"
)

// writeTree creates the given files, relative to root, with the given contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func newBufferLogger() (log.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)

	return log.New(log.WithOutput(buf), log.WithLevel(log.TraceLevel)), buf
}

// mapResolver resolves identifiers from a fixed table.
type mapResolver struct {
	units map[string]*unit.Unit
	id    string
	calls []string
}

func newMapResolver(id string, names ...string) *mapResolver {
	resolver := &mapResolver{id: id, units: make(map[string]*unit.Unit)}

	for _, name := range names {
		resolver.units[name] = &unit.Unit{
			Name:   name,
			Path:   strings.ReplaceAll(name, ".", "/") + ".class",
			Origin: id,
		}
	}

	return resolver
}

func (resolver *mapResolver) ID() string {
	return resolver.id
}

func (resolver *mapResolver) Resolve(name string) (*unit.Unit, error) {
	resolver.calls = append(resolver.calls, name)

	if u, ok := resolver.units[name]; ok {
		return u, nil
	}

	return nil, os.ErrNotExist
}
