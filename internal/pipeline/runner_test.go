package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"clrindex/internal/nsfilter"
	"clrindex/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greeterDump = `{
  "module": "App.dll",
  "types": [
    {"id": 1, "module": "System.Runtime.dll", "namespace": "System", "name": "Object"},
    {"id": 2, "module": "System.Runtime.dll", "namespace": "System", "name": "String"},
    {"id": 3, "module": "Shared.dll", "namespace": "Company.Shared", "name": "Clock",
     "members": [
       {"kind": "method", "name": "Now", "visibility": "public", "type": 2}
     ]},
    {"id": 4, "namespace": "App", "name": "Greeter", "base": 1,
     "members": [
       {"kind": "constructor", "name": ".ctor", "visibility": "public"},
       {"kind": "property", "name": "Name", "visibility": "public", "type": 2},
       {"kind": "method", "name": "get_Name", "visibility": "public", "type": 2},
       {"kind": "method", "name": "Greet", "visibility": "public", "type": 2,
        "params": [{"type": 3, "name": "clock"}]}
     ]}
  ]
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDump(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunnerEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "app.json", greeterDump)

	store := storage.NewMemoryStore()
	r := &Runner{
		DumpDir: dir,
		Filter:  nsfilter.Config{Follow: []string{"Company.Shared"}},
		Store:   store,
		Log:     quietLogger(),
	}

	stats, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, 1, stats.Modules)
	assert.Equal(t, 1, stats.TypesPresented, "only the primary module's own types are presented")
	assert.Zero(t, stats.Defects)

	t.Run("primary type and members", func(t *testing.T) {
		assert.Positive(t, store.SymbolID("App.Greeter"))
		assert.Positive(t, store.SymbolID("App.Greeter.Greeter"))
		assert.Positive(t, store.SymbolID("App.Greeter.Name"))
		assert.Positive(t, store.SymbolID("App.Greeter.Greet"))
		assert.Zero(t, store.SymbolID("App.Greeter.get_Name"), "accessor folded into the property")
	})

	t.Run("followed foreign module collected transitively", func(t *testing.T) {
		assert.Positive(t, store.SymbolID("Company.Shared.Clock"))
		assert.Positive(t, store.SymbolID("Company.Shared.Clock.Now"))
		assert.Equal(t, []string{"App.dll", "Shared.dll"}, stats.FollowedModules)
	})

	t.Run("unfollowed foreign type emitted without members", func(t *testing.T) {
		assert.Positive(t, store.SymbolID("System.String"))
		assert.Zero(t, store.SymbolID("System.Object"), "the universal root is never emitted")
	})

	// ctor, folded accessor, Greet, and the followed Clock.Now.
	assert.Equal(t, 4, stats.Methods)
	assert.Equal(t, int64(len(store.Symbols())), stats.Symbols)
	assert.Equal(t, int64(len(store.References())), stats.References)
}

func TestRunnerEmptyDumpDir(t *testing.T) {
	r := &Runner{
		DumpDir: t.TempDir(),
		Store:   storage.NewMemoryStore(),
		Log:     quietLogger(),
	}
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no module dumps")
}

func TestRunnerInvalidFilter(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "app.json", greeterDump)

	r := &Runner{
		DumpDir: dir,
		Filter:  nsfilter.Config{Include: []string{"[broken"}},
		Store:   storage.NewMemoryStore(),
		Log:     quietLogger(),
	}
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid namespace filter")
}

func TestRunnerContextCancellation(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "app.json", greeterDump)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{
		DumpDir: dir,
		Store:   storage.NewMemoryStore(),
		Log:     quietLogger(),
	}
	_, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
