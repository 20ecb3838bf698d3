package analysis

import (
	"testing"

	"github.com/azdavis/c0ls/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDb() *Db {
	return New(config.Config{})
}

func TestBuildSingleFileNoErrors(t *testing.T) {
	db := newDb()
	err := db.Build(map[string]string{
		"file:///a.c0": "int main() { return 0; }",
	})
	require.NoError(t, err)

	diags, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	assert.Empty(t, diags)
}

func TestBuildUnknownURIReportsNotFound(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int main() { return 0; }",
	}))
	_, ok := db.AllDiagnostics("file:///nope.c0")
	assert.False(t, ok)
}

func TestBuildOrdersFilesByUseDependency(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int add(int a, int b) { return a + b; }",
		"file:///b.c0": "#use \"a.c0\"\nint main() { return add(1, 2); }",
	}))
	require.Nil(t, db.cycle)

	diags, ok := db.AllDiagnostics("file:///b.c0")
	require.True(t, ok)
	assert.Empty(t, diags)
}

func TestBuildCycleDegradesGracefully(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "#use \"b.c0\"\nint f() { return 0; }",
		"file:///b.c0": "#use \"a.c0\"\nint g() { return 0; }",
	}))
	require.NotNil(t, db.cycle)

	diagsA, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	diagsB, ok := db.AllDiagnostics("file:///b.c0")
	require.True(t, ok)

	// exactly one of the two files carries the synthetic cycle
	// diagnostic, whichever toposort reported as the witness.
	total := len(diagsA) + len(diagsB)
	assert.Equal(t, 1, total)
}

func TestBuildResetsStateBetweenCalls(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int main() { return x; }",
	}))
	diags, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	assert.NotEmpty(t, diags)

	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int main() { return 0; }",
	}))
	diags, ok = db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	assert.Empty(t, diags)
}

func TestBuildRespectsConcurrencyConfig(t *testing.T) {
	db := New(config.Config{Concurrency: 1})
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int f() { return 0; }",
		"file:///b.c0": "int g() { return 0; }",
		"file:///c.c0": "int main() { return 0; }",
	}))
	// f and g are each unused (a build-wide union nothing calls them
	// from), main is not.
	for _, u := range []string{"file:///a.c0", "file:///b.c0"} {
		diags, ok := db.AllDiagnostics(u)
		require.True(t, ok)
		assert.NotEmpty(t, diags)
	}
	diags, ok := db.AllDiagnostics("file:///c.c0")
	require.True(t, ok)
	assert.Empty(t, diags)
}
