package analysis

import (
	"testing"

	"github.com/azdavis/c0ls/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsParseError(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int f( { return 0; }",
	}))
	diags, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	require.NotEmpty(t, diags)
	assert.Equal(t, SeverityError, diags[0].Severity)
}

func TestDiagnosticsUndefinedVariable(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int main() { return x; }",
	}))
	diags, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "undefined variable")
}

func TestDiagnosticsUnusedFunctionWarning(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int unused() { return 0; } int main() { return 0; }",
	}))
	diags, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "unused")
}

func TestDiagnosticsCalledFunctionNotFlagged(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int helper() { return 1; } int main() { return helper(); }",
	}))
	diags, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	assert.Empty(t, diags)
}

func TestDiagnosticsUnusedFunctionFromAnotherFileCall(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int helper() { return 1; }",
		"file:///b.c0": "#use \"a.c0\"\nint main() { return helper(); }",
	}))
	diagsA, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	assert.Empty(t, diagsA, "helper is called from b.c0 so a.c0 must not flag it unused")
}

func TestDiagnosticsMaxDiagnosticsTruncates(t *testing.T) {
	db := New(config.Config{MaxDiagnostics: 1})
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int f() { return 0; } int g() { return 0; } int main() { return 0; }",
	}))
	diags, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	assert.Len(t, diags, 1)
}

func TestDiagnosticsSortedByRange(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int f() { return 0; } int g() { return 0; } int main() { return 0; }",
	}))
	diags, ok := db.AllDiagnostics("file:///a.c0")
	require.True(t, ok)
	require.Len(t, diags, 2)
	assert.True(t, diags[0].Range.Start.Less(diags[1].Range.Start))
}
