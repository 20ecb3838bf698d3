package analysis

import (
	"strings"
	"testing"

	"github.com/azdavis/c0ls/internal/textpos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// posAt returns the {line, character} of the first occurrence of needle
// in src, offset by inNeedle characters into that match — so the caller
// can land the position inside whichever token the needle brackets.
func posAt(t *testing.T, src, needle string, inNeedle int) textpos.Position {
	t.Helper()
	i := strings.Index(src, needle)
	require.GreaterOrEqual(t, i, 0, "needle %q not found in source", needle)
	i += inNeedle
	line := uint32(strings.Count(src[:i], "\n"))
	lastNL := strings.LastIndex(src[:i], "\n")
	col := uint32(i - lastNL - 1)
	return textpos.Position{Line: line, Character: col}
}

// posOf is posAt landing one character into needle, for needles that
// begin exactly with the target token (an identifier, say).
func posOf(t *testing.T, src, needle string) textpos.Position {
	return posAt(t, src, needle, 1)
}

func TestHoverOnVariableExpression(t *testing.T) {
	db := newDb()
	src := "int main() { int x = 5; return x; }"
	require.NoError(t, db.Build(map[string]string{"file:///a.c0": src}))

	text, ok := db.Hover("file:///a.c0", posAt(t, src, "x;", 0))
	require.True(t, ok)
	assert.Equal(t, "int", text)
}

func TestHoverOnFunctionCall(t *testing.T) {
	db := newDb()
	src := "int add(int a, int b) { return a + b; } int main() { return add(1, 2); }"
	require.NoError(t, db.Build(map[string]string{"file:///a.c0": src}))

	text, ok := db.Hover("file:///a.c0", posOf(t, src, "add(1, 2)"))
	require.True(t, ok)
	assert.Equal(t, "add(int, int) -> int", text)
}

func TestHoverNothingAtWhitespace(t *testing.T) {
	db := newDb()
	src := "int main() { return 0; }"
	require.NoError(t, db.Build(map[string]string{"file:///a.c0": src}))

	_, ok := db.Hover("file:///a.c0", textpos.Position{Line: 5, Character: 0})
	assert.False(t, ok)
}

func TestHoverDegradesDuringCycle(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "#use \"b.c0\"\nint f() { return 0; }",
		"file:///b.c0": "#use \"a.c0\"\nint g() { return 0; }",
	}))
	_, ok := db.Hover("file:///a.c0", textpos.Position{Line: 1, Character: 5})
	assert.False(t, ok)
}

func TestGoToDefSameFileFunctionCall(t *testing.T) {
	db := newDb()
	src := "int add(int a, int b) { return a + b; } int main() { return add(1, 2); }"
	require.NoError(t, db.Build(map[string]string{"file:///a.c0": src}))

	defURI, rng, ok := db.GoToDef("file:///a.c0", posOf(t, src, "add(1, 2)"))
	require.True(t, ok)
	assert.Equal(t, "file:///a.c0", defURI)
	// the definition range should start at the "add" in "int add(..."
	// (the first occurrence), not the call site.
	assert.Equal(t, uint32(0), rng.Start.Line)
}

func TestGoToDefCrossFileFunctionCall(t *testing.T) {
	db := newDb()
	require.NoError(t, db.Build(map[string]string{
		"file:///a.c0": "int add(int a, int b) { return a + b; }",
		"file:///b.c0": "#use \"a.c0\"\nint main() { return add(1, 2); }",
	}))

	src := "#use \"a.c0\"\nint main() { return add(1, 2); }"
	defURI, _, ok := db.GoToDef("file:///b.c0", posOf(t, src, "add(1, 2)"))
	require.True(t, ok)
	assert.Equal(t, "file:///a.c0", defURI)
}

func TestGoToDefStructFieldAccess(t *testing.T) {
	db := newDb()
	src := "struct point { int x; int y; }; int main() { struct point* p = alloc(struct point); return p->x; }"
	require.NoError(t, db.Build(map[string]string{"file:///a.c0": src}))

	i := strings.Index(src, "return p->x")
	require.GreaterOrEqual(t, i, 0)
	fieldOffset := i + len("return p->")
	pos := textpos.Position{Line: 0, Character: uint32(fieldOffset)}

	defURI, rng, ok := db.GoToDef("file:///a.c0", pos)
	require.True(t, ok)
	assert.Equal(t, "file:///a.c0", defURI)
	// resolves to the "struct point" declaration, near the start of
	// the file, not to the field-access expression itself.
	assert.Less(t, rng.Start.Character, uint32(fieldOffset))
}

func TestGoToDefNoTokenReturnsFalse(t *testing.T) {
	db := newDb()
	src := "int main() { return 0; }"
	require.NoError(t, db.Build(map[string]string{"file:///a.c0": src}))

	_, _, ok := db.GoToDef("file:///a.c0", textpos.Position{Line: 5, Character: 0})
	assert.False(t, ok)
}
