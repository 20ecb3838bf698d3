package statics

import (
	"testing"

	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/lower"
	"github.com/azdavis/c0ls/internal/parse"
	"github.com/azdavis/c0ls/internal/ty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkSrc parses, lowers, and statically checks src against imp (a
// fresh NewImport if nil), returning the resulting Env and the Cx
// holding whatever errors checking produced.
func checkSrc(t *testing.T, imp *Import, src string) (*Env, *Cx) {
	t.Helper()
	p := parse.Parse(src)
	require.Empty(t, p.Errors)
	l := lower.Lower(p.Root)
	require.Empty(t, l.Errors)
	if imp == nil {
		imp = NewImport()
	}
	cx := &Cx{Tys: ty.NewDb()}
	env := CheckFile(cx, imp, l.Root.Arenas, l.Root.Items)
	return env, cx
}

func errKinds(cx *Cx) []ErrorKind {
	var out []ErrorKind
	for _, e := range cx.Errors {
		out = append(out, e.Kind)
	}
	return out
}

func TestCheckFileSimpleFunctionNoErrors(t *testing.T) {
	_, cx := checkSrc(t, nil, "int add(int a, int b) { return a + b; }")
	assert.Empty(t, cx.Errors)
}

func TestCheckFileUndefinedVariable(t *testing.T) {
	_, cx := checkSrc(t, nil, "int f() { return x; }")
	require.Len(t, cx.Errors, 1)
	assert.Equal(t, Undefined, cx.Errors[0].Kind)
	assert.Equal(t, ThingVariable, cx.Errors[0].Thing)
}

func TestCheckFileUndefinedFunctionCall(t *testing.T) {
	_, cx := checkSrc(t, nil, "int f() { return g(); }")
	require.Len(t, cx.Errors, 1)
	assert.Equal(t, Undefined, cx.Errors[0].Kind)
	assert.Equal(t, ThingFunction, cx.Errors[0].Thing)
}

func TestCheckFileMismatchedNumArgs(t *testing.T) {
	_, cx := checkSrc(t, nil, "int add(int a, int b) { return a + b; } int f() { return add(1); }")
	require.Contains(t, errKinds(cx), MismatchedNumArgs)
}

func TestCheckFileCallRecordedInCalled(t *testing.T) {
	env, cx := checkSrc(t, nil, "int helper() { return 1; } int f() { return helper(); }")
	assert.Empty(t, cx.Errors)
	assert.True(t, env.Called["helper"])
	assert.False(t, env.Called["f"])
}

func TestCheckFileDerefNonPointer(t *testing.T) {
	_, cx := checkSrc(t, nil, "int f() { int x = 0; return *x; }")
	require.Contains(t, errKinds(cx), DerefNonPtr)
}

func TestCheckFileDerefNull(t *testing.T) {
	_, cx := checkSrc(t, nil, "int f() { return *NULL; }")
	require.Contains(t, errKinds(cx), DerefNull)
}

func TestCheckFileDuplicateStructField(t *testing.T) {
	_, cx := checkSrc(t, nil, "struct point { int x; int x; };")
	require.Len(t, cx.Errors, 1)
	assert.Equal(t, Duplicate, cx.Errors[0].Kind)
	assert.Equal(t, ThingField, cx.Errors[0].Thing)
}

func TestCheckFileOpaqueStructThenDefined(t *testing.T) {
	env, cx := checkSrc(t, nil, "struct point; struct point { int x; };")
	assert.Empty(t, cx.Errors)
	fields, ok := env.Structs["point"]
	require.True(t, ok)
	assert.Contains(t, fields, hir.Name("x"))
}

func TestCheckFileUninitializedVarUse(t *testing.T) {
	_, cx := checkSrc(t, nil, "int f() { int x; return x; }")
	require.Contains(t, errKinds(cx), UninitializedVar)
}

func TestCheckFileShadowedFunctionWarning(t *testing.T) {
	_, cx := checkSrc(t, nil, "int helper() { return 1; } int f() { int helper = 0; return helper(); }")
	require.Contains(t, errKinds(cx), ShadowedFunction)
}

func TestCheckFileEnvShadowsImportOnFnName(t *testing.T) {
	// imp has a 1-parameter "f"; this file declares and calls its own
	// 2-parameter "f" — the call must resolve against this file's own
	// Env, not the imported signature, so no MismatchedNumArgs fires.
	imp := NewImport()
	imp.Fns["f"] = FnSig{Params: []Param{{Name: "a", Ty: ty.Int}}, RetTy: ty.Int, Defined: Yes}
	_, cx := checkSrc(t, imp, "int f(int a, int b) { return a + b; } int g() { return f(1, 2); }")
	assert.Empty(t, cx.Errors)
}

func TestCheckFileCallsImportedFunction(t *testing.T) {
	imp := NewImport()
	imp.Fns["helper"] = FnSig{RetTy: ty.Int, Defined: Yes}
	env, cx := checkSrc(t, imp, "int f() { return helper(); }")
	assert.Empty(t, cx.Errors)
	assert.True(t, env.Called["helper"])
}

func TestCheckFileBreakOutsideLoop(t *testing.T) {
	_, cx := checkSrc(t, nil, "int f() { break; return 0; }")
	require.Contains(t, errKinds(cx), BreakOutsideLoop)
}

func TestCheckFileInvalidNoReturn(t *testing.T) {
	_, cx := checkSrc(t, nil, "int f() { int x = 0; }")
	require.Contains(t, errKinds(cx), InvalidNoReturn)
}

func TestAddEnvDefnOfHeaderFn(t *testing.T) {
	imp := NewImport()
	WithHeaderFn(imp, "parse_int", FnSig{Params: []Param{{Name: "s", Ty: ty.String}}, RetTy: ty.Int})

	env, cx := checkSrc(t, imp, "int parse_int(string s) { return 0; }")
	AddEnv(cx, imp, env)

	assert.Contains(t, errKinds(cx), DefnOfHeaderFn)
	// the header's MustNot status survives the attempted definition.
	assert.Equal(t, MustNot, imp.Fns["parse_int"].Defined)
}

func TestAddEnvDeclarationThenDefinitionAcrossFiles(t *testing.T) {
	imp := NewImport()
	declEnv, cx1 := checkSrc(t, imp, "int add(int a, int b);")
	assert.Empty(t, cx1.Errors)
	AddEnv(cx1, imp, declEnv)
	assert.Equal(t, NotYet, imp.Fns["add"].Defined)

	defnEnv, cx2 := checkSrc(t, imp, "int add(int a, int b) { return a + b; }")
	assert.Empty(t, cx2.Errors)
	AddEnv(cx2, imp, defnEnv)
	assert.Equal(t, Yes, imp.Fns["add"].Defined)
}

func TestAddEnvMismatchedImportSignature(t *testing.T) {
	imp := NewImport()
	env1, cx1 := checkSrc(t, imp, "int add(int a, int b) { return a + b; }")
	AddEnv(cx1, imp, env1)

	env2, cx2 := checkSrc(t, NewImport(), "bool add(int a, int b, int c) { return true; }")
	AddEnv(cx2, imp, env2)
	assert.Contains(t, errKinds(cx2), MismatchedImportSignature)
}

func TestAddEnvStructDuplicateDefinitionAcrossFiles(t *testing.T) {
	imp := NewImport()
	env1, cx1 := checkSrc(t, imp, "struct point { int x; };")
	AddEnv(cx1, imp, env1)

	env2, cx2 := checkSrc(t, NewImport(), "struct point { int x; int y; };")
	AddEnv(cx2, imp, env2)
	assert.Contains(t, errKinds(cx2), Duplicate)
}

func TestWithMainSeedsNotYetDefinedMain(t *testing.T) {
	imp := WithMain()
	sig, ok := imp.Fns["main"]
	require.True(t, ok)
	assert.Equal(t, NotYet, sig.Defined)
	assert.Equal(t, ty.Int, sig.RetTy)
}
