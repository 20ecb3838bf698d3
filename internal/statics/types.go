package statics

import (
	"sort"

	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/ty"
)

// Cx is the context threaded through every checking function: the type
// store (shared across every file in a build) and the error sink for
// the one file currently being checked.
type Cx struct {
	Tys    *ty.Db
	Errors []Error
	// CheckUnreachable gates the Unreachable diagnostic, mirroring
	// internal/config's UnreachableCode switch.
	CheckUnreachable bool
}

func (cx *Cx) error(id Id, kind ErrorKind) {
	cx.Errors = append(cx.Errors, Error{ID: id, Kind: kind})
}

func (cx *Cx) errorThing(id Id, kind ErrorKind, thing Thing) {
	cx.Errors = append(cx.Errors, Error{ID: id, Kind: kind, Thing: thing})
}

// Defined tracks where a function signature stands relative to being
// given a body, across every file that mentions it.
type Defined int

const (
	// MustNot is a header (`#use`d) declaration: the language forbids
	// ever giving it a body (DefnOfHeaderFn).
	MustNot Defined = iota
	// NotYet is a source declaration (`int f(int x);`) seen so far only
	// as a prototype.
	NotYet
	// Yes has been given a body somewhere in the build.
	Yes
)

// Param is one resolved (HIR type already looked up to a Ty) function
// parameter, as stored in a signature — distinct from hir.Param, which
// still carries an unresolved hir.TyId.
type Param struct {
	Name hir.Name
	Ty   ty.Ty
}

// FnSig is one function's parameter/return shape plus where it stands
// in Defined's lifecycle.
type FnSig struct {
	Params  []Param
	RetTy   ty.Ty
	Defined Defined
}

// Import is the cross-file view an individual file's checking sees: the
// accumulated fns/structs/type_defs of every file that precedes it in
// topological (`#use`) order, plus the standard-library headers. A file
// being checked may read Import but never mutates it; its own
// declarations instead populate a fresh Env that the caller folds back
// in via AddEnv once the file is fully checked.
type Import struct {
	Fns      map[hir.Name]FnSig
	Structs  map[hir.Name]map[hir.Name]ty.Ty
	TypeDefs map[hir.Name]ty.Ty
}

func NewImport() *Import {
	return &Import{
		Fns:      map[hir.Name]FnSig{},
		Structs:  map[hir.Name]map[hir.Name]ty.Ty{},
		TypeDefs: map[hir.Name]ty.Ty{},
	}
}

// WithMain returns an Import pre-seeded with the root translation
// unit's implicit `int main(void)` signature, not yet defined.
func WithMain() *Import {
	imp := NewImport()
	imp.Fns["main"] = FnSig{RetTy: ty.Int, Defined: NotYet}
	return imp
}

// Env is what one file's checking produces: its own declarations, ready
// to be merged into the running Import for files later in topological
// order, plus per-node results a query layer needs (declared/expression
// types, which functions this file actually calls).
type Env struct {
	Fns      map[hir.Name]FnSig
	Structs  map[hir.Name]map[hir.Name]ty.Ty
	TypeDefs map[hir.Name]ty.Ty
	DeclTys  map[hir.SimpId]ty.Ty // DeclSimp, Param: the declared variable's type
	ExprTys  map[hir.ExprId]ty.Ty
	Called   map[hir.Name]bool
	// FnDeclIds, StructDeclIds, and TypeDefDeclIds locate each of this
	// file's own declarations by name (the most recent one, if declared
	// more than once), for a query layer that needs to point a
	// diagnostic or a go-to-def result at it — Env itself has no other
	// notion of "where."
	FnDeclIds      map[hir.Name]hir.ItemId
	StructDeclIds  map[hir.Name]hir.ItemId
	TypeDefDeclIds map[hir.Name]hir.ItemId
}

func NewEnv() *Env {
	return &Env{
		Fns:            map[hir.Name]FnSig{},
		Structs:        map[hir.Name]map[hir.Name]ty.Ty{},
		TypeDefs:       map[hir.Name]ty.Ty{},
		DeclTys:        map[hir.SimpId]ty.Ty{},
		ExprTys:        map[hir.ExprId]ty.Ty{},
		Called:         map[hir.Name]bool{},
		FnDeclIds:      map[hir.Name]hir.ItemId{},
		StructDeclIds:  map[hir.Name]hir.ItemId{},
		TypeDefDeclIds: map[hir.Name]hir.ItemId{},
	}
}

// varData is one local variable's declared type and whether every
// control-flow path so far has given it a value.
type varData struct {
	ty      ty.Ty
	defined bool
}

type vars map[hir.Name]varData

func (v vars) clone() vars {
	out := make(vars, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// sortedNames returns m's keys in a fixed order, since Go map iteration
// order is randomized and diagnostics must come out the same way every
// run (see internal/toposort's identical discipline).
func sortedNames[V any](m map[hir.Name]V) []hir.Name {
	out := make([]hir.Name, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// fnCx is per-function-body state: the cross-file Import, this file's
// arenas, the in-scope locals, and the enclosing function's declared
// return type (for checking `return` statements).
type fnCx struct {
	imp   *Import
	ar    *hir.Arenas
	vars  vars
	retTy ty.Ty
}
