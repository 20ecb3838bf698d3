package statics

import "github.com/azdavis/c0ls/internal/hir"

// AddEnv folds file's own Env into the running cross-file imp, once
// file has been fully checked, so the next file in topological `#use`
// order sees it. A struct may be given fields only once across the
// whole build (opaque `struct s;` declarations may repeat), and a
// typedef name declared only once; a function may be declared any number
// of times as long as every occurrence's signature agrees and at most
// one of them supplies a body.
// Cross-file merge errors aren't anchored to a single expression, type,
// statement, simp, or item the way a same-file diagnostic is — the
// conflict is between two whole declarations, possibly in different
// files. They're reported against the zero Id (an invalid ExprId);
// internal/analysis falls back to the whole file's range for display.
func AddEnv(cx *Cx, imp *Import, env *Env) {
	for _, name := range sortedNames(env.Structs) {
		fields := env.Structs[name]
		if old, ok := imp.Structs[name]; ok {
			if old != nil && fields != nil {
				cx.errorThing(Id{}, Duplicate, ThingStruct)
			}
			if fields != nil {
				imp.Structs[name] = fields
			}
			continue
		}
		imp.Structs[name] = fields
	}

	for _, name := range sortedNames(env.TypeDefs) {
		t := env.TypeDefs[name]
		if _, ok := imp.TypeDefs[name]; ok {
			cx.errorThing(Id{}, Duplicate, ThingTypedef)
			continue
		}
		imp.TypeDefs[name] = t
	}

	for _, name := range sortedNames(env.Fns) {
		next := env.Fns[name]
		old, ok := imp.Fns[name]
		if !ok {
			imp.Fns[name] = next
			continue
		}
		if old.Defined == MustNot && next.Defined == Yes {
			cx.error(Id{}, DefnOfHeaderFn)
			imp.Fns[name] = FnSig{Params: old.Params, RetTy: old.RetTy, Defined: MustNot}
			continue
		}
		if len(old.Params) != len(next.Params) {
			cx.error(Id{}, MismatchedImportSignature)
			imp.Fns[name] = next
			continue
		}
		mismatched := false
		for i := range next.Params {
			if t, ok := unifyImpl(cx, old.Params[i].Ty, next.Params[i].Ty); ok {
				next.Params[i].Ty = t
			} else {
				mismatched = true
			}
		}
		if t, ok := unifyImpl(cx, old.RetTy, next.RetTy); ok {
			next.RetTy = t
		} else {
			mismatched = true
		}
		if mismatched {
			cx.error(Id{}, MismatchedImportSignature)
		}
		if old.Defined == Yes && next.Defined == Yes {
			cx.errorThing(Id{}, Duplicate, ThingFunction)
		} else if old.Defined == Yes {
			next.Defined = Yes
		}
		if old.Defined == MustNot && next.Defined == NotYet {
			next.Defined = MustNot
		}
		imp.Fns[name] = next
	}
}

// WithHeaderFn seeds imp with a standard-library function declaration
// that no source file may ever define a body for — the way `#use
// <string>`'s functions work.
func WithHeaderFn(imp *Import, name hir.Name, sig FnSig) {
	sig.Defined = MustNot
	imp.Fns[name] = sig
}
