package statics

import (
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/ty"
)

// resolveTy turns a lowered HIR type into its hash-consed Ty, resolving
// TyNamed against sc's combined typedef view. A zero (invalid) id
// silently resolves to Error — it only arises from a type the parser
// itself already flagged with a syntax error, so checking stays quiet
// rather than piling on a second diagnostic for the same spot.
func resolveTy(cx *Cx, sc scope, ar *hir.Arenas, id hir.TyId) ty.Ty {
	if !id.Valid() {
		return ty.Error
	}
	t := ar.Ty.Get(id)
	switch t.Kind {
	case hir.TyInt:
		return ty.Int
	case hir.TyBool:
		return ty.Bool
	case hir.TyString:
		return ty.String
	case hir.TyChar:
		return ty.Char
	case hir.TyVoid:
		return ty.Void
	case hir.TyPtr:
		return cx.Tys.Ptr(resolveTy(cx, sc, ar, t.Inner))
	case hir.TyArray:
		return cx.Tys.Array(resolveTy(cx, sc, ar, t.Inner))
	case hir.TyStruct:
		return cx.Tys.Struct(string(t.Name))
	case hir.TyNamed:
		if td, ok := sc.typeDef(t.Name); ok {
			return td
		}
		cx.errorThing(tyID(id), Undefined, ThingTypedef)
		return ty.Error
	default:
		return ty.Error
	}
}

// resolveTySized is resolveTy plus a check that a referenced struct
// actually has a known field list: used anywhere a concrete size is
// required (alloc, alloc_array, parameter and field types), never for a
// type only ever reached through a pointer.
func resolveTySized(cx *Cx, sc scope, ar *hir.Arenas, id hir.TyId) ty.Ty {
	t := resolveTy(cx, sc, ar, id)
	if id.Valid() {
		if hirTy := ar.Ty.Get(id); hirTy.Kind == hir.TyStruct {
			if _, ok := sc.structFields(hirTy.Name); !ok {
				cx.errorThing(tyID(id), Undefined, ThingStruct)
			}
		}
	}
	return t
}

// ResolveTyDisplay resolves id against imp/env purely so a caller can
// render its display string (hover text): any diagnostic resolveTy
// would otherwise produce is discarded along with the throwaway Cx.
func ResolveTyDisplay(tys *ty.Db, imp *Import, env *Env, ar *hir.Arenas, id hir.TyId) ty.Ty {
	cx := &Cx{Tys: tys}
	return resolveTy(cx, scope{imp: imp, env: env}, ar, id)
}

// resolveTyDecl resolves id the way a variable/parameter/field
// declaration's type does: no void, no bare struct (both forbidden
// wherever a value needs to occupy storage).
func resolveTyDecl(cx *Cx, sc scope, ar *hir.Arenas, id hir.TyId) ty.Ty {
	t := resolveTySized(cx, sc, ar, id)
	if id.Valid() {
		noVoid(cx, tyID(id), t)
		noStruct(cx, tyID(id), t)
	}
	return t
}
