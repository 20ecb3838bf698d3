package statics

import (
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/ty"
)

// CheckFile type-checks every item in one file against imp (everything
// visible from files earlier in `#use` order, plus the standard
// library), returning this file's own Env. The caller folds the result
// back into a running Import via AddEnv before checking the next file
// in topological order.
func CheckFile(cx *Cx, imp *Import, ar *hir.Arenas, items []hir.ItemId) *Env {
	env := NewEnv()
	sc := scope{imp: imp, env: env}
	// Struct and typedef items are registered before any function body
	// is checked, matching C0's single-pass-but-order-independent-types
	// rule: a function may use a struct or typedef declared later in the
	// same file.
	for _, id := range items {
		it := ar.Item.Get(id)
		switch it.Kind {
		case hir.ItemStruct:
			checkStructItem(cx, sc, ar, env, id, it)
		case hir.ItemTypeDef:
			checkTypedefItem(cx, sc, ar, env, id, it)
		}
	}
	for _, id := range items {
		it := ar.Item.Get(id)
		if it.Kind == hir.ItemFn {
			checkFnItem(cx, sc, ar, env, id, it)
		}
	}
	return env
}

func checkStructItem(cx *Cx, sc scope, ar *hir.Arenas, env *Env, id hir.ItemId, it hir.Item) {
	if it.Fields == nil {
		// an opaque forward declaration (`struct foo;`) contributes
		// nothing to the field table; only a later defining occurrence
		// (checked on its own pass through items) does.
		if _, ok := env.Structs[it.Name]; !ok {
			env.Structs[it.Name] = nil
			env.StructDeclIds[it.Name] = id
		}
		return
	}
	if existing, ok := env.Structs[it.Name]; ok && existing != nil {
		cx.errorThing(itemID(id), Duplicate, ThingStruct)
		return
	}
	fields := make(map[hir.Name]ty.Ty, len(it.Fields))
	for _, f := range it.Fields {
		if _, dup := fields[f.Name]; dup {
			cx.errorThing(itemID(id), Duplicate, ThingField)
			continue
		}
		fields[f.Name] = resolveTyDecl(cx, sc, ar, f.Ty)
	}
	env.Structs[it.Name] = fields
	env.StructDeclIds[it.Name] = id
}

func checkTypedefItem(cx *Cx, sc scope, ar *hir.Arenas, env *Env, id hir.ItemId, it hir.Item) {
	if _, ok := env.TypeDefs[it.Name]; ok {
		cx.errorThing(itemID(id), Duplicate, ThingTypedef)
		return
	}
	env.TypeDefs[it.Name] = resolveTy(cx, sc, ar, it.Underlying)
	env.TypeDefDeclIds[it.Name] = id
}

func checkFnItem(cx *Cx, sc scope, ar *hir.Arenas, env *Env, id hir.ItemId, it hir.Item) {
	seen := map[hir.Name]bool{}
	params := make([]Param, 0, len(it.Params))
	fcVars := vars{}
	for _, p := range it.Params {
		pt := resolveTyDecl(cx, sc, ar, p.Ty)
		if seen[p.Name] {
			cx.errorThing(itemID(id), Duplicate, ThingVariable)
		} else {
			seen[p.Name] = true
			fcVars[p.Name] = varData{ty: pt, defined: true}
		}
		params = append(params, Param{Name: p.Name, Ty: pt})
	}
	retTy := resolveTySized(cx, sc, ar, it.RetTy)
	noStruct(cx, tyID(it.RetTy), retTy)

	defined := NotYet
	if it.Body.Valid() {
		defined = Yes
	}
	sig := FnSig{Params: params, RetTy: retTy, Defined: defined}
	if old, ok := env.Fns[it.Name]; ok {
		sig = mergeFnSig(cx, itemID(id), old, sig)
	}
	env.Fns[it.Name] = sig
	env.FnDeclIds[it.Name] = id

	if it.Body.Valid() {
		fc := &fnCx{imp: sc.imp, ar: ar, vars: fcVars, retTy: retTy}
		end := checkStmt(cx, fc, sc, env, it.Body, false)
		if retTy != ty.Void && !end {
			cx.error(stmtID(it.Body), InvalidNoReturn)
		}
	}
}

// mergeFnSig folds new into old, the way a second declaration of the
// same function (a prototype followed by its definition, or two
// prototypes agreeing on shape) is reconciled: arity and parameter/
// return types must unify, and only two full definitions colliding is
// an outright Duplicate.
func mergeFnSig(cx *Cx, id Id, old, next FnSig) FnSig {
	if old.Defined == Yes && next.Defined == Yes {
		cx.errorThing(id, Duplicate, ThingFunction)
		return next
	}
	if len(old.Params) != len(next.Params) {
		cx.Errors = append(cx.Errors, Error{ID: id, Kind: MismatchedNumParams, WantN: len(old.Params), GotN: len(next.Params)})
	} else {
		for i := range next.Params {
			next.Params[i].Ty = unify(cx, id, old.Params[i].Ty, next.Params[i].Ty)
		}
	}
	next.RetTy = unify(cx, id, old.RetTy, next.RetTy)
	if old.Defined == Yes {
		next.Defined = Yes
	}
	return next
}
