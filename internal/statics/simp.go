package statics

import (
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/ty"
)

// checkSimp type-checks one simple statement, mutating fc.vars for
// assignment/definite-assignment tracking. It returns the name of a
// variable this simp newly introduced into scope (for SimpDecl and a
// SimpAmbiguous that resolves to a pointer declaration), or "". The
// `for` case in checkStmt discards it and restores the whole pre-loop
// scope instead.
func checkSimp(cx *Cx, fc *fnCx, sc scope, env *Env, id hir.SimpId) hir.Name {
	if !id.Valid() {
		return ""
	}
	s := fc.ar.Simp.Get(id)
	switch s.Kind {
	case hir.SimpAssign:
		checkAssign(cx, fc, sc, env, s)
		return ""
	case hir.SimpIncDec:
		checkIncDec(cx, fc, sc, env, s)
		return ""
	case hir.SimpDecl:
		checkDecl(cx, fc, sc, env, id, s)
		return s.Name
	case hir.SimpExpr:
		Expr(cx, fc, sc, env, s.Expr)
		return ""
	case hir.SimpAmbiguous:
		return checkAmbiguous(cx, fc, sc, env, id, s)
	default:
		return ""
	}
}

func checkAssign(cx *Cx, fc *fnCx, sc scope, env *Env, s hir.Simp) {
	rhsTy := Expr(cx, fc, sc, env, s.Rhs)
	lhsTy, name, ok := lv(cx, fc, sc, env, s.Lhs)
	if !ok {
		cx.error(exprID(s.Lhs), InvalidAssign)
		return
	}
	if s.AssignOp.IsMath {
		unify(cx, exprID(s.Lhs), ty.Int, lhsTy)
		unify(cx, exprID(s.Rhs), ty.Int, rhsTy)
	} else {
		unify(cx, exprID(s.Rhs), lhsTy, rhsTy)
	}
	if name != "" {
		define(fc, name)
	}
}

func checkIncDec(cx *Cx, fc *fnCx, sc scope, env *Env, s hir.Simp) {
	target := fc.ar.Expr.Get(s.Target)
	if target.Kind == hir.ExprUnOp && target.UnOp == hir.Deref {
		cx.Errors = append(cx.Errors, Error{ID: exprID(s.Target), Kind: DerefIncDec, IncDec: s.IncDec, HasIncDec: true})
		Expr(cx, fc, sc, env, s.Target)
		return
	}
	t, name, ok := lv(cx, fc, sc, env, s.Target)
	if !ok {
		cx.Errors = append(cx.Errors, Error{ID: exprID(s.Target), Kind: InvalidAssign, IncDec: s.IncDec, HasIncDec: true})
		return
	}
	if name != "" {
		if data := fc.vars[name]; !data.defined {
			cx.error(exprID(s.Target), UninitializedVar)
		}
		define(fc, name)
	}
	unify(cx, exprID(s.Target), ty.Int, t)
}

func checkDecl(cx *Cx, fc *fnCx, sc scope, env *Env, id hir.SimpId, s hir.Simp) {
	t := resolveTyDecl(cx, sc, fc.ar, s.Ty)
	env.DeclTys[id] = t
	if _, dup := fc.vars[s.Name]; dup {
		cx.errorThing(simpID(id), Duplicate, ThingVariable)
	} else if _, shadows := sc.typeDef(s.Name); shadows {
		cx.error(simpID(id), ShadowsTypeDef)
	}
	defined := false
	if s.Init.Valid() {
		initTy := Expr(cx, fc, sc, env, s.Init)
		unify(cx, exprID(s.Init), t, initTy)
		defined = true
	}
	fc.vars[s.Name] = varData{ty: t, defined: defined}
}

// checkAmbiguous resolves `First * Second;`: if First names a visible
// typedef, this is a pointer declaration `First* Second`; otherwise it
// is ordinary integer multiplication of two variables, checked (and
// discarded) as an expression statement.
func checkAmbiguous(cx *Cx, fc *fnCx, sc scope, env *Env, id hir.SimpId, s hir.Simp) hir.Name {
	if underlying, ok := sc.typeDef(s.First); ok {
		ptrTy := cx.Tys.Ptr(underlying)
		env.DeclTys[id] = ptrTy
		if _, dup := fc.vars[s.Second]; dup {
			cx.errorThing(simpID(id), Duplicate, ThingVariable)
		}
		fc.vars[s.Second] = varData{ty: ptrTy, defined: false}
		return s.Second
	}
	firstTy := lookupVar(cx, fc, simpID(id), s.First)
	secondTy := lookupVar(cx, fc, simpID(id), s.Second)
	unify(cx, simpID(id), ty.Int, firstTy)
	unify(cx, simpID(id), ty.Int, secondTy)
	return ""
}

func lookupVar(cx *Cx, fc *fnCx, id Id, name hir.Name) ty.Ty {
	data, ok := fc.vars[name]
	if !ok {
		cx.errorThing(id, Undefined, ThingVariable)
		return ty.Error
	}
	if !data.defined {
		cx.error(id, UninitializedVar)
	}
	return data.ty
}

// lv checks id as an assignment target, reporting the type it holds,
// the plain variable name it names (so the caller can mark it as now
// defined), and whether it is assignable at all. A bare variable name
// is always assignable without itself needing to already be defined —
// that's exactly how a variable becomes defined. Anything reached
// through a dereference, field access, or subscript is assignable but
// requires its base already be defined, checked the same as any other
// expression.
func lv(cx *Cx, fc *fnCx, sc scope, env *Env, id hir.ExprId) (ty.Ty, hir.Name, bool) {
	if !id.Valid() {
		return ty.Error, "", false
	}
	e := fc.ar.Expr.Get(id)
	switch e.Kind {
	case hir.ExprName:
		data, ok := fc.vars[e.Name]
		if !ok {
			cx.errorThing(exprID(id), Undefined, ThingVariable)
			env.ExprTys[id] = ty.Error
			return ty.Error, e.Name, true
		}
		env.ExprTys[id] = data.ty
		return data.ty, e.Name, true
	case hir.ExprUnOp:
		if e.UnOp == hir.Deref {
			return Expr(cx, fc, sc, env, id), "", true
		}
		Expr(cx, fc, sc, env, id)
		return ty.Error, "", false
	case hir.ExprDot, hir.ExprSubscript:
		return Expr(cx, fc, sc, env, id), "", true
	default:
		Expr(cx, fc, sc, env, id)
		return ty.Error, "", false
	}
}

// define marks name as defined on every path from here on, the way an
// assignment or a successful inc/dec operation (which requires the
// variable already hold a value) settles it for good.
func define(fc *fnCx, name hir.Name) {
	if data, ok := fc.vars[name]; ok {
		data.defined = true
		fc.vars[name] = data
	}
}

// defineAll marks every in-scope variable as defined: a return, break,
// or continue statement ends this control-flow path, so whatever a
// later merge sees for the branch it's in shouldn't be held back by
// variables this path itself never got around to assigning.
func defineAll(fc *fnCx) {
	for name, data := range fc.vars {
		data.defined = true
		fc.vars[name] = data
	}
}
