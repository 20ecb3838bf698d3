package statics

import (
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/ty"
)

// Expr type-checks id and records its type in env.ExprTys, additionally
// rejecting a bare struct-by-value result (this is the entry point
// every statement/simp checker calls; expr sub-checks that legitimately
// expect a struct, like a dot-expression's base, call exprOpt instead).
func Expr(cx *Cx, fc *fnCx, sc scope, env *Env, id hir.ExprId) ty.Ty {
	t := exprOpt(cx, fc, sc, env, id)
	if id.Valid() {
		noStruct(cx, exprID(id), t)
	}
	return t
}

func exprOpt(cx *Cx, fc *fnCx, sc scope, env *Env, id hir.ExprId) ty.Ty {
	if !id.Valid() {
		return ty.Error
	}
	t := exprImpl(cx, fc, sc, env, id)
	env.ExprTys[id] = t
	return t
}

func exprImpl(cx *Cx, fc *fnCx, sc scope, env *Env, id hir.ExprId) ty.Ty {
	ar := fc.ar
	e := ar.Expr.Get(id)
	switch e.Kind {
	case hir.ExprInt:
		return ty.Int
	case hir.ExprBool:
		return ty.Bool
	case hir.ExprChar:
		return ty.Char
	case hir.ExprString:
		return ty.String
	case hir.ExprNull:
		return ty.PtrTop
	case hir.ExprName:
		data, ok := fc.vars[e.Name]
		if !ok {
			cx.errorThing(exprID(id), Undefined, ThingVariable)
			return ty.Error
		}
		if !data.defined {
			cx.error(exprID(id), UninitializedVar)
		}
		return data.ty
	case hir.ExprBinOp:
		lhsTy := exprOpt(cx, fc, sc, env, e.A)
		rhsTy := exprOpt(cx, fc, sc, env, e.B)
		params, ret := binOpTys(e.BinOp)
		for _, param := range params {
			if unified, ok := unifyImpl(cx, param, lhsTy); ok {
				unify(cx, exprID(e.B), unified, rhsTy)
				return ret
			}
		}
		cx.Errors = append(cx.Errors, Error{ID: exprID(e.A), Kind: MismatchedTysAny, WantTys: params, Ty: lhsTy})
		return ret
	case hir.ExprUnOp:
		t := exprOpt(cx, fc, sc, env, e.A)
		switch e.UnOp {
		case hir.Not:
			unify(cx, exprID(id), ty.Bool, t)
			return ty.Bool
		case hir.BitNot, hir.Neg:
			unify(cx, exprID(id), ty.Int, t)
			return ty.Int
		case hir.Deref:
			return deref(cx, exprID(e.A), t)
		default:
			return ty.Error
		}
	case hir.ExprTernary:
		condTy := exprOpt(cx, fc, sc, env, e.A)
		yesTy := Expr(cx, fc, sc, env, e.B)
		noTy := exprOpt(cx, fc, sc, env, e.C)
		unify(cx, exprID(e.A), ty.Bool, condTy)
		retTy := unify(cx, exprID(id), yesTy, noTy)
		noVoid(cx, exprID(id), retTy)
		noStruct(cx, exprID(id), retTy)
		return retTy
	case hir.ExprCall:
		argTys := make([]ty.Ty, len(e.Args))
		for i, a := range e.Args {
			argTys[i] = Expr(cx, fc, sc, env, a)
		}
		if _, shadowed := fc.vars[e.Name]; shadowed {
			cx.error(exprID(id), ShadowedFunction)
		}
		sig, ok := sc.fn(e.Name)
		if !ok {
			cx.errorThing(exprID(id), Undefined, ThingFunction)
			return ty.Error
		}
		env.Called[e.Name] = true
		if len(sig.Params) != len(argTys) {
			cx.Errors = append(cx.Errors, Error{ID: exprID(id), Kind: MismatchedNumArgs, WantN: len(sig.Params), GotN: len(argTys)})
		}
		n := len(sig.Params)
		if len(argTys) < n {
			n = len(argTys)
		}
		for i := 0; i < n; i++ {
			unify(cx, exprID(e.Args[i]), sig.Params[i].Ty, argTys[i])
		}
		return sig.RetTy
	case hir.ExprDot:
		baseTy := exprOpt(cx, fc, sc, env, e.A)
		if e.ViaArrow {
			baseTy = deref(cx, exprID(e.A), baseTy)
		}
		return structField(cx, sc, exprID(id), baseTy, e.Name)
	case hir.ExprSubscript:
		arrTy := Expr(cx, fc, sc, env, e.A)
		idxTy := exprOpt(cx, fc, sc, env, e.B)
		unify(cx, exprID(e.B), ty.Int, idxTy)
		if data := cx.Tys.Get(arrTy); data.Kind == ty.KArray {
			return data.Inner
		}
		cx.Errors = append(cx.Errors, Error{ID: exprID(id), Kind: SubscriptNonArray, Ty: arrTy})
		return ty.Error
	case hir.ExprAlloc:
		inner := resolveTySized(cx, sc, ar, e.Ty)
		return cx.Tys.Ptr(inner)
	case hir.ExprAllocArray:
		inner := resolveTySized(cx, sc, ar, e.Ty)
		lenTy := exprOpt(cx, fc, sc, env, e.A)
		unify(cx, exprID(e.A), ty.Int, lenTy)
		return cx.Tys.Array(inner)
	default:
		return ty.Error
	}
}

func deref(cx *Cx, id Id, t ty.Ty) ty.Ty {
	data := cx.Tys.Get(t)
	if data.Kind != ty.KPtr {
		cx.Errors = append(cx.Errors, Error{ID: id, Kind: DerefNonPtr, Ty: t})
		return ty.Error
	}
	if data.Inner == ty.Top {
		cx.error(id, DerefNull)
		return ty.Error
	}
	return data.Inner
}

func structField(cx *Cx, sc scope, id Id, structTy ty.Ty, field hir.Name) ty.Ty {
	data := cx.Tys.Get(structTy)
	if data.Kind != ty.KStruct {
		cx.Errors = append(cx.Errors, Error{ID: id, Kind: FieldGetNonStruct, Ty: structTy})
		return ty.Error
	}
	fields, ok := sc.structFields(hir.Name(data.StructName))
	if !ok {
		cx.errorThing(id, Undefined, ThingStruct)
		return ty.Error
	}
	t, ok := fields[field]
	if !ok {
		cx.errorThing(id, Undefined, ThingField)
		return ty.Error
	}
	return t
}

func binOpTys(op hir.BinOp) ([]ty.Ty, ty.Ty) {
	if op.IsMath {
		return []ty.Ty{ty.Int}, ty.Int
	}
	switch op.Kind {
	case hir.OpEq, hir.OpNeq:
		return []ty.Ty{ty.Int, ty.Bool, ty.Char, ty.PtrTop, ty.ArrayTop}, ty.Bool
	case hir.OpLt, hir.OpLtEq, hir.OpGt, hir.OpGtEq:
		return []ty.Ty{ty.Int, ty.Char}, ty.Bool
	case hir.OpAnd, hir.OpOr:
		return []ty.Ty{ty.Bool}, ty.Bool
	default:
		return nil, ty.Error
	}
}
