package statics

import (
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/ty"
)

// checkStmt type-checks id, threading fc.vars through for definite-
// assignment and block scoping, and reports whether every path through
// id diverges (returns, or calls error(...)) — used both to flag dead
// code after it within the same block and to check a function's body
// actually returns on every path.
func checkStmt(cx *Cx, fc *fnCx, sc scope, env *Env, id hir.StmtId, inLoop bool) bool {
	if !id.Valid() {
		return false
	}
	s := fc.ar.Stmt.Get(id)
	switch s.Kind {
	case hir.StmtSimp:
		checkSimp(cx, fc, sc, env, s.Simp)
		return false

	case hir.StmtBlock:
		return checkBlock(cx, fc, sc, env, s.Body, inLoop)

	case hir.StmtIf:
		condTy := Expr(cx, fc, sc, env, s.Cond)
		unify(cx, exprID(s.Cond), ty.Bool, condTy)

		pre := fc.vars.clone()
		thenDiverges := checkStmt(cx, fc, sc, env, s.Then, inLoop)
		thenVars := fc.vars

		fc.vars = pre.clone()
		var elseDiverges bool
		if s.Else.Valid() {
			elseDiverges = checkStmt(cx, fc, sc, env, s.Else, inLoop)
		}
		elseVars := fc.vars

		switch {
		case thenDiverges && elseDiverges:
			fc.vars = pre
			return true
		case thenDiverges:
			fc.vars = elseVars
			return false
		case elseDiverges:
			fc.vars = thenVars
			return false
		default:
			fc.vars = mergeVars(thenVars, elseVars)
			return false
		}

	case hir.StmtWhile:
		condTy := Expr(cx, fc, sc, env, s.Cond)
		unify(cx, exprID(s.Cond), ty.Bool, condTy)
		pre := fc.vars.clone()
		checkStmt(cx, fc, sc, env, s.Then, true)
		fc.vars = pre
		return false

	case hir.StmtFor:
		pre := fc.vars.clone()
		newVar := checkSimp(cx, fc, sc, env, s.Init)
		if s.Cond.Valid() {
			condTy := Expr(cx, fc, sc, env, s.Cond)
			unify(cx, exprID(s.Cond), ty.Bool, condTy)
		}
		// the body runs before each step, so step sees whatever the body
		// just finished defining.
		checkStmt(cx, fc, sc, env, s.Then, true)
		if s.Step.Valid() {
			if step := fc.ar.Simp.Get(s.Step); step.Kind == hir.SimpDecl {
				cx.error(simpID(s.Step), InvalidStepDecl)
			} else {
				checkSimp(cx, fc, sc, env, s.Step)
			}
		}
		fc.vars = pre
		_ = newVar
		return false

	case hir.StmtReturn:
		if s.Ret.Valid() {
			t := Expr(cx, fc, sc, env, s.Ret)
			if fc.retTy == ty.Void {
				cx.error(exprID(s.Ret), ReturnExprVoid)
			} else {
				unify(cx, exprID(s.Ret), fc.retTy, t)
			}
		} else if fc.retTy != ty.Void {
			cx.error(stmtID(id), NoReturnExprNotVoid)
		}
		defineAll(fc)
		return true

	case hir.StmtAssert:
		t := Expr(cx, fc, sc, env, s.Cond)
		unify(cx, exprID(s.Cond), ty.Bool, t)
		return false

	case hir.StmtError:
		t := Expr(cx, fc, sc, env, s.Cond)
		unify(cx, exprID(s.Cond), ty.String, t)
		defineAll(fc)
		return true

	case hir.StmtBreak:
		if !inLoop {
			cx.error(stmtID(id), BreakOutsideLoop)
		}
		defineAll(fc)
		return true

	case hir.StmtContinue:
		if !inLoop {
			cx.error(stmtID(id), ContinueOutsideLoop)
		}
		defineAll(fc)
		return true

	default:
		return false
	}
}

// checkBlock checks every statement in body in order, flagging anything
// after a diverging statement as unreachable when cx.CheckUnreachable
// is set, and dropping variables the block itself introduced once it
// ends (C0 declarations are scoped to their enclosing block).
func checkBlock(cx *Cx, fc *fnCx, sc scope, env *Env, body []hir.StmtId, inLoop bool) bool {
	before := fc.vars.clone()
	diverged := false
	for _, sid := range body {
		if diverged && cx.CheckUnreachable {
			cx.error(stmtID(sid), Unreachable)
		}
		if checkStmt(cx, fc, sc, env, sid, inLoop) {
			diverged = true
		}
	}
	for name := range fc.vars {
		if _, existed := before[name]; !existed {
			delete(fc.vars, name)
		}
	}
	return diverged
}

// mergeVars combines two branches' variable state back into one: a
// variable counts as defined afterward only if both branches defined
// it, and a variable scoped out of one branch (a nested block-local
// declaration) simply isn't carried forward.
func mergeVars(a, b vars) vars {
	out := make(vars, len(a))
	for name, av := range a {
		bv, ok := b[name]
		if !ok {
			continue
		}
		out[name] = varData{ty: av.ty, defined: av.defined && bv.defined}
	}
	return out
}
