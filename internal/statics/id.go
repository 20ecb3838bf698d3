package statics

import "github.com/azdavis/c0ls/internal/hir"

// IdKind tags which arena an Id refers into.
type IdKind int

const (
	IdExpr IdKind = iota
	IdTy
	IdStmt
	IdSimp
	IdItem
)

// Id is a tagged union over the five HIR arenas, used as the location
// key for every diagnostic. Error creation never needs a source range —
// only internal/analysis, resolving a diagnostic for display, walks
// Id back through a lower.Maps to the internal/cst.Ptr it came from.
type Id struct {
	Kind IdKind
	Expr hir.ExprId
	Ty   hir.TyId
	Stmt hir.StmtId
	Simp hir.SimpId
	Item hir.ItemId
}

func exprID(id hir.ExprId) Id { return Id{Kind: IdExpr, Expr: id} }
func tyID(id hir.TyId) Id     { return Id{Kind: IdTy, Ty: id} }
func stmtID(id hir.StmtId) Id { return Id{Kind: IdStmt, Stmt: id} }
func simpID(id hir.SimpId) Id { return Id{Kind: IdSimp, Simp: id} }
func itemID(id hir.ItemId) Id { return Id{Kind: IdItem, Item: id} }
