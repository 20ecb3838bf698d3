// Package lower turns one file's internal/cst tree into internal/hir:
// location-free, arena-indexed nodes. Every HIR node lowering allocates
// also gets an entry in a Maps, a bidirectional table back to the
// internal/cst.Ptr it came from, so later passes (diagnostics, hover,
// go-to-def) can answer "where did this come from" and "what did the
// user click on" without the arena itself holding tree pointers.
package lower

import (
	"github.com/azdavis/c0ls/internal/cst"
	"github.com/azdavis/c0ls/internal/hir"
	"github.com/azdavis/c0ls/internal/lex"
	"github.com/azdavis/c0ls/internal/textpos"
	"github.com/azdavis/c0ls/internal/uses"
)

// Error is a lowering-time diagnostic: today, only a pragma found after
// a non-pragma item (spec: pragmas must come before all other items).
type Error struct {
	Range   cst.TextRange
	Message string
}

// Maps is the bidirectional AST<->HIR pointer table for one file,
// populated one entry per node as lowering allocates it.
type Maps struct {
	ItemPtr map[hir.ItemId]cst.Ptr
	PtrItem map[cst.Ptr]hir.ItemId
	TyPtr   map[hir.TyId]cst.Ptr
	PtrTy   map[cst.Ptr]hir.TyId
	ExprPtr map[hir.ExprId]cst.Ptr
	PtrExpr map[cst.Ptr]hir.ExprId
	StmtPtr map[hir.StmtId]cst.Ptr
	PtrStmt map[cst.Ptr]hir.StmtId
	SimpPtr map[hir.SimpId]cst.Ptr
	PtrSimp map[cst.Ptr]hir.SimpId
}

func newMaps() *Maps {
	return &Maps{
		ItemPtr: map[hir.ItemId]cst.Ptr{},
		PtrItem: map[cst.Ptr]hir.ItemId{},
		TyPtr:   map[hir.TyId]cst.Ptr{},
		PtrTy:   map[cst.Ptr]hir.TyId{},
		ExprPtr: map[hir.ExprId]cst.Ptr{},
		PtrExpr: map[cst.Ptr]hir.ExprId{},
		StmtPtr: map[hir.StmtId]cst.Ptr{},
		PtrStmt: map[cst.Ptr]hir.StmtId{},
		SimpPtr: map[hir.SimpId]cst.Ptr{},
		PtrSimp: map[cst.Ptr]hir.SimpId{},
	}
}

// Result is the outcome of lowering one file.
type Result struct {
	Root   *hir.Root
	Maps   *Maps
	Uses   []uses.Raw
	Errors []Error
}

// Lower walks root (as produced by internal/parse) and produces its HIR.
func Lower(root *cst.Node) Result {
	l := &lowerer{arenas: hir.NewArenas(), maps: newMaps()}
	for _, n := range root.NonTrivia() {
		l.topItem(n)
	}
	return Result{
		Root:   &hir.Root{Arenas: l.arenas, Items: l.items},
		Maps:   l.maps,
		Uses:   l.uses,
		Errors: l.errs,
	}
}

type lowerer struct {
	arenas       *hir.Arenas
	maps         *Maps
	items        []hir.ItemId
	uses         []uses.Raw
	errs         []Error
	sawNonPragma bool
}

func toTextRange(r cst.TextRange) textpos.TextRange {
	return textpos.TextRange{Start: r.Start, End: r.End}
}

// --- tree-shape helpers ---
//
// cst.Node.NonTrivia mixes tokens and nodes in document order; these
// helpers pick out the ones a given production cares about, the same
// way the teacher's generated AST layer would via typed accessor
// methods, except written by hand since no such layer exists here.

func firstToken(n *cst.Node, ks ...lex.Kind) (*cst.Node, bool) {
	for _, c := range n.NonTrivia() {
		if !c.IsToken {
			continue
		}
		for _, k := range ks {
			if c.Token == k {
				return c, true
			}
		}
	}
	return nil, false
}

func nodeChildren(n *cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range n.NonTrivia() {
		if !c.IsToken {
			out = append(out, c)
		}
	}
	return out
}

func childrenOfKind(n *cst.Node, k cst.NodeKind) []*cst.Node {
	var out []*cst.Node
	for _, c := range nodeChildren(n) {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

func firstChildOfKind(n *cst.Node, k cst.NodeKind) (*cst.Node, bool) {
	for _, c := range nodeChildren(n) {
		if c.Kind == k {
			return c, true
		}
	}
	return nil, false
}

// unwrapDelims strips a LibLit's `<>` or a StringLit's `"..."`
// delimiters from its raw token text.
func unwrapDelims(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

// --- items ---

func (l *lowerer) topItem(n *cst.Node) {
	if n.Kind == cst.UseItem {
		if l.sawNonPragma {
			l.errs = append(l.errs, Error{Range: n.Range, Message: "pragmas must come before all other items"})
			return
		}
		l.lowerUse(n)
		return
	}
	l.sawNonPragma = true
	if id, ok := l.item(n); ok {
		l.items = append(l.items, id)
	}
}

func (l *lowerer) lowerUse(n *cst.Node) {
	tok, ok := firstToken(n, lex.LibLit, lex.StringLit)
	if !ok {
		return
	}
	kind := uses.Local
	if tok.Token == lex.LibLit {
		kind = uses.LibKind
	}
	l.uses = append(l.uses, uses.Raw{
		Path:  unwrapDelims(tok.Text),
		Kind:  kind,
		Range: toTextRange(n.Range),
	})
}

func (l *lowerer) item(n *cst.Node) (hir.ItemId, bool) {
	switch n.Kind {
	case cst.StructItem:
		return l.structItem(n), true
	case cst.TypedefItem:
		return l.typedefItem(n), true
	case cst.FnItem:
		return l.fnItem(n), true
	default:
		return hir.ItemId{}, false
	}
}

func (l *lowerer) allocItem(n *cst.Node, v hir.Item) hir.ItemId {
	id := l.arenas.Item.Alloc(v)
	p := cst.PtrOf(n)
	l.maps.ItemPtr[id] = p
	l.maps.PtrItem[p] = id
	return id
}

func (l *lowerer) structItem(n *cst.Node) hir.ItemId {
	name, _ := firstToken(n, lex.Ident)
	var fields []hir.Field
	for _, p := range childrenOfKind(n, cst.Param) {
		fields = append(fields, hir.Field{Name: paramName(p), Ty: l.paramTy(p)})
	}
	return l.allocItem(n, hir.Item{Kind: hir.ItemStruct, Name: tokName(name), Fields: fields})
}

func (l *lowerer) typedefItem(n *cst.Node) hir.ItemId {
	name, _ := firstToken(n, lex.Ident)
	var underlying hir.TyId
	if tyNode, ok := firstTyNode(n); ok {
		underlying = l.ty(tyNode)
	}
	return l.allocItem(n, hir.Item{Kind: hir.ItemTypeDef, Name: tokName(name), Underlying: underlying})
}

func (l *lowerer) fnItem(n *cst.Node) hir.ItemId {
	name, _ := firstToken(n, lex.Ident)
	var retTy hir.TyId
	if tyNode, ok := firstTyNode(n); ok {
		retTy = l.ty(tyNode)
	}
	var params []hir.Param
	for _, p := range childrenOfKind(n, cst.Param) {
		params = append(params, hir.Param{Name: paramName(p), Ty: l.paramTy(p)})
	}
	var body hir.StmtId
	if blk, ok := firstChildOfKind(n, cst.BlockStmt); ok {
		body = l.stmt(blk)
	}
	return l.allocItem(n, hir.Item{
		Kind: hir.ItemFn, Name: tokName(name), Params: params, RetTy: retTy, Body: body,
	})
}

func paramName(param *cst.Node) hir.Name {
	tok, _ := firstToken(param, lex.Ident)
	return tokName(tok)
}

func (l *lowerer) paramTy(param *cst.Node) hir.TyId {
	if tyNode, ok := firstTyNode(param); ok {
		return l.ty(tyNode)
	}
	return hir.TyId{}
}

func tokName(tok *cst.Node) hir.Name {
	if tok == nil {
		return ""
	}
	return hir.Name(tok.Text)
}

// --- types ---

var tyNodeKinds = []cst.NodeKind{cst.PrimTy, cst.StructTy, cst.IdentTy, cst.PtrTy, cst.ArrayTy}

func firstTyNode(n *cst.Node) (*cst.Node, bool) {
	for _, c := range nodeChildren(n) {
		for _, k := range tyNodeKinds {
			if c.Kind == k {
				return c, true
			}
		}
	}
	return nil, false
}

var primTyKinds = map[lex.Kind]hir.TyKind{
	lex.IntKw:    hir.TyInt,
	lex.BoolKw:   hir.TyBool,
	lex.StringKw: hir.TyString,
	lex.CharKw:   hir.TyChar,
	lex.VoidKw:   hir.TyVoid,
}

func (l *lowerer) allocTy(n *cst.Node, v hir.Ty) hir.TyId {
	id := l.arenas.Ty.Alloc(v)
	p := cst.PtrOf(n)
	l.maps.TyPtr[id] = p
	l.maps.PtrTy[p] = id
	return id
}

func (l *lowerer) ty(n *cst.Node) hir.TyId {
	switch n.Kind {
	case cst.PrimTy:
		tok, _ := firstToken(n, lex.IntKw, lex.BoolKw, lex.StringKw, lex.CharKw, lex.VoidKw)
		kind := hir.TyNone
		if tok != nil {
			kind = primTyKinds[tok.Token]
		}
		return l.allocTy(n, hir.Ty{Kind: kind})
	case cst.StructTy:
		tok, _ := firstToken(n, lex.Ident)
		return l.allocTy(n, hir.Ty{Kind: hir.TyStruct, Name: tokName(tok)})
	case cst.IdentTy:
		tok, _ := firstToken(n, lex.Ident)
		return l.allocTy(n, hir.Ty{Kind: hir.TyNamed, Name: tokName(tok)})
	case cst.PtrTy:
		inner, ok := firstTyNode(n)
		var innerID hir.TyId
		if ok {
			innerID = l.ty(inner)
		}
		return l.allocTy(n, hir.Ty{Kind: hir.TyPtr, Inner: innerID})
	case cst.ArrayTy:
		inner, ok := firstTyNode(n)
		var innerID hir.TyId
		if ok {
			innerID = l.ty(inner)
		}
		return l.allocTy(n, hir.Ty{Kind: hir.TyArray, Inner: innerID})
	default:
		return l.allocTy(n, hir.Ty{Kind: hir.TyNone})
	}
}

// --- statements ---

func (l *lowerer) allocStmt(n *cst.Node, v hir.Stmt) hir.StmtId {
	id := l.arenas.Stmt.Alloc(v)
	p := cst.PtrOf(n)
	l.maps.StmtPtr[id] = p
	l.maps.PtrStmt[p] = id
	return id
}

func (l *lowerer) stmt(n *cst.Node) hir.StmtId {
	switch n.Kind {
	case cst.BlockStmt:
		var body []hir.StmtId
		for _, c := range nodeChildren(n) {
			body = append(body, l.stmt(c))
		}
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtBlock, Body: body})
	case cst.IfStmt:
		kids := nodeChildren(n)
		var cond hir.ExprId
		var then, els hir.StmtId
		if len(kids) > 0 {
			cond = l.expr(kids[0])
		}
		if len(kids) > 1 {
			then = l.stmt(kids[1])
		}
		if len(kids) > 2 && kids[2].Kind == cst.ElseBranch {
			if eb := nodeChildren(kids[2]); len(eb) > 0 {
				els = l.stmt(eb[0])
			}
		}
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtIf, Cond: cond, Then: then, Else: els})
	case cst.WhileStmt:
		kids := nodeChildren(n)
		var cond hir.ExprId
		var body hir.StmtId
		if len(kids) > 0 {
			cond = l.expr(kids[0])
		}
		if len(kids) > 1 {
			body = l.stmt(kids[1])
		}
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtWhile, Cond: cond, Then: body})
	case cst.ForStmt:
		kids := nodeChildren(n) // [SimpOpt(init), cond, SimpOpt(step), body]
		var init, step hir.SimpId
		var cond hir.ExprId
		var body hir.StmtId
		if len(kids) > 0 && kids[0].Kind == cst.SimpOpt {
			init = l.simpOpt(kids[0])
		}
		if len(kids) > 1 {
			cond = l.expr(kids[1])
		}
		if len(kids) > 2 && kids[2].Kind == cst.SimpOpt {
			step = l.simpOpt(kids[2])
		}
		if len(kids) > 3 {
			body = l.stmt(kids[3])
		}
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtFor, Init: init, Cond: cond, Step: step, Then: body})
	case cst.ReturnStmt:
		var ret hir.ExprId
		if kids := nodeChildren(n); len(kids) > 0 {
			ret = l.expr(kids[0])
		}
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtReturn, Ret: ret})
	case cst.AssertStmt:
		var e hir.ExprId
		if kids := nodeChildren(n); len(kids) > 0 {
			e = l.expr(kids[0])
		}
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtAssert, Cond: e})
	case cst.ErrorStmt:
		var e hir.ExprId
		if kids := nodeChildren(n); len(kids) > 0 {
			e = l.expr(kids[0])
		}
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtError, Cond: e})
	case cst.BreakStmt:
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtBreak})
	case cst.ContinueStmt:
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtContinue})
	case cst.SimpStmt:
		kids := nodeChildren(n)
		var simp hir.SimpId
		if len(kids) > 0 {
			simp = l.simp(kids[0])
		}
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtSimp, Simp: simp})
	default:
		return l.allocStmt(n, hir.Stmt{Kind: hir.StmtNone})
	}
}

// simpOpt lowers a SimpOpt wrapper node, which holds at most one simp
// node (the parser always emits the wrapper, empty or not, for `for`'s
// init/step slots).
func (l *lowerer) simpOpt(n *cst.Node) hir.SimpId {
	kids := nodeChildren(n)
	if len(kids) == 0 {
		return hir.SimpId{}
	}
	return l.simp(kids[0])
}

// --- simple statements ---

func (l *lowerer) allocSimp(n *cst.Node, v hir.Simp) hir.SimpId {
	id := l.arenas.Simp.Alloc(v)
	p := cst.PtrOf(n)
	l.maps.SimpPtr[id] = p
	l.maps.PtrSimp[p] = id
	return id
}

var assignOpKinds = map[lex.Kind]hir.AssignOp{
	lex.Eq:        {IsMath: false},
	lex.PlusEq:    {IsMath: true, Math: hir.Add},
	lex.MinusEq:   {IsMath: true, Math: hir.Sub},
	lex.StarEq:    {IsMath: true, Math: hir.Mul},
	lex.SlashEq:   {IsMath: true, Math: hir.Div},
	lex.PercentEq: {IsMath: true, Math: hir.Mod},
	lex.LtLtEq:    {IsMath: true, Math: hir.Shl},
	lex.GtGtEq:    {IsMath: true, Math: hir.Shr},
	lex.AndEq:     {IsMath: true, Math: hir.BitAnd},
	lex.CaratEq:   {IsMath: true, Math: hir.BitXor},
	lex.BarEq:     {IsMath: true, Math: hir.BitOr},
}

func (l *lowerer) simp(n *cst.Node) hir.SimpId {
	if isAmbiguousSimp(n) {
		return l.ambiguousSimp(n)
	}
	switch n.Kind {
	case cst.DeclSimp:
		return l.declSimp(n)
	case cst.AsgnSimp:
		kids := nodeChildren(n) // [lhs, rhs]
		var lhs, rhs hir.ExprId
		if len(kids) > 0 {
			lhs = l.expr(kids[0])
		}
		if len(kids) > 1 {
			rhs = l.expr(kids[1])
		}
		op := hir.AssignOp{}
		for k, v := range assignOpKinds {
			if _, ok := firstToken(n, k); ok {
				op = v
				break
			}
		}
		return l.allocSimp(n, hir.Simp{Kind: hir.SimpAssign, Lhs: lhs, Rhs: rhs, AssignOp: op})
	case cst.IncDecSimp:
		kids := nodeChildren(n)
		var target hir.ExprId
		if len(kids) > 0 {
			target = l.expr(kids[0])
		}
		incDec := hir.Inc
		if _, ok := firstToken(n, lex.MinusMinus); ok {
			incDec = hir.Dec
		}
		return l.allocSimp(n, hir.Simp{Kind: hir.SimpIncDec, Target: target, IncDec: incDec})
	case cst.ExprSimp:
		kids := nodeChildren(n)
		var e hir.ExprId
		if len(kids) > 0 {
			e = l.expr(kids[0])
		}
		return l.allocSimp(n, hir.Simp{Kind: hir.SimpExpr, Expr: e})
	default:
		return l.allocSimp(n, hir.Simp{Kind: hir.SimpNone})
	}
}

func (l *lowerer) declSimp(n *cst.Node) hir.SimpId {
	name, _ := firstToken(n, lex.Ident)
	var tyID hir.TyId
	if tyNode, ok := firstTyNode(n); ok {
		tyID = l.ty(tyNode)
	}
	var init hir.ExprId
	if tail, ok := firstChildOfKind(n, cst.DefnTail); ok {
		if kids := nodeChildren(tail); len(kids) > 0 {
			init = l.expr(kids[0])
		}
	}
	return l.allocSimp(n, hir.Simp{Kind: hir.SimpDecl, Name: tokName(name), Ty: tyID, Init: init})
}

// isAmbiguousSimp recognizes `Name * Name;`, the one spot in the
// grammar the parser (working file-locally, without cross-file typedef
// knowledge) cannot disambiguate between a pointer declaration and a
// multiplication expression statement: an ExprSimp whose sole child is
// a top-level BinOpExpr(Star) of two bare identifiers.
func isAmbiguousSimp(n *cst.Node) bool {
	if n.Kind != cst.ExprSimp {
		return false
	}
	kids := nodeChildren(n)
	if len(kids) != 1 || kids[0].Kind != cst.BinOpExpr {
		return false
	}
	bin := kids[0]
	if _, ok := firstToken(bin, lex.Star); !ok {
		return false
	}
	binKids := nodeChildren(bin)
	if len(binKids) != 2 {
		return false
	}
	return binKids[0].Kind == cst.IdentExpr && binKids[1].Kind == cst.IdentExpr
}

func (l *lowerer) ambiguousSimp(n *cst.Node) hir.SimpId {
	bin := nodeChildren(n)[0]
	binKids := nodeChildren(bin)
	first, _ := firstToken(binKids[0], lex.Ident)
	second, _ := firstToken(binKids[1], lex.Ident)
	return l.allocSimp(n, hir.Simp{Kind: hir.SimpAmbiguous, First: tokName(first), Second: tokName(second)})
}

// --- expressions ---

func (l *lowerer) allocExpr(n *cst.Node, v hir.Expr) hir.ExprId {
	id := l.arenas.Expr.Alloc(v)
	p := cst.PtrOf(n)
	l.maps.ExprPtr[id] = p
	l.maps.PtrExpr[p] = id
	return id
}

var binMathKinds = map[lex.Kind]hir.MathOp{
	lex.Plus: hir.Add, lex.Minus: hir.Sub, lex.Star: hir.Mul,
	lex.Slash: hir.Div, lex.Percent: hir.Mod,
	lex.LtLt: hir.Shl, lex.GtGt: hir.Shr,
	lex.And: hir.BitAnd, lex.Carat: hir.BitXor, lex.Bar: hir.BitOr,
}

var binCompareKinds = map[lex.Kind]hir.CompareOp{
	lex.EqEq: hir.OpEq, lex.BangEq: hir.OpNeq,
	lex.Lt: hir.OpLt, lex.LtEq: hir.OpLtEq, lex.Gt: hir.OpGt, lex.GtEq: hir.OpGtEq,
	lex.AndAnd: hir.OpAnd, lex.BarBar: hir.OpOr,
}

var unOpKinds = map[lex.Kind]hir.UnOp{
	lex.Bang: hir.Not, lex.Tilde: hir.BitNot, lex.Minus: hir.Neg, lex.Star: hir.Deref,
}

func (l *lowerer) expr(n *cst.Node) hir.ExprId {
	switch n.Kind {
	case cst.DecExpr, cst.HexExpr:
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprInt})
	case cst.StringExpr:
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprString})
	case cst.CharExpr:
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprChar})
	case cst.TrueExpr, cst.FalseExpr:
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprBool})
	case cst.NullExpr:
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprNull})
	case cst.IdentExpr:
		tok, _ := firstToken(n, lex.Ident)
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprName, Name: tokName(tok)})
	case cst.ParenExpr:
		kids := nodeChildren(n)
		if len(kids) == 0 {
			return l.allocExpr(n, hir.Expr{Kind: hir.ExprNone})
		}
		// a parenthesized expression lowers transparently: the paren
		// node gets its own arena slot (so a Ptr pointing at it still
		// resolves) holding a copy of the inner expression's value.
		inner := l.expr(kids[0])
		innerV := l.arenas.Expr.Get(inner)
		return l.allocExpr(n, innerV)
	case cst.BinOpExpr:
		kids := nodeChildren(n)
		var a, b hir.ExprId
		if len(kids) > 0 {
			a = l.expr(kids[0])
		}
		if len(kids) > 1 {
			b = l.expr(kids[1])
		}
		for k, op := range binMathKinds {
			if _, ok := firstToken(n, k); ok {
				return l.allocExpr(n, hir.Expr{Kind: hir.ExprBinOp, A: a, B: b, BinOp: hir.BinOp{IsMath: true, Math: op}})
			}
		}
		for k, op := range binCompareKinds {
			if _, ok := firstToken(n, k); ok {
				return l.allocExpr(n, hir.Expr{Kind: hir.ExprBinOp, A: a, B: b, BinOp: hir.BinOp{IsMath: false, Kind: op}})
			}
		}
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprNone})
	case cst.UnOpExpr:
		kids := nodeChildren(n)
		var a hir.ExprId
		if len(kids) > 0 {
			a = l.expr(kids[0])
		}
		op := hir.Not
		for k, v := range unOpKinds {
			if _, ok := firstToken(n, k); ok {
				op = v
				break
			}
		}
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprUnOp, A: a, UnOp: op})
	case cst.TernaryExpr:
		kids := nodeChildren(n)
		var cond, yes, no hir.ExprId
		if len(kids) > 0 {
			cond = l.expr(kids[0])
		}
		if len(kids) > 1 {
			yes = l.expr(kids[1])
		}
		if len(kids) > 2 {
			no = l.expr(kids[2])
		}
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprTernary, A: cond, B: yes, C: no})
	case cst.CallExpr:
		tok, _ := firstToken(n, lex.Ident)
		var args []hir.ExprId
		for _, arg := range childrenOfKind(n, cst.Arg) {
			if kids := nodeChildren(arg); len(kids) > 0 {
				args = append(args, l.expr(kids[0]))
			}
		}
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprCall, Name: tokName(tok), Args: args})
	case cst.FieldGetExpr, cst.DerefFieldGetExpr:
		kids := nodeChildren(n)
		var base hir.ExprId
		if len(kids) > 0 {
			base = l.expr(kids[0])
		}
		field, _ := firstToken(n, lex.Ident)
		return l.allocExpr(n, hir.Expr{
			Kind: hir.ExprDot, A: base, Name: tokName(field), ViaArrow: n.Kind == cst.DerefFieldGetExpr,
		})
	case cst.SubscriptExpr:
		kids := nodeChildren(n)
		var arr, idx hir.ExprId
		if len(kids) > 0 {
			arr = l.expr(kids[0])
		}
		if len(kids) > 1 {
			idx = l.expr(kids[1])
		}
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprSubscript, A: arr, B: idx})
	case cst.AllocExpr:
		var tyID hir.TyId
		if tyNode, ok := firstTyNode(n); ok {
			tyID = l.ty(tyNode)
		}
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprAlloc, Ty: tyID})
	case cst.AllocArrayExpr:
		var tyID hir.TyId
		if tyNode, ok := firstTyNode(n); ok {
			tyID = l.ty(tyNode)
		}
		var length hir.ExprId
		for _, c := range nodeChildren(n) {
			if _, isTy := tyNodeKind(c); !isTy {
				length = l.expr(c)
				break
			}
		}
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprAllocArray, Ty: tyID, A: length})
	default:
		return l.allocExpr(n, hir.Expr{Kind: hir.ExprNone})
	}
}

func tyNodeKind(n *cst.Node) (cst.NodeKind, bool) {
	for _, k := range tyNodeKinds {
		if n.Kind == k {
			return k, true
		}
	}
	return 0, false
}
