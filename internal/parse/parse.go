// Package parse turns a token stream from internal/lex into a
// internal/cst tree: a hand-written recursive-descent/Pratt parser,
// since no ready-made grammar exists for this language. Structurally it
// mirrors the teacher's event-based parser: enter a node, consume
// tokens or recurse, exit the node — with `Precede` used wherever a
// production only learns it needs a wrapping node after already having
// parsed its first child (binary expressions, postfix operators,
// pointer/array type suffixes).
package parse

import (
	"fmt"

	"github.com/azdavis/c0ls/internal/cst"
	"github.com/azdavis/c0ls/internal/lex"
)

// Error is one syntax diagnostic, with a byte range for rendering.
type Error struct {
	Range   cst.TextRange
	Message string
}

// Result is the output of parsing one file.
type Result struct {
	Root   *cst.Node
	Errors []Error
}

// typeDefs tracks identifiers introduced by `typedef` earlier in this
// file, so the parser can tell a declaration (`Name x;`) from a
// multiplication expression statement (`x * y;`) at the one spot in the
// grammar where that's ambiguous on tokens alone. A name not in this set
// parses as an expression; internal/lower then marks a `x * y;`
// statement of two bare names as ambiguous, and statics settles it
// against the typedefs visible from other files.
type typeDefs map[string]bool

func (t typeDefs) contains(name string) bool { return t[name] }

type parser struct {
	toks []lex.Token
	pos  int
	b    *cst.Builder
	errs []Error
	tds  typeDefs
}

// Parse lexes and parses src, returning the resulting tree and every
// lexical and syntactic error found along the way.
func Parse(src string) Result {
	lexRes := lex.Get(src)
	p := &parser{toks: lexRes.Tokens, b: cst.NewBuilder(), tds: typeDefs{}}
	for !p.atEOF() {
		p.item()
	}
	p.advanceTrivia()
	root := p.b.Finish()

	var errs []Error
	for _, e := range lexRes.Errors {
		errs = append(errs, Error{
			Range:   cst.TextRange{Start: e.Start, End: e.End},
			Message: e.Message(),
		})
	}
	errs = append(errs, p.errs...)
	return Result{Root: root, Errors: errs}
}

// --- low-level token cursor ---

// advanceTrivia attaches every trivia token starting at pos to whatever
// node is currently open, advancing pos past them.
func (p *parser) advanceTrivia() {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind.IsTrivia() {
		p.b.Token(p.toks[p.pos])
		p.pos++
	}
}

func (p *parser) atEOF() bool {
	save := p.pos
	p.advanceTriviaPeek()
	done := p.pos >= len(p.toks)
	p.pos = save
	return done
}

// advanceTriviaPeek is like advanceTrivia but only moves a scratch index,
// used by atEOF to look past trivia without mutating the tree.
func (p *parser) advanceTriviaPeek() {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind.IsTrivia() {
		p.pos++
	}
}

// at reports whether the next non-trivia token has kind k, attaching any
// skipped trivia to the currently open node as a side effect.
func (p *parser) at(k lex.Kind) bool {
	p.advanceTrivia()
	return p.pos < len(p.toks) && p.toks[p.pos].Kind == k
}

// peek returns the next non-trivia token without consuming it.
func (p *parser) peek() (lex.Token, bool) {
	p.advanceTrivia()
	if p.pos >= len(p.toks) {
		return lex.Token{}, false
	}
	return p.toks[p.pos], true
}

// bump consumes the next non-trivia token unconditionally, appending it
// as a leaf to the currently open node. Callers check `at` first.
func (p *parser) bump() lex.Token {
	p.advanceTrivia()
	tok := p.toks[p.pos]
	p.b.Token(tok)
	p.pos++
	return tok
}

// eat consumes the next token if it has kind k, else records an error
// without consuming anything.
func (p *parser) eat(k lex.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	p.errorAt(fmt.Sprintf("expected %s", k))
	return false
}

// errorAt records a parse error at the current (unconsumed) position.
func (p *parser) errorAt(msg string) {
	var rng cst.TextRange
	if tok, ok := p.peek(); ok {
		rng = cst.TextRange{Start: tok.Start, End: tok.End}
	} else if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		rng = cst.TextRange{Start: last.End, End: last.End}
	}
	p.errs = append(p.errs, Error{Range: rng, Message: msg})
}

func (p *parser) error() { p.errorAt("unexpected token") }

// recover consumes one token to guarantee forward progress after an
// unrecoverable parse error, unless input is already exhausted.
func (p *parser) recover() {
	if !p.atEOF() {
		p.bump()
	}
}

// must calls f; if it reports no node, records an error.
func (p *parser) must(f func() bool) {
	if !f() {
		p.error()
	}
}

func (p *parser) commaSep(end lex.Kind, f func()) {
	if p.at(end) {
		p.bump()
		return
	}
	for {
		f()
		if p.at(lex.Comma) {
			p.bump()
		} else if p.at(end) {
			p.bump()
			break
		} else {
			p.error()
			break
		}
	}
}

// --- items ---

func (p *parser) item() {
	switch {
	case p.at(lex.StructKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.Ident)
		switch {
		case p.at(lex.Semicolon):
			p.bump()
			p.b.Exit(m, cst.StructItem)
		case p.at(lex.LCurly):
			p.bump()
			for {
				if p.at(lex.RCurly) {
					p.bump()
					break
				}
				if _, ok := p.paramOpt(); !ok {
					p.error()
					break
				}
				p.eat(lex.Semicolon)
			}
			p.eat(lex.Semicolon)
			p.b.Exit(m, cst.StructItem)
		default:
			p.b.Exit(m, cst.StructTy)
			tyNode := p.lastChildOfRoot()
			p.fnTail(tyNode)
		}
	case p.at(lex.TypedefKw):
		m := p.b.Enter()
		p.bump()
		p.must(func() bool { _, ok := p.tyOpt(); return ok })
		if tok, ok := p.peek(); ok && tok.Kind == lex.Ident {
			p.bump()
			p.tds[tok.Text] = true
		}
		p.eat(lex.Semicolon)
		p.b.Exit(m, cst.TypedefItem)
	case p.at(lex.UseKw):
		m := p.b.Enter()
		p.bump()
		if p.at(lex.LibLit) || p.at(lex.StringLit) {
			p.bump()
		} else {
			p.error()
		}
		p.b.Exit(m, cst.UseItem)
	default:
		if tyNode, ok := p.tyHdOpt(); ok {
			p.fnTail(tyNode)
		} else {
			p.error()
			p.recover()
		}
	}
}

// lastChildOfRoot returns the node most recently closed at the current
// nesting level — used right after Exit to hand that node to fnTail via
// Precede, mirroring the teacher's `Exited` return value.
func (p *parser) lastChildOfRoot() *cst.Node {
	return p.b.LastClosed()
}

func (p *parser) fnTail(tyExited *cst.Node) {
	tyExited = p.tyTl(tyExited)
	p.eat(lex.Ident)
	p.eat(lex.LRound)
	p.commaSep(lex.RRound, p.param)
	switch {
	case p.at(lex.Semicolon):
		m := p.b.Precede(tyExited)
		p.bump()
		p.b.Exit(m, cst.FnItem)
	case p.at(lex.LCurly):
		m := p.b.Precede(tyExited)
		p.stmtBlock()
		p.b.Exit(m, cst.FnItem)
	default:
		p.error()
	}
}

func (p *parser) param() {
	if _, ok := p.paramOpt(); !ok {
		p.error()
	}
}

func (p *parser) paramOpt() (*cst.Node, bool) {
	tyExited, ok := p.tyOpt()
	if !ok {
		return nil, false
	}
	m := p.b.Precede(tyExited)
	p.eat(lex.Ident)
	p.b.Exit(m, cst.Param)
	return p.b.LastClosed(), true
}

// --- types ---

func (p *parser) ty() bool {
	_, ok := p.tyOpt()
	return ok
}

func (p *parser) tyOpt() (*cst.Node, bool) {
	hd, ok := p.tyHdOpt()
	if !ok {
		return nil, false
	}
	return p.tyTl(hd), true
}

func (p *parser) tyHdOpt() (*cst.Node, bool) {
	switch {
	case p.at(lex.IntKw), p.at(lex.BoolKw), p.at(lex.StringKw), p.at(lex.CharKw), p.at(lex.VoidKw):
		m := p.b.Enter()
		p.bump()
		p.b.Exit(m, cst.PrimTy)
		return p.b.LastClosed(), true
	case p.at(lex.StructKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.Ident)
		p.b.Exit(m, cst.StructTy)
		return p.b.LastClosed(), true
	default:
		if tok, ok := p.peek(); ok && tok.Kind == lex.Ident && p.tds.contains(tok.Text) {
			m := p.b.Enter()
			p.bump()
			p.b.Exit(m, cst.IdentTy)
			return p.b.LastClosed(), true
		}
		return nil, false
	}
}

func (p *parser) tyTl(exited *cst.Node) *cst.Node {
	for {
		switch {
		case p.at(lex.Star):
			m := p.b.Precede(exited)
			p.bump()
			p.b.Exit(m, cst.PtrTy)
			exited = p.b.LastClosed()
		case p.at(lex.LSquare):
			m := p.b.Precede(exited)
			p.bump()
			p.eat(lex.RSquare)
			p.b.Exit(m, cst.ArrayTy)
			exited = p.b.LastClosed()
		default:
			return exited
		}
	}
}

// --- statements ---

func (p *parser) stmtBlock() *cst.Node {
	m := p.b.Enter()
	p.eat(lex.LCurly)
	for {
		if p.at(lex.RCurly) {
			p.bump()
			break
		}
		if _, ok := p.stmtOpt(); !ok {
			p.error()
			break
		}
	}
	p.b.Exit(m, cst.BlockStmt)
	return p.b.LastClosed()
}

func (p *parser) stmt() {
	if _, ok := p.stmtOpt(); !ok {
		p.error()
	}
}

func (p *parser) stmtOpt() (*cst.Node, bool) {
	switch {
	case p.at(lex.IfKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.LRound)
		p.expr()
		p.eat(lex.RRound)
		p.stmt()
		if p.at(lex.ElseKw) {
			em := p.b.Enter()
			p.bump()
			p.stmt()
			p.b.Exit(em, cst.ElseBranch)
		}
		p.b.Exit(m, cst.IfStmt)
		return p.b.LastClosed(), true
	case p.at(lex.WhileKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.LRound)
		p.expr()
		p.eat(lex.RRound)
		p.stmt()
		p.b.Exit(m, cst.WhileStmt)
		return p.b.LastClosed(), true
	case p.at(lex.ForKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.LRound)
		sm := p.b.Enter()
		p.stmtSimpleOpt()
		p.b.Exit(sm, cst.SimpOpt)
		p.eat(lex.Semicolon)
		p.expr()
		p.eat(lex.Semicolon)
		sm2 := p.b.Enter()
		p.stmtSimpleOpt()
		p.b.Exit(sm2, cst.SimpOpt)
		p.eat(lex.RRound)
		p.stmt()
		p.b.Exit(m, cst.ForStmt)
		return p.b.LastClosed(), true
	case p.at(lex.ReturnKw):
		m := p.b.Enter()
		p.bump()
		p.exprOpt()
		p.eat(lex.Semicolon)
		p.b.Exit(m, cst.ReturnStmt)
		return p.b.LastClosed(), true
	case p.at(lex.LCurly):
		return p.stmtBlock(), true
	case p.at(lex.AssertKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.LRound)
		p.expr()
		p.eat(lex.RRound)
		p.eat(lex.Semicolon)
		p.b.Exit(m, cst.AssertStmt)
		return p.b.LastClosed(), true
	case p.at(lex.ErrorKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.LRound)
		p.expr()
		p.eat(lex.RRound)
		p.eat(lex.Semicolon)
		p.b.Exit(m, cst.ErrorStmt)
		return p.b.LastClosed(), true
	case p.at(lex.BreakKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.Semicolon)
		p.b.Exit(m, cst.BreakStmt)
		return p.b.LastClosed(), true
	case p.at(lex.ContinueKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.Semicolon)
		p.b.Exit(m, cst.ContinueStmt)
		return p.b.LastClosed(), true
	default:
		if exited, ok := p.stmtSimpleOpt(); ok {
			m := p.b.Precede(exited)
			p.eat(lex.Semicolon)
			p.b.Exit(m, cst.SimpStmt)
			return p.b.LastClosed(), true
		}
		return nil, false
	}
}

func (p *parser) stmtSimpleOpt() (*cst.Node, bool) {
	if ty, ok := p.tyOpt(); ok {
		m := p.b.Precede(ty)
		p.eat(lex.Ident)
		if p.at(lex.Eq) {
			dm := p.b.Enter()
			p.bump()
			p.expr()
			p.b.Exit(dm, cst.DefnTail)
		}
		p.b.Exit(m, cst.DeclSimp)
		return p.b.LastClosed(), true
	}
	exited, ok := p.exprOpt()
	if !ok {
		return nil, false
	}
	m := p.b.Precede(exited)
	var kind cst.NodeKind
	switch {
	case p.at(lex.Eq), p.at(lex.PlusEq), p.at(lex.MinusEq), p.at(lex.StarEq),
		p.at(lex.SlashEq), p.at(lex.PercentEq), p.at(lex.LtLtEq), p.at(lex.GtGtEq),
		p.at(lex.AndEq), p.at(lex.CaratEq), p.at(lex.BarEq):
		p.bump()
		p.expr()
		kind = cst.AsgnSimp
	case p.at(lex.PlusPlus), p.at(lex.MinusMinus):
		p.bump()
		kind = cst.IncDecSimp
	default:
		kind = cst.ExprSimp
	}
	p.b.Exit(m, kind)
	return p.b.LastClosed(), true
}

// --- expressions ---

var primTokens = map[lex.Kind]cst.NodeKind{
	lex.DecLit:    cst.DecExpr,
	lex.HexLit:    cst.HexExpr,
	lex.StringLit: cst.StringExpr,
	lex.CharLit:   cst.CharExpr,
	lex.TrueKw:    cst.TrueExpr,
	lex.FalseKw:   cst.FalseExpr,
	lex.NullKw:    cst.NullExpr,
}

func (p *parser) expr() {
	if _, ok := p.exprOpt(); !ok {
		p.error()
	}
}

func (p *parser) exprOpt() (*cst.Node, bool) {
	return p.exprPrec(0)
}

const unOpPrec = 12

func (p *parser) exprAtom() (*cst.Node, bool) {
	if tok, ok := p.peek(); ok {
		if kind, isPrim := primTokens[tok.Kind]; isPrim {
			m := p.b.Enter()
			p.bump()
			p.b.Exit(m, kind)
			return p.b.LastClosed(), true
		}
	}
	switch {
	case p.at(lex.LRound):
		m := p.b.Enter()
		p.bump()
		p.expr()
		p.eat(lex.RRound)
		p.b.Exit(m, cst.ParenExpr)
		return p.b.LastClosed(), true
	case p.at(lex.Ident):
		m := p.b.Enter()
		p.bump()
		if p.at(lex.LRound) {
			p.bump()
			p.commaSep(lex.RRound, func() {
				am := p.b.Enter()
				p.expr()
				p.b.Exit(am, cst.Arg)
			})
			p.b.Exit(m, cst.CallExpr)
		} else {
			p.b.Exit(m, cst.IdentExpr)
		}
		return p.b.LastClosed(), true
	case p.at(lex.AllocKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.LRound)
		p.must(p.ty)
		p.eat(lex.RRound)
		p.b.Exit(m, cst.AllocExpr)
		return p.b.LastClosed(), true
	case p.at(lex.AllocArrayKw):
		m := p.b.Enter()
		p.bump()
		p.eat(lex.LRound)
		p.must(p.ty)
		p.eat(lex.Comma)

		p.expr()
		p.eat(lex.RRound)
		p.b.Exit(m, cst.AllocArrayExpr)
		return p.b.LastClosed(), true
	default:
		return nil, false
	}
}

func (p *parser) exprPrec(minPrec int) (*cst.Node, bool) {
	var exited *cst.Node
	if p.at(lex.Bang) || p.at(lex.Tilde) || p.at(lex.Minus) || p.at(lex.Star) {
		m := p.b.Enter()
		p.bump()
		p.must(func() bool {
			_, ok := p.exprPrec(unOpPrec - 1)
			return ok
		})
		p.b.Exit(m, cst.UnOpExpr)
		exited = p.b.LastClosed()
	} else {
		var ok bool
		exited, ok = p.exprAtom()
		if !ok {
			return nil, false
		}
	}
	for {
		switch {
		case binOpPrec(p) > 0:
			prec := binOpPrec(p)
			if prec <= minPrec {
				return exited, true
			}
			m := p.b.Precede(exited)
			p.bump()
			p.must(func() bool {
				_, ok := p.exprPrec(prec)
				return ok
			})
			p.b.Exit(m, cst.BinOpExpr)
			exited = p.b.LastClosed()
		case p.at(lex.Question):
			if minPrec != 0 {
				return exited, true
			}
			m := p.b.Precede(exited)
			p.bump()
			p.expr()
			p.eat(lex.Colon)
			p.expr()
			p.b.Exit(m, cst.TernaryExpr)
			exited = p.b.LastClosed()
		case p.at(lex.Dot):
			m := p.b.Precede(exited)
			p.bump()
			p.eat(lex.Ident)
			p.b.Exit(m, cst.FieldGetExpr)
			exited = p.b.LastClosed()
		case p.at(lex.Arrow):
			m := p.b.Precede(exited)
			p.bump()
			p.eat(lex.Ident)
			p.b.Exit(m, cst.DerefFieldGetExpr)
			exited = p.b.LastClosed()
		case p.at(lex.LSquare):
			m := p.b.Precede(exited)
			p.bump()
			p.expr()
			p.eat(lex.RSquare)
			p.b.Exit(m, cst.SubscriptExpr)
			exited = p.b.LastClosed()
		default:
			return exited, true
		}
	}
}

// binOpPrec returns the binding power of the binary operator at the
// current position (11 tightest through 2 loosest), or 0 if the current
// token is not a binary operator.
func binOpPrec(p *parser) int {
	switch {
	case p.at(lex.Star), p.at(lex.Slash), p.at(lex.Percent):
		return 11
	case p.at(lex.Plus), p.at(lex.Minus):
		return 10
	case p.at(lex.LtLt), p.at(lex.GtGt):
		return 9
	case p.at(lex.Lt), p.at(lex.LtEq), p.at(lex.Gt), p.at(lex.GtEq):
		return 8
	case p.at(lex.EqEq), p.at(lex.BangEq):
		return 7
	case p.at(lex.And):
		return 6
	case p.at(lex.Carat):
		return 5
	case p.at(lex.Bar):
		return 4
	case p.at(lex.AndAnd):
		return 3
	case p.at(lex.BarBar):
		return 2
	default:
		return 0
	}
}
