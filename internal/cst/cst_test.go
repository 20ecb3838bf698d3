package cst

import (
	"testing"

	"github.com/azdavis/c0ls/internal/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAPlusB builds the tree for "a+b" as BinOpExpr(IdentExpr(a), +, IdentExpr(b))
// using Enter/Precede the same way the expression parser does.
func buildAPlusB(t *testing.T) *Node {
	t.Helper()
	b := NewBuilder()
	a := lex.Token{Kind: lex.Ident, Text: "a", Start: 0, End: 1}
	plus := lex.Token{Kind: lex.Plus, Text: "+", Start: 1, End: 2}
	bb := lex.Token{Kind: lex.Ident, Text: "b", Start: 2, End: 3}

	m1 := b.Enter()
	b.Token(a)
	b.Exit(m1, IdentExpr)

	lhs := b.stack[0].Children[len(b.stack[0].Children)-1]
	m2 := b.Precede(lhs)
	b.Token(plus)
	m3 := b.Enter()
	b.Token(bb)
	b.Exit(m3, IdentExpr)
	b.Exit(m2, BinOpExpr)

	return b.Finish()
}

func TestBuilderPrecede(t *testing.T) {
	root := buildAPlusB(t)
	require.Len(t, root.Children, 1)
	binOp := root.Children[0]
	assert.Equal(t, BinOpExpr, binOp.Kind)
	assert.Equal(t, TextRange{Start: 0, End: 3}, binOp.Range)
	require.Len(t, binOp.Children, 3)
	assert.Equal(t, IdentExpr, binOp.Children[0].Kind)
	assert.True(t, binOp.Children[1].IsToken)
	assert.Equal(t, IdentExpr, binOp.Children[2].Kind)
}

func TestPtrResolve(t *testing.T) {
	root := buildAPlusB(t)
	binOp := root.Children[0]
	rhs := binOp.Children[2]
	ptr := PtrOf(rhs)
	got := ptr.Resolve(root)
	assert.Same(t, rhs, got)
}

func TestNonTriviaFiltersTrivia(t *testing.T) {
	b := NewBuilder()
	m := b.Enter()
	b.Token(lex.Token{Kind: lex.Ident, Text: "x", Start: 0, End: 1})
	b.Token(lex.Token{Kind: lex.Whitespace, Text: " ", Start: 1, End: 2})
	b.Exit(m, IdentExpr)
	root := b.Finish()
	nt := root.Children[0].NonTrivia()
	assert.Len(t, nt, 1)
}
