// Package edit implements the core's optional format query: a pure,
// whitespace-normalising re-emission of a file's already-lexed tokens.
// It never re-parses; it only walks the CST the build already produced.
package edit

import (
	"strings"

	"github.com/azdavis/c0ls/internal/cst"
	"github.com/azdavis/c0ls/internal/lex"
)

// Format re-emits root's token stream with normalised whitespace: every
// token's own text is preserved verbatim, but the trivia between tokens
// is collapsed to a single space, a single newline, or a blank line,
// chosen by how much vertical whitespace separated them in the source.
func Format(root *cst.Node) string {
	leaves := leavesOf(root)

	var b strings.Builder
	first := true
	pendingNewlines := 0
	var prev *cst.Node

	for _, leaf := range leaves {
		if leaf.Token.IsTrivia() {
			pendingNewlines += strings.Count(leaf.Text, "\n")
			continue
		}
		switch {
		case first:
			// nothing to emit before the first token.
		case pendingNewlines >= 2:
			b.WriteString("\n\n")
		case pendingNewlines == 1:
			b.WriteString("\n")
		case needsSpace(prev.Token, leaf.Token):
			b.WriteString(" ")
		}
		b.WriteString(leaf.Text)
		first = false
		pendingNewlines = 0
		prev = leaf
	}
	b.WriteString("\n")
	return b.String()
}

// leavesOf returns every token leaf under root, in document order.
func leavesOf(n *cst.Node) []*cst.Node {
	var out []*cst.Node
	var walk func(*cst.Node)
	walk = func(n *cst.Node) {
		if n.IsToken {
			out = append(out, n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// noSpaceBefore is the set of tokens that never take a leading space
// when they follow another token on the same line.
var noSpaceBefore = map[lex.Kind]bool{
	lex.Comma:      true,
	lex.Semicolon:  true,
	lex.RRound:     true,
	lex.RSquare:    true,
	lex.Dot:        true,
	lex.Arrow:      true,
	lex.LRound:     true,
	lex.PlusPlus:   true,
	lex.MinusMinus: true,
}

// noSpaceAfter is the set of tokens that never take a trailing space
// before the next token on the same line.
var noSpaceAfter = map[lex.Kind]bool{
	lex.LRound:  true,
	lex.LSquare: true,
	lex.Dot:     true,
	lex.Arrow:   true,
	lex.Bang:    true,
	lex.Tilde:   true,
}

func needsSpace(prev, next lex.Kind) bool {
	if noSpaceAfter[prev] || noSpaceBefore[next] {
		return false
	}
	// `f(` and `a[` hug the opener; the opener's own noSpaceAfter entry
	// already handles the other side of that pair.
	if next == lex.LRound || next == lex.LSquare {
		switch prev {
		case lex.Ident, lex.RRound, lex.RSquare:
			return false
		}
	}
	return true
}
