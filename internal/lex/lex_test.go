package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, r Result) []Kind {
	t.Helper()
	out := make([]Kind, 0, len(r.Tokens))
	for _, tok := range r.Tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestKeywordsAndIdents(t *testing.T) {
	r := Get("int main foo_bar typedef")
	require.Empty(t, r.Errors)
	assert.Equal(t, []Kind{IntKw, Whitespace, Ident, Whitespace, Ident, Whitespace, TypedefKw}, kinds(t, r))
}

func TestNullIsAKeywordNotAnIdent(t *testing.T) {
	r := Get("NULL")
	require.Len(t, r.Tokens, 1)
	assert.Equal(t, NullKw, r.Tokens[0].Kind)
}

func TestHexLit(t *testing.T) {
	r := Get("0xFF 0x")
	require.Len(t, r.Errors, 1)
	assert.Equal(t, EmptyHexLit, r.Errors[0].Kind)
	assert.Equal(t, []Kind{HexLit, Whitespace, HexLit}, kinds(t, r))
}

func TestLongestPunctuationWins(t *testing.T) {
	r := Get(">>= >> > -> -")
	assert.Equal(t, []Kind{GtGtEq, Whitespace, GtGt, Whitespace, Gt, Whitespace, Arrow, Whitespace, Minus}, kinds(t, r))
}

func TestUsePragmaEnablesLibLitUntilNewline(t *testing.T) {
	r := Get("#use <string>\nx < y")
	require.Empty(t, r.Errors)
	got := kinds(t, r)
	assert.Equal(t, UseKw, got[0])
	assert.Equal(t, LibLit, got[2])
	// after the newline, '<' goes back to being the less-than operator.
	assert.Contains(t, got, Lt)
}

func TestUnclosedStringLit(t *testing.T) {
	r := Get(`"abc`)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, UnclosedStringLit, r.Errors[0].Kind)
}

func TestInvalidEscape(t *testing.T) {
	r := Get(`"a\qb"`)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, InvalidCharEscape, r.Errors[0].Kind)
}

func TestCharLitWrongLength(t *testing.T) {
	r := Get(`'ab'`)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, WrongLenCharLit, r.Errors[0].Kind)
	assert.Equal(t, 2, r.Errors[0].Len)
}

func TestUnclosedBlockCommentNesting(t *testing.T) {
	r := Get("/* outer /* inner */ still unclosed")
	require.Len(t, r.Errors, 1)
	assert.Equal(t, UnclosedBlockComment, r.Errors[0].Kind)
}

func TestLexingNeverGetsStuck(t *testing.T) {
	// A lone invalid byte (continuation byte with no leader) must still
	// advance by at least one byte per step.
	r := Get(string([]byte{0x80, 0x80, 'a'}))
	assert.NotEmpty(t, r.Tokens)
	last := r.Tokens[len(r.Tokens)-1]
	assert.Equal(t, Ident, last.Kind)
}
