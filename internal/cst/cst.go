package cst

import "github.com/azdavis/c0ls/internal/lex"

// TextRange is a half-open byte range, duplicated here (rather than
// imported from textpos) so this low-level package has no dependency
// beyond lex: both textpos and cst need only the pair of offsets.
type TextRange struct {
	Start uint32
	End   uint32
}

func (r TextRange) Contains(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Node is one interior or leaf node of the tree. A leaf has IsToken set
// and no Children; an interior node has Kind set and one or more
// Children, which may themselves be leaves (including trivia tokens).
type Node struct {
	IsToken bool
	Kind    NodeKind
	Token   lex.Kind
	Text    string
	Range   TextRange
	Parent  *Node
	Children []*Node
}

// Ptr is a stable, by-value pointer from an HIR node back into the
// tree: a (kind, range) pair. Resolving it walks the tree from Root, so
// no direct pointer needs to be stored in the (arena-allocated, acyclic)
// HIR.
type Ptr struct {
	Kind  NodeKind
	Range TextRange
}

func PtrOf(n *Node) Ptr {
	return Ptr{Kind: n.Kind, Range: n.Range}
}

// Resolve walks down from root to the node matching p. It panics if no
// such node exists, since a Ptr is only ever constructed from a node
// that really is in this tree.
func (p Ptr) Resolve(root *Node) *Node {
	cur := root
outer:
	for {
		if cur.Kind == p.Kind && cur.Range == p.Range {
			return cur
		}
		for _, c := range cur.Children {
			if !c.IsToken && c.Range.Contains(p.Range) {
				cur = c
				continue outer
			}
		}
		panic("cst: ptr does not resolve against this tree")
	}
}

// NonTrivia returns n's children that are not trivia tokens (whitespace,
// comments, invalid bytes) and not themselves trivia.
func (n *Node) NonTrivia() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.IsToken && c.Token.IsTrivia() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Mark is a checkpoint returned by Builder.Enter, used to either Exit it
// as a new node or, via Precede, wrap an already-exited node inside a
// new parent (the event-parse "precede" trick used to build
// left-recursive structures like binary expressions without
// backtracking).
type Mark struct {
	node *Node
}

// Builder assembles a Node tree from a flat sequence of
// enter/token/exit events, mirroring the parser's control flow one to
// one: Enter attaches a placeholder under the node on top of the stack
// and pushes it, Token appends a leaf to the node on top of the stack,
// and Exit pops the placeholder and assigns it a kind and range.
type Builder struct {
	stack []*Node
}

func NewBuilder() *Builder {
	root := &Node{Kind: Root}
	return &Builder{stack: []*Node{root}}
}

// Enter opens a new node, returning a Mark that Exit or Precede will
// later consume.
func (b *Builder) Enter() Mark {
	n := &Node{}
	top := b.stack[len(b.stack)-1]
	n.Parent = top
	top.Children = append(top.Children, n)
	b.stack = append(b.stack, n)
	return Mark{node: n}
}

// Token appends a leaf token node under the current top of stack.
func (b *Builder) Token(tok lex.Token) {
	top := b.stack[len(b.stack)-1]
	leaf := &Node{
		IsToken: true,
		Token:   tok.Kind,
		Text:    tok.Text,
		Range:   TextRange{Start: tok.Start, End: tok.End},
		Parent:  top,
	}
	top.Children = append(top.Children, leaf)
}

// Exit closes the node opened by m, giving it kind, setting its range
// to the span of its children, and popping it off the stack.
func (b *Builder) Exit(m Mark, kind NodeKind) {
	if b.stack[len(b.stack)-1] != m.node {
		panic("cst: exit does not match the innermost open node")
	}
	b.stack = b.stack[:len(b.stack)-1]
	m.node.Kind = kind
	m.node.Range = spanOf(m.node.Children)
}

// Precede retroactively wraps the already-exited node prev inside a new
// parent, re-parenting prev as the new node's sole initial child. This
// is how the parser builds e.g. `a + b` as BinOpExpr(a, +, b) without
// having known at the start of `a` that a binary operator would follow.
func (b *Builder) Precede(prev *Node) Mark {
	parent := prev.Parent
	idx := -1
	for i, c := range parent.Children {
		if c == prev {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("cst: precede target is not a child of its recorded parent")
	}
	n := &Node{Parent: parent}
	parent.Children[idx] = n
	n.Children = append(n.Children, prev)
	prev.Parent = n
	b.stack = append(b.stack, n)
	return Mark{node: n}
}

// LastClosed returns the node most recently closed by Exit: the last
// child attached to whatever node is now on top of the stack. Parser
// productions use this to get an `Exited`-style handle on the node they
// just finished, the same way the teacher's event-parse Parser returns
// one directly from Exit.
func (b *Builder) LastClosed() *Node {
	top := b.stack[len(b.stack)-1]
	return top.Children[len(top.Children)-1]
}

// Finish completes the build, returning the Root node. The builder must
// have no nodes left open (besides Root itself).
func (b *Builder) Finish() *Node {
	if len(b.stack) != 1 {
		panic("cst: unbalanced enter/exit calls")
	}
	root := b.stack[0]
	root.Range = spanOf(root.Children)
	return root
}

func spanOf(children []*Node) TextRange {
	if len(children) == 0 {
		return TextRange{}
	}
	first, last := children[0], children[len(children)-1]
	return TextRange{Start: first.Range.Start, End: last.Range.End}
}
