package lex

// Kind is the kind of a single token. Kinds partition into trivia
// (whitespace, comments, invalid bytes), content (identifiers and
// literals), keywords, and punctuation.
type Kind int

const (
	Invalid Kind = iota

	// --- trivia ---
	Whitespace
	LineComment
	BlockComment

	// --- content ---
	Ident
	DecLit
	HexLit
	StringLit
	CharLit
	LibLit

	// --- keywords ---
	AllocKw
	AllocArrayKw
	AssertKw
	BoolKw
	BreakKw
	CharKw
	ContinueKw
	ElseKw
	ErrorKw
	FalseKw
	ForKw
	IfKw
	IntKw
	NullKw
	ReturnKw
	StringKw
	StructKw
	TrueKw
	TypedefKw
	VoidKw
	WhileKw
	// UseKw is the "#use" pragma token; it is matched directly rather
	// than through the identifier-keyword table (see keywords).
	UseKw

	// --- punctuation ---
	And       // &
	AndAnd    // &&
	AndEq     // &=
	Bang      // !
	BangEq    // !=
	Bar       // |
	BarBar    // ||
	BarEq     // |=
	Carat     // ^
	CaratEq   // ^=
	Colon     // :
	Comma     // ,
	Dot       // .
	Eq        // =
	EqEq      // ==
	Gt        // >
	GtEq      // >=
	GtGt      // >>
	GtGtEq    // >>=
	LCurly    // {
	LRound    // (
	LSquare   // [
	Lt        // <
	LtEq      // <=
	LtLt      // <<
	LtLtEq    // <<=
	Minus     // -
	MinusEq   // -=
	MinusMinus // --
	Percent   // %
	PercentEq // %=
	Plus      // +
	PlusEq    // +=
	PlusPlus  // ++
	Question  // ?
	RCurly    // }
	RRound    // )
	RSquare   // ]
	Semicolon // ;
	Slash     // /
	SlashEq   // /=
	Star      // *
	StarEq    // *=
	Tilde     // ~
	Arrow     // ->
)

//go:generate stringer -type=Kind

var kindNames = map[Kind]string{
	Invalid:      "invalid",
	Whitespace:   "whitespace",
	LineComment:  "line comment",
	BlockComment: "block comment",
	Ident:        "identifier",
	DecLit:       "decimal literal",
	HexLit:       "hex literal",
	StringLit:    "string literal",
	CharLit:      "char literal",
	LibLit:       "library literal",
	AllocKw:      "'alloc'",
	AllocArrayKw: "'alloc_array'",
	AssertKw:     "'assert'",
	BoolKw:       "'bool'",
	BreakKw:      "'break'",
	CharKw:       "'char'",
	ContinueKw:   "'continue'",
	ElseKw:       "'else'",
	ErrorKw:      "'error'",
	FalseKw:      "'false'",
	ForKw:        "'for'",
	IfKw:         "'if'",
	IntKw:        "'int'",
	NullKw:       "'NULL'",
	ReturnKw:     "'return'",
	StringKw:     "'string'",
	StructKw:     "'struct'",
	TrueKw:       "'true'",
	TypedefKw:    "'typedef'",
	VoidKw:       "'void'",
	WhileKw:      "'while'",
	UseKw:        "'#use'",
	And:          "'&'", AndAnd: "'&&'", AndEq: "'&='",
	Bang: "'!'", BangEq: "'!='",
	Bar: "'|'", BarBar: "'||'", BarEq: "'|='",
	Carat: "'^'", CaratEq: "'^='",
	Colon: "':'", Comma: "','", Dot: "'.'",
	Eq: "'='", EqEq: "'=='",
	Gt: "'>'", GtEq: "'>='", GtGt: "'>>'", GtGtEq: "'>>='",
	LCurly: "'{'", LRound: "'('", LSquare: "'['",
	Lt: "'<'", LtEq: "'<='", LtLt: "'<<'", LtLtEq: "'<<='",
	Minus: "'-'", MinusEq: "'-='", MinusMinus: "'--'",
	Percent: "'%'", PercentEq: "'%='",
	Plus: "'+'", PlusEq: "'+='", PlusPlus: "'++'",
	Question: "'?'",
	RCurly:   "'}'", RRound: "')'", RSquare: "']'",
	Semicolon: "';'",
	Slash:     "'/'", SlashEq: "'/='",
	Star: "'*'", StarEq: "'*='",
	Tilde: "'~'",
	Arrow: "'->'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsTrivia reports whether kind is kept in the CST but skipped by the
// parser's token stream.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, LineComment, BlockComment, Invalid:
		return true
	default:
		return false
	}
}

// keywords maps identifier-shaped byte sequences to their keyword kind.
// This is the lexer's "perfect-match table on the identifier bytes"
// (§4.c): a plain map lookup after the identifier's extent is known.
var keywords = map[string]Kind{
	"alloc":       AllocKw,
	"alloc_array": AllocArrayKw,
	"assert":      AssertKw,
	"bool":        BoolKw,
	"break":       BreakKw,
	"char":        CharKw,
	"continue":    ContinueKw,
	"else":        ElseKw,
	"error":       ErrorKw,
	"false":       FalseKw,
	"for":         ForKw,
	"if":          IfKw,
	"int":         IntKw,
	"NULL":        NullKw,
	"return":      ReturnKw,
	"string":      StringKw,
	"struct":      StructKw,
	"true":        TrueKw,
	"typedef":     TypedefKw,
	"void":        VoidKw,
	"while":       WhileKw,
}

// keywordOf returns the keyword kind for an identifier-shaped byte
// sequence, or Ident if it is not a keyword.
func keywordOf(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}

// punctuation is tried longest-first so that e.g. ">>=" is preferred
// over ">>" and ">" when all three would match at the current offset.
var punctuation = []struct {
	text string
	kind Kind
}{
	{"<<=", LtLtEq},
	{">>=", GtGtEq},
	{"->", Arrow},
	{"&&", AndAnd},
	{"&=", AndEq},
	{"!=", BangEq},
	{"||", BarBar},
	{"|=", BarEq},
	{"^=", CaratEq},
	{"==", EqEq},
	{">=", GtEq},
	{">>", GtGt},
	{"<=", LtEq},
	{"<<", LtLt},
	{"-=", MinusEq},
	{"--", MinusMinus},
	{"%=", PercentEq},
	{"+=", PlusEq},
	{"++", PlusPlus},
	{"/=", SlashEq},
	{"*=", StarEq},
	{"&", And},
	{"!", Bang},
	{"|", Bar},
	{"^", Carat},
	{":", Colon},
	{",", Comma},
	{".", Dot},
	{"=", Eq},
	{">", Gt},
	{"{", LCurly},
	{"(", LRound},
	{"[", LSquare},
	{"<", Lt},
	{"-", Minus},
	{"%", Percent},
	{"+", Plus},
	{"?", Question},
	{"}", RCurly},
	{")", RRound},
	{"]", RSquare},
	{";", Semicolon},
	{"/", Slash},
	{"*", Star},
	{"~", Tilde},
}
