package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(MATCH|WHERE|RETURN|ORDER|BY|SKIP|LIMIT|AND|OR|NOT|AS|STARTS|ENDS|WITH|CONTAINS|TRUE|FALSE|NULL|TYPE|ASC|DESC)\b`},
	{Name: "LArrow", Pattern: `<-`},
	{Name: "RArrow", Pattern: `->`},
	{Name: "Le", Pattern: `<=`},
	{Name: "Ge", Pattern: `>=`},
	{Name: "Ne", Pattern: `!=|<>`},
	{Name: "DotDot", Pattern: `\.\.`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"|'([^'\\]|\\.)*'`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Op", Pattern: `[=<>~]`},
	{Name: "Punct", Pattern: `[(){}\[\]:,\.\|\*]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Grammar is the top-level AST node produced from a pattern string
// (spec §4.2). Leaves are strings/numbers; no semantic checks happen
// at this layer — lower.go does all of that.
type Grammar struct {
	Match   bool             `parser:"@\"MATCH\"?"`
	Start   *NodeExprAST     `parser:"@@"`
	Hops    []*HopAST        `parser:"@@*"`
	Where   *OrExprAST       `parser:"( \"WHERE\" @@ )?"`
	Return  []*RetItemAST    `parser:"( \"RETURN\" @@ ( \",\" @@ )* )?"`
	OrderBy []*OrderItemAST  `parser:"( \"ORDER\" \"BY\" @@ ( \",\" @@ )* )?"`
	Skip    *int64           `parser:"( \"SKIP\" @Int )?"`
	Limit   *int64           `parser:"( \"LIMIT\" @Int )?"`
}

// HopAST is one (EdgeExpr NodeExpr) pair following the start node.
type HopAST struct {
	Edge *EdgeExprAST `parser:"@@"`
	Node *NodeExprAST `parser:"@@"`
}

// NodeExprAST ::= Ident (':' Ident)? ('{' PropFilter (',' PropFilter)* '}')?
type NodeExprAST struct {
	Var   string           `parser:"@Ident"`
	Type  *string          `parser:"( \":\" @Ident )?"`
	Props []*PropFilterAST `parser:"( \"{\" @@ ( \",\" @@ )* \"}\" )?"`
}

// PropFilterAST ::= key Op Scalar. The grammar treats `label = ...` /
// `label ~ ...` as an ordinary key/op/value triple too — lower.go is
// what special-cases Key == "label".
type PropFilterAST struct {
	Key   string       `parser:"@Ident"`
	Op    string       `parser:"@( \":\" | \"=\" | \"!=\" | \">=\" | \"<=\" | \">\" | \"<\" | \"~\" )"`
	Value *LiteralAST  `parser:"@@"`
}

// EdgeExprAST unifies the spec's two directional productions
// (`'-' EdgeBody? ('->' | '-')` and `('<-' | '-') EdgeBody? '-'`) into
// one rule: Left names whichever leading token matched, Right whichever
// trailing token matched. lower.go derives Forward/Backward from the
// pair per spec §4.3 ("absence of a right arrow means backward when
// the left side is `<-`").
type EdgeExprAST struct {
	Left  string       `parser:"@(\"<-\"|\"-\")"`
	Body  *EdgeBodyAST `parser:"@@?"`
	Right string       `parser:"@(\"->\"|\"-\")"`
}

// EdgeBodyAST ::= '[' Ident? (':' TypeList)? ('*' VarLenSpec?)? ('{' PropFilter* '}')? ']'
type EdgeBodyAST struct {
	Var    *string          `parser:"\"[\" @Ident?"`
	Types  []string         `parser:"( \":\" @Ident ( \"|\" @Ident )* )?"`
	VarLen *VarLenAST       `parser:"@@?"`
	Props  []*PropFilterAST `parser:"( \"{\" @@ ( \",\" @@ )* \"}\" )? \"]\""`
}

// VarLenAST ::= '*' ( (Int? '..' Int?) | Int )?
// Range is listed first: alternatives are tried in order, and an Exact
// branch would otherwise take the leading Int of a range like `2..5`.
type VarLenAST struct {
	Star  bool       `parser:"@\"*\""`
	Range *RangeAST  `parser:"( @@"`
	Exact *int64     `parser:"| @Int )?"`
}

// RangeAST ::= Int? '..' Int?
type RangeAST struct {
	Min *int64 `parser:"@Int?"`
	Max *int64 `parser:"\"..\" @Int?"`
}

// RetItemAST ::= (Ident | Ident '.' Ident) (AS Ident)?
type RetItemAST struct {
	Var   string  `parser:"@Ident"`
	Prop  *string `parser:"( \".\" @Ident )?"`
	Alias *string `parser:"( \"AS\" @Ident )?"`
}

// OrderItemAST ::= (Ident | Ident '.' Ident) (ASC | DESC)?
type OrderItemAST struct {
	Var  string  `parser:"@Ident"`
	Prop *string `parser:"( \".\" @Ident )?"`
	Dir  *string `parser:"@( \"ASC\" | \"DESC\" )?"`
}

// OrExprAST / AndExprAST / UnaryExprAST / ComparisonExprAST implement
// the usual precedence ladder (spec §4.2: "OR < AND < NOT < Comparison",
// parentheses permitted), written the way the teacher writes nested
// dispatch ASTs (e.g. dsl.QueryAST) rather than as a flat operator list.
type OrExprAST struct {
	Left *AndExprAST   `parser:"@@"`
	Rest []*AndExprAST `parser:"( \"OR\" @@ )*"`
}

type AndExprAST struct {
	Left *UnaryExprAST   `parser:"@@"`
	Rest []*UnaryExprAST `parser:"( \"AND\" @@ )*"`
}

type UnaryExprAST struct {
	Not        *UnaryExprAST    `parser:"  \"NOT\" @@"`
	Paren      *OrExprAST       `parser:"| \"(\" @@ \")\""`
	Comparison *ComparisonExprAST `parser:"| @@"`
}

type ComparisonExprAST struct {
	Left *OperandAST     `parser:"@@"`
	Rest *CompareRestAST `parser:"@@"`
}

type CompareRestAST struct {
	Op    CompareOpAST `parser:"@@"`
	Right *OperandAST  `parser:"@@"`
}

// CompareOpAST captures which comparison operator matched as a set of
// mutually exclusive bools, the same idiom the teacher uses for
// ReducerAST.
type CompareOpAST struct {
	Eq         bool `parser:"( @\"=\""`
	Ne         bool `parser:"| @\"!=\""`
	Ne2        bool `parser:"| @\"<>\""`
	Ge         bool `parser:"| @\">=\""`
	Le         bool `parser:"| @\"<=\""`
	Gt         bool `parser:"| @\">\""`
	Lt         bool `parser:"| @\"<\""`
	StartsWith bool `parser:"| ( @\"STARTS\" \"WITH\" )"`
	EndsWith   bool `parser:"| ( @\"ENDS\" \"WITH\" )"`
	Contains   bool `parser:"| @\"CONTAINS\" )"`
}

// OperandAST ::= TypeCall | PropertyRef | Literal
type OperandAST struct {
	TypeCall *string         `parser:"(  \"TYPE\" \"(\" @Ident \")\""`
	Property *PropertyRefAST `parser:" | @@"`
	Literal  *LiteralAST     `parser:" | @@ )"`
}

// PropertyRefAST ::= Ident '.' Ident
type PropertyRefAST struct {
	Var string `parser:"@Ident \".\""`
	Key string `parser:"@Ident"`
}

// LiteralAST is a typed scalar literal.
type LiteralAST struct {
	Str   *string  `parser:"(  @String"`
	Float *float64 `parser:" | @Float"`
	Int   *int64   `parser:" | @Int"`
	True  bool     `parser:" | @\"TRUE\""`
	False bool     `parser:" | @\"FALSE\""`
	Null  bool     `parser:" | @\"NULL\" )"`
}

var dslParser = participle.MustBuild[Grammar](
	participle.Lexer(patternLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
