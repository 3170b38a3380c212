package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// The types below are a declarative rendering of the while language over the
// same token table. They recognize exactly the programs internal/parser
// accepts and serve as its reference.

type Program struct {
	Pos  lexer.Position
	Body *Block `@@`
}

// Block is one operator followed by more operators, each after ";" or, for
// assignments, directly juxtaposed. A single trailing ";" is allowed before
// "}" or the end of input.
type Block struct {
	Pos   lexer.Position
	First *Operator `@@`
	Rest  []*Tail   `@@*`
	Final bool      `@";"?`
}

type Tail struct {
	Pos      lexer.Position
	Operator *Operator `  ";" @@`
	Assign   *Assign   `| @@`
}

type Operator struct {
	Pos    lexer.Position
	Assign *Assign     `  @@`
	While  *While      `| @@`
	Not    *Expression `| "!" @@`
}

type Assign struct {
	Pos    lexer.Position
	Target string      `@Ident ":="`
	Value  *Expression `@@`
}

type While struct {
	Pos     lexer.Position
	Keyword string `@While`
	Cond    string `@Ident "{"`
	Body    *Block `@@ "}"`
}

type Expression struct {
	Pos   lexer.Position
	Left  *Factor     `@@`
	Right []*OpFactor `@@*`
}

type OpFactor struct {
	Pos    lexer.Position
	Op     string  `@("#" | "!")`
	Factor *Factor `@@`
}

type Factor struct {
	Pos   lexer.Position
	Left  *Primary   `@@`
	Right []*Primary `( "&" @@ )*`
}

type Primary struct {
	Pos   lexer.Position
	Ident *string     `  @Ident`
	Digit *string     `| @Digit`
	Not   *Expression `| "!" @@`
}
