package ast

import "whilec/token"

// Program is the whole source text: a single top-level block.
// Example: "x := 1; while x { x := x ! 1 }"
type Program struct {
	Body *Block
}

// Block is a non-empty sequence of operators.
// Example: "x := 1; y := x" or, without separator, "x := 1 y := 2"
type Block struct {
	Pos       token.Position
	Operators []Operator
}

// Operator is one statement-level construct.
type Operator interface {
	Node
	isOperator()
}

// AssignStmt assigns an expression to a variable.
// Example: "x := a & 2"
type AssignStmt struct {
	Pos    token.Position
	Target *Ident
	Value  Expr
}

// WhileStmt repeats Body while Cond is set.
// Example: "while x { x := !x }" or "W x { ... }"
type WhileStmt struct {
	Pos  token.Position
	Cond *Ident
	Body *Block
}

// ExprStmt is a bare expression used as an operator.
// Example: "!x # y"
type ExprStmt struct {
	Pos  token.Position
	Expr Expr
}
