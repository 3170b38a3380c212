package ast

import "whilec/token"

type Expr interface {
	Node
	isExpr()
}

func (*BinaryExpr) isExpr() {}

func (*UnaryExpr) isExpr() {}

func (*Ident) isExpr() {}

func (*NumberLit) isExpr() {}

func (*AssignStmt) isOperator() {}

func (*WhileStmt) isOperator() {}

func (*ExprStmt) isOperator() {}

// BinaryExpr is a left-associative "#", "!" or "&" operation.
// Example: "a # b", "a & 2"
type BinaryExpr struct {
	Pos   token.Position
	Left  Expr
	Op    token.Tag
	Right Expr
}

// UnaryExpr is the prefix "!" applied to a whole sub-expression.
// Example: "!a # b" negates "a # b"
type UnaryExpr struct {
	Pos   token.Position
	Op    token.Tag
	Value Expr
}

// Ident is a variable reference.
type Ident struct {
	Pos  token.Position
	Name string
}

// NumberLit is a digit literal, kept as written.
type NumberLit struct {
	Pos   token.Position
	Value string
}
