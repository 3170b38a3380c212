package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// High-level constructs
	PROGRAM
	BLOCK

	// Operators (statements)
	ASSIGN_STMT
	WHILE_STMT
	EXPR_STMT

	// Expressions
	BINARY_EXPR
	UNARY_EXPR
	IDENT
	NUMBER_LIT
)

var nodeTypeNames = [...]string{
	ILLEGAL:     "ILLEGAL",
	PROGRAM:     "PROGRAM",
	BLOCK:       "BLOCK",
	ASSIGN_STMT: "ASSIGN_STMT",
	WHILE_STMT:  "WHILE_STMT",
	EXPR_STMT:   "EXPR_STMT",
	BINARY_EXPR: "BINARY_EXPR",
	UNARY_EXPR:  "UNARY_EXPR",
	IDENT:       "IDENT",
	NUMBER_LIT:  "NUMBER_LIT",
}

func (t NodeType) String() string {
	if int(t) < 0 || int(t) >= len(nodeTypeNames) {
		return "NodeType(?)"
	}
	return nodeTypeNames[t]
}
