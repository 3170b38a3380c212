package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	if p.Body == nil {
		return ""
	}
	return p.Body.String()
}

// String prints one operator per line, each terminated by ";".
func (b *Block) String() string {
	var sb strings.Builder
	for i, op := range b.Operators {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(op.String())
		sb.WriteString(";")
	}
	return sb.String()
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s := %s", a.Target.String(), a.Value.String())
}

func (w *WhileStmt) String() string {
	var b strings.Builder

	b.WriteString("while ")
	b.WriteString(w.Cond.String())
	b.WriteString(" {\n")
	if w.Body != nil {
		b.WriteString("  " + strings.ReplaceAll(w.Body.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")

	return b.String()
}

func (es *ExprStmt) String() string {
	return es.Expr.String()
}

// String parenthesizes every binary node so associativity is visible.
func (be *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", be.Left.String(), be.Op, be.Right.String())
}

func (ue *UnaryExpr) String() string {
	return string(ue.Op) + ue.Value.String()
}

func (i *Ident) String() string {
	return i.Name
}

func (n *NumberLit) String() string {
	return n.Value
}
