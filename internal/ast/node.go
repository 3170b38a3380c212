package ast

import "whilec/token"

type Node interface {
	NodePos() token.Position
	NodeType() NodeType
	String() string
}

func (p *Program) NodePos() token.Position {
	if p.Body == nil {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Body.Pos
}
func (*Program) NodeType() NodeType { return PROGRAM }

func (b *Block) NodePos() token.Position { return b.Pos }
func (*Block) NodeType() NodeType        { return BLOCK }

func (a *AssignStmt) NodePos() token.Position { return a.Pos }
func (*AssignStmt) NodeType() NodeType        { return ASSIGN_STMT }

func (w *WhileStmt) NodePos() token.Position { return w.Pos }
func (*WhileStmt) NodeType() NodeType        { return WHILE_STMT }

func (es *ExprStmt) NodePos() token.Position { return es.Pos }
func (*ExprStmt) NodeType() NodeType         { return EXPR_STMT }

func (be *BinaryExpr) NodePos() token.Position { return be.Pos }
func (*BinaryExpr) NodeType() NodeType         { return BINARY_EXPR }

func (ue *UnaryExpr) NodePos() token.Position { return ue.Pos }
func (*UnaryExpr) NodeType() NodeType         { return UNARY_EXPR }

func (i *Ident) NodePos() token.Position { return i.Pos }
func (*Ident) NodeType() NodeType        { return IDENT }

func (n *NumberLit) NodePos() token.Position { return n.Pos }
func (*NumberLit) NodeType() NodeType        { return NUMBER_LIT }
