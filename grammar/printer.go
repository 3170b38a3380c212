package grammar

import (
	"strings"
)

func indent(level int) string {
	return strings.Repeat("  ", level)
}

func (p *Program) String() string {
	return p.Body.StringWithIndent(0)
}

// StringWithIndent prints one operator per line, each ending in ";"
func (b *Block) StringWithIndent(level int) string {
	ops := []string{b.First.StringWithIndent(level)}
	for _, t := range b.Rest {
		if t.Assign != nil {
			ops = append(ops, indent(level)+t.Assign.String())
		} else {
			ops = append(ops, t.Operator.StringWithIndent(level))
		}
	}
	return strings.Join(ops, ";\n") + ";"
}

func (o *Operator) StringWithIndent(level int) string {
	switch {
	case o.Assign != nil:
		return indent(level) + o.Assign.String()
	case o.While != nil:
		return indent(level) + "while " + o.While.Cond + " {\n" +
			o.While.Body.StringWithIndent(level+1) + "\n" + indent(level) + "}"
	default:
		return indent(level) + "!" + o.Not.String()
	}
}

func (a *Assign) String() string {
	return a.Target + " := " + a.Value.String()
}

func (e *Expression) String() string {
	out := e.Left.String()
	for _, r := range e.Right {
		out = "(" + out + " " + r.Op + " " + r.Factor.String() + ")"
	}
	return out
}

func (f *Factor) String() string {
	out := f.Left.String()
	for _, r := range f.Right {
		out = "(" + out + " & " + r.String() + ")"
	}
	return out
}

func (p *Primary) String() string {
	switch {
	case p.Ident != nil:
		return *p.Ident
	case p.Digit != nil:
		return *p.Digit
	default:
		return "!" + p.Not.String()
	}
}
