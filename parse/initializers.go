package parse

import "github.com/Joana-Martins/C-Compiler/lexer"

// Initializer is either a single assignment expression or a braced list.
type Initializer struct {
	Pos  lexer.FilePos
	Expr Expr
	List *InitList
}

type InitList struct {
	Pos           lexer.FilePos
	Items         []*InitItem
	TrailingComma bool
}

// InitItem is one element of an initializer list with its optional
// designation, e.g. [2].x = 1.
type InitItem struct {
	Designators []*Designator
	Init        *Initializer
}

// Designator is [Index] or .Field.
type Designator struct {
	Pos   lexer.FilePos
	Index Expr
	Field string
}

func (i *Initializer) GetPos() lexer.FilePos { return i.Pos }
func (l *InitList) GetPos() lexer.FilePos    { return l.Pos }
func (d *Designator) GetPos() lexer.FilePos  { return d.Pos }

func (p *parser) parseInitializer() *Initializer {
	pos := p.curt.Pos
	if p.curt.Kind == '{' {
		return &Initializer{Pos: pos, List: p.parseInitializerList()}
	}
	return &Initializer{Pos: pos, Expr: p.parseAssignmentExpression()}
}

// parseInitializerList parses a braced list. An empty list is rejected.
func (p *parser) parseInitializerList() *InitList {
	l := &InitList{Pos: p.curt.Pos}
	p.expect('{', "initializer list")
	for {
		item := &InitItem{}
		for p.curt.Kind == '[' || p.curt.Kind == '.' {
			item.Designators = append(item.Designators, p.parseDesignator())
		}
		if len(item.Designators) != 0 {
			p.expect('=', "designation", "'['", "'.'")
		}
		item.Init = p.parseInitializer()
		l.Items = append(l.Items, item)
		if p.curt.Kind != ',' {
			break
		}
		p.next()
		if p.curt.Kind == '}' {
			l.TrailingComma = true
			break
		}
	}
	p.expect('}', "initializer list", "','")
	return l
}

func (p *parser) parseDesignator() *Designator {
	d := &Designator{Pos: p.curt.Pos}
	if p.curt.Kind == '[' {
		p.next()
		d.Index = p.parseConditionalExpression()
		p.expect(']', "designator")
		return d
	}
	p.expect('.', "designator")
	d.Field = p.expect(lexer.IDENT, "designator").Val
	return d
}
