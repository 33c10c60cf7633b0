package parse

import (
	"github.com/Joana-Martins/C-Compiler/lexer"
)

// startsStatement reports whether t can begin a statement. Jump statements
// are not part of the accepted language.
func (p *parser) startsStatement(t *lexer.Token) bool {
	switch t.Kind {
	case ';', '{', lexer.IF, lexer.SWITCH, lexer.WHILE, lexer.DO, lexer.FOR,
		lexer.CASE, lexer.DEFAULT:
		return true
	}
	return p.startsExpression(t)
}

// isLabel reports whether the current token starts a named label. A label
// wins over a declaration starting with the same typedef name.
func (p *parser) isLabel() bool {
	return p.curt.Kind == lexer.IDENT && p.peek().Kind == ':'
}

func (p *parser) parseStatement() Stmt {
	if p.isLabel() {
		t := p.curt
		p.next()
		p.next()
		return &LabeledStmt{Pos: t.Pos, Kind: LabelNamed, Label: t.Val, Body: p.parseStatement()}
	}

	t := p.curt
	switch t.Kind {
	case lexer.CASE:
		p.next()
		c := p.parseConditionalExpression()
		p.expect(':', "case label")
		return &LabeledStmt{Pos: t.Pos, Kind: LabelCase, Case: c, Body: p.parseStatement()}
	case lexer.DEFAULT:
		p.next()
		p.expect(':', "default label")
		return &LabeledStmt{Pos: t.Pos, Kind: LabelDefault, Body: p.parseStatement()}
	case '{':
		return p.parseCompoundStatement()
	case lexer.IF:
		return p.parseIf()
	case lexer.SWITCH:
		return p.parseSwitch()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.DO:
		return p.parseDoWhile()
	case lexer.FOR:
		return p.parseFor()
	}
	if t.Kind != ';' && !p.startsExpression(t) {
		p.errorExpected("", "statement")
	}
	return p.parseExpressionStatement()
}

func (p *parser) parseExpressionStatement() *ExprStmt {
	s := &ExprStmt{Pos: p.curt.Pos}
	if p.curt.Kind == ';' {
		p.next()
		return s
	}
	s.X = p.parseExpression()
	p.expect(';', "expression statement")
	return s
}

func (p *parser) parseCompoundStatement() *CompoundStmt {
	c := &CompoundStmt{Pos: p.curt.Pos}
	p.expect('{', "compound statement")
	p.pushScope()
	for p.curt.Kind != '}' {
		if !p.isDeclSpecStart(p.curt) && !p.startsStatement(p.curt) {
			p.errorExpected("compound statement", "'}'", "declaration", "statement")
		}
		c.Items = append(c.Items, p.parseBlockItem())
	}
	p.next()
	p.popScope()
	return c
}

func (p *parser) parseBlockItem() BlockItem {
	if p.isDeclSpecStart(p.curt) && !p.isLabel() {
		return p.parseDeclaration()
	}
	return p.parseStatement()
}

// parseIf binds an else to the nearest unmatched if.
func (p *parser) parseIf() *IfStmt {
	s := &IfStmt{Pos: p.curt.Pos}
	p.expect(lexer.IF, "if statement")
	p.expect('(', "if statement")
	s.Cond = p.parseExpression()
	p.expect(')', "if statement")
	s.Then = p.parseStatement()
	if p.curt.Kind == lexer.ELSE {
		p.next()
		s.Else = p.parseStatement()
	}
	return s
}

func (p *parser) parseSwitch() *SwitchStmt {
	s := &SwitchStmt{Pos: p.curt.Pos}
	p.expect(lexer.SWITCH, "switch statement")
	p.expect('(', "switch statement")
	s.Cond = p.parseExpression()
	p.expect(')', "switch statement")
	s.Body = p.parseStatement()
	return s
}

func (p *parser) parseWhile() *WhileStmt {
	s := &WhileStmt{Pos: p.curt.Pos}
	p.expect(lexer.WHILE, "while statement")
	p.expect('(', "while statement")
	s.Cond = p.parseExpression()
	p.expect(')', "while statement")
	s.Body = p.parseStatement()
	return s
}

func (p *parser) parseDoWhile() *DoWhileStmt {
	s := &DoWhileStmt{Pos: p.curt.Pos}
	p.expect(lexer.DO, "do statement")
	s.Body = p.parseStatement()
	p.expect(lexer.WHILE, "do statement")
	p.expect('(', "do statement")
	s.Cond = p.parseExpression()
	p.expect(')', "do statement")
	p.expect(';', "do statement")
	return s
}

// parseFor opens a scope so a declaration in the first clause ends with the
// loop.
func (p *parser) parseFor() *ForStmt {
	s := &ForStmt{Pos: p.curt.Pos}
	p.expect(lexer.FOR, "for statement")
	p.expect('(', "for statement")
	p.pushScope()
	if p.isDeclSpecStart(p.curt) {
		s.Init = p.parseDeclaration()
	} else {
		s.Init = p.parseExpressionStatement()
	}
	s.Cond = p.parseExpressionStatement()
	if p.curt.Kind != ')' {
		s.Post = p.parseExpression()
	}
	p.expect(')', "for statement")
	s.Body = p.parseStatement()
	p.popScope()
	return s
}
