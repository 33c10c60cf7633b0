package parse

import (
	"github.com/Joana-Martins/C-Compiler/lexer"
)

// binaryTiers lists the left-associative binary operators from loosest to
// tightest binding.
var binaryTiers = [...][]lexer.TokenKind{
	{lexer.LOR},
	{lexer.LAND},
	{'|'},
	{'^'},
	{'&'},
	{lexer.EQL, lexer.NEQ},
	{'<', '>', lexer.LEQ, lexer.GEQ},
	{lexer.SHL, lexer.SHR},
	{'+', '-'},
	{'*', '/', '%'},
}

func isAssignmentOperator(k lexer.TokenKind) bool {
	switch k {
	case '=', lexer.ADD_ASSIGN, lexer.SUB_ASSIGN, lexer.MUL_ASSIGN, lexer.QUO_ASSIGN, lexer.REM_ASSIGN,
		lexer.AND_ASSIGN, lexer.OR_ASSIGN, lexer.XOR_ASSIGN, lexer.SHL_ASSIGN, lexer.SHR_ASSIGN:
		return true
	}
	return false
}

func isUnaryOperator(k lexer.TokenKind) bool {
	switch k {
	case '&', '*', '+', '-', '~', '!':
		return true
	}
	return false
}

// isUnaryExpression reports whether e may appear on the left of an
// assignment operator.
func isUnaryExpression(e Expr) bool {
	switch e.(type) {
	case *Binop, *Cond, *Cast, *Assign, *Comma:
		return false
	}
	return true
}

// startsExpression reports whether t can begin an expression.
func (p *parser) startsExpression(t *lexer.Token) bool {
	switch t.Kind {
	case lexer.IDENT:
		return !p.types.IsTypeName(t.Val)
	case lexer.INT_CONSTANT, lexer.FLOAT_CONSTANT, lexer.CHAR_CONSTANT, lexer.STRING,
		'(', lexer.INC, lexer.DEC, lexer.SIZEOF:
		return true
	}
	return isUnaryOperator(t.Kind)
}

func (p *parser) parseExpression() Expr {
	l := p.parseAssignmentExpression()
	for p.curt.Kind == ',' {
		pos := p.curt.Pos
		p.next()
		r := p.parseAssignmentExpression()
		l = &Comma{Pos: pos, L: l, R: r}
	}
	return l
}

func (p *parser) parseAssignmentExpression() Expr {
	l := p.parseConditionalExpression()
	if !isAssignmentOperator(p.curt.Kind) {
		return l
	}
	if !isUnaryExpression(l) {
		p.errorMsg("assignment expression", "left operand of assignment must be a unary expression")
	}
	op := p.curt
	p.next()
	r := p.parseAssignmentExpression()
	return &Assign{Op: op.Kind, Pos: op.Pos, L: l, R: r}
}

// Aka Ternary operator.
func (p *parser) parseConditionalExpression() Expr {
	c := p.parseBinaryExpression(0)
	if p.curt.Kind != '?' {
		return c
	}
	pos := p.curt.Pos
	p.next()
	t := p.parseExpression()
	p.expect(':', "conditional expression")
	f := p.parseConditionalExpression()
	return &Cond{Pos: pos, Cond: c, Then: t, Else: f}
}

func (p *parser) parseBinaryExpression(tier int) Expr {
	if tier == len(binaryTiers) {
		return p.parseCastExpression()
	}
	l := p.parseBinaryExpression(tier + 1)
	for inTier(p.curt.Kind, binaryTiers[tier]) {
		op := p.curt
		p.next()
		r := p.parseBinaryExpression(tier + 1)
		l = &Binop{Op: op.Kind, Pos: op.Pos, L: l, R: r}
	}
	return l
}

func inTier(k lexer.TokenKind, ops []lexer.TokenKind) bool {
	for _, op := range ops {
		if k == op {
			return true
		}
	}
	return false
}

// parseCastExpression tells a cast from a parenthesized expression by the
// token after '('. (type){ starts a compound literal instead.
func (p *parser) parseCastExpression() Expr {
	if p.curt.Kind == '(' && p.isTypeNameStart(p.peek()) {
		pos, tn := p.parseParenTypeName("cast expression")
		if p.curt.Kind == '{' {
			return p.parsePostfixTail(p.parseCompoundLiteral(pos, tn))
		}
		return &Cast{Pos: pos, Type: tn, Operand: p.parseCastExpression()}
	}
	return p.parseUnaryExpression()
}

func (p *parser) parseUnaryExpression() Expr {
	t := p.curt
	switch {
	case t.Kind == lexer.INC || t.Kind == lexer.DEC:
		p.next()
		return &Prefix{Pos: t.Pos, Op: t.Kind, Operand: p.parseUnaryExpression()}
	case isUnaryOperator(t.Kind):
		p.next()
		return &Unop{Pos: t.Pos, Op: t.Kind, Operand: p.parseCastExpression()}
	case t.Kind == lexer.SIZEOF:
		p.next()
		if p.curt.Kind == '(' && p.isTypeNameStart(p.peek()) {
			pos, tn := p.parseParenTypeName("sizeof expression")
			if p.curt.Kind == '{' {
				return &Sizeof{Pos: t.Pos, Expr: p.parsePostfixTail(p.parseCompoundLiteral(pos, tn))}
			}
			return &Sizeof{Pos: t.Pos, Type: tn}
		}
		return &Sizeof{Pos: t.Pos, Expr: p.parseUnaryExpression()}
	}
	return p.parsePostfixExpression()
}

func (p *parser) parsePostfixExpression() Expr {
	if p.curt.Kind == '(' && p.isTypeNameStart(p.peek()) {
		pos, tn := p.parseParenTypeName("compound literal")
		if p.curt.Kind != '{' {
			p.errorExpected("compound literal", "'{'")
		}
		return p.parsePostfixTail(p.parseCompoundLiteral(pos, tn))
	}
	return p.parsePostfixTail(p.parsePrimaryExpression())
}

func (p *parser) parseCompoundLiteral(pos lexer.FilePos, tn *TypeName) *CompoundLiteral {
	return &CompoundLiteral{Pos: pos, Type: tn, Init: p.parseInitializerList()}
}

func (p *parser) parsePostfixTail(l Expr) Expr {
	for {
		t := p.curt
		switch t.Kind {
		case '[':
			p.next()
			idx := p.parseExpression()
			p.expect(']', "array subscript")
			l = &Index{Pos: t.Pos, Arr: l, Index: idx}
		case '(':
			p.next()
			var args []Expr
			if p.curt.Kind != ')' {
				for {
					args = append(args, p.parseAssignmentExpression())
					if p.curt.Kind != ',' {
						break
					}
					p.next()
				}
			}
			p.expect(')', "argument list", "','")
			l = &Call{Pos: t.Pos, Func: l, Args: args}
		case '.':
			p.next()
			name := p.expect(lexer.IDENT, "member access").Val
			l = &Member{Pos: t.Pos, X: l, Name: name}
		case lexer.ARROW:
			p.next()
			name := p.expect(lexer.IDENT, "member access").Val
			l = &PtrMember{Pos: t.Pos, X: l, Name: name}
		case lexer.INC, lexer.DEC:
			p.next()
			l = &Postfix{Pos: t.Pos, Op: t.Kind, Operand: l}
		default:
			return l
		}
	}
}

func (p *parser) parsePrimaryExpression() Expr {
	t := p.curt
	switch t.Kind {
	case lexer.IDENT:
		if p.types.IsTypeName(t.Val) {
			p.errorMsg("expression", "expected expression, found type name")
		}
		p.next()
		return &Ident{Pos: t.Pos, Name: t.Val}
	case lexer.INT_CONSTANT, lexer.FLOAT_CONSTANT, lexer.CHAR_CONSTANT:
		p.next()
		return &Constant{Pos: t.Pos, Kind: t.Kind, Val: t.Val}
	case lexer.STRING:
		p.next()
		return &String{Pos: t.Pos, Val: t.Val}
	case '(':
		p.next()
		x := p.parseExpression()
		p.expect(')', "parenthesized expression")
		return &Paren{Pos: t.Pos, X: x}
	}
	p.errorExpected("", "expression")
	panic("unreachable")
}
