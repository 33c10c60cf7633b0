package parse

import (
	"github.com/Joana-Martins/C-Compiler/lexer"
)

// declMode says whether a declarator must, may or must not name an
// identifier.
type declMode int

const (
	namedDecl declMode = iota
	abstractDecl
	eitherDecl
)

func isStorageClass(k lexer.TokenKind) bool {
	switch k {
	case lexer.TYPEDEF, lexer.EXTERN, lexer.STATIC, lexer.AUTO, lexer.REGISTER:
		return true
	}
	return false
}

func isTypeKeyword(k lexer.TokenKind) bool {
	switch k {
	case lexer.VOID, lexer.CHAR, lexer.SHORT, lexer.INT, lexer.LONG, lexer.FLOAT,
		lexer.DOUBLE, lexer.SIGNED, lexer.UNSIGNED, lexer.BOOL, lexer.COMPLEX,
		lexer.IMAGINARY, lexer.STRUCT, lexer.UNION, lexer.ENUM:
		return true
	}
	return false
}

func isQualifier(k lexer.TokenKind) bool {
	return qualifierOf(k) != 0
}

// isTypeNameStart reports whether t can begin a specifier-qualifier list.
func (p *parser) isTypeNameStart(t *lexer.Token) bool {
	if isTypeKeyword(t.Kind) || isQualifier(t.Kind) {
		return true
	}
	return t.Kind == lexer.IDENT && p.types.IsTypeName(t.Val)
}

// isDeclSpecStart reports whether t can begin declaration specifiers.
func (p *parser) isDeclSpecStart(t *lexer.Token) bool {
	return isStorageClass(t.Kind) || t.Kind == lexer.INLINE || p.isTypeNameStart(t)
}

// parseDeclarationSpecifiers collects specifiers in any order. With
// specQualOnly set only type specifiers and qualifiers are accepted, as in
// a type name.
func (p *parser) parseDeclarationSpecifiers(ctx string, specQualOnly bool) *DeclSpecs {
	ds := &DeclSpecs{Pos: p.curt.Pos}
	n := 0
loop:
	for {
		t := p.curt
		switch {
		case isStorageClass(t.Kind) && !specQualOnly:
			if ds.Storage != 0 {
				p.errorMsg(ctx, "multiple storage classes in declaration specifiers")
			}
			ds.Storage = t.Kind
			p.next()
		case t.Kind == lexer.INLINE && !specQualOnly:
			ds.Inline = true
			p.next()
		case isQualifier(t.Kind):
			ds.Quals |= qualifierOf(t.Kind)
			p.next()
		case t.Kind == lexer.STRUCT || t.Kind == lexer.UNION:
			p.errorMsg(ctx, t.Kind.String()+" types are not supported")
		case t.Kind == lexer.ENUM:
			ds.Types = append(ds.Types, &TypeSpec{Pos: t.Pos, Kind: lexer.ENUM, Enum: p.parseEnumSpecifier()})
		case isTypeKeyword(t.Kind):
			ds.Types = append(ds.Types, &TypeSpec{Pos: t.Pos, Kind: t.Kind})
			p.next()
		case t.Kind == lexer.IDENT && len(ds.Types) == 0 && p.types.IsTypeName(t.Val):
			// A typedef name only counts while no other type specifier
			// has been seen; int T declares T.
			ds.Types = append(ds.Types, &TypeSpec{Pos: t.Pos, Kind: lexer.IDENT, Name: t.Val})
			p.next()
		default:
			break loop
		}
		n++
	}
	if n == 0 {
		if specQualOnly {
			p.errorExpected(ctx, "type specifier", "type qualifier")
		}
		p.errorExpected(ctx, "declaration specifiers")
	}
	return ds
}

func (p *parser) parseQualifierList() Qualifiers {
	var q Qualifiers
	for isQualifier(p.curt.Kind) {
		q |= qualifierOf(p.curt.Kind)
		p.next()
	}
	return q
}

func (p *parser) parseDeclarator() *Declarator {
	return p.parseDeclaratorMode(namedDecl)
}

func (p *parser) parseDeclaratorMode(mode declMode) *Declarator {
	d := &Declarator{Pos: p.curt.Pos}
	for p.curt.Kind == '*' {
		ptr := &Pointer{Pos: p.curt.Pos}
		p.next()
		ptr.Quals = p.parseQualifierList()
		d.Pointers = append(d.Pointers, ptr)
	}
	d.Direct = p.parseDirectDeclarator(mode)
	return d
}

// startsNestedDeclarator decides whether the '(' at the current token opens
// a parenthesized declarator rather than a parameter list. This only
// matters when the identifier is optional.
func (p *parser) startsNestedDeclarator(mode declMode) bool {
	if mode == namedDecl {
		return true
	}
	next := p.peek()
	switch next.Kind {
	case '*', '(', '[':
		return true
	case lexer.IDENT:
		return !p.types.IsTypeName(next.Val)
	}
	return false
}

func (p *parser) parseDirectDeclarator(mode declMode) DirectDeclarator {
	var dd DirectDeclarator
	t := p.curt
	switch {
	case t.Kind == lexer.IDENT && mode != abstractDecl:
		p.next()
		dd = &IdentDecl{Pos: t.Pos, Name: t.Val}
	case t.Kind == '(' && p.startsNestedDeclarator(mode):
		p.next()
		inner := p.parseDeclaratorMode(mode)
		p.expect(')', "declarator")
		dd = &ParenDecl{Pos: t.Pos, Inner: inner}
	case mode == namedDecl:
		p.errorExpected("declarator", "identifier", "'('", "'*'")
	}
	return p.parseDeclaratorSuffixes(dd)
}

func (p *parser) parseDeclaratorSuffixes(dd DirectDeclarator) DirectDeclarator {
	for {
		switch p.curt.Kind {
		case '[':
			dd = p.parseArraySuffix(dd)
		case '(':
			dd = p.parseFunctionSuffix(dd)
		default:
			return dd
		}
	}
}

func (p *parser) parseArraySuffix(base DirectDeclarator) *ArrayDecl {
	a := &ArrayDecl{Pos: p.curt.Pos, Base: base}
	p.expect('[', "array declarator")
	if p.curt.Kind == lexer.STATIC {
		a.Static = true
		p.next()
	}
	a.Quals = p.parseQualifierList()
	if !a.Static && a.Quals != 0 && p.curt.Kind == lexer.STATIC {
		a.Static = true
		p.next()
	}
	switch {
	case !a.Static && p.curt.Kind == '*' && p.peek().Kind == ']':
		a.Star = true
		p.next()
	case p.curt.Kind == ']':
		if a.Static {
			p.errorExpected("array declarator", "expression")
		}
	default:
		a.Size = p.parseAssignmentExpression()
	}
	p.expect(']', "array declarator")
	return a
}

func (p *parser) parseFunctionSuffix(base DirectDeclarator) *FuncDecl {
	f := &FuncDecl{Pos: p.curt.Pos, Base: base}
	p.expect('(', "function declarator")
	switch {
	case p.curt.Kind == ')':
	case p.curt.Kind == lexer.IDENT && !p.types.IsTypeName(p.curt.Val):
		for {
			t := p.expect(lexer.IDENT, "identifier list")
			f.Idents = append(f.Idents, &Ident{Pos: t.Pos, Name: t.Val})
			if p.curt.Kind != ',' {
				break
			}
			p.next()
		}
	default:
		f.Params = p.parseParameterTypeList()
	}
	p.expect(')', "function declarator", "','")
	return f
}

func (p *parser) parseParameterTypeList() *ParamList {
	pl := &ParamList{}
	for {
		if p.curt.Kind == lexer.ELLIPSIS && len(pl.Params) > 0 {
			p.next()
			pl.Variadic = true
			break
		}
		pl.Params = append(pl.Params, p.parseParameterDeclaration())
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	return pl
}

func (p *parser) parseParameterDeclaration() *ParamDecl {
	pd := &ParamDecl{Pos: p.curt.Pos}
	if !p.isDeclSpecStart(p.curt) {
		p.errorExpected("parameter declaration", "declaration specifiers")
	}
	pd.Specs = p.parseDeclarationSpecifiers("parameter declaration", false)
	switch p.curt.Kind {
	case '*', '(', '[', lexer.IDENT:
		pd.Decl = p.parseDeclaratorMode(eitherDecl)
	}
	return pd
}

// parseTypeName parses a specifier-qualifier list and an optional abstract
// declarator.
func (p *parser) parseTypeName() *TypeName {
	tn := &TypeName{Pos: p.curt.Pos}
	tn.Specs = p.parseDeclarationSpecifiers("type name", true)
	switch p.curt.Kind {
	case '*', '(', '[':
		tn.Decl = p.parseDeclaratorMode(abstractDecl)
	}
	return tn
}

// parseParenTypeName parses ( type-name ) and returns the position of the
// opening parenthesis. The caller has checked the token after '('.
func (p *parser) parseParenTypeName(ctx string) (lexer.FilePos, *TypeName) {
	pos := p.expect('(', ctx).Pos
	tn := p.parseTypeName()
	p.expect(')', ctx)
	return pos, tn
}

func (p *parser) parseEnumSpecifier() *EnumSpec {
	e := &EnumSpec{Pos: p.curt.Pos}
	p.expect(lexer.ENUM, "enum specifier")
	if p.curt.Kind == lexer.IDENT {
		e.Tag = p.curt.Val
		p.next()
	}
	if p.curt.Kind != '{' {
		if e.Tag == "" {
			p.errorExpected("enum specifier", "identifier", "'{'")
		}
		return e
	}
	p.next()
	for {
		t := p.expect(lexer.IDENT, "enumerator list")
		en := &Enumerator{Pos: t.Pos, Name: t.Val}
		if p.curt.Kind == '=' {
			p.next()
			en.Value = p.parseConditionalExpression()
		}
		// Enumerators are in scope from the end of their own definition.
		p.types.DeclareObject(en.Name)
		e.Enumerators = append(e.Enumerators, en)
		if p.curt.Kind != ',' {
			break
		}
		p.next()
		if p.curt.Kind == '}' {
			e.TrailingComma = true
			break
		}
	}
	p.expect('}', "enumerator list", "','")
	return e
}

// parseDeclaration parses a declaration that is not a function definition
// and reports its names to the oracle.
func (p *parser) parseDeclaration() *Declaration {
	d := &Declaration{Pos: p.curt.Pos}
	d.Specs = p.parseDeclarationSpecifiers("declaration", false)
	if p.curt.Kind == ';' {
		p.next()
		return d
	}
	d.Inits = p.parseInitDeclaratorList(p.parseDeclarator())
	p.declare(d)
	return d
}

// parseInitDeclaratorList continues after the first declarator and consumes
// the terminating ';'.
func (p *parser) parseInitDeclaratorList(first *Declarator) []*InitDeclarator {
	var ret []*InitDeclarator
	decl := first
	for {
		id := &InitDeclarator{Decl: decl}
		if p.curt.Kind == '=' {
			p.next()
			id.Init = p.parseInitializer()
		}
		ret = append(ret, id)
		if p.curt.Kind != ',' {
			break
		}
		p.next()
		decl = p.parseDeclarator()
	}
	if p.curt.Kind != ';' {
		if ret[len(ret)-1].Init == nil {
			p.errorExpected("declaration", "'='", "','", "';'")
		}
		p.errorExpected("declaration", "','", "';'")
	}
	p.next()
	return ret
}
