package parse

import (
	"io"
	"os"
	"runtime/debug"

	"github.com/Joana-Martins/C-Compiler/lexer"
	"github.com/sirupsen/logrus"
)

// Options configure a single parse.
type Options struct {
	// TypeNames classifies identifiers. A fresh ScopeStack is used if nil.
	TypeNames TypeNameOracle
	// Diagnostic receives the message of the first error, exactly once.
	Diagnostic func(msg string)
	Log        logrus.FieldLogger
	// Debug attaches the parser stack to syntax errors. CCDEBUG=true in the
	// environment has the same effect.
	Debug bool
}

type parser struct {
	src   lexer.TokenSource
	types TypeNameOracle
	log   logrus.FieldLogger
	debug bool
	depth int
	curt  *lexer.Token
}

type parseErrorBreakOut struct {
	err error
}

func newParser(src lexer.TokenSource, opts Options) *parser {
	p := &parser{
		src:   src,
		types: opts.TypeNames,
		log:   opts.Log,
		debug: opts.Debug || os.Getenv("CCDEBUG") == "true",
	}
	if p.types == nil {
		p.types = NewScopeStack()
	}
	if p.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		p.log = l
	}
	return p
}

// breakout converts a parse panic into the error it carries. Anything else
// is re-panicked.
func breakout(e interface{}, opts Options) error {
	peb, ok := e.(parseErrorBreakOut)
	if !ok {
		panic(e)
	}
	if opts.Diagnostic != nil {
		opts.Diagnostic(peb.err.Error())
	}
	return peb.err
}

// Parse consumes src up to and including the end of input and returns the
// translation unit. The first lexical or syntax error aborts the parse; no
// partial tree is returned.
func Parse(src lexer.TokenSource, opts Options) (tu *TranslationUnit, errRet error) {
	p := newParser(src, opts)
	defer func() {
		if e := recover(); e != nil {
			tu, errRet = nil, breakout(e, opts)
		}
	}()
	p.next()
	tu = p.parseTranslationUnit()
	p.log.WithField("decls", len(tu.Decls)).Debug("parse successful")
	return tu, nil
}

// ParseFile lexes and parses a single source file.
func ParseFile(fname string, r io.Reader, opts Options) (*TranslationUnit, error) {
	return Parse(lexer.Lex(fname, r), opts)
}

// ParseExpression parses src as a single expression spanning the whole
// input.
func ParseExpression(src lexer.TokenSource, opts Options) (x Expr, errRet error) {
	p := newParser(src, opts)
	defer func() {
		if e := recover(); e != nil {
			x, errRet = nil, breakout(e, opts)
		}
	}()
	p.next()
	x = p.parseExpression()
	p.expectEnd()
	return x, nil
}

// ParseStatement parses src as a single statement spanning the whole input.
func ParseStatement(src lexer.TokenSource, opts Options) (s Stmt, errRet error) {
	p := newParser(src, opts)
	defer func() {
		if e := recover(); e != nil {
			s, errRet = nil, breakout(e, opts)
		}
	}()
	p.next()
	s = p.parseStatement()
	p.expectEnd()
	return s, nil
}

func (p *parser) raise(err *SyntaxError) {
	if p.debug {
		err.Stack = string(debug.Stack())
	}
	panic(parseErrorBreakOut{err})
}

// errorExpected fails at the current token.
func (p *parser) errorExpected(ctx string, expected ...string) {
	p.raise(&SyntaxError{
		Pos:      p.curt.Pos,
		Got:      p.curt.Kind,
		Lexeme:   p.curt.Val,
		Expected: expected,
		Context:  ctx,
	})
}

func (p *parser) errorMsg(ctx string, msg string) {
	p.raise(&SyntaxError{
		Pos:     p.curt.Pos,
		Got:     p.curt.Kind,
		Lexeme:  p.curt.Val,
		Context: ctx,
		Msg:     msg,
	})
}

// expect consumes a token of kind k. others name alternatives that would
// also have been valid at this point, for the error message.
func (p *parser) expect(k lexer.TokenKind, ctx string, others ...string) *lexer.Token {
	t := p.curt
	if t.Kind != k {
		p.errorExpected(ctx, append(others, k.String())...)
	}
	p.next()
	return t
}

func (p *parser) expectEnd() {
	if p.curt.Kind != lexer.EOF {
		p.errorExpected("", "end of input")
	}
}

// Lexical errors pass through unchanged.
func (p *parser) next() {
	t, err := p.src.Next()
	if err != nil {
		panic(parseErrorBreakOut{err})
	}
	p.curt = t
}

func (p *parser) peek() *lexer.Token {
	t, err := p.src.Peek()
	if err != nil {
		panic(parseErrorBreakOut{err})
	}
	return t
}

func (p *parser) pushScope() {
	p.types.PushScope()
	p.depth++
	p.log.WithField("depth", p.depth).Trace("scope pushed")
}

func (p *parser) popScope() {
	p.types.PopScope()
	p.depth--
	p.log.WithField("depth", p.depth).Trace("scope popped")
}

// declare reports the names introduced by a completed declaration.
func (p *parser) declare(d *Declaration) {
	for _, init := range d.Inits {
		name := init.Decl.Name()
		if name == "" {
			continue
		}
		if d.IsTypedef() {
			p.types.DeclareTypedef(name)
			p.log.WithFields(logrus.Fields{
				"name": name,
				"pos":  init.Decl.Pos.String(),
			}).Debug("typedef declared")
		} else {
			p.types.DeclareObject(name)
		}
	}
}

func (p *parser) parseTranslationUnit() *TranslationUnit {
	tu := &TranslationUnit{}
	if p.curt.Kind == lexer.EOF {
		p.errorExpected("translation unit", "declaration")
	}
	for p.curt.Kind != lexer.EOF {
		tu.Decls = append(tu.Decls, p.parseExternalDeclaration())
	}
	return tu
}

func (p *parser) parseExternalDeclaration() ExternalDecl {
	pos := p.curt.Pos
	if !p.isDeclSpecStart(p.curt) {
		p.errorExpected("external declaration", "declaration specifiers")
	}
	specs := p.parseDeclarationSpecifiers("declaration", false)
	d := &Declaration{Pos: pos, Specs: specs}
	if p.curt.Kind == ';' {
		p.next()
		return d
	}
	decl := p.parseDeclarator()
	if p.curt.Kind == '{' || p.isDeclSpecStart(p.curt) {
		return p.parseFunctionDefinition(pos, specs, decl)
	}
	d.Inits = p.parseInitDeclaratorList(decl)
	p.declare(d)
	return d
}

func (p *parser) parseFunctionDefinition(pos lexer.FilePos, specs *DeclSpecs, decl *Declarator) *FunctionDef {
	fn := decl.Function()
	if fn == nil {
		p.errorMsg("function definition", "declarator does not declare a function")
	}
	if specs.Storage == lexer.TYPEDEF {
		p.errorMsg("function definition", "function definition declared typedef")
	}
	fd := &FunctionDef{Pos: pos, Specs: specs, Decl: decl}
	p.types.DeclareObject(decl.Name())
	p.log.WithField("name", decl.Name()).Debug("function definition")

	p.pushScope()
	if fn.Params != nil {
		for _, param := range fn.Params.Params {
			if name := param.Decl.Name(); name != "" {
				p.types.DeclareObject(name)
			}
		}
	}
	for p.curt.Kind != '{' {
		if fn.Idents == nil || !p.isDeclSpecStart(p.curt) {
			p.errorExpected("function definition", "'{'")
		}
		fd.OldParams = append(fd.OldParams, p.parseDeclaration())
	}
	for _, id := range fn.Idents {
		p.types.DeclareObject(id.Name)
	}
	fd.Body = p.parseCompoundStatement()
	p.popScope()
	return fd
}
