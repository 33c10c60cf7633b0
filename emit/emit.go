package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Joana-Martins/C-Compiler/lexer"
	"github.com/Joana-Martins/C-Compiler/parse"
)

// emitter prints a syntax tree back as C source. Nodes are printed as they
// are: parentheses come only from Paren nodes, so a tree produced by the
// parser prints to source that parses back to the same tree.
type emitter struct {
	o      *bufio.Writer
	indent int
	// last is the final byte written, used to keep adjacent tokens apart.
	last    byte
	lastNum bool
}

// Emit writes tu to o as C source.
func Emit(tu *parse.TranslationUnit, o io.Writer) error {
	e := &emitter{o: bufio.NewWriter(o), last: '\n'}
	for i, d := range tu.Decls {
		if i != 0 {
			e.raw("\n")
			if _, ok := d.(*parse.FunctionDef); ok {
				e.raw("\n")
			}
		}
		e.emitExternalDecl(d)
	}
	e.raw("\n")
	return e.o.Flush()
}

// EmitString is Emit into a string.
func EmitString(tu *parse.TranslationUnit) string {
	var b strings.Builder
	_ = Emit(tu, &b)
	return b.String()
}

// ExprString prints a single expression.
func ExprString(x parse.Expr) string {
	var b strings.Builder
	e := &emitter{o: bufio.NewWriter(&b), last: '\n'}
	e.emitExpr(x)
	e.o.Flush()
	return b.String()
}

// StmtString prints a single statement.
func StmtString(s parse.Stmt) string {
	var b strings.Builder
	e := &emitter{o: bufio.NewWriter(&b), last: '\n'}
	e.emitStmt(s)
	e.o.Flush()
	return b.String()
}

func (e *emitter) emit(s string, args ...interface{}) {
	e.raw(fmt.Sprintf(s, args...))
}

func (e *emitter) raw(s string) {
	if s == "" {
		return
	}
	e.o.WriteString(s)
	e.last = s[len(s)-1]
	e.lastNum = false
}

// emiti starts a new line at the current indentation.
func (e *emitter) emiti(s string, args ...interface{}) {
	e.raw("\n" + strings.Repeat("\t", e.indent))
	e.emit(s, args...)
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func isPunctByte(b byte) bool {
	return strings.IndexByte("+-*/%&|^<>=!.", b) >= 0
}

// tok writes one token, separating it from the previous one when the two
// would otherwise lex differently.
func (e *emitter) tok(s string) {
	if s == "" {
		return
	}
	first := s[0]
	switch {
	case isWordByte(e.last) && isWordByte(first),
		isPunctByte(e.last) && isPunctByte(first),
		e.lastNum && first == '.':
		e.raw(" ")
	}
	e.raw(s)
}

func (e *emitter) op(k lexer.TokenKind) {
	e.tok(k.Lexeme())
}

func (e *emitter) number(s string) {
	e.tok(s)
	e.lastNum = true
}

func (e *emitter) emitExternalDecl(d parse.ExternalDecl) {
	switch d := d.(type) {
	case *parse.FunctionDef:
		e.emitFunctionDef(d)
	case *parse.Declaration:
		e.emitDeclaration(d)
	default:
		panic(d)
	}
}

func (e *emitter) emitFunctionDef(f *parse.FunctionDef) {
	e.emitSpecs(f.Specs)
	e.raw(" ")
	e.emitDeclarator(f.Decl)
	e.indent++
	for _, d := range f.OldParams {
		e.emiti("")
		e.emitDeclaration(d)
	}
	e.indent--
	e.emiti("")
	e.emitCompound(f.Body)
}

func (e *emitter) emitDeclaration(d *parse.Declaration) {
	e.emitSpecs(d.Specs)
	for i, init := range d.Inits {
		if i == 0 {
			e.raw(" ")
		} else {
			e.raw(", ")
		}
		e.emitDeclarator(init.Decl)
		if init.Init != nil {
			e.raw(" = ")
			e.emitInitializer(init.Init)
		}
	}
	e.tok(";")
}

// emitSpecs prints specifiers in the order storage class, inline,
// qualifiers, type specifiers.
func (e *emitter) emitSpecs(ds *parse.DeclSpecs) {
	var words []func()
	if ds.Storage != 0 {
		k := ds.Storage
		words = append(words, func() { e.op(k) })
	}
	if ds.Inline {
		words = append(words, func() { e.op(lexer.INLINE) })
	}
	for _, q := range ds.Quals.Kinds() {
		q := q
		words = append(words, func() { e.op(q) })
	}
	for _, ts := range ds.Types {
		ts := ts
		words = append(words, func() { e.emitTypeSpec(ts) })
	}
	for i, w := range words {
		if i != 0 {
			e.raw(" ")
		}
		w()
	}
}

func (e *emitter) emitTypeSpec(ts *parse.TypeSpec) {
	switch ts.Kind {
	case lexer.IDENT:
		e.tok(ts.Name)
	case lexer.ENUM:
		e.emitEnum(ts.Enum)
	default:
		e.op(ts.Kind)
	}
}

func (e *emitter) emitEnum(en *parse.EnumSpec) {
	e.op(lexer.ENUM)
	if en.Tag != "" {
		e.raw(" ")
		e.tok(en.Tag)
	}
	if en.Enumerators == nil {
		return
	}
	e.raw(" {")
	for i, m := range en.Enumerators {
		if i != 0 {
			e.raw(",")
		}
		e.raw(" ")
		e.tok(m.Name)
		if m.Value != nil {
			e.raw(" = ")
			e.emitExpr(m.Value)
		}
	}
	if en.TrailingComma {
		e.raw(",")
	}
	e.raw(" }")
}

func (e *emitter) emitDeclarator(d *parse.Declarator) {
	if d == nil {
		return
	}
	for _, ptr := range d.Pointers {
		e.tok("*")
		for _, q := range ptr.Quals.Kinds() {
			e.op(q)
		}
	}
	if d.Direct != nil {
		e.emitDirectDeclarator(d.Direct)
	}
}

func (e *emitter) emitDirectDeclarator(dd parse.DirectDeclarator) {
	switch dd := dd.(type) {
	case *parse.IdentDecl:
		e.tok(dd.Name)
	case *parse.ParenDecl:
		e.tok("(")
		e.emitDeclarator(dd.Inner)
		e.tok(")")
	case *parse.ArrayDecl:
		if dd.Base != nil {
			e.emitDirectDeclarator(dd.Base)
		}
		e.tok("[")
		if dd.Static {
			e.op(lexer.STATIC)
		}
		for _, q := range dd.Quals.Kinds() {
			e.op(q)
		}
		switch {
		case dd.Star:
			e.tok("*")
		case dd.Size != nil:
			if dd.Static || dd.Quals != 0 {
				e.raw(" ")
			}
			e.emitExpr(dd.Size)
		}
		e.tok("]")
	case *parse.FuncDecl:
		if dd.Base != nil {
			e.emitDirectDeclarator(dd.Base)
		}
		e.tok("(")
		for i, id := range dd.Idents {
			if i != 0 {
				e.raw(", ")
			}
			e.tok(id.Name)
		}
		if dd.Params != nil {
			for i, pd := range dd.Params.Params {
				if i != 0 {
					e.raw(", ")
				}
				e.emitSpecs(pd.Specs)
				if pd.Decl != nil {
					e.raw(" ")
					e.emitDeclarator(pd.Decl)
				}
			}
			if dd.Params.Variadic {
				e.raw(", ...")
			}
		}
		e.tok(")")
	default:
		panic(dd)
	}
}

func (e *emitter) emitTypeName(tn *parse.TypeName) {
	e.emitSpecs(tn.Specs)
	if tn.Decl != nil {
		e.raw(" ")
		e.emitDeclarator(tn.Decl)
	}
}

func (e *emitter) emitInitializer(init *parse.Initializer) {
	if init.List != nil {
		e.emitInitList(init.List)
		return
	}
	e.emitExpr(init.Expr)
}

func (e *emitter) emitInitList(l *parse.InitList) {
	e.tok("{")
	for i, item := range l.Items {
		if i != 0 {
			e.raw(", ")
		}
		for _, d := range item.Designators {
			if d.Index != nil {
				e.tok("[")
				e.emitExpr(d.Index)
				e.tok("]")
			} else {
				e.tok(".")
				e.tok(d.Field)
			}
		}
		if len(item.Designators) != 0 {
			e.raw(" = ")
		}
		e.emitInitializer(item.Init)
	}
	if l.TrailingComma {
		e.raw(",")
	}
	e.tok("}")
}

func (e *emitter) emitBlockItem(item parse.BlockItem) {
	switch item := item.(type) {
	case *parse.Declaration:
		e.emitDeclaration(item)
	case parse.Stmt:
		e.emitStmt(item)
	default:
		panic(item)
	}
}

func (e *emitter) emitCompound(c *parse.CompoundStmt) {
	e.tok("{")
	e.indent++
	for _, item := range c.Items {
		e.emiti("")
		e.emitBlockItem(item)
	}
	e.indent--
	e.emiti("}")
}

// emitBody prints the statement controlled by if, while, for, switch or
// do: a block stays on the same line, anything else goes on its own
// indented line.
func (e *emitter) emitBody(s parse.Stmt) {
	if c, ok := s.(*parse.CompoundStmt); ok {
		e.raw(" ")
		e.emitCompound(c)
		return
	}
	e.indent++
	e.emiti("")
	e.emitStmt(s)
	e.indent--
}

func (e *emitter) emitStmt(s parse.Stmt) {
	switch s := s.(type) {
	case *parse.CompoundStmt:
		e.emitCompound(s)
	case *parse.ExprStmt:
		e.emitExprStmt(s)
	case *parse.LabeledStmt:
		switch s.Kind {
		case parse.LabelNamed:
			e.tok(s.Label)
		case parse.LabelCase:
			e.op(lexer.CASE)
			e.raw(" ")
			e.emitExpr(s.Case)
		case parse.LabelDefault:
			e.op(lexer.DEFAULT)
		}
		e.raw(": ")
		e.emitStmt(s.Body)
	case *parse.IfStmt:
		e.raw("if (")
		e.emitExpr(s.Cond)
		e.tok(")")
		e.emitBody(s.Then)
		if s.Else == nil {
			return
		}
		if _, ok := s.Then.(*parse.CompoundStmt); ok {
			e.raw(" ")
		} else {
			e.emiti("")
		}
		e.raw("else")
		if elif, ok := s.Else.(*parse.IfStmt); ok {
			e.raw(" ")
			e.emitStmt(elif)
			return
		}
		e.emitBody(s.Else)
	case *parse.SwitchStmt:
		e.raw("switch (")
		e.emitExpr(s.Cond)
		e.tok(")")
		e.emitBody(s.Body)
	case *parse.WhileStmt:
		e.raw("while (")
		e.emitExpr(s.Cond)
		e.tok(")")
		e.emitBody(s.Body)
	case *parse.DoWhileStmt:
		e.raw("do")
		e.emitBody(s.Body)
		if _, ok := s.Body.(*parse.CompoundStmt); ok {
			e.raw(" ")
		} else {
			e.emiti("")
		}
		e.raw("while (")
		e.emitExpr(s.Cond)
		e.raw(");")
	case *parse.ForStmt:
		e.raw("for (")
		switch init := s.Init.(type) {
		case *parse.Declaration:
			e.emitDeclaration(init)
		case *parse.ExprStmt:
			e.emitExprStmt(init)
		}
		if s.Cond.X != nil {
			e.raw(" ")
		}
		e.emitExprStmt(s.Cond)
		if s.Post != nil {
			e.raw(" ")
			e.emitExpr(s.Post)
		}
		e.tok(")")
		e.emitBody(s.Body)
	default:
		panic(s)
	}
}

func (e *emitter) emitExprStmt(s *parse.ExprStmt) {
	if s.X != nil {
		e.emitExpr(s.X)
	}
	e.tok(";")
}

func (e *emitter) emitExpr(x parse.Expr) {
	switch x := x.(type) {
	case *parse.Ident:
		e.tok(x.Name)
	case *parse.Constant:
		e.number(x.Val)
	case *parse.String:
		e.tok(x.Val)
	case *parse.Paren:
		e.tok("(")
		e.emitExpr(x.X)
		e.tok(")")
	case *parse.Index:
		e.emitExpr(x.Arr)
		e.tok("[")
		e.emitExpr(x.Index)
		e.tok("]")
	case *parse.Call:
		e.emitExpr(x.Func)
		e.tok("(")
		for i, arg := range x.Args {
			if i != 0 {
				e.raw(", ")
			}
			e.emitExpr(arg)
		}
		e.tok(")")
	case *parse.Member:
		e.emitExpr(x.X)
		e.tok(".")
		e.tok(x.Name)
	case *parse.PtrMember:
		e.emitExpr(x.X)
		e.tok("->")
		e.tok(x.Name)
	case *parse.Postfix:
		e.emitExpr(x.Operand)
		e.op(x.Op)
	case *parse.CompoundLiteral:
		e.tok("(")
		e.emitTypeName(x.Type)
		e.tok(")")
		e.emitInitList(x.Init)
	case *parse.Prefix:
		e.op(x.Op)
		e.emitExpr(x.Operand)
	case *parse.Unop:
		e.op(x.Op)
		e.emitExpr(x.Operand)
	case *parse.Sizeof:
		e.op(lexer.SIZEOF)
		if x.Type != nil {
			e.tok("(")
			e.emitTypeName(x.Type)
			e.tok(")")
			return
		}
		if _, ok := x.Expr.(*parse.CompoundLiteral); ok {
			e.raw(" ")
		}
		e.emitExpr(x.Expr)
	case *parse.Cast:
		e.tok("(")
		e.emitTypeName(x.Type)
		e.tok(")")
		e.emitExpr(x.Operand)
	case *parse.Binop:
		e.emitBinary(x.L, x.Op, x.R)
	case *parse.Assign:
		e.emitBinary(x.L, x.Op, x.R)
	case *parse.Cond:
		e.emitExpr(x.Cond)
		e.raw(" ? ")
		e.emitExpr(x.Then)
		e.raw(" : ")
		e.emitExpr(x.Else)
	case *parse.Comma:
		e.emitExpr(x.L)
		e.raw(", ")
		e.emitExpr(x.R)
	default:
		panic(x)
	}
}

func (e *emitter) emitBinary(l parse.Expr, op lexer.TokenKind, r parse.Expr) {
	e.emitExpr(l)
	e.raw(" ")
	e.op(op)
	e.raw(" ")
	e.emitExpr(r)
}
