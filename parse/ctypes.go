package parse

import (
	"strings"

	"github.com/Joana-Martins/C-Compiler/lexer"
)

// Qualifiers is a set of type qualifiers.
type Qualifiers uint8

const (
	QualConst Qualifiers = 1 << iota
	QualRestrict
	QualVolatile
)

var qualifierKinds = [...]struct {
	q    Qualifiers
	kind lexer.TokenKind
}{
	{QualConst, lexer.CONST},
	{QualRestrict, lexer.RESTRICT},
	{QualVolatile, lexer.VOLATILE},
}

func qualifierOf(k lexer.TokenKind) Qualifiers {
	for _, qk := range qualifierKinds {
		if qk.kind == k {
			return qk.q
		}
	}
	return 0
}

// Kinds lists the qualifiers in the set in canonical order.
func (q Qualifiers) Kinds() []lexer.TokenKind {
	var ret []lexer.TokenKind
	for _, qk := range qualifierKinds {
		if q&qk.q != 0 {
			ret = append(ret, qk.kind)
		}
	}
	return ret
}

func (q Qualifiers) String() string {
	var parts []string
	for _, k := range q.Kinds() {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, " ")
}

// DeclSpecs is the order-insensitive specifier prefix of a declaration.
type DeclSpecs struct {
	Pos lexer.FilePos
	// Storage is 0 when no storage class was given.
	Storage lexer.TokenKind
	Types   []*TypeSpec
	Quals   Qualifiers
	Inline  bool
}

// TypeSpec is a single type specifier. Kind is a type keyword, lexer.IDENT
// for a typedef name (Name set) or lexer.ENUM (Enum set).
type TypeSpec struct {
	Pos  lexer.FilePos
	Kind lexer.TokenKind
	Name string
	Enum *EnumSpec
}

// EnumSpec is enum [tag] [{ enumerators }]. A nil Enumerators list is a
// reference to a previously declared tag.
type EnumSpec struct {
	Pos           lexer.FilePos
	Tag           string
	Enumerators   []*Enumerator
	TrailingComma bool
}

type Enumerator struct {
	Pos   lexer.FilePos
	Name  string
	Value Expr
}

// Pointer is one '*' of a declarator prefix with its own qualifiers.
type Pointer struct {
	Pos   lexer.FilePos
	Quals Qualifiers
}

// Declarator is read inside-out: the pointers apply to whatever the direct
// declarator describes.
type Declarator struct {
	Pos      lexer.FilePos
	Pointers []*Pointer
	// Direct is nil only for an abstract declarator made of pointers alone.
	Direct DirectDeclarator
}

// DirectDeclarator is one of *IdentDecl, *ParenDecl, *ArrayDecl, *FuncDecl.
type DirectDeclarator interface {
	Node
	isDirectDeclarator()
}

type IdentDecl struct {
	Pos  lexer.FilePos
	Name string
}

// ParenDecl is a parenthesized inner declarator, as in (*fp)(void).
type ParenDecl struct {
	Pos   lexer.FilePos
	Inner *Declarator
}

// ArrayDecl wraps Base in an array layer. Base is nil in abstract
// declarators. Star marks the unsized variable-length form [*].
type ArrayDecl struct {
	Pos    lexer.FilePos
	Base   DirectDeclarator
	Quals  Qualifiers
	Static bool
	Star   bool
	Size   Expr
}

// FuncDecl wraps Base in a function layer. At most one of Params and Idents
// is set; neither means an empty parameter list.
type FuncDecl struct {
	Pos    lexer.FilePos
	Base   DirectDeclarator
	Params *ParamList
	Idents []*Ident
}

type ParamList struct {
	Params   []*ParamDecl
	Variadic bool
}

// ParamDecl has a nil Decl when only specifiers were given.
type ParamDecl struct {
	Pos   lexer.FilePos
	Specs *DeclSpecs
	Decl  *Declarator
}

// TypeName is used by casts, sizeof and compound literals.
type TypeName struct {
	Pos   lexer.FilePos
	Specs *DeclSpecs
	Decl  *Declarator
}

type InitDeclarator struct {
	Decl *Declarator
	Init *Initializer
}

func (d *DeclSpecs) GetPos() lexer.FilePos  { return d.Pos }
func (t *TypeSpec) GetPos() lexer.FilePos   { return t.Pos }
func (e *EnumSpec) GetPos() lexer.FilePos   { return e.Pos }
func (e *Enumerator) GetPos() lexer.FilePos { return e.Pos }
func (d *Declarator) GetPos() lexer.FilePos { return d.Pos }
func (d *IdentDecl) GetPos() lexer.FilePos  { return d.Pos }
func (d *ParenDecl) GetPos() lexer.FilePos  { return d.Pos }
func (d *ArrayDecl) GetPos() lexer.FilePos  { return d.Pos }
func (d *FuncDecl) GetPos() lexer.FilePos   { return d.Pos }
func (d *ParamDecl) GetPos() lexer.FilePos  { return d.Pos }
func (t *TypeName) GetPos() lexer.FilePos   { return t.Pos }

func (*IdentDecl) isDirectDeclarator() {}
func (*ParenDecl) isDirectDeclarator() {}
func (*ArrayDecl) isDirectDeclarator() {}
func (*FuncDecl) isDirectDeclarator()  {}

// Name returns the declared identifier, or "" for an abstract declarator.
func (d *Declarator) Name() string {
	if d == nil {
		return ""
	}
	dd := d.Direct
	for dd != nil {
		switch t := dd.(type) {
		case *IdentDecl:
			return t.Name
		case *ParenDecl:
			return t.Inner.Name()
		case *ArrayDecl:
			dd = t.Base
		case *FuncDecl:
			dd = t.Base
		}
	}
	return ""
}

// Function returns the function layer applied directly to the declared
// name, e.g. the (int a) of int *f(int a), or nil if d does not declare a
// function.
func (d *Declarator) Function() *FuncDecl {
	if d == nil {
		return nil
	}
	var last *FuncDecl
	dd := d.Direct
	for dd != nil {
		switch t := dd.(type) {
		case *IdentDecl:
			return last
		case *ParenDecl:
			if inner := t.Inner.Function(); inner != nil {
				return inner
			}
			if len(t.Inner.Pointers) != 0 {
				// (*f)(...) declares a pointer, not a function.
				return nil
			}
			dd = t.Inner.Direct
			continue
		case *ArrayDecl:
			last = nil
			dd = t.Base
		case *FuncDecl:
			last = t
			dd = t.Base
		}
	}
	return last
}
