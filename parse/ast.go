package parse

import "github.com/Joana-Martins/C-Compiler/lexer"

type Node interface {
	GetPos() lexer.FilePos
}

// Expr is any expression node.
type Expr interface {
	Node
	isExpr()
}

// Stmt is any statement node. Every statement is also a block item.
type Stmt interface {
	BlockItem
	isStmt()
}

// BlockItem is either a *Declaration or a Stmt.
type BlockItem interface {
	Node
	isBlockItem()
}

// ExternalDecl is either a *FunctionDef or a *Declaration.
type ExternalDecl interface {
	Node
	isExternalDecl()
}

// ForInit is the first clause of a for statement, either an *ExprStmt or a
// *Declaration.
type ForInit interface {
	Node
	isForInit()
}

// Expressions.

type Ident struct {
	Pos  lexer.FilePos
	Name string
}

// Constant is an integer, floating or character constant kept as written.
type Constant struct {
	Pos  lexer.FilePos
	Kind lexer.TokenKind
	Val  string
}

type String struct {
	Pos lexer.FilePos
	Val string
}

type Paren struct {
	Pos lexer.FilePos
	X   Expr
}

type Index struct {
	Pos   lexer.FilePos
	Arr   Expr
	Index Expr
}

type Call struct {
	Pos  lexer.FilePos
	Func Expr
	Args []Expr
}

// Member is x.name.
type Member struct {
	Pos  lexer.FilePos
	X    Expr
	Name string
}

// PtrMember is x->name.
type PtrMember struct {
	Pos  lexer.FilePos
	X    Expr
	Name string
}

// Postfix is x++ or x--.
type Postfix struct {
	Pos     lexer.FilePos
	Op      lexer.TokenKind
	Operand Expr
}

type CompoundLiteral struct {
	Pos  lexer.FilePos
	Type *TypeName
	Init *InitList
}

// Prefix is ++x or --x.
type Prefix struct {
	Pos     lexer.FilePos
	Op      lexer.TokenKind
	Operand Expr
}

// Unop is one of & * + - ~ ! applied to a cast expression.
type Unop struct {
	Pos     lexer.FilePos
	Op      lexer.TokenKind
	Operand Expr
}

// Sizeof has exactly one of Expr and Type set.
type Sizeof struct {
	Pos  lexer.FilePos
	Expr Expr
	Type *TypeName
}

type Cast struct {
	Pos     lexer.FilePos
	Type    *TypeName
	Operand Expr
}

type Binop struct {
	Op  lexer.TokenKind
	Pos lexer.FilePos
	L   Expr
	R   Expr
}

// Cond is the ternary operator.
type Cond struct {
	Pos  lexer.FilePos
	Cond Expr
	Then Expr
	Else Expr
}

type Assign struct {
	Op  lexer.TokenKind
	Pos lexer.FilePos
	L   Expr
	R   Expr
}

type Comma struct {
	Pos lexer.FilePos
	L   Expr
	R   Expr
}

// Statements.

type LabelKind int

const (
	LabelNamed LabelKind = iota
	LabelCase
	LabelDefault
)

func (k LabelKind) String() string {
	switch k {
	case LabelNamed:
		return "named"
	case LabelCase:
		return "case"
	case LabelDefault:
		return "default"
	}
	return "Unknown"
}

type LabeledStmt struct {
	Pos   lexer.FilePos
	Kind  LabelKind
	Label string
	Case  Expr
	Body  Stmt
}

type CompoundStmt struct {
	Pos   lexer.FilePos
	Items []BlockItem
}

// ExprStmt with a nil X is the empty statement.
type ExprStmt struct {
	Pos lexer.FilePos
	X   Expr
}

type IfStmt struct {
	Pos  lexer.FilePos
	Cond Expr
	Then Stmt
	Else Stmt
}

type SwitchStmt struct {
	Pos  lexer.FilePos
	Cond Expr
	Body Stmt
}

type WhileStmt struct {
	Pos  lexer.FilePos
	Cond Expr
	Body Stmt
}

type DoWhileStmt struct {
	Pos  lexer.FilePos
	Body Stmt
	Cond Expr
}

type ForStmt struct {
	Pos  lexer.FilePos
	Init ForInit
	Cond *ExprStmt
	Post Expr
	Body Stmt
}

// Top level.

type TranslationUnit struct {
	Decls []ExternalDecl
}

type FunctionDef struct {
	Pos   lexer.FilePos
	Specs *DeclSpecs
	Decl  *Declarator
	// Declarations between an identifier list and the body.
	OldParams []*Declaration
	Body      *CompoundStmt
}

type Declaration struct {
	Pos   lexer.FilePos
	Specs *DeclSpecs
	Inits []*InitDeclarator
}

// IsTypedef reports whether d introduces type names.
func (d *Declaration) IsTypedef() bool {
	return d.Specs.Storage == lexer.TYPEDEF
}

func (e *Ident) GetPos() lexer.FilePos           { return e.Pos }
func (e *Constant) GetPos() lexer.FilePos        { return e.Pos }
func (e *String) GetPos() lexer.FilePos          { return e.Pos }
func (e *Paren) GetPos() lexer.FilePos           { return e.Pos }
func (e *Index) GetPos() lexer.FilePos           { return e.Pos }
func (e *Call) GetPos() lexer.FilePos            { return e.Pos }
func (e *Member) GetPos() lexer.FilePos          { return e.Pos }
func (e *PtrMember) GetPos() lexer.FilePos       { return e.Pos }
func (e *Postfix) GetPos() lexer.FilePos         { return e.Pos }
func (e *CompoundLiteral) GetPos() lexer.FilePos { return e.Pos }
func (e *Prefix) GetPos() lexer.FilePos          { return e.Pos }
func (e *Unop) GetPos() lexer.FilePos            { return e.Pos }
func (e *Sizeof) GetPos() lexer.FilePos          { return e.Pos }
func (e *Cast) GetPos() lexer.FilePos            { return e.Pos }
func (e *Binop) GetPos() lexer.FilePos           { return e.Pos }
func (e *Cond) GetPos() lexer.FilePos            { return e.Pos }
func (e *Assign) GetPos() lexer.FilePos          { return e.Pos }
func (e *Comma) GetPos() lexer.FilePos           { return e.Pos }

func (*Ident) isExpr()           {}
func (*Constant) isExpr()        {}
func (*String) isExpr()          {}
func (*Paren) isExpr()           {}
func (*Index) isExpr()           {}
func (*Call) isExpr()            {}
func (*Member) isExpr()          {}
func (*PtrMember) isExpr()       {}
func (*Postfix) isExpr()         {}
func (*CompoundLiteral) isExpr() {}
func (*Prefix) isExpr()          {}
func (*Unop) isExpr()            {}
func (*Sizeof) isExpr()          {}
func (*Cast) isExpr()            {}
func (*Binop) isExpr()           {}
func (*Cond) isExpr()            {}
func (*Assign) isExpr()          {}
func (*Comma) isExpr()           {}

func (s *LabeledStmt) GetPos() lexer.FilePos  { return s.Pos }
func (s *CompoundStmt) GetPos() lexer.FilePos { return s.Pos }
func (s *ExprStmt) GetPos() lexer.FilePos     { return s.Pos }
func (s *IfStmt) GetPos() lexer.FilePos       { return s.Pos }
func (s *SwitchStmt) GetPos() lexer.FilePos   { return s.Pos }
func (s *WhileStmt) GetPos() lexer.FilePos    { return s.Pos }
func (s *DoWhileStmt) GetPos() lexer.FilePos  { return s.Pos }
func (s *ForStmt) GetPos() lexer.FilePos      { return s.Pos }
func (d *FunctionDef) GetPos() lexer.FilePos  { return d.Pos }
func (d *Declaration) GetPos() lexer.FilePos  { return d.Pos }

func (*LabeledStmt) isStmt()  {}
func (*CompoundStmt) isStmt() {}
func (*ExprStmt) isStmt()     {}
func (*IfStmt) isStmt()       {}
func (*SwitchStmt) isStmt()   {}
func (*WhileStmt) isStmt()    {}
func (*DoWhileStmt) isStmt()  {}
func (*ForStmt) isStmt()      {}

func (*LabeledStmt) isBlockItem()  {}
func (*CompoundStmt) isBlockItem() {}
func (*ExprStmt) isBlockItem()     {}
func (*IfStmt) isBlockItem()       {}
func (*SwitchStmt) isBlockItem()   {}
func (*WhileStmt) isBlockItem()    {}
func (*DoWhileStmt) isBlockItem()  {}
func (*ForStmt) isBlockItem()      {}
func (*Declaration) isBlockItem()  {}

func (*ExprStmt) isForInit()    {}
func (*Declaration) isForInit() {}

func (*FunctionDef) isExternalDecl() {}
func (*Declaration) isExternalDecl() {}
