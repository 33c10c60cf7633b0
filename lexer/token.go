package lexer

import (
	"fmt"
)

// The list of tokens.
const (

	// Single char tokens are themselves.
	ADD       = '+'
	SUB       = '-'
	MUL       = '*'
	QUO       = '/'
	REM       = '%'
	AND       = '&'
	OR        = '|'
	XOR       = '^'
	QUESTION  = '?'
	LSS       = '<'
	GTR       = '>'
	ASSIGN    = '='
	NOT       = '!'
	BNOT      = '~'
	LPAREN    = '('
	LBRACK    = '['
	LBRACE    = '{'
	COMMA     = ','
	PERIOD    = '.'
	RPAREN    = ')'
	RBRACK    = ']'
	RBRACE    = '}'
	SEMICOLON = ';'
	COLON     = ':'

	EOF = 10000 + iota
	// Identifiers and basic type literals
	// (these tokens stand for classes of literals)
	IDENT          // main
	INT_CONSTANT   // 12345
	FLOAT_CONSTANT // 123.45
	CHAR_CONSTANT  // 'a'
	STRING         // "abc"

	SHL        // <<
	SHR        // >>
	ADD_ASSIGN // +=
	SUB_ASSIGN // -=
	MUL_ASSIGN // *=
	QUO_ASSIGN // /=
	REM_ASSIGN // %=
	AND_ASSIGN // &=
	OR_ASSIGN  // |=
	XOR_ASSIGN // ^=
	SHL_ASSIGN // <<=
	SHR_ASSIGN // >>=
	LAND       // &&
	LOR        // ||
	ARROW      // ->
	INC        // ++
	DEC        // --
	EQL        // ==
	NEQ        // !=
	LEQ        // <=
	GEQ        // >=
	ELLIPSIS   // ...

	// Keywords
	AUTO
	REGISTER
	EXTERN
	STATIC
	TYPEDEF
	INLINE
	CONST
	RESTRICT
	VOLATILE
	VOID
	CHAR
	SHORT
	INT
	LONG
	FLOAT
	DOUBLE
	SIGNED
	UNSIGNED
	BOOL      // _Bool
	COMPLEX   // _Complex
	IMAGINARY // _Imaginary
	STRUCT
	UNION
	ENUM
	SIZEOF
	CASE
	DEFAULT
	IF
	ELSE
	SWITCH
	WHILE
	DO
	FOR
	GOTO
	CONTINUE
	BREAK
	RETURN
)

var tokenKindToStr = [...]string{
	EOF:            "EOF",
	CHAR_CONSTANT:  "charconst",
	INT_CONSTANT:   "intconst",
	FLOAT_CONSTANT: "floatconst",
	IDENT:          "identifier",
	STRING:         "string",
	ADD:            "'+'",
	SUB:            "'-'",
	MUL:            "'*'",
	QUO:            "'/'",
	REM:            "'%'",
	AND:            "'&'",
	OR:             "'|'",
	XOR:            "'^'",
	SHL:            "'<<'",
	SHR:            "'>>'",
	ADD_ASSIGN:     "'+='",
	SUB_ASSIGN:     "'-='",
	MUL_ASSIGN:     "'*='",
	QUO_ASSIGN:     "'/='",
	REM_ASSIGN:     "'%='",
	AND_ASSIGN:     "'&='",
	OR_ASSIGN:      "'|='",
	XOR_ASSIGN:     "'^='",
	SHL_ASSIGN:     "'<<='",
	SHR_ASSIGN:     "'>>='",
	LAND:           "'&&'",
	LOR:            "'||'",
	ARROW:          "'->'",
	INC:            "'++'",
	DEC:            "'--'",
	EQL:            "'=='",
	LSS:            "'<'",
	GTR:            "'>'",
	ASSIGN:         "'='",
	NOT:            "'!'",
	BNOT:           "'~'",
	NEQ:            "'!='",
	LEQ:            "'<='",
	GEQ:            "'>='",
	ELLIPSIS:       "'...'",
	LPAREN:         "'('",
	LBRACK:         "'['",
	LBRACE:         "'{'",
	COMMA:          "','",
	PERIOD:         "'.'",
	RPAREN:         "')'",
	RBRACK:         "']'",
	RBRACE:         "'}'",
	SEMICOLON:      "';'",
	COLON:          "':'",
	QUESTION:       "'?'",
	AUTO:           "auto",
	REGISTER:       "register",
	EXTERN:         "extern",
	STATIC:         "static",
	TYPEDEF:        "typedef",
	INLINE:         "inline",
	CONST:          "const",
	RESTRICT:       "restrict",
	VOLATILE:       "volatile",
	VOID:           "void",
	CHAR:           "char",
	SHORT:          "short",
	INT:            "int",
	LONG:           "long",
	FLOAT:          "float",
	DOUBLE:         "double",
	SIGNED:         "signed",
	UNSIGNED:       "unsigned",
	BOOL:           "_Bool",
	COMPLEX:        "_Complex",
	IMAGINARY:      "_Imaginary",
	STRUCT:         "struct",
	UNION:          "union",
	ENUM:           "enum",
	SIZEOF:         "sizeof",
	CASE:           "case",
	DEFAULT:        "default",
	IF:             "if",
	ELSE:           "else",
	SWITCH:         "switch",
	WHILE:          "while",
	DO:             "do",
	FOR:            "for",
	GOTO:           "goto",
	CONTINUE:       "continue",
	BREAK:          "break",
	RETURN:         "return",
}

var keywordLUT = map[string]TokenKind{
	"auto":       AUTO,
	"register":   REGISTER,
	"extern":     EXTERN,
	"static":     STATIC,
	"typedef":    TYPEDEF,
	"inline":     INLINE,
	"const":      CONST,
	"restrict":   RESTRICT,
	"volatile":   VOLATILE,
	"void":       VOID,
	"char":       CHAR,
	"short":      SHORT,
	"int":        INT,
	"long":       LONG,
	"float":      FLOAT,
	"double":     DOUBLE,
	"signed":     SIGNED,
	"unsigned":   UNSIGNED,
	"_Bool":      BOOL,
	"_Complex":   COMPLEX,
	"_Imaginary": IMAGINARY,
	"struct":     STRUCT,
	"union":      UNION,
	"enum":       ENUM,
	"sizeof":     SIZEOF,
	"case":       CASE,
	"default":    DEFAULT,
	"if":         IF,
	"else":       ELSE,
	"switch":     SWITCH,
	"while":      WHILE,
	"do":         DO,
	"for":        FOR,
	"goto":       GOTO,
	"continue":   CONTINUE,
	"break":      BREAK,
	"return":     RETURN,
}

type TokenKind uint32

func (tk TokenKind) String() string {
	if uint32(tk) >= uint32(len(tokenKindToStr)) {
		return "Unknown"
	}
	ret := tokenKindToStr[tk]
	if ret == "" {
		return "Unknown"
	}
	return ret
}

// Lexeme returns the source spelling of a punctuator or keyword, or "" for
// classes of tokens such as identifiers and constants.
func (tk TokenKind) Lexeme() string {
	s := tk.String()
	if tk.IsKeyword() {
		return s
	}
	if len(s) >= 3 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return ""
}

// IsKeyword reports whether tk is a reserved word.
func (tk TokenKind) IsKeyword() bool {
	return tk >= AUTO && tk <= RETURN
}

type FilePos struct {
	File string
	Line int
	Col  int
}

func (pos FilePos) String() string {
	return fmt.Sprintf("%s:%d:%d", pos.File, pos.Line, pos.Col)
}

//Token represents a grouping of characters
//that provide semantic meaning in a C program.
type Token struct {
	Kind TokenKind
	Val  string
	Pos  FilePos
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("end of input at %s", t.Pos)
	}
	return fmt.Sprintf("%s at %s", t.Val, t.Pos)
}
