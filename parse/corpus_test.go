package parse_test

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/Joana-Martins/C-Compiler/emit"
	"github.com/Joana-Martins/C-Compiler/lexer"
	"github.com/Joana-Martins/C-Compiler/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type corpusError struct {
	Pos      string   `yaml:"pos"`
	Got      string   `yaml:"got"`
	Expected []string `yaml:"expected"`
	Context  string   `yaml:"context"`
	Msg      string   `yaml:"msg"`
	Lexical  bool     `yaml:"lexical"`
}

type corpusCase struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"`
	Src      string       `yaml:"src"`
	Typedefs []string     `yaml:"typedefs"`
	Sexpr    string       `yaml:"sexpr"`
	Error    *corpusError `yaml:"error"`
}

func loadCorpus(t *testing.T) []corpusCase {
	data, err := os.ReadFile("testdata/parse.yaml")
	require.NoError(t, err)
	var cases []corpusCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func parseCase(tc corpusCase, src string) (interface{}, error) {
	opts := parse.Options{TypeNames: parse.NewScopeStack(tc.Typedefs...)}
	toks := lexer.LexString("test.c", src)
	switch tc.Kind {
	case "expr":
		return parse.ParseExpression(toks, opts)
	case "stmt":
		return parse.ParseStatement(toks, opts)
	}
	return parse.Parse(toks, opts)
}

func printNode(n interface{}) string {
	switch n := n.(type) {
	case parse.Expr:
		return emit.ExprString(n)
	case parse.Stmt:
		return emit.StmtString(n)
	case *parse.TranslationUnit:
		return emit.EmitString(n)
	}
	panic(n)
}

func TestCorpus(t *testing.T) {
	for _, tc := range loadCorpus(t) {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			n, err := parseCase(tc, tc.Src)
			if tc.Error != nil {
				require.Error(t, err)
				checkError(t, tc.Error, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Sexpr, sexpr(n))

			// Printing and parsing again gives the same tree.
			printed := printNode(n)
			again, err := parseCase(tc, printed)
			require.NoError(t, err, printed)
			assert.Equal(t, emit.Tree(n), emit.Tree(again), printed)
		})
	}
}

func checkError(t *testing.T, want *corpusError, err error) {
	var serr *parse.SyntaxError
	if want.Lexical {
		var eloc lexer.ErrorLoc
		assert.True(t, errors.As(err, &eloc), "%v", err)
		assert.False(t, errors.As(err, &serr), "%v", err)
		return
	}
	require.True(t, errors.As(err, &serr), "%v", err)
	assert.Equal(t, want.Pos, fmt.Sprintf("%d:%d", serr.Pos.Line, serr.Pos.Col))
	assert.Equal(t, want.Got, serr.Got.String())
	assert.Equal(t, want.Expected, serr.Expected)
	assert.Equal(t, want.Context, serr.Context)
	assert.Equal(t, want.Msg, serr.Msg)
}

func list(name string, args ...interface{}) string {
	parts := []string{name}
	for _, a := range args {
		parts = append(parts, sexpr(a))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func specWords(ds *parse.DeclSpecs) string {
	var words []string
	if ds.Storage != 0 {
		words = append(words, ds.Storage.Lexeme())
	}
	if ds.Inline {
		words = append(words, "inline")
	}
	for _, q := range ds.Quals.Kinds() {
		words = append(words, q.Lexeme())
	}
	for _, ts := range ds.Types {
		switch ts.Kind {
		case lexer.IDENT:
			words = append(words, ts.Name)
		case lexer.ENUM:
			words = append(words, strings.TrimSpace("enum "+ts.Enum.Tag))
		default:
			words = append(words, ts.Kind.Lexeme())
		}
	}
	return strings.Join(words, " ")
}

func typeName(tn *parse.TypeName) string {
	s := specWords(tn.Specs)
	if tn.Decl != nil {
		s += strings.Repeat("*", len(tn.Decl.Pointers))
	}
	return s
}

// sexpr renders a tree compactly, one parenthesized list per node.
func sexpr(n interface{}) string {
	switch n := n.(type) {
	case string:
		return n
	case *parse.Ident:
		return n.Name
	case *parse.Constant:
		return n.Val
	case *parse.String:
		return n.Val
	case *parse.Paren:
		return list("paren", n.X)
	case *parse.Index:
		return list("index", n.Arr, n.Index)
	case *parse.Call:
		args := []interface{}{n.Func}
		for _, a := range n.Args {
			args = append(args, a)
		}
		return list("call", args...)
	case *parse.Member:
		return list(".", n.X, n.Name)
	case *parse.PtrMember:
		return list("->", n.X, n.Name)
	case *parse.Postfix:
		return list("post"+n.Op.Lexeme(), n.Operand)
	case *parse.Prefix:
		return list("pre"+n.Op.Lexeme(), n.Operand)
	case *parse.Unop:
		return list(n.Op.Lexeme(), n.Operand)
	case *parse.Sizeof:
		if n.Type != nil {
			return list("sizeof-type", typeName(n.Type))
		}
		return list("sizeof", n.Expr)
	case *parse.Cast:
		return list("cast", typeName(n.Type), n.Operand)
	case *parse.CompoundLiteral:
		return list("compound", typeName(n.Type), n.Init)
	case *parse.Binop:
		return list(n.Op.Lexeme(), n.L, n.R)
	case *parse.Assign:
		return list(n.Op.Lexeme(), n.L, n.R)
	case *parse.Cond:
		return list("?", n.Cond, n.Then, n.Else)
	case *parse.Comma:
		return list(",", n.L, n.R)
	case *parse.Initializer:
		if n.List != nil {
			return sexpr(n.List)
		}
		return sexpr(n.Expr)
	case *parse.InitList:
		var items []string
		for _, item := range n.Items {
			s := ""
			for _, d := range item.Designators {
				if d.Index != nil {
					s += "[" + sexpr(d.Index) + "]"
				} else {
					s += "." + d.Field
				}
			}
			if s != "" {
				s += "="
			}
			items = append(items, s+sexpr(item.Init))
		}
		return "{" + strings.Join(items, " ") + "}"
	case *parse.ExprStmt:
		if n.X == nil {
			return "(empty)"
		}
		return list("expr", n.X)
	case *parse.CompoundStmt:
		var items []interface{}
		for _, item := range n.Items {
			items = append(items, item)
		}
		return list("block", items...)
	case *parse.IfStmt:
		if n.Else == nil {
			return list("if", n.Cond, n.Then)
		}
		return list("if", n.Cond, n.Then, n.Else)
	case *parse.WhileStmt:
		return list("while", n.Cond, n.Body)
	case *parse.DoWhileStmt:
		return list("do", n.Body, n.Cond)
	case *parse.SwitchStmt:
		return list("switch", n.Cond, n.Body)
	case *parse.ForStmt:
		var post interface{} = "_"
		if n.Post != nil {
			post = n.Post
		}
		return list("for", n.Init, n.Cond, post, n.Body)
	case *parse.LabeledStmt:
		switch n.Kind {
		case parse.LabelNamed:
			return list("label", n.Label, n.Body)
		case parse.LabelCase:
			return list("case", n.Case, n.Body)
		}
		return list("default", n.Body)
	case *parse.Declaration:
		parts := []interface{}{specWords(n.Specs)}
		for _, init := range n.Inits {
			s := strings.Repeat("*", len(init.Decl.Pointers)) + init.Decl.Name()
			if init.Init != nil {
				s += "=" + sexpr(init.Init)
			}
			parts = append(parts, s)
		}
		return list("decl", parts...)
	case *parse.FunctionDef:
		return list("func", specWords(n.Specs), n.Decl.Name(), n.Body)
	case *parse.TranslationUnit:
		var decls []interface{}
		for _, d := range n.Decls {
			decls = append(decls, d)
		}
		return list("unit", decls...)
	}
	panic(fmt.Sprintf("sexpr: unexpected %T", n))
}
