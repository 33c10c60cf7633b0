package emit_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Joana-Martins/C-Compiler/emit"
	"github.com/Joana-Martins/C-Compiler/lexer"
	"github.com/Joana-Martins/C-Compiler/parse"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mustParse(t *testing.T, src string) *parse.TranslationUnit {
	tu, err := parse.Parse(lexer.LexString("test.c", src), parse.Options{})
	require.NoError(t, err, src)
	return tu
}

func mustParseExpr(t *testing.T, src string) parse.Expr {
	x, err := parse.ParseExpression(lexer.LexString("test.c", src), parse.Options{})
	require.NoError(t, err, src)
	return x
}

func TestEmit(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{"int x = - -a;", "int x = - -a;\n"},
		{"int const x;", "const int x;\n"},
		{"static const unsigned long *p, q[3];", "static const unsigned long *p, q[3];\n"},
		{"int (*fp)(int, char *);", "int (*fp)(int, char *);\n"},
		{"enum e { A, B = 2, };", "enum e { A, B = 2, };\n"},
		{"int a[] = {1, [2] = 3};", "int a[] = {1, [2] = 3};\n"},
		{
			"int main() { if (a) x = 1; else y++; }",
			"int main()\n{\n\tif (a)\n\t\tx = 1;\n\telse\n\t\ty++;\n}\n",
		},
		{
			"int f(a) int a; { while (a) { a--; } }",
			"int f(a)\n\tint a;\n{\n\twhile (a) {\n\t\ta--;\n\t}\n}\n",
		},
		{
			"int x; int f(void) { for (;;) ; }",
			"int x;\n\nint f(void)\n{\n\tfor (;;)\n\t\t;\n}\n",
		},
	} {
		assert.Equal(t, tc.want, emit.EmitString(mustParse(t, tc.src)), tc.src)
	}
}

func TestExprString(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{"a+++b", "a++ + b"},
		{"x- -1", "x - -1"},
		{"1 .x", "1 .x"},
		{"(a+b)*c", "(a + b) * c"},
		{"p->q[1](2,3)", "p->q[1](2, 3)"},
		{"sizeof x+sizeof(int*)", "sizeof x + sizeof(int *)"},
		{"a?b:c,d", "a ? b : c, d"},
		{"x<<=!y", "x <<= !y"},
	} {
		assert.Equal(t, tc.want, emit.ExprString(mustParseExpr(t, tc.src)), tc.src)
	}
}

func TestRoundtripCorpus(t *testing.T) {
	files, err := filepath.Glob("../test/testcases/accept/*.c")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, path := range files {
		src, err := os.ReadFile(path)
		require.NoError(t, err)
		tu, err := parse.Parse(lexer.LexString(path, string(src)), parse.Options{})
		require.NoError(t, err, path)
		assert.NoError(t, emit.Roundtrip(tu, nil), path)
	}
}

func TestRoundtripMismatch(t *testing.T) {
	// a * (b + c) without the parentheses prints as a * b + c.
	sum := &parse.Binop{Op: '+', L: &parse.Ident{Name: "b"}, R: &parse.Ident{Name: "c"}}
	prod := &parse.Binop{Op: '*', L: &parse.Ident{Name: "a"}, R: sum}
	tu := &parse.TranslationUnit{Decls: []parse.ExternalDecl{
		&parse.Declaration{
			Specs: &parse.DeclSpecs{Types: []*parse.TypeSpec{{Kind: lexer.INT}}},
			Inits: []*parse.InitDeclarator{{
				Decl: &parse.Declarator{Direct: &parse.IdentDecl{Name: "x"}},
				Init: &parse.Initializer{Expr: prod},
			}},
		},
	}}
	assert.Equal(t, "int x = a * b + c;\n", emit.EmitString(tu))
	err := emit.Roundtrip(tu, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roundtrip changed the tree")
}

func TestTreeIgnoresPositions(t *testing.T) {
	a := mustParse(t, "int main() { return_value = 1 + 2; }")
	b := mustParse(t, "int\nmain()\n{\n  return_value=1+2;\n}\n")
	assert.Equal(t, emit.Tree(a), emit.Tree(b))
	c := mustParse(t, "int main() { return_value = 1 + 3; }")
	assert.NotEqual(t, emit.Tree(a), emit.Tree(c))
}

func TestJSON(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, emit.JSON(mustParseExpr(t, "a + 1"), &b))
	assert.JSONEq(t, `{
		"kind": "Binop",
		"Op": "'+'",
		"L": {"kind": "Ident", "Name": "a"},
		"R": {"kind": "Constant", "Kind": "intconst", "Val": "1"}
	}`, b.String())

	tu := mustParse(t, "typedef int T; T f(T *p, ...) { f(p); }")
	b.Reset()
	require.NoError(t, emit.JSON(tu, &b))
	var decoded interface{}
	require.NoError(t, jsoniter.Unmarshal(b.Bytes(), &decoded))
	assert.Equal(t, emit.Tree(tu), decoded)
}

func TestYAML(t *testing.T) {
	tu := mustParse(t, "int h(int a[static 3], int *const p); int g(x) int x; { L: x; }")
	var b bytes.Buffer
	require.NoError(t, emit.YAML(tu, &b))
	var decoded interface{}
	require.NoError(t, yaml.Unmarshal(b.Bytes(), &decoded))
	assert.Equal(t, emit.Tree(tu), decoded)
}

func TestLineDiff(t *testing.T) {
	assert.Equal(t, " a\n-b\n+x\n c\n", emit.LineDiff("a\nb\nc\n", "a\nx\nc\n"))
	assert.Equal(t, " same\n", emit.LineDiff("same\n", "same\n"))
}
