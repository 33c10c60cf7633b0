package parse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Joana-Martins/C-Compiler/lexer"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestCase(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = ParseFile(path, f, Options{})
	return err
}

func testFiles(t *testing.T, dir string) []string {
	files, err := filepath.Glob(filepath.Join("..", "test", "testcases", dir, "*.c"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}

func TestParser(t *testing.T) {
	for _, path := range testFiles(t, "accept") {
		assert.NoError(t, parseTestCase(path), path)
	}
	for _, path := range testFiles(t, "reject") {
		assert.Error(t, parseTestCase(path), path)
	}
}

func parseString(src string, opts Options) (*TranslationUnit, error) {
	return Parse(lexer.LexString("test.c", src), opts)
}

func TestSyntaxErrorString(t *testing.T) {
	pos := lexer.FilePos{File: "a.c", Line: 1, Col: 15}
	for _, tc := range []struct {
		err  SyntaxError
		want string
	}{
		{
			SyntaxError{Pos: pos, Got: lexer.RETURN, Lexeme: "return",
				Expected: []string{"'}'", "declaration", "statement"}, Context: "compound statement"},
			`syntax error: unexpected return "return", expected one of: '}', declaration, statement while parsing compound statement at a.c:1:15`,
		},
		{
			SyntaxError{Pos: pos, Got: lexer.EOF, Expected: []string{"'}'"}},
			"syntax error: unexpected end of input, expected '}' at a.c:1:15",
		},
		{
			SyntaxError{Pos: pos, Got: lexer.STRUCT, Lexeme: "struct", Context: "declaration",
				Msg: "struct types are not supported"},
			`syntax error: unexpected struct "struct", struct types are not supported while parsing declaration at a.c:1:15`,
		},
	} {
		assert.Equal(t, tc.want, tc.err.Error())
	}
}

func TestDiagnosticOnce(t *testing.T) {
	var msgs []string
	opts := Options{Diagnostic: func(msg string) { msgs = append(msgs, msg) }}

	_, err := parseString("int main() { int x; x = 1; }", opts)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	tu, err := parseString("int main() { return 0; }", opts)
	require.Error(t, err)
	assert.Nil(t, tu)
	require.Len(t, msgs, 1)
	assert.Equal(t, err.Error(), msgs[0])

	msgs = nil
	_, err = parseString("int x = 1 @ 2;", opts)
	require.Error(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, err.Error(), msgs[0])
}

func TestLexicalErrorPassthrough(t *testing.T) {
	_, err := parseString("int x = 1 @ 2;", Options{})
	var eloc lexer.ErrorLoc
	require.True(t, errors.As(err, &eloc), "%v", err)
	assert.Equal(t, "test.c", eloc.Pos.File)
	var serr *SyntaxError
	assert.False(t, errors.As(err, &serr))
}

func TestTypedefScoping(t *testing.T) {
	s := NewScopeStack()
	src := "typedef int T;\n" +
		"int f(void) {\n" +
		"\tT x;\n" +
		"\t{\n" +
		"\t\tint T;\n" +
		"\t\tT = 1;\n" +
		"\t}\n" +
		"\tT y;\n" +
		"}\n" +
		"int g(int T) { T = 2; }\n" +
		"T z;\n"
	tu, err := parseString(src, Options{TypeNames: s})
	require.NoError(t, err)
	assert.Len(t, tu.Decls, 4)
	assert.Equal(t, 1, s.Depth())
	assert.True(t, s.IsTypeName("T"))
	assert.False(t, s.IsTypeName("f"))
	assert.False(t, s.IsTypeName("x"))

	body := tu.Decls[1].(*FunctionDef).Body
	require.Len(t, body.Items, 3)
	assert.IsType(t, &Declaration{}, body.Items[0])
	inner := body.Items[1].(*CompoundStmt)
	require.Len(t, inner.Items, 2)
	assert.IsType(t, &Declaration{}, inner.Items[0])
	assert.IsType(t, &ExprStmt{}, inner.Items[1])
	assert.IsType(t, &Declaration{}, body.Items[2])

	g := tu.Decls[2].(*FunctionDef).Body
	assert.IsType(t, &ExprStmt{}, g.Items[0])
}

func TestPredeclaredTypedefs(t *testing.T) {
	_, err := parseString("typedef int T, U; U u;", Options{})
	require.NoError(t, err)
	_, err = parseString("T t;", Options{})
	require.Error(t, err)
	_, err = parseString("T t;", Options{TypeNames: NewScopeStack("T")})
	require.NoError(t, err)
}

func firstDeclarator(t *testing.T, src string) *Declarator {
	tu, err := parseString(src, Options{})
	require.NoError(t, err, src)
	d := tu.Decls[0].(*Declaration)
	require.NotEmpty(t, d.Inits)
	return d.Inits[0].Decl
}

func TestDeclaratorFunction(t *testing.T) {
	for _, tc := range []struct {
		src  string
		name string
		fn   bool
	}{
		{"int f(int a);", "f", true},
		{"int *f(int a);", "f", true},
		{"int (f)(int);", "f", true},
		{"int (*fp)(void);", "fp", false},
		{"int a[3];", "a", false},
		{"int (*g(int))[3];", "g", true},
		{"int (*tab[4])(int);", "tab", false},
		{"int x;", "x", false},
	} {
		d := firstDeclarator(t, tc.src)
		assert.Equal(t, tc.name, d.Name(), tc.src)
		assert.Equal(t, tc.fn, d.Function() != nil, tc.src)
	}
	var nilDecl *Declarator
	assert.Nil(t, nilDecl.Function())
	assert.Equal(t, "", nilDecl.Name())
}

func TestFunctionDefinitionErrors(t *testing.T) {
	for _, src := range []string{
		"int x { }",
		"int (*fp)(void) { }",
		"typedef int f(void) { }",
		"int f(int a) int a; { }",
	} {
		_, err := parseString(src, Options{})
		var serr *SyntaxError
		require.True(t, errors.As(err, &serr), "%s: %v", src, err)
		assert.Equal(t, "function definition", serr.Context, src)
	}
}

func TestDebugStack(t *testing.T) {
	t.Setenv("CCDEBUG", "")
	_, err := parseString("int f() { return; }", Options{})
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Empty(t, serr.Stack)

	_, err = parseString("int f() { return; }", Options{Debug: true})
	require.True(t, errors.As(err, &serr))
	assert.True(t, strings.HasPrefix(serr.Stack, "goroutine"))
	assert.Contains(t, err.Error(), "parseCompoundStatement")
}

func TestLogging(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	_, err := parseString("typedef int T; T x;", Options{Log: log})
	require.NoError(t, err)

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Message == "typedef declared" {
			found = true
			assert.Equal(t, logrus.DebugLevel, e.Level)
			assert.Equal(t, "T", e.Data["name"])
			assert.Equal(t, "test.c:1:13", e.Data["pos"])
		}
	}
	assert.True(t, found)
	assert.Equal(t, "parse successful", hook.LastEntry().Message)
	assert.Equal(t, 2, hook.LastEntry().Data["decls"])
}

func TestSingleEntryPoints(t *testing.T) {
	x, err := ParseExpression(lexer.LexString("e.c", "a = b, c"), Options{})
	require.NoError(t, err)
	assert.IsType(t, &Comma{}, x)

	_, err = ParseExpression(lexer.LexString("e.c", "a b"), Options{})
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []string{"end of input"}, serr.Expected)

	s, err := ParseStatement(lexer.LexString("s.c", "if (a) if (b) x; else y;"), Options{})
	require.NoError(t, err)
	outer := s.(*IfStmt)
	assert.Nil(t, outer.Else)
	assert.NotNil(t, outer.Then.(*IfStmt).Else)
}

type panickyOracle struct {
	*ScopeStack
}

func (panickyOracle) IsTypeName(name string) bool {
	panic("oracle failure: " + name)
}

func TestForeignPanicPropagates(t *testing.T) {
	var called bool
	opts := Options{
		TypeNames:  panickyOracle{NewScopeStack()},
		Diagnostic: func(string) { called = true },
	}
	assert.PanicsWithValue(t, "oracle failure: x", func() {
		_, _ = parseString("x y;", opts)
	})
	assert.False(t, called)
}

func TestSpecifierSequenceDeclaresNamedX(t *testing.T) {
	for _, specs := range []string{
		"int",
		"unsigned long int",
		"long long",
		"unsigned char",
		"signed short int",
		"long double",
		"const volatile _Bool",
		"float _Complex",
		"static inline unsigned",
		"extern const T",
		"register volatile long",
		"enum E",
		"enum { A, B }",
	} {
		src := specs + " x;"
		tu, err := parseString(src, Options{TypeNames: NewScopeStack("T")})
		require.NoError(t, err, src)
		require.Len(t, tu.Decls, 1, src)
		d, ok := tu.Decls[0].(*Declaration)
		require.True(t, ok, src)
		require.Len(t, d.Inits, 1, src)
		init := d.Inits[0]
		assert.Nil(t, init.Init, src)
		assert.Empty(t, init.Decl.Pointers, src)
		assert.Equal(t, &IdentDecl{Pos: init.Decl.Pos, Name: "x"}, init.Decl.Direct, src)
		assert.NotEmpty(t, d.Specs.Types, src)
	}
}
