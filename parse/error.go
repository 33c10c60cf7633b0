package parse

import (
	"fmt"
	"strings"

	"github.com/Joana-Martins/C-Compiler/lexer"
)

// SyntaxError is raised when the current token cannot continue any
// production reachable from the active parsing procedure.
type SyntaxError struct {
	Pos    lexer.FilePos
	Got    lexer.TokenKind
	Lexeme string
	// Expected names the tokens or constructs that would have been accepted.
	Expected []string
	// Context is the construct being parsed, e.g. "declarator".
	Context string
	// Msg replaces the expected list when the failure is not about a
	// missing token, e.g. an unsupported construct.
	Msg string
	// Stack holds the parser stack trace when debugging is enabled.
	Stack string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("syntax error: ")
	if e.Got == lexer.EOF {
		b.WriteString("unexpected end of input")
	} else {
		fmt.Fprintf(&b, "unexpected %s %q", e.Got, e.Lexeme)
	}
	switch {
	case e.Msg != "":
		fmt.Fprintf(&b, ", %s", e.Msg)
	case len(e.Expected) == 1:
		fmt.Fprintf(&b, ", expected %s", e.Expected[0])
	case len(e.Expected) > 1:
		fmt.Fprintf(&b, ", expected one of: %s", strings.Join(e.Expected, ", "))
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " while parsing %s", e.Context)
	}
	fmt.Fprintf(&b, " at %s", e.Pos)
	if e.Stack != "" {
		fmt.Fprintf(&b, "\n%s", e.Stack)
	}
	return b.String()
}
