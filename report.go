package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/Joana-Martins/C-Compiler/lexer"
	"github.com/Joana-Martins/C-Compiler/parse"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// errorPos finds the source position carried by err, if any.
func errorPos(err error) (lexer.FilePos, bool) {
	var serr *parse.SyntaxError
	if errors.As(err, &serr) {
		return serr.Pos, true
	}
	var lerr lexer.ErrorLoc
	if errors.As(err, &lerr) {
		return lerr.Pos, true
	}
	return lexer.FilePos{}, false
}

// reportError shows the source line an error points at with a caret under
// the column. The message itself has already been printed.
func reportError(w io.Writer, err error, src []byte, useColor bool) {
	pos, ok := errorPos(err)
	if !ok {
		return
	}
	lines := bytes.Split(src, []byte("\n"))
	if pos.Line < 1 || pos.Line > len(lines) {
		return
	}
	// Tabs are 4 columns wide, as the lexer counts them.
	line := strings.ReplaceAll(strings.TrimRight(string(lines[pos.Line-1]), "\r"), "\t", "    ")

	fmt.Fprintln(w, "")
	if useColor {
		if err := quick.Highlight(w, line+"\n", "c", "terminal256", "monokai"); err != nil {
			fmt.Fprintln(w, line)
		}
	} else {
		fmt.Fprintln(w, line)
	}
	caret := color.New(color.FgGreen, color.Bold)
	if useColor {
		caret.EnableColor()
	} else {
		caret.DisableColor()
	}
	col := pos.Col
	if col < 1 {
		col = 1
	}
	caret.Fprintln(w, strings.Repeat(" ", col-1)+"^")
}
