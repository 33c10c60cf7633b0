package emit

import (
	"bytes"
	"strings"

	"github.com/Joana-Martins/C-Compiler/lexer"
	"github.com/Joana-Martins/C-Compiler/parse"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Roundtrip prints tu, parses the result again and checks that the new tree
// matches tu. typedefs are predeclared for the second parse, as they were
// for the first. A mismatch is reported with a line diff of the two trees.
func Roundtrip(tu *parse.TranslationUnit, typedefs []string) error {
	src := EmitString(tu)
	again, err := parse.Parse(lexer.LexString("<roundtrip>", src), parse.Options{
		TypeNames: parse.NewScopeStack(typedefs...),
	})
	if err != nil {
		return errors.Wrapf(err, "reparsing printed source:\n%s", src)
	}
	want, err := yamlString(tu)
	if err != nil {
		return err
	}
	got, err := yamlString(again)
	if err != nil {
		return err
	}
	if want != got {
		return errors.Errorf("roundtrip changed the tree:\n%s", LineDiff(want, got))
	}
	return nil
}

func yamlString(n interface{}) (string, error) {
	var b bytes.Buffer
	if err := YAML(n, &b); err != nil {
		return "", errors.Wrap(err, "dumping tree")
	}
	return b.String(), nil
}

// LineDiff renders a line oriented diff of a and b, marking removed lines
// with '-' and added lines with '+'.
func LineDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + line)
		}
	}
	return out.String()
}
