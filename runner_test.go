package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ccResult struct {
	status int
	stdout string
	stderr string
}

func runCC(stdin io.Reader, args ...string) ccResult {
	var out, errb bytes.Buffer
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	status := realMain(append([]string{"cc", "--color", "never"}, args...), stdin, &out, &errb)
	return ccResult{status, out.String(), errb.String()}
}

func corpus(t *testing.T, dir string) []string {
	files, err := filepath.Glob(filepath.Join("test", "testcases", dir, "*.c"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}

func TestCC(t *testing.T) {
	for _, path := range corpus(t, "accept") {
		r := runCC(nil, path)
		assert.Equal(t, 0, r.status, "%s: %s", path, r.stderr)
		assert.Equal(t, "PARSE SUCCESSFUL!\n", r.stdout, path)
	}
	for _, path := range corpus(t, "reject") {
		r := runCC(nil, path)
		assert.Equal(t, 1, r.status, path)
		assert.Equal(t, "PARSE FAILED!\n", r.stdout, path)
		assert.NotEmpty(t, r.stderr, path)
	}
}

func TestRoundtripFlag(t *testing.T) {
	for _, path := range corpus(t, "accept") {
		r := runCC(nil, "--roundtrip", path)
		assert.Equal(t, 0, r.status, "%s: %s", path, r.stderr)
	}
}

func TestErrorCaret(t *testing.T) {
	r := runCC(nil, filepath.Join("test", "testcases", "reject", "return.c"))
	require.Equal(t, 1, r.status)
	assert.Contains(t, r.stderr, "syntax error: unexpected return")
	assert.Contains(t, r.stderr, "\n    return 0;\n    ^\n")
	assert.NotContains(t, r.stderr, "\x1b[")

	// The file ends in a newline; the caret still points just past the '{'.
	r = runCC(nil, filepath.Join("test", "testcases", "reject", "unterminated.c"))
	require.Equal(t, 1, r.status)
	assert.Contains(t, r.stderr, "unexpected end of input")
	assert.Contains(t, r.stderr, "\nint main() {\n"+strings.Repeat(" ", 12)+"^\n")
}

func TestStdinAndFormats(t *testing.T) {
	src := "int main() { x = 1; }"

	r := runCC(strings.NewReader(src), "--format", "c", "-")
	require.Equal(t, 0, r.status, r.stderr)
	assert.Equal(t, "int main()\n{\n\tx = 1;\n}\nPARSE SUCCESSFUL!\n", r.stdout)

	r = runCC(strings.NewReader(src), "-f", "json", "-")
	require.Equal(t, 0, r.status, r.stderr)
	assert.Contains(t, r.stdout, `"kind": "TranslationUnit"`)
	assert.True(t, strings.HasSuffix(r.stdout, "PARSE SUCCESSFUL!\n"))

	r = runCC(strings.NewReader(src), "--format", "yaml", "-")
	require.Equal(t, 0, r.status, r.stderr)
	assert.Contains(t, r.stdout, "kind: TranslationUnit")

	r = runCC(strings.NewReader(src), "--format", "xml", "-")
	assert.Equal(t, 1, r.status)
	assert.Contains(t, r.stderr, `unknown output format "xml"`)
}

func TestTypedefFlag(t *testing.T) {
	r := runCC(strings.NewReader("T x;"), "-")
	assert.Equal(t, 1, r.status)
	r = runCC(strings.NewReader("T x;"), "--typedef", "T", "-")
	assert.Equal(t, 0, r.status, r.stderr)
	r = runCC(strings.NewReader("T x; U y;"), "-t", "T", "-t", "U", "-")
	assert.Equal(t, 0, r.status, r.stderr)
}

func TestTokens(t *testing.T) {
	r := runCC(strings.NewReader("a;"), "--tokens", "-")
	require.Equal(t, 0, r.status, r.stderr)
	assert.Equal(t, "identifier:a:1:1\n';':;:1:2\nEOF::1:3\n", r.stdout)

	r = runCC(strings.NewReader("a @"), "-T", "-")
	assert.Equal(t, 1, r.status)
	assert.NotEmpty(t, r.stderr)
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cc.ini")
	require.NoError(t, os.WriteFile(cfg, []byte("[parser]\nTYPEDEFS = T, U\n\n[output]\nFORMAT = c\n"), 0o644))
	r := runCC(strings.NewReader("T x; U y;"), "--config", cfg, "-")
	require.Equal(t, 0, r.status, r.stderr)
	assert.Equal(t, "T x;\nU y;\nPARSE SUCCESSFUL!\n", r.stdout)

	// Flags win over the file.
	r = runCC(strings.NewReader("T x;"), "-c", cfg, "-f", "none", "-")
	require.Equal(t, 0, r.status, r.stderr)
	assert.Equal(t, "PARSE SUCCESSFUL!\n", r.stdout)
}

func TestBadArgs(t *testing.T) {
	r := runCC(nil)
	assert.Equal(t, 1, r.status)
	assert.Contains(t, r.stderr, "please specify a single source file")

	r = runCC(nil, filepath.Join("test", "testcases", "does-not-exist.c"))
	assert.Equal(t, 1, r.status)
	assert.Contains(t, r.stderr, "failed to open source file")
}
