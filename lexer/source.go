package lexer

import (
	"io"
	"strings"
)

// TokenSource is a finite, non-restartable stream of classified tokens.
// Both methods keep returning an EOF token once the input is exhausted.
type TokenSource interface {
	// Peek returns the next token without consuming it.
	Peek() (*Token, error)
	// Next consumes and returns the next token.
	Next() (*Token, error)
}

var (
	_ TokenSource = (*Lexer)(nil)
	_ TokenSource = (*SliceSource)(nil)
)

// SliceSource replays an already scanned token list.
type SliceSource struct {
	toks []*Token
	idx  int
	end  FilePos
}

func NewSliceSource(toks []*Token) *SliceSource {
	s := &SliceSource{toks: toks}
	if n := len(toks); n > 0 {
		s.end = toks[n-1].Pos
	}
	return s
}

func (s *SliceSource) Peek() (*Token, error) {
	if s.idx >= len(s.toks) {
		return &Token{Kind: EOF, Pos: s.end}, nil
	}
	return s.toks[s.idx], nil
}

func (s *SliceSource) Next() (*Token, error) {
	t, err := s.Peek()
	if err == nil && s.idx < len(s.toks) {
		s.idx++
	}
	return t, err
}

// Tokenize scans all of r. The returned list ends with the EOF token.
func Tokenize(fname string, r io.Reader) ([]*Token, error) {
	lx := Lex(fname, r)
	var toks []*Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == EOF {
			return toks, nil
		}
	}
}

// LexString is shorthand for lexing an in-memory source.
func LexString(fname, src string) *Lexer {
	return Lex(fname, strings.NewReader(src))
}
