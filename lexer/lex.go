package lexer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Lexer scans C source on demand. Tokens are produced one at a time as the
// parser asks for them; nothing is read ahead beyond a single peeked token.
type Lexer struct {
	brdr      *bufio.Reader
	pos       FilePos
	lastPos   FilePos
	markedPos FilePos
	lastChar  rune
	// At the beginning on line not including whitespace.
	bol bool
	// Set to true if we have hit the end of file.
	eof bool
	// Set once the EOF token has been produced.
	done bool
	// End of the last token sent, where EOF is placed. Trailing blank
	// lines and comments do not move it.
	endPos FilePos
	sent   bool

	tok    *Token
	peeked *Token
	err    error
}

type breakout struct{}

// Lex returns a lexer reading the contents of r.
// fname is used for error messages when showing the source location.
// No preprocessing is done; lines starting with '#' are skipped whole.
func Lex(fname string, r io.Reader) *Lexer {
	lx := new(Lexer)
	lx.pos.File = fname
	lx.pos.Line = 1
	lx.pos.Col = 1
	lx.markedPos = lx.pos
	lx.lastPos = lx.pos
	lx.brdr = bufio.NewReader(r)
	lx.bol = true
	return lx
}

// Next consumes and returns the next token. Once the input is exhausted
// every call returns an EOF token. A lexical error is sticky.
func (lx *Lexer) Next() (*Token, error) {
	if lx.peeked != nil {
		t := lx.peeked
		lx.peeked = nil
		return t, nil
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (*Token, error) {
	if lx.peeked == nil {
		t, err := lx.scan()
		if err != nil {
			return nil, err
		}
		lx.peeked = t
	}
	return lx.peeked, nil
}

func (lx *Lexer) scan() (tok *Token, err error) {
	if lx.err != nil {
		return nil, lx.err
	}
	if lx.done {
		return &Token{Kind: EOF, Pos: lx.endPos}, nil
	}
	defer func() {
		if e := recover(); e != nil {
			_ = e.(*breakout) // Will re-panic if not a breakout.
			tok, err = nil, lx.err
		}
	}()
	lx.tok = nil
	for lx.tok == nil {
		lx.step()
	}
	return lx.tok, nil
}

func (lx *Lexer) markPos() {
	lx.markedPos = lx.pos
}

func (lx *Lexer) sendTok(kind TokenKind, val string) {
	var tok Token
	tok.Kind = kind
	tok.Val = val
	tok.Pos = lx.markedPos
	lx.bol = false
	if kind == EOF {
		if lx.sent {
			tok.Pos = lx.endPos
		}
		lx.endPos = tok.Pos
		lx.done = true
	} else {
		lx.endPos = lx.pos
		lx.sent = true
	}
	lx.tok = &tok
}

func (lx *Lexer) unreadRune() {
	lx.pos = lx.lastPos
	if lx.lastChar == '\n' {
		lx.bol = false
	}
	if lx.eof {
		return
	}
	lx.brdr.UnreadRune()
}

func (lx *Lexer) readRune() (rune, bool) {
	r, _, err := lx.brdr.ReadRune()
	lx.lastPos = lx.pos
	if err != nil {
		if err == io.EOF {
			lx.eof = true
			lx.lastChar = 0
			return 0, true
		}
		lx.Error(err.Error())
	}
	switch r {
	case '\n':
		lx.pos.Line += 1
		lx.pos.Col = 1
		lx.bol = true
	case '\t':
		lx.pos.Col += 4
	default:
		lx.pos.Col += 1
	}
	lx.lastChar = r
	return r, false
}

func (lx *Lexer) Error(e string) {
	lx.err = ErrWithLoc(errors.New(e), lx.pos)
	//recover exits the scan cleanly
	panic(&breakout{})
}

func (lx *Lexer) step() {
	lx.markPos()
	first, eof := lx.readRune()
	if eof {
		lx.sendTok(EOF, "")
		return
	}
	switch {
	case isAlpha(first) || first == '_':
		lx.unreadRune()
		lx.readIdentOrKeyword()
	case isNumeric(first):
		lx.unreadRune()
		lx.readConstantIntOrFloat(false)
	case isWhiteSpace(first):
		lx.unreadRune()
		lx.skipWhiteSpace()
	default:
		switch first {
		case '#':
			if !lx.isAtLineStart() {
				lx.Error("stray '#' in program.")
			}
			lx.skipDirective()
		case '!':
			second, _ := lx.readRune()
			switch second {
			case '=':
				lx.sendTok(NEQ, "!=")
			default:
				lx.unreadRune()
				lx.sendTok(NOT, "!")
			}
		case '?':
			lx.sendTok(QUESTION, "?")
		case ':':
			lx.sendTok(COLON, ":")
		case '\'':
			lx.unreadRune()
			lx.readCChar()
		case '"':
			lx.unreadRune()
			lx.readCString()
		case '(':
			lx.sendTok(LPAREN, "(")
		case ')':
			lx.sendTok(RPAREN, ")")
		case '{':
			lx.sendTok(LBRACE, "{")
		case '}':
			lx.sendTok(RBRACE, "}")
		case '[':
			lx.sendTok(LBRACK, "[")
		case ']':
			lx.sendTok(RBRACK, "]")
		case '<':
			second, _ := lx.readRune()
			switch second {
			case '<':
				third, _ := lx.readRune()
				if third == '=' {
					lx.sendTok(SHL_ASSIGN, "<<=")
					break
				}
				lx.unreadRune()
				lx.sendTok(SHL, "<<")
			case '=':
				lx.sendTok(LEQ, "<=")
			default:
				lx.unreadRune()
				lx.sendTok(LSS, "<")
			}
		case '>':
			second, _ := lx.readRune()
			switch second {
			case '>':
				third, _ := lx.readRune()
				if third == '=' {
					lx.sendTok(SHR_ASSIGN, ">>=")
					break
				}
				lx.unreadRune()
				lx.sendTok(SHR, ">>")
			case '=':
				lx.sendTok(GEQ, ">=")
			default:
				lx.unreadRune()
				lx.sendTok(GTR, ">")
			}
		case '+':
			second, _ := lx.readRune()
			switch second {
			case '+':
				lx.sendTok(INC, "++")
			case '=':
				lx.sendTok(ADD_ASSIGN, "+=")
			default:
				lx.unreadRune()
				lx.sendTok(ADD, "+")
			}
		case '.':
			second, _ := lx.readRune()
			if second == '.' {
				third, _ := lx.readRune()
				if third != '.' {
					lx.Error("unexpected '..'.")
				}
				lx.sendTok(ELLIPSIS, "...")
				break
			}
			lx.unreadRune()
			if isNumeric(second) {
				lx.readConstantIntOrFloat(true)
			} else {
				lx.sendTok(PERIOD, ".")
			}
		case '~':
			lx.sendTok(BNOT, "~")
		case '^':
			second, _ := lx.readRune()
			switch second {
			case '=':
				lx.sendTok(XOR_ASSIGN, "^=")
			default:
				lx.unreadRune()
				lx.sendTok(XOR, "^")
			}
		case '-':
			second, _ := lx.readRune()
			switch second {
			case '>':
				lx.sendTok(ARROW, "->")
			case '-':
				lx.sendTok(DEC, "--")
			case '=':
				lx.sendTok(SUB_ASSIGN, "-=")
			default:
				lx.unreadRune()
				lx.sendTok(SUB, "-")
			}
		case ',':
			lx.sendTok(COMMA, ",")
		case '*':
			second, _ := lx.readRune()
			switch second {
			case '=':
				lx.sendTok(MUL_ASSIGN, "*=")
			default:
				lx.unreadRune()
				lx.sendTok(MUL, "*")
			}
		case '\\':
			r, _ := lx.readRune()
			if r == '\n' {
				break
			}
			lx.Error("misplaced '\\'.")
		case '/':
			second, _ := lx.readRune()
			switch second {
			case '*':
				for {
					c, eof := lx.readRune()
					if eof {
						lx.Error("unclosed comment.")
					}
					if c == '*' {
						closeBar, eof := lx.readRune()
						if eof {
							lx.Error("unclosed comment.")
						}
						if closeBar == '/' {
							break
						}
						//Unread so that we dont lose newlines.
						lx.unreadRune()
					}
				}
			case '/':
				for {
					c, eof := lx.readRune()
					if c == '\n' || eof {
						break
					}
				}
			case '=':
				lx.sendTok(QUO_ASSIGN, "/=")
			default:
				lx.unreadRune()
				lx.sendTok(QUO, "/")
			}
		case '%':
			second, _ := lx.readRune()
			switch second {
			case '=':
				lx.sendTok(REM_ASSIGN, "%=")
			default:
				lx.unreadRune()
				lx.sendTok(REM, "%")
			}
		case '|':
			second, _ := lx.readRune()
			switch second {
			case '|':
				lx.sendTok(LOR, "||")
			case '=':
				lx.sendTok(OR_ASSIGN, "|=")
			default:
				lx.unreadRune()
				lx.sendTok(OR, "|")
			}
		case '&':
			second, _ := lx.readRune()
			switch second {
			case '&':
				lx.sendTok(LAND, "&&")
			case '=':
				lx.sendTok(AND_ASSIGN, "&=")
			default:
				lx.unreadRune()
				lx.sendTok(AND, "&")
			}
		case '=':
			second, _ := lx.readRune()
			switch second {
			case '=':
				lx.sendTok(EQL, "==")
			default:
				lx.unreadRune()
				lx.sendTok(ASSIGN, "=")
			}
		case ';':
			lx.sendTok(SEMICOLON, ";")
		default:
			lx.Error(fmt.Sprintf("bad char code '%d'", first))
		}
	}
}

// skipDirective discards a preprocessor line such as a line marker left by
// an external cpp. Backslash-newline continues the directive.
func (lx *Lexer) skipDirective() {
	for {
		c, eof := lx.readRune()
		if eof || c == '\n' {
			return
		}
		if c == '\\' {
			if next, _ := lx.readRune(); next != '\n' {
				lx.unreadRune()
			}
		}
	}
}

func (lx *Lexer) readIdentOrKeyword() {
	var buff bytes.Buffer
	lx.markPos()
	first, _ := lx.readRune()
	if !isValidIdentStart(first) {
		panic("internal error")
	}
	buff.WriteRune(first)
	for {
		b, _ := lx.readRune()
		if isValidIdentTail(b) {
			buff.WriteRune(b)
		} else {
			lx.unreadRune()
			str := buff.String()
			tokType, ok := keywordLUT[str]
			if !ok {
				tokType = IDENT
			}
			lx.sendTok(tokType, str)
			break
		}
	}
}

func (lx *Lexer) skipWhiteSpace() {
	for {
		r, _ := lx.readRune()
		if !isWhiteSpace(r) {
			lx.unreadRune()
			break
		}
	}
}

// Due to the 1 character lookahead we need this bool
func (lx *Lexer) readConstantIntOrFloat(startedWithPeriod bool) {
	var buff bytes.Buffer
	const (
		START = iota
		SECOND
		HEX
		DEC
		FLOAT_START
		FLOAT_AFTER_E
		FLOAT_AFTER_E_SIGN
		INT_TAIL
		FLOAT_TAIL
		END
	)
	var tokType TokenKind
	var state int
	if startedWithPeriod {
		state = FLOAT_START
		tokType = FLOAT_CONSTANT
		buff.WriteRune('.')
	} else {
		state = START
		tokType = INT_CONSTANT
	}
	for state != END {
		r, eof := lx.readRune()
		if eof {
			state = END
			break
		}
		switch state {
		case START:
			if !isNumeric(r) {
				lx.Error("internal error")
			}
			buff.WriteRune(r)
			state = SECOND
		case SECOND:
			if r == 'x' || r == 'X' {
				state = HEX
				buff.WriteRune(r)
			} else if isNumeric(r) {
				state = DEC
				buff.WriteRune(r)
			} else if r == 'e' || r == 'E' {
				state = FLOAT_AFTER_E
				tokType = FLOAT_CONSTANT
				buff.WriteRune(r)
			} else if r == '.' {
				state = FLOAT_START
				tokType = FLOAT_CONSTANT
				buff.WriteRune(r)
			} else {
				switch r {
				case 'l', 'L', 'u', 'U':
					state = INT_TAIL
					buff.WriteRune(r)
				default:
					if isValidIdentStart(r) {
						lx.Error("invalid constant int")
					}
					state = END
				}
			}
		case DEC:
			if !isNumeric(r) {
				switch r {
				case 'l', 'L', 'u', 'U':
					state = INT_TAIL
					buff.WriteRune(r)
				case 'e', 'E':
					state = FLOAT_AFTER_E
					tokType = FLOAT_CONSTANT
					buff.WriteRune(r)
				case '.':
					state = FLOAT_START
					tokType = FLOAT_CONSTANT
					buff.WriteRune(r)
				default:
					if isValidIdentStart(r) {
						lx.Error("invalid constant int")
					}
					state = END
				}
			} else {
				buff.WriteRune(r)
			}
		case HEX:
			if !isHexDigit(r) {
				switch r {
				case 'l', 'L', 'u', 'U':
					state = INT_TAIL
					buff.WriteRune(r)
				default:
					if isValidIdentStart(r) {
						lx.Error("invalid constant int")
					}
					state = END
				}
			} else {
				buff.WriteRune(r)
			}
		case INT_TAIL:
			switch r {
			case 'l', 'L', 'u', 'U':
				buff.WriteRune(r)
			default:
				if isValidIdentStart(r) {
					lx.Error("invalid constant int")
				}
				state = END
			}
		case FLOAT_START:
			if !isNumeric(r) {
				switch r {
				case 'e', 'E':
					state = FLOAT_AFTER_E
					buff.WriteRune(r)
				case 'l', 'L', 'f', 'F':
					buff.WriteRune(r)
					state = FLOAT_TAIL
				default:
					if isValidIdentStart(r) {
						lx.Error("invalid floating point constant.")
					}
					state = END
				}
			} else {
				buff.WriteRune(r)
			}
		case FLOAT_AFTER_E:
			if r == '-' || r == '+' {
				state = FLOAT_AFTER_E_SIGN
				buff.WriteRune(r)
			} else if isNumeric(r) {
				state = FLOAT_AFTER_E_SIGN
				buff.WriteRune(r)
			} else {
				lx.Error("invalid float constant - expected number or signed after e")
			}
		case FLOAT_AFTER_E_SIGN:
			if isNumeric(r) {
				buff.WriteRune(r)
			} else {
				switch r {
				case 'l', 'L', 'f', 'F':
					buff.WriteRune(r)
					state = FLOAT_TAIL
				default:
					if isValidIdentStart(r) {
						lx.Error("invalid float constant")
					} else {
						state = END
					}
				}
			}
		case FLOAT_TAIL:
			switch r {
			case 'l', 'L', 'f', 'F':
				buff.WriteRune(r)
			default:
				if isValidIdentStart(r) {
					lx.Error("invalid float constant")
				}
				state = END
			}
		default:
			lx.Error("internal error.")
		}
	}
	lx.unreadRune()
	lx.sendTok(tokType, buff.String())
}

func (lx *Lexer) readCString() {
	const (
		START = iota
		MID
		ESCAPED
		END
	)
	var buff bytes.Buffer
	var state int
	lx.markPos()
	for state != END {
		r, eof := lx.readRune()
		if eof {
			lx.Error("eof in string literal")
		}
		switch state {
		case START:
			if r != '"' {
				lx.Error("internal error")
			}
			buff.WriteRune(r)
			state = MID
		case MID:
			switch r {
			case '\\':
				state = ESCAPED
			case '"':
				buff.WriteRune(r)
				state = END
			case '\n':
				lx.Error("newline in string literal")
			default:
				buff.WriteRune(r)
			}
		case ESCAPED:
			switch r {
			case '\r':
				// empty
			case '\n':
				state = MID
			default:
				buff.WriteRune('\\')
				buff.WriteRune(r)
				state = MID
			}
		}
	}
	lx.sendTok(STRING, buff.String())
}

func (lx *Lexer) readCChar() {
	const (
		START = iota
		MID
		ESCAPED
		END
	)
	var buff bytes.Buffer
	var state int
	lx.markPos()
	for state != END {
		r, eof := lx.readRune()
		if eof {
			lx.Error("eof in char literal")
		}
		switch state {
		case START:
			if r != '\'' {
				lx.Error("internal error")
			}
			buff.WriteRune(r)
			state = MID
		case MID:
			switch r {
			case '\\':
				state = ESCAPED
			case '\'':
				buff.WriteRune(r)
				state = END
			case '\n':
				lx.Error("newline in char literal")
			default:
				buff.WriteRune(r)
			}
		case ESCAPED:
			switch r {
			case '\r':
				// empty
			case '\n':
				state = MID
			default:
				buff.WriteRune('\\')
				buff.WriteRune(r)
				state = MID
			}
		}
	}
	if buff.Len() == 2 {
		lx.Error("empty char literal")
	}
	lx.sendTok(CHAR_CONSTANT, buff.String())
}

func (lx *Lexer) isAtLineStart() bool {
	return lx.bol
}

func isValidIdentTail(b rune) bool {
	return isValidIdentStart(b) || isNumeric(b) || b == '$'
}

func isValidIdentStart(b rune) bool {
	return b == '_' || isAlpha(b)
}

func isAlpha(b rune) bool {
	if b >= 'a' && b <= 'z' {
		return true
	}
	if b >= 'A' && b <= 'Z' {
		return true
	}
	return false
}

func isWhiteSpace(b rune) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t' || b == '\f' || b == '\v'
}

func isNumeric(b rune) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	return false
}

func isHexDigit(b rune) bool {
	return isNumeric(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
