package css

import (
	"fmt"
	"strconv"
)

type CSSTokenType int

const (
	CSSTokenEOF CSSTokenType = iota
	CSSTokenIdent
	CSSTokenNumber
	CSSTokenString
	CSSTokenSymbol // { } : ;
)

func (t CSSTokenType) String() string {
	switch t {
	case CSSTokenEOF:
		return "EOF"
	case CSSTokenIdent:
		return "identifier"
	case CSSTokenNumber:
		return "number"
	case CSSTokenString:
		return "string"
	case CSSTokenSymbol:
		return "symbol"
	}
	return fmt.Sprintf("CSSTokenType(%d)", int(t))
}

type CSSToken struct {
	Type   CSSTokenType
	Value  string // identifier, string body or symbol
	Number int
	Line   int
	Column int
}

type CSSTokenizer struct {
	input string
	pos   int
	line  int
	col   int
}

func NewCSSTokenizer(input string) *CSSTokenizer {
	return &CSSTokenizer{
		input: input,
		pos:   0,
		line:  1,
		col:   1,
	}
}

func (t *CSSTokenizer) NextToken() (CSSToken, error) {
	if err := t.skipWhitespace(); err != nil {
		return CSSToken{}, err
	}

	if t.pos >= len(t.input) {
		return CSSToken{Type: CSSTokenEOF, Line: t.line, Column: t.col}, nil
	}

	line, col := t.line, t.col
	ch := t.input[t.pos]

	switch {
	case ch == '{' || ch == '}' || ch == ':' || ch == ';':
		t.advance()
		return CSSToken{Type: CSSTokenSymbol, Value: string(ch), Line: line, Column: col}, nil
	case ch == '"' || ch == '\'':
		return t.readString(ch)
	case isDigit(ch) || (ch == '-' && isDigit(t.peekAt(1))):
		return t.readNumber()
	case isIdentStart(ch):
		start := t.pos
		for t.pos < len(t.input) && isIdentChar(t.input[t.pos]) {
			t.advance()
		}
		return CSSToken{Type: CSSTokenIdent, Value: t.input[start:t.pos], Line: line, Column: col}, nil
	}
	return CSSToken{}, t.Error(fmt.Sprintf("unexpected character %q", ch))
}

func (t *CSSTokenizer) readNumber() (CSSToken, error) {
	line, col := t.line, t.col
	start := t.pos
	if t.input[t.pos] == '-' {
		t.advance()
	}
	for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
		t.advance()
	}
	n, err := strconv.Atoi(t.input[start:t.pos])
	if err != nil {
		return CSSToken{}, &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf("invalid number %q", t.input[start:t.pos])}
	}
	return CSSToken{Type: CSSTokenNumber, Number: n, Value: t.input[start:t.pos], Line: line, Column: col}, nil
}

// readString reads a quoted string. There is no escape processing.
func (t *CSSTokenizer) readString(quote byte) (CSSToken, error) {
	line, col := t.line, t.col
	t.advance()
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != quote {
		t.advance()
	}
	if t.pos >= len(t.input) {
		return CSSToken{}, &SyntaxError{Line: line, Column: col, Msg: "unterminated string"}
	}
	value := t.input[start:t.pos]
	t.advance()
	return CSSToken{Type: CSSTokenString, Value: value, Line: line, Column: col}, nil
}

// skipWhitespace skips blanks as well as // and /* */ comments.
func (t *CSSTokenizer) skipWhitespace() error {
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			t.advance()
		case ch == '/' && t.peekAt(1) == '*':
			if err := t.skipComment(); err != nil {
				return err
			}
		case ch == '/' && t.peekAt(1) == '/':
			for t.pos < len(t.input) && t.input[t.pos] != '\n' {
				t.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

// skipComment skips a /* ... */ comment. Assumes pos is at the '/'.
func (t *CSSTokenizer) skipComment() error {
	line, col := t.line, t.col
	t.advance()
	t.advance()
	for t.pos+1 < len(t.input) {
		if t.input[t.pos] == '*' && t.input[t.pos+1] == '/' {
			t.advance()
			t.advance()
			return nil
		}
		t.advance()
	}
	return &SyntaxError{Line: line, Column: col, Msg: "unterminated comment"}
}

func (t *CSSTokenizer) advance() {
	if t.input[t.pos] == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	t.pos++
}

func (t *CSSTokenizer) peekAt(offset int) byte {
	if t.pos+offset >= len(t.input) {
		return 0
	}
	return t.input[t.pos+offset]
}

// Error returns a syntax error at the current position
func (t *CSSTokenizer) Error(msg string) error {
	return &SyntaxError{Line: t.line, Column: t.col, Msg: msg}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
