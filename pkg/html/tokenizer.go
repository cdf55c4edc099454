package html

import (
	"fmt"
	gohtml "html"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenStartTag:
		return "start tag"
	case TokenEndTag:
		return "end tag"
	case TokenText:
		return "text"
	case TokenEOF:
		return "EOF"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Attribute is a name/value pair in source order.
type Attribute struct {
	Name  string
	Value string
}

type Token struct {
	Type        TokenType
	TagName     string
	Attributes  []Attribute
	Text        string
	SelfClosing bool // True for tags ending with />
	Pos         int  // byte offset where the token starts
}

type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(markup string) *Tokenizer {
	return &Tokenizer{input: markup, pos: 0}
}

func (t *Tokenizer) NextToken() (Token, error) {
	for t.pos < len(t.input) {
		if t.input[t.pos] == '<' {
			tok, skip, err := t.readTag()
			if err != nil || !skip {
				return tok, err
			}
			continue
		}
		tok, ok := t.readText()
		if ok {
			return tok, nil
		}
	}
	return Token{Type: TokenEOF, Pos: t.pos}, nil
}

// readTag reads a start or end tag. skip is true for comments, processing
// instructions and declarations, which produce no token.
func (t *Tokenizer) readTag() (tok Token, skip bool, err error) {
	start := t.pos
	t.pos++

	// <!-- comments -->
	if strings.HasPrefix(t.input[t.pos:], "!--") {
		end := strings.Index(t.input[t.pos+3:], "-->")
		if end < 0 {
			return Token{}, false, t.errorAt(start, "unterminated comment")
		}
		t.pos += 3 + end + 3
		return Token{}, true, nil
	}

	// <?xml ...?> and other processing instructions
	if strings.HasPrefix(t.input[t.pos:], "?") {
		end := strings.Index(t.input[t.pos:], "?>")
		if end < 0 {
			return Token{}, false, t.errorAt(start, "unterminated processing instruction")
		}
		t.pos += end + 2
		return Token{}, true, nil
	}

	// <!DOCTYPE ...>
	if strings.HasPrefix(t.input[t.pos:], "!") {
		if err := t.skipTo('>'); err != nil {
			return Token{}, false, err
		}
		t.pos++
		return Token{}, true, nil
	}

	isEndTag := false
	if t.pos < len(t.input) && t.input[t.pos] == '/' {
		isEndTag = true
		t.pos++
	}
	tagName := t.readTagName()
	if tagName == "" {
		return Token{}, false, t.errorAt(t.pos, "expected tag name")
	}
	if isEndTag {
		t.skipWhitespace()
		if t.pos >= len(t.input) || t.input[t.pos] != '>' {
			return Token{}, false, t.errorAt(t.pos, fmt.Sprintf("expected '>' to close </%s", tagName))
		}
		t.pos++
		return Token{Type: TokenEndTag, TagName: tagName, Pos: start}, false, nil
	}

	tok = Token{Type: TokenStartTag, TagName: tagName, Pos: start}
	seen := make(map[string]bool)
	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			return Token{}, false, t.errorAt(start, "unexpected EOF in tag")
		}
		if t.input[t.pos] == '>' {
			t.pos++
			return tok, false, nil
		}
		if t.input[t.pos] == '/' {
			t.pos++
			t.skipWhitespace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				tok.SelfClosing = true
				return tok, false, nil
			}
			return Token{}, false, t.errorAt(t.pos, "expected '>' after '/'")
		}
		attrPos := t.pos
		name, value, err := t.readAttribute()
		if err != nil {
			return Token{}, false, err
		}
		if seen[name] {
			return Token{}, false, t.errorAt(attrPos, fmt.Sprintf("duplicate attribute %q", name))
		}
		seen[name] = true
		tok.Attributes = append(tok.Attributes, Attribute{Name: name, Value: value})
	}
}

func (t *Tokenizer) readTagName() string {
	start := t.pos
	for t.pos < len(t.input) && isTagNameChar(t.input[t.pos]) {
		t.pos++
	}
	return t.input[start:t.pos]
}

func (t *Tokenizer) readAttribute() (string, string, error) {
	start := t.pos
	for t.pos < len(t.input) && isAttributeNameChar(t.input[t.pos]) {
		t.pos++
	}
	name := t.input[start:t.pos]
	if name == "" {
		return "", "", t.errorAt(t.pos, "expected attribute name")
	}
	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return "", "", t.errorAt(t.pos, fmt.Sprintf("attribute %q has no value", name))
	}
	t.pos++
	t.skipWhitespace()
	value, err := t.readAttributeValue()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

func (t *Tokenizer) readAttributeValue() (string, error) {
	if t.pos >= len(t.input) {
		return "", t.errorAt(t.pos, "expected attribute value")
	}
	quote := t.input[t.pos]
	if quote == '"' || quote == '\'' {
		start := t.pos
		t.pos++
		end := strings.IndexByte(t.input[t.pos:], quote)
		if end < 0 {
			return "", t.errorAt(start, "unterminated attribute value")
		}
		value := t.input[t.pos : t.pos+end]
		t.pos += end + 1
		return gohtml.UnescapeString(value), nil
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' && t.input[t.pos] != '/' {
		t.pos++
	}
	if start == t.pos {
		return "", t.errorAt(t.pos, "expected attribute value")
	}
	return gohtml.UnescapeString(t.input[start:t.pos]), nil
}

// readText reads up to the next '<'. Runs made only of whitespace are
// dropped (ok is false); other text is kept verbatim apart from entity
// decoding.
func (t *Tokenizer) readText() (tok Token, ok bool) {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	raw := t.input[start:t.pos]
	if strings.TrimSpace(raw) == "" {
		return Token{}, false
	}
	return Token{Type: TokenText, Text: gohtml.UnescapeString(raw), Pos: start}, true
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

func (t *Tokenizer) skipTo(target byte) error {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != target {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return t.errorAt(start, fmt.Sprintf("expected '%c' but reached EOF", target))
	}
	return nil
}

func (t *Tokenizer) errorAt(pos int, msg string) error {
	return &SyntaxError{Pos: pos, Msg: msg}
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isAttributeNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == ':' || c == '.'
}
