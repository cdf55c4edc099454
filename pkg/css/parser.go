package css

import (
	"fmt"

	"go.uber.org/zap"
)

// numberProperties maps numeric declaration keys to their Style field.
var numberProperties = map[string]func(*Style) *int{
	"margin-left":    func(s *Style) *int { return &s.MarginLeft },
	"margin-right":   func(s *Style) *int { return &s.MarginRight },
	"margin-top":     func(s *Style) *int { return &s.MarginTop },
	"margin-bottom":  func(s *Style) *int { return &s.MarginBottom },
	"padding-left":   func(s *Style) *int { return &s.PaddingLeft },
	"padding-right":  func(s *Style) *int { return &s.PaddingRight },
	"padding-top":    func(s *Style) *int { return &s.PaddingTop },
	"padding-bottom": func(s *Style) *int { return &s.PaddingBottom },
	"font-size":      func(s *Style) *int { return &s.FontSize },
	"font-scale":     func(s *Style) *int { return &s.FontScale },
	"line-height":    func(s *Style) *int { return &s.LineHeight },
}

// stringProperties maps string declaration keys to their Style field.
var stringProperties = map[string]func(*Style) **string{
	"text-decoration":  func(s *Style) **string { return &s.TextDecoration },
	"text-align":       func(s *Style) **string { return &s.TextAlign },
	"color":            func(s *Style) **string { return &s.Color },
	"background-image": func(s *Style) **string { return &s.BackgroundImage },
}

// SheetParserOption configures a SheetParser.
type SheetParserOption func(*SheetParser)

// WithLogger sets the sink for non-fatal diagnostics such as unknown keys.
func WithLogger(logger *zap.Logger) SheetParserOption {
	return func(p *SheetParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// SheetParser parses stylesheet text. A SheetParser may be reused; it keeps
// no state between calls other than its logger.
type SheetParser struct {
	logger *zap.Logger

	tokenizer *CSSTokenizer
	token     CSSToken
	current   *Style
}

func NewSheetParser(opts ...SheetParserOption) *SheetParser {
	p := &SheetParser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSheet parses rules from text into sheet. Selectors referenced more
// than once accumulate into the same bag. The sheet is only changed when
// the whole text parses.
func (p *SheetParser) ParseSheet(sheet *StyleSheet, text string) error {
	if err := p.start(text); err != nil {
		return err
	}
	var order []string
	scratch := make(map[string]*Style)
	for p.token.Type != CSSTokenEOF {
		if err := p.expect(CSSTokenIdent, ""); err != nil {
			return err
		}
		name := p.token.Value
		if _, ok := scratch[name]; !ok {
			scratch[name] = Empty()
			order = append(order, name)
		}
		p.current = scratch[name]
		if err := p.next(); err != nil {
			return err
		}
		if err := p.consume(CSSTokenSymbol, "{"); err != nil {
			return err
		}
		if err := p.parseDeclarations(); err != nil {
			return err
		}
		if err := p.consume(CSSTokenSymbol, "}"); err != nil {
			return err
		}
	}

	for _, name := range order {
		sheet.FindOrCreateStyle(name).Merge(scratch[name])
	}
	sheet.invalidate()
	return nil
}

// ParseRule parses a bare declaration list (no selector, no braces) into an
// unsealed style.
func (p *SheetParser) ParseRule(text string) (*Style, error) {
	if err := p.start(text); err != nil {
		return nil, err
	}
	p.current = Empty()
	if err := p.parseDeclarations(); err != nil {
		return nil, err
	}
	if err := p.expect(CSSTokenEOF, ""); err != nil {
		return nil, err
	}
	return p.current, nil
}

func (p *SheetParser) start(text string) error {
	p.tokenizer = NewCSSTokenizer(text)
	return p.next()
}

func (p *SheetParser) parseDeclarations() error {
	for p.token.Type == CSSTokenIdent {
		if err := p.parseDeclaration(); err != nil {
			return err
		}
	}
	return nil
}

func (p *SheetParser) parseDeclaration() error {
	key := p.token.Value
	if err := p.next(); err != nil {
		return err
	}
	if err := p.consume(CSSTokenSymbol, ":"); err != nil {
		return err
	}

	tok := p.token
	switch tok.Type {
	case CSSTokenNumber:
		if err := p.setNumber(key, tok); err != nil {
			return err
		}
	case CSSTokenString:
		if err := p.setString(key, tok); err != nil {
			return err
		}
	default:
		return p.unexpected("a number or string value")
	}
	if err := p.next(); err != nil {
		return err
	}
	return p.consume(CSSTokenSymbol, ";")
}

func (p *SheetParser) setNumber(key string, tok CSSToken) error {
	if field, ok := numberProperties[key]; ok {
		*field(p.current) = tok.Number
		return nil
	}
	if _, ok := stringProperties[key]; ok {
		return &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf("%s expects a string value", key)}
	}
	p.logger.Warn("unknown style key", zap.String("key", key), zap.Int("line", tok.Line))
	return nil
}

func (p *SheetParser) setString(key string, tok CSSToken) error {
	if field, ok := stringProperties[key]; ok {
		v := tok.Value
		*field(p.current) = &v
		return nil
	}
	if _, ok := numberProperties[key]; ok {
		return &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf("%s expects a number value", key)}
	}
	p.logger.Warn("unknown style key", zap.String("key", key), zap.Int("line", tok.Line))
	return nil
}

func (p *SheetParser) next() error {
	tok, err := p.tokenizer.NextToken()
	if err != nil {
		return err
	}
	p.token = tok
	return nil
}

// expect checks the current token without consuming it. An empty value
// matches any token of the given type.
func (p *SheetParser) expect(tt CSSTokenType, value string) error {
	if p.token.Type != tt || (value != "" && p.token.Value != value) {
		want := tt.String()
		if value != "" {
			want = fmt.Sprintf("%q", value)
		}
		return p.unexpected(want)
	}
	return nil
}

func (p *SheetParser) consume(tt CSSTokenType, value string) error {
	if err := p.expect(tt, value); err != nil {
		return err
	}
	return p.next()
}

func (p *SheetParser) unexpected(want string) error {
	got := p.token.Type.String()
	if p.token.Value != "" {
		got = fmt.Sprintf("%s %q", got, p.token.Value)
	}
	return &SyntaxError{
		Line:   p.token.Line,
		Column: p.token.Column,
		Msg:    fmt.Sprintf("expected %s but got %s", want, got),
	}
}

// ParseSheet parses text into sheet with a parser that discards warnings.
func ParseSheet(sheet *StyleSheet, text string) error {
	return NewSheetParser().ParseSheet(sheet, text)
}

// ParseRule parses a bare declaration list with a parser that discards
// warnings.
func ParseRule(text string) (*Style, error) {
	return NewSheetParser().ParseRule(text)
}
