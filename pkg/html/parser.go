package html

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tml/pkg/css"
)

// Option configures a Parser.
type Option func(*Parser)

// WithRegistry sets the tag registry. The default is DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithLogger sets the sink for warnings. The default discards them.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser turns markup into a styled element tree. A Parser holds no state
// between Parse calls and may be reused.
type Parser struct {
	registry *Registry
	logger   *zap.Logger
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		registry: DefaultRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// parseState is the per-call state of Parse.
type parseState struct {
	*Parser
	tokenizer   *Tokenizer
	sheetParser *css.SheetParser
	doc         *Document
	stack       []*Element
}

// Parse builds a document from markup. Embedded <style> blocks extend the
// document's style sheet, and once the whole tree is built the sheet is
// applied to every element.
func (p *Parser) Parse(markup string) (*Document, error) {
	s := &parseState{
		Parser:      p,
		tokenizer:   NewTokenizer(markup),
		sheetParser: css.NewSheetParser(css.WithLogger(p.logger)),
		doc:         NewDocument(),
	}
	s.stack = []*Element{s.doc.Element}

	for {
		token, err := s.tokenizer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		if token.Type == TokenEOF {
			break
		}

		switch token.Type {
		case TokenStartTag:
			if token.TagName == StyleTag {
				if err := s.readStyle(token); err != nil {
					return nil, err
				}
				continue
			}
			if err := s.openElement(token); err != nil {
				return nil, err
			}

		case TokenText:
			s.currentParent().AppendText(token.Text)

		case TokenEndTag:
			if err := s.closeTag(token); err != nil {
				return nil, err
			}
		}
	}

	if len(s.stack) > 1 {
		open := s.stack[len(s.stack)-1]
		return nil, &SyntaxError{Pos: len(markup), Msg: fmt.Sprintf("unclosed tag <%s>", open.Tag)}
	}

	s.doc.ApplyStyle(s.doc.StyleSheet)
	return s.doc, nil
}

func (s *parseState) openElement(token Token) error {
	element, err := s.registry.New(token.TagName)
	if err != nil {
		var unknown *UnknownTagError
		if errors.As(err, &unknown) {
			unknown.Pos = token.Pos
			return unknown
		}
		return &SyntaxError{Pos: token.Pos, Msg: fmt.Sprintf("cannot construct <%s>", token.TagName), Err: err}
	}
	for _, attr := range token.Attributes {
		known, err := element.ApplyAttributeWith(s.sheetParser, attr.Name, attr.Value)
		if err != nil {
			return &SyntaxError{Pos: token.Pos, Msg: fmt.Sprintf("bad attribute on <%s>", token.TagName), Err: err}
		}
		if !known {
			s.logger.Warn("unknown attribute",
				zap.String("tag", token.TagName),
				zap.String("name", attr.Name),
				zap.String("value", attr.Value))
		}
	}

	s.currentParent().AddChild(element)
	if !token.SelfClosing {
		s.push(element)
	}
	return nil
}

// readStyle consumes a <style> element. Its only allowed content is a
// single text run holding stylesheet rules.
func (s *parseState) readStyle(start Token) error {
	if start.SelfClosing {
		return nil
	}
	token, err := s.tokenizer.NextToken()
	if err != nil {
		return fmt.Errorf("tokenizer error: %w", err)
	}
	if token.Type == TokenText {
		if err := s.sheetParser.ParseSheet(s.doc.StyleSheet, token.Text); err != nil {
			return &SyntaxError{Pos: token.Pos, Msg: "invalid stylesheet in <style>", Err: err}
		}
		if token, err = s.tokenizer.NextToken(); err != nil {
			return fmt.Errorf("tokenizer error: %w", err)
		}
	}
	if token.Type != TokenEndTag || token.TagName != StyleTag {
		return &SyntaxError{Pos: token.Pos, Msg: fmt.Sprintf("<style> must contain only text, got %s", describe(token))}
	}
	return nil
}

// closeTag pops the element the end tag closes. It must be the innermost
// open element.
func (s *parseState) closeTag(token Token) error {
	if len(s.stack) <= 1 {
		return &SyntaxError{Pos: token.Pos, Msg: fmt.Sprintf("unexpected end tag </%s>", token.TagName)}
	}
	top := s.currentParent()
	if top.Tag != token.TagName {
		return &SyntaxError{Pos: token.Pos, Msg: fmt.Sprintf("end tag </%s> does not match <%s>", token.TagName, top.Tag)}
	}
	s.pop()
	return nil
}

// currentParent returns the current parent node (top of stack)
func (s *parseState) currentParent() *Element {
	return s.stack[len(s.stack)-1]
}

// push adds a node to the stack
func (s *parseState) push(e *Element) {
	s.stack = append(s.stack, e)
}

// pop removes the top node from the stack
func (s *parseState) pop() *Element {
	e := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return e
}

func describe(token Token) string {
	switch token.Type {
	case TokenStartTag:
		return "<" + token.TagName + ">"
	case TokenEndTag:
		return "</" + token.TagName + ">"
	}
	return token.Type.String()
}

// Parse parses markup with the default registry and no logging.
func Parse(markup string) (*Document, error) {
	return NewParser().Parse(markup)
}
