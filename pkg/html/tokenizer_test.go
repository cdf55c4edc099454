package html

import (
	"errors"
	"testing"
)

func TestTokenizer_SimpleStartTag(t *testing.T) {
	tokenizer := NewTokenizer("<div>")
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Type != TokenStartTag {
		t.Errorf("expected TokenStartTag, got %v", token.Type)
	}
	if token.TagName != "div" {
		t.Errorf("expected tag name 'div', got '%s'", token.TagName)
	}
}

func TestTokenizer_TagWithAttributes(t *testing.T) {
	tokenizer := NewTokenizer(`<div class="note" id='main' width=100>`)
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Attribute{{"class", "note"}, {"id", "main"}, {"width", "100"}}
	if len(token.Attributes) != len(want) {
		t.Fatalf("expected %d attributes, got %d", len(want), len(token.Attributes))
	}
	for i, a := range want {
		if token.Attributes[i] != a {
			t.Errorf("attribute %d: expected %v, got %v", i, a, token.Attributes[i])
		}
	}
}

func TestTokenizer_CompleteSequence(t *testing.T) {
	tokenizer := NewTokenizer("<div>Hello</div>")
	token1, _ := tokenizer.NextToken()
	if token1.Type != TokenStartTag || token1.TagName != "div" {
		t.Error("expected start tag 'div'")
	}
	token2, _ := tokenizer.NextToken()
	if token2.Type != TokenText || token2.Text != "Hello" {
		t.Error("expected text 'Hello'")
	}
	token3, _ := tokenizer.NextToken()
	if token3.Type != TokenEndTag || token3.TagName != "div" {
		t.Error("expected end tag")
	}
	token4, _ := tokenizer.NextToken()
	if token4.Type != TokenEOF {
		t.Error("expected EOF")
	}
}

func TestTokenizer_SelfClosing(t *testing.T) {
	tokenizer := NewTokenizer(`<span id="a" />`)
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !token.SelfClosing {
		t.Error("expected SelfClosing")
	}
	if len(token.Attributes) != 1 || token.Attributes[0].Value != "a" {
		t.Errorf("unexpected attributes %v", token.Attributes)
	}
}

func TestTokenizer_SkipsCommentsAndDeclarations(t *testing.T) {
	tokenizer := NewTokenizer(`<?xml version="1.0"?><!DOCTYPE tml><!-- a <p> comment --><p>`)
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Type != TokenStartTag || token.TagName != "p" {
		t.Errorf("expected <p>, got %v %q", token.Type, token.TagName)
	}
}

func TestTokenizer_WhitespaceOnlyTextDropped(t *testing.T) {
	tokenizer := NewTokenizer("<div>\n    <p> a  b </p>\n</div>\n")
	var texts []string
	for {
		token, err := tokenizer.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.Type == TokenEOF {
			break
		}
		if token.Type == TokenText {
			texts = append(texts, token.Text)
		}
	}
	if len(texts) != 1 || texts[0] != " a  b " {
		t.Errorf("expected one verbatim text run, got %q", texts)
	}
}

func TestTokenizer_Entities(t *testing.T) {
	tokenizer := NewTokenizer(`<p title="a &amp; b">x &lt; y</p>`)
	start, _ := tokenizer.NextToken()
	if start.Attributes[0].Value != "a & b" {
		t.Errorf("expected decoded attribute, got %q", start.Attributes[0].Value)
	}
	text, _ := tokenizer.NextToken()
	if text.Text != "x < y" {
		t.Errorf("expected decoded text, got %q", text.Text)
	}
}

func TestTokenizer_Positions(t *testing.T) {
	tokenizer := NewTokenizer("ab<p>")
	text, _ := tokenizer.NextToken()
	tag, _ := tokenizer.NextToken()
	if text.Pos != 0 || tag.Pos != 2 {
		t.Errorf("expected positions 0 and 2, got %d and %d", text.Pos, tag.Pos)
	}
}

func TestTokenizer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing tag name", "< p>"},
		{"unterminated tag", "<p id='a'"},
		{"unterminated attribute", "<p id='a>"},
		{"attribute without value", "<p hidden>"},
		{"duplicate attribute", "<p id='a' id='b'>"},
		{"unterminated comment", "<!-- never closed"},
		{"unterminated end tag", "</p"},
		{"junk in end tag", "</p x>"},
		{"slash without close", "<p / x>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenizer(tt.input).NextToken()
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
		})
	}
}
