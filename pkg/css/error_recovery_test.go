package css

import (
	"errors"
	"testing"
)

// TestSyntaxErrors verifies that malformed input aborts parsing with a
// *SyntaxError rather than being skipped.
func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		css  string
	}{
		{name: "missing opening brace", css: `p margin-left: 1; }`},
		{name: "missing closing brace", css: `p { margin-left: 1;`},
		{name: "missing colon", css: `p { margin-left 1; }`},
		{name: "missing semicolon", css: `p { margin-left: 1 }`},
		{name: "missing value", css: `p { margin-left: ; }`},
		{name: "identifier value", css: `p { margin-left: auto; }`},
		{name: "unterminated string", css: `p { color: "red; }`},
		{name: "unterminated comment", css: `p { /* margin-left: 1; }`},
		{name: "stray character", css: `p { margin-left: 1px; }`},
		{name: "selector is a number", css: `1 { margin-left: 1; }`},
		{name: "string for numeric key", css: `p { margin-left: "1"; }`},
		{name: "number for string key", css: `p { color: 3; }`},
		{name: "class prefix", css: `.note { margin-left: 1; }`},
		{name: "lone slash", css: `p / { }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseSheet(NewStyleSheet(), tt.css)
			if err == nil {
				t.Fatalf("expected error for %q", tt.css)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if syntaxErr.Line < 1 || syntaxErr.Column < 1 {
				t.Errorf("expected a position, got %d:%d", syntaxErr.Line, syntaxErr.Column)
			}
		})
	}
}

func TestSyntaxError_Message(t *testing.T) {
	err := ParseSheet(NewStyleSheet(), "p {\n  margin-left 1;\n}")
	if err == nil {
		t.Fatal("expected error")
	}
	want := `css syntax error at 2:15: expected ":" but got number "1"`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestParseRule_Errors(t *testing.T) {
	for _, src := range []string{"margin-left: 1", "margin-left: 1; }", `color: 'x`} {
		if _, err := ParseRule(src); err == nil {
			t.Errorf("expected error for %q", src)
		}
	}
}
