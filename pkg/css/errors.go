package css

import "fmt"

// SyntaxError reports a malformed stylesheet or declaration list.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("css syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
