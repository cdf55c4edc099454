package html

import "fmt"

// SyntaxError reports markup that is not well formed: mismatched or
// unclosed tags, malformed attributes, bad <style> content or an invalid
// stylesheet inside it.
type SyntaxError struct {
	Pos int // byte offset into the markup
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("syntax error at offset %d: %s: %v", e.Pos, e.Msg, e.Err)
	}
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// UnknownTagError reports a tag that is not in the parser's registry.
type UnknownTagError struct {
	Tag string
	Pos int
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag name %q at offset %d", e.Tag, e.Pos)
}
