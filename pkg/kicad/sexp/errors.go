package sexp

import "fmt"

// SyntaxError reports malformed input text: unbalanced delimiters,
// unterminated strings, or invalid escape sequences. Line and Col are
// 1-based and zero when the error is not tied to a source location.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return "syntax error: " + e.Msg
}
