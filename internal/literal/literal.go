// Package literal parses source literals into runtime values: numbers,
// floats, blobs, quoted strings with escapes and interpolation, environment
// variables.
package literal

import "fmt"

// Parser carries the settings that influence literal scanning.
type Parser struct {
	// Encoding names the active text encoding; \u escapes produce bytes
	// in this encoding.
	Encoding string

	// OldScript enables the legacy number forms: leading-zero octal is
	// recognized and single-quote digit separators are not.
	OldScript bool
}

// ParseError reports a malformed literal.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErrorf(format string, a ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, a...)}
}

// ExprEvaluator evaluates one embedded expression inside an interpolated
// string. Pos is on the opening '{'; the result is the expression's text
// form and the position after the matching '}'.
type ExprEvaluator interface {
	EvalExpr(src string, pos int) (string, int, error)
}
