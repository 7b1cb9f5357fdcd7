package value

import "fmt"

// TypeError reports an operation attempted on a kind that can never support
// it, regardless of mode.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

func typeErrorf(format string, a ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, a...)}
}

// ConversionError reports an implicit coercion that legacy mode performs
// silently but strict mode forbids.
type ConversionError struct {
	Msg string
}

func (e *ConversionError) Error() string { return e.Msg }

func conversionErrorf(format string, a ...any) *ConversionError {
	return &ConversionError{Msg: fmt.Sprintf(format, a...)}
}

// LockError reports a mutation attempted on a locked Value or container.
type LockError struct {
	Name string
}

func (e *LockError) Error() string {
	if e.Name == "" {
		return "cannot change locked value"
	}
	return fmt.Sprintf("cannot change locked value %q", e.Name)
}

// RecursionError reports that the nesting budget was exhausted while making a
// deep copy. Comparison never surfaces this; it resolves to "equal" instead.
type RecursionError struct{}

func (e *RecursionError) Error() string {
	return "variable nested too deep for making a copy"
}

// ArgError reports a failed argument contract. Index is 0-based; the message
// cites the 1-based position.
type ArgError struct {
	Want  string
	Index int
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s required for argument %d", e.Want, e.Index+1)
}

// errUsingAs builds the kind-named diagnostic for a coercion that is not
// available for the source kind at all.
func errUsingAs(k Kind, want string) error {
	switch k {
	case Class, TypeAlias:
		return typeErrorf("cannot use a %s as a value", kindNames[k])
	case Void:
		return typeErrorf("cannot use a void value")
	case Unknown, Any:
		return typeErrorf("internal: using an %s value as a %s", kindNames[k], want)
	}
	return typeErrorf("cannot use a %s as a %s", kindNames[k], want)
}
