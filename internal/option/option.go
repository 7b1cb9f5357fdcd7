// Package option exposes named configuration entries to expression
// evaluation: "&name" reads a value, "+name" checks that the entry is
// present and working.
package option

import (
	"fmt"
	"log/slog"

	"quill/internal/value"
)

// OptKind classifies an entry's value type.
type OptKind uint8

const (
	OptNumber OptKind = iota
	OptBool
	OptString
	// Hidden entries exist in the table but have no working value; they
	// evaluate to their zero value and fail the "+name" check.
	OptHiddenNumber
	OptHiddenBool
	OptHiddenString
)

// Scope selects which copy of an entry is read.
type Scope uint8

const (
	ScopeDefault Scope = iota
	ScopeGlobal        // "&g:name"
	ScopeLocal         // "&l:name"
)

// Entry is one registered option.
type Entry struct {
	Kind   OptKind
	Number int64
	Bool   bool
	String string

	// Local overrides, used under ScopeLocal when set.
	localSet    bool
	localNumber int64
	localBool   bool
	localString string
}

// OptionError reports a missing or malformed option reference.
type OptionError struct {
	Msg string
}

func (e *OptionError) Error() string { return e.Msg }

func optionErrorf(format string, a ...any) *OptionError {
	return &OptionError{Msg: fmt.Sprintf(format, a...)}
}

// Registry holds the option table.
type Registry struct {
	entries map[string]*Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

func (r *Registry) Register(name string, e Entry) {
	r.entries[name] = &e
}

func (r *Registry) RegisterNumber(name string, n int64) {
	r.Register(name, Entry{Kind: OptNumber, Number: n})
}

func (r *Registry) RegisterBool(name string, b bool) {
	r.Register(name, Entry{Kind: OptBool, Bool: b})
}

func (r *Registry) RegisterString(name, s string) {
	r.Register(name, Entry{Kind: OptString, String: s})
}

// SetLocal gives an entry a window-local value, read under ScopeLocal.
func (r *Registry) SetLocal(name string, v value.Value) error {
	e, ok := r.entries[name]
	if !ok {
		return optionErrorf("unknown option: %s", name)
	}
	e.localSet = true
	switch e.Kind {
	case OptNumber, OptHiddenNumber:
		e.localNumber = v.N
	case OptBool, OptHiddenBool:
		e.localBool = v.N != 0
	default:
		e.localString = v.S
	}
	return nil
}

// Eval parses an option reference at src[pos]: "&name", "&g:name", "&l:name"
// or "+name". The '+' form produces number 1 when the entry exists and is
// not hidden, 0 otherwise. Bool entries evaluate to Bool values in strict
// mode and to 0/1 numbers otherwise. When evaluate is false only the cursor
// moves.
func (r *Registry) Eval(src string, pos int, evaluate, strict bool) (value.Value, int, error) {
	if pos >= len(src) || (src[pos] != '&' && src[pos] != '+') {
		return value.Value{}, pos, optionErrorf("option name missing: %s", src[pos:])
	}
	working := src[pos] == '+'
	i := pos + 1

	scope := ScopeDefault
	if !working && i+1 < len(src) && src[i+1] == ':' {
		switch src[i] {
		case 'g':
			scope = ScopeGlobal
			i += 2
		case 'l':
			scope = ScopeLocal
			i += 2
		}
	}

	start := i
	for i < len(src) && isOptChar(src[i]) {
		i++
	}
	if i == start {
		return value.Value{}, pos, optionErrorf("option name missing: %s", src[pos:])
	}
	name := src[start:i]
	if !evaluate {
		return value.Value{}, i, nil
	}

	e, ok := r.entries[name]
	slog.Debug("option lookup",
		slog.String("name", name),
		slog.Bool("found", ok),
		slog.Bool("working", working))
	if !ok {
		if working {
			return value.NewNumber(0), i, nil
		}
		return value.Value{}, pos, optionErrorf("unknown option: %s", name)
	}

	if working {
		if e.Kind == OptHiddenNumber || e.Kind == OptHiddenBool || e.Kind == OptHiddenString {
			return value.NewNumber(0), i, nil
		}
		return value.NewNumber(1), i, nil
	}
	return e.valueFor(scope, strict), i, nil
}

func (e *Entry) valueFor(scope Scope, strict bool) value.Value {
	switch e.Kind {
	case OptHiddenString:
		return value.NewString("")
	case OptHiddenBool:
		if strict {
			return value.FalseValue
		}
		return value.NewNumber(0)
	case OptHiddenNumber:
		return value.NewNumber(0)
	case OptBool:
		b := e.Bool
		if scope == ScopeLocal && e.localSet {
			b = e.localBool
		}
		if strict {
			return value.NewBool(b)
		}
		if b {
			return value.NewNumber(1)
		}
		return value.NewNumber(0)
	case OptNumber:
		n := e.Number
		if scope == ScopeLocal && e.localSet {
			n = e.localNumber
		}
		return value.NewNumber(n)
	}
	s := e.String
	if scope == ScopeLocal && e.localSet {
		s = e.localString
	}
	return value.NewString(s)
}

func isOptChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
