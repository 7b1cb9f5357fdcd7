package value

import (
	"fmt"
	"strconv"
	"strings"
)

// StrToNum flags, matching the literal parser's recognizer set.
const (
	StrBin   = 1 << iota // recognize "0b" binary
	StrOct               // recognize leading-zero octal
	StrOOct              // recognize "0o" octal
	StrHex               // recognize "0x" hex
	StrQuote             // allow embedded single-quote digit separators
	StrAll   = StrBin | StrOct | StrOOct | StrHex
)

// StrToNum parses a leading signed integer from s, handling binary, octal and
// hex prefixes per flags. It returns the parsed value, the number of bytes
// consumed (0 when nothing numeric was found) and whether the value
// overflowed (the result is clamped on overflow). With strict set, a
// trailing alphanumeric cancels the parse.
func StrToNum(s string, flags int, strict bool) (n int64, length int, overflow bool) {
	i := 0
	negative := false
	if i < len(s) && s[i] == '-' {
		negative = true
		i++
	}

	base := 10
	digits := 0
	pre := byte(0)
	if i+1 < len(s) && s[i] == '0' && s[i+1] != '8' && s[i+1] != '9' {
		c := s[i+1]
		switch {
		case flags&StrHex != 0 && (c == 'x' || c == 'X') && i+2 < len(s) && isHexDigit(s[i+2]):
			base = 16
			i += 2
		case flags&StrBin != 0 && (c == 'b' || c == 'B') && i+2 < len(s) && isBinDigit(s[i+2]):
			base = 2
			i += 2
		case flags&StrOOct != 0 && (c == 'o' || c == 'O') && i+2 < len(s) && isOctDigit(s[i+2]):
			base = 8
			i += 2
		case flags&StrOct != 0:
			// A bare leading zero is octal only when every following
			// digit stays in range; "08" and "0129" remain decimal.
			base = 8
			for j := i + 1; j < len(s) && isDigit(s[j]); j++ {
				if s[j] > '7' {
					base = 10
					break
				}
				pre = '0'
			}
			if pre == 0 {
				base = 10
			}
		}
	}

	var un uint64
	digitOK := func(c byte) bool {
		switch base {
		case 2:
			return isBinDigit(c)
		case 8:
			return isOctDigit(c)
		case 16:
			return isHexDigit(c)
		}
		return isDigit(c)
	}
	for i < len(s) && digitOK(s[i]) {
		d := uint64(hexNibble(s[i]))
		if un > (maxUint64-d)/uint64(base) {
			un = maxUint64
			overflow = true
		} else {
			un = un*uint64(base) + d
		}
		i++
		digits++
		if flags&StrQuote != 0 && i+1 < len(s) && s[i] == '\'' && digitOK(s[i+1]) {
			i++
		}
	}
	if digits == 0 {
		return 0, 0, false
	}
	if strict && i < len(s) && isAlnum(s[i]) {
		return 0, 0, false
	}

	if negative {
		if un > maxInt64 {
			n = minInt64
			overflow = true
		} else {
			n = -int64(un)
		}
	} else {
		if un > maxInt64 {
			un = maxInt64
			overflow = true
		}
		n = int64(un)
	}
	return n, i, overflow
}

const (
	maxUint64 = ^uint64(0)
	maxInt64  = uint64(1)<<63 - 1
	minInt64  = -1 << 63
)

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isBinDigit(c byte) bool { return c == '0' || c == '1' }
func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hexNibble(c byte) int {
	switch {
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return int(c - '0')
}

// asBoolOrNumber is the shared coercion kernel behind AsNumber and AsBool.
// wantBool selects the bool rules (0/1 numbers allowed, strings never);
// stringOK permits string conversion even in strict mode.
func (v Value) asBoolOrNumber(wantBool, strict, stringOK bool) (int64, error) {
	switch v.Kind {
	case Number:
		if strict && wantBool && v.N != 0 && v.N != 1 {
			return 0, conversionErrorf("using number %d as a bool", v.N)
		}
		return v.N, nil
	case Float:
		return 0, typeErrorf("cannot use a float as a number")
	case Funcref:
		return 0, typeErrorf("cannot use a funcref as a number")
	case String:
		if strict && !stringOK {
			if wantBool {
				return 0, conversionErrorf("using a string as a bool")
			}
			return 0, conversionErrorf("using a string as a number")
		}
		n, _, _ := StrToNum(v.S, StrAll, false)
		return n, nil
	case Bool, Special:
		if !wantBool && strict {
			return 0, conversionErrorf("using a %s as a number", kindNames[v.Kind])
		}
		if v.N == ValTrue {
			return 1, nil
		}
		return 0, nil
	case List, Dict, Blob, Job, Channel, Object:
		return 0, errUsingAs(v.Kind, "number")
	}
	return 0, errUsingAs(v.Kind, "number")
}

// AsNumber coerces v to an integer. Strings convert from their leading
// numeric prefix in legacy mode and are rejected in strict mode; Bool and
// Special are likewise strict-mode errors.
func (v Value) AsNumber(strict bool) (int64, error) {
	return v.asBoolOrNumber(false, strict, false)
}

// ToNumber is AsNumber but with string conversion allowed in strict mode,
// for call sites that explicitly permit it.
func (v Value) ToNumber(strict bool) (int64, error) {
	return v.asBoolOrNumber(false, strict, true)
}

// AsBool coerces v to a boolean. In strict mode only Bool, Special and the
// numbers 0/1 qualify.
func (v Value) AsBool(strict bool) (bool, error) {
	n, err := v.asBoolOrNumber(true, strict, false)
	return n != 0, err
}

// AsFloat coerces v to a float. Only Number converts; everything else is a
// kind-named error, strings included.
func (v Value) AsFloat() (float64, error) {
	switch v.Kind {
	case Number:
		return float64(v.N), nil
	case Float:
		return v.F, nil
	case Bool, Special:
		return 0, typeErrorf("cannot use a %s value as a float", kindNames[v.Kind])
	case Funcref:
		return 0, typeErrorf("cannot use a funcref as a float")
	}
	return 0, errUsingAs(v.Kind, "float")
}

// AsString coerces v to text. Numbers and floats format in legacy mode and
// are strict-mode errors; Bool/Special use their fixed names; Job/Channel
// have a legacy textual form only.
func (v Value) AsString(strict bool) (string, error) {
	switch v.Kind {
	case Number:
		if strict {
			return "", conversionErrorf("using a number as a string")
		}
		return strconv.FormatInt(v.N, 10), nil
	case Float:
		if strict {
			return "", conversionErrorf("using a float as a string")
		}
		return formatFloat(v.F), nil
	case String:
		return v.S, nil
	case Bool, Special:
		return SpecialName(v.N), nil
	case Funcref:
		return "", typeErrorf("cannot use a funcref as a string")
	case Job:
		if strict {
			return "", conversionErrorf("using a job as a string")
		}
		if v.Job == nil {
			return "job", nil
		}
		return "job " + shortID(v.Job.ID.String()), nil
	case Channel:
		if strict {
			return "", conversionErrorf("using a channel as a string")
		}
		if v.Ch == nil {
			return "channel", nil
		}
		return "channel " + shortID(v.Ch.ID.String()), nil
	}
	return "", errUsingAs(v.Kind, "string")
}

// Stringify is like AsString but uses the display form for container kinds
// and floats, so any value can become text.
func (v Value) Stringify() string {
	switch v.Kind {
	case List, Dict, Blob, Funcref, Float:
		return v.InspectQuoted()
	}
	s, err := v.AsString(false)
	if err != nil {
		return v.InspectQuoted()
	}
	return s
}

// formatFloat matches the "%g" rendering used for float text.
func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	// Keep a trailing ".0" on whole floats so they read back as floats.
	if !strings.ContainsAny(s, ".eE") && !strings.ContainsAny(s, "nN") {
		s += ".0"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
