package literal

import (
	"strings"
	"unicode/utf8"

	"quill/internal/textenc"
	"quill/internal/value"
)

// String parses a double-quoted string with escape sequences. Pos is on the
// opening quote, or just past it when interpolate is set. In interpolate
// mode "{{" reduces to "{", "}}" to "}", a bare "{" ends the piece and a
// stray "}" is an error. The returned position is past the closing quote,
// except in interpolate mode where it stays on the terminator.
func (pr *Parser) String(src string, pos int, evaluate, interpolate bool) (value.Value, int, error) {
	i := pos
	if !interpolate {
		i++
	}

	var out []byte
	for i < len(src) && src[i] != '"' {
		switch {
		case src[i] == '\\' && i+1 < len(src):
			var err error
			out, i, err = pr.unescape(out, src, i+1, evaluate)
			if err != nil {
				return value.Value{}, pos, err
			}
		case interpolate && src[i] == '{':
			if i+1 >= len(src) || src[i+1] != '{' {
				goto done // start of an embedded expression
			}
			i++
			out = appendChar(out, src, &i, evaluate)
		case interpolate && src[i] == '}':
			if i+1 >= len(src) || src[i+1] != '}' {
				return value.Value{}, pos, parseErrorf("stray closing curly: %s", src[pos:])
			}
			i++
			out = appendChar(out, src, &i, evaluate)
		default:
			out = appendChar(out, src, &i, evaluate)
		}
	}
done:
	if i >= len(src) || (src[i] != '"' && !(interpolate && src[i] == '{')) {
		return value.Value{}, pos, parseErrorf("missing double quote: %s", src[pos:])
	}
	if src[i] == '"' && !interpolate {
		i++
	}
	if !evaluate {
		return value.Value{}, i, nil
	}
	return value.NewString(string(out)), i, nil
}

// unescape handles one backslash sequence; i is just past the backslash.
func (pr *Parser) unescape(out []byte, src string, i int, evaluate bool) ([]byte, int, error) {
	emit := func(b byte) {
		if evaluate {
			out = append(out, b)
		}
	}
	switch c := src[i]; c {
	case 'b':
		emit('\b')
		return out, i + 1, nil
	case 'e':
		emit(0x1b)
		return out, i + 1, nil
	case 'f':
		emit('\f')
		return out, i + 1, nil
	case 'n':
		emit('\n')
		return out, i + 1, nil
	case 'r':
		emit('\r')
		return out, i + 1, nil
	case 't':
		emit('\t')
		return out, i + 1, nil

	case 'x', 'X', 'u', 'U':
		if i+1 >= len(src) || !isHexDigit(src[i+1]) {
			// Not a hex escape after all; the letter stands for itself.
			emit(c)
			return out, i + 1, nil
		}
		n := 2
		if c == 'u' {
			n = 4
		} else if c == 'U' {
			n = 8
		}
		nr := 0
		for ; n > 0 && i+1 < len(src) && isHexDigit(src[i+1]); n-- {
			i++
			nr = nr<<4 + hexNibble(src[i])
		}
		if evaluate {
			if c == 'x' || c == 'X' {
				// \x is a raw byte, not a character.
				out = append(out, byte(nr))
			} else {
				out = textenc.EncodeChar(out, rune(nr), pr.Encoding)
			}
		}
		return out, i + 1, nil

	case '0', '1', '2', '3', '4', '5', '6', '7':
		nr := int(c - '0')
		i++
		for k := 0; k < 2 && i < len(src) && src[i] >= '0' && src[i] <= '7'; k++ {
			nr = nr<<3 + int(src[i]-'0')
			i++
		}
		emit(byte(nr))
		return out, i, nil

	case '<':
		if enc, end := pr.transSpecialKey(src, i); end > i {
			if evaluate {
				out = append(out, enc...)
			}
			return out, end, nil
		}
		// No key name matched; copy the '<' as-is.
		emit('<')
		return out, i + 1, nil
	}

	// Unknown escapes keep the escaped character.
	j := i
	out = appendChar(out, src, &j, evaluate)
	return out, j, nil
}

// appendChar copies one (possibly multibyte) character from src[*i].
func appendChar(out []byte, src string, i *int, evaluate bool) []byte {
	_, size := utf8.DecodeRuneInString(src[*i:])
	if evaluate {
		out = append(out, src[*i:*i+size]...)
	}
	*i += size
	return out
}

// LitString parses a single-quoted string; '' stands for one quote. Pos is
// on the opening quote, or just past it when interpolate is set.
func (pr *Parser) LitString(src string, pos int, evaluate, interpolate bool) (value.Value, int, error) {
	i := pos
	if !interpolate {
		i++
	}

	var out []byte
	for i < len(src) {
		switch {
		case src[i] == '\'':
			if i+1 >= len(src) || src[i+1] != '\'' {
				goto done
			}
			i++
			out = appendChar(out, src, &i, evaluate)
		case interpolate && src[i] == '{':
			if i+1 >= len(src) || src[i+1] != '{' {
				goto done
			}
			i++
			out = appendChar(out, src, &i, evaluate)
		case interpolate && src[i] == '}':
			if i+1 >= len(src) || src[i+1] != '}' {
				return value.Value{}, pos, parseErrorf("stray closing curly: %s", src[pos:])
			}
			i++
			out = appendChar(out, src, &i, evaluate)
		default:
			out = appendChar(out, src, &i, evaluate)
		}
	}
done:
	if i >= len(src) || (src[i] != '\'' && !(interpolate && src[i] == '{')) {
		return value.Value{}, pos, parseErrorf("missing single quote: %s", src[pos:])
	}
	if src[i] == '\'' && !interpolate {
		i++
	}
	if !evaluate {
		return value.Value{}, i, nil
	}
	return value.NewString(string(out)), i, nil
}

// InterpString parses an interpolated string literal, `$"..."` or `$'...'`.
// Pos is on the '$'. Each embedded {expr} is handed to ev and its text is
// spliced between the literal pieces.
func (pr *Parser) InterpString(src string, pos int, evaluate bool, ev ExprEvaluator) (value.Value, int, error) {
	if pos+1 >= len(src) || (src[pos+1] != '"' && src[pos+1] != '\'') {
		return value.Value{}, pos, parseErrorf("missing quote: %s", src[pos:])
	}
	quote := src[pos+1]
	i := pos + 2

	var b strings.Builder
	for {
		var piece value.Value
		var err error
		if quote == '"' {
			piece, i, err = pr.String(src, i, evaluate, true)
		} else {
			piece, i, err = pr.LitString(src, i, evaluate, true)
		}
		if err != nil {
			return value.Value{}, pos, err
		}
		if evaluate {
			b.WriteString(piece.S)
		}

		if i >= len(src) || src[i] != '{' {
			i++ // past the closing quote
			break
		}
		text, next, err := ev.EvalExpr(src, i)
		if err != nil {
			return value.Value{}, pos, err
		}
		if evaluate {
			b.WriteString(text)
		}
		i = next
	}
	if !evaluate {
		return value.Value{}, i, nil
	}
	return value.NewString(b.String()), i, nil
}
