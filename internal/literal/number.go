package literal

import (
	"strconv"
	"strings"

	"quill/internal/value"
)

// Number parses a numeric literal at src[pos]: a float when the strict
// float form matches, a blob for "0z", otherwise an integer in any
// recognized base. With wantString set the float form is not considered, so
// "1.2.3" stays usable as string concatenation. When evaluate is false the
// cursor advances but no value is built.
func (pr *Parser) Number(src string, pos int, evaluate, wantString bool) (value.Value, int, error) {
	skipQuotes := !pr.OldScript

	// A float needs "digits '.' digits", optionally "e[+-]digits", and
	// must not be followed by a letter or another dot.
	p := pos
	if pos < len(src) && src[pos] != '.' {
		p = pos + 1
		for p < len(src) {
			if skipQuotes && src[p] == '\'' && p+1 < len(src) && isDigit(src[p+1]) {
				p++
			}
			if p >= len(src) || !isDigit(src[p]) {
				break
			}
			for p < len(src) && isDigit(src[p]) {
				p++
			}
		}
	}
	isFloat := false
	if !wantString && p+1 < len(src) && src[p] == '.' && isDigit(src[p+1]) {
		isFloat = true
		p += 2
		for p < len(src) && isDigit(src[p]) {
			p++
		}
		if p < len(src) && (src[p] == 'e' || src[p] == 'E') {
			q := p + 1
			if q < len(src) && (src[q] == '-' || src[q] == '+') {
				q++
			}
			if q < len(src) && isDigit(src[q]) {
				for q < len(src) && isDigit(src[q]) {
					q++
				}
				p = q
			} else {
				isFloat = false
			}
		}
		if isFloat && p < len(src) && (isAlpha(src[p]) || src[p] == '.') {
			isFloat = false
		}
	}

	switch {
	case isFloat:
		return pr.parseFloat(src, pos, p, evaluate, skipQuotes)
	case pos+1 < len(src) && src[pos] == '0' && (src[pos+1] == 'z' || src[pos+1] == 'Z'):
		return parseBlob(src, pos, evaluate)
	}
	return pr.parseInteger(src, pos, evaluate, skipQuotes)
}

func (pr *Parser) parseFloat(src string, pos, end int, evaluate, skipQuotes bool) (value.Value, int, error) {
	text := src[pos:end]
	if skipQuotes {
		text = strings.ReplaceAll(text, "'", "")
	}
	if !evaluate {
		return value.Value{}, end, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return value.Value{}, pos, parseErrorf("invalid float: %s", text)
	}
	return value.NewFloat(f), end, nil
}

// parseBlob handles "0z" followed by hex pairs, with optional '.' separators
// between pairs. An odd number of hex characters is an error; any partially
// built blob is released.
func parseBlob(src string, pos int, evaluate bool) (value.Value, int, error) {
	var blob value.Value
	if evaluate {
		blob = value.NewBlob(nil)
	}
	i := pos + 2
	for i < len(src) && isHexDigit(src[i]) {
		if i+1 >= len(src) || !isHexDigit(src[i+1]) {
			blob.Clear()
			return value.Value{}, pos, parseErrorf("blob literal should have an even number of hex characters")
		}
		if evaluate {
			blob.Blob.Append(byte(hexNibble(src[i])<<4 | hexNibble(src[i+1])))
		}
		i += 2
		if i+1 < len(src) && src[i] == '.' && isHexDigit(src[i+1]) {
			i++
		}
	}
	return blob, i, nil
}

func (pr *Parser) parseInteger(src string, pos int, evaluate, skipQuotes bool) (value.Value, int, error) {
	flags := value.StrAll
	if skipQuotes {
		// Modern scripts require the "0o" prefix for octal.
		flags = value.StrBin | value.StrOOct | value.StrHex | value.StrQuote
	}
	n, length, _ := value.StrToNum(src[pos:], flags, true)
	if length == 0 {
		return value.Value{}, pos, parseErrorf("invalid expression: %q", src[pos:])
	}
	if !evaluate {
		return value.Value{}, pos + length, nil
	}
	return value.NewNumber(n), pos + length, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
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
